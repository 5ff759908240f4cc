package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/m04kA/FestAccommodationService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов"

// IPRateLimiter лимитер на каждый IP
// Лимитеры без обращений дольше idleTTL удаляются. X-Forwarded-For учитывается
// только для запросов от доверенных прокси
type IPRateLimiter struct {
	limiters *cache.Cache
	mu       sync.Mutex
	r        rate.Limit
	b        int
	trusted  []*net.IPNet
}

// NewIPRateLimiter trustedProxies - IP или CIDR; idleTTL <= 0 - лимитеры не удаляются
func NewIPRateLimiter(r rate.Limit, b int, idleTTL time.Duration, trustedProxies ...string) (*IPRateLimiter, error) {
	trusted := make([]*net.IPNet, 0, len(trustedProxies))
	for _, proxy := range trustedProxies {
		network, err := parseNetwork(proxy)
		if err != nil {
			return nil, err
		}
		trusted = append(trusted, network)
	}

	cleanup := time.Duration(0)
	if idleTTL > 0 {
		cleanup = idleTTL
	} else {
		idleTTL = cache.NoExpiration
	}

	return &IPRateLimiter{
		limiters: cache.New(idleTTL, cleanup),
		r:        r,
		b:        b,
		trusted:  trusted,
	}, nil
}

// GetLimiter лимитер IP, создается при первом обращении; обращение продлевает срок жизни
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	if v, ok := i.limiters.Get(ip); ok {
		limiter := v.(*rate.Limiter)
		i.limiters.SetDefault(ip, limiter)
		return limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	i.limiters.SetDefault(ip, limiter)
	return limiter
}

// Len число активных лимитеров
func (i *IPRateLimiter) Len() int {
	return i.limiters.ItemCount()
}

// RateLimit отвечает 429, когда IP превысил лимит
func RateLimit(limiter *IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.GetLimiter(limiter.clientIP(r)).Allow() {
				handlers.RespondTooManyRequests(w, msgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP адрес соединения; за доверенным прокси - самый правый недоверенный адрес X-Forwarded-For
func (i *IPRateLimiter) clientIP(r *http.Request) string {
	remote := remoteHost(r)
	if !i.isTrusted(net.ParseIP(remote)) {
		return remote
	}

	forwarded := r.Header.Values("X-Forwarded-For")
	hops := strings.Split(strings.Join(forwarded, ","), ",")
	for idx := len(hops) - 1; idx >= 0; idx-- {
		ip := net.ParseIP(strings.TrimSpace(hops[idx]))
		if ip == nil {
			// мусор в заголовке: дальше цепочке не верим
			return remote
		}
		if !i.isTrusted(ip) {
			return ip.String()
		}
	}
	return remote
}

func (i *IPRateLimiter) isTrusted(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, network := range i.trusted {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func parseNetwork(value string) (*net.IPNet, error) {
	value = strings.TrimSpace(value)
	if strings.Contains(value, "/") {
		_, network, err := net.ParseCIDR(value)
		if err != nil {
			return nil, fmt.Errorf("middleware: invalid trusted proxy %q: %w", value, err)
		}
		return network, nil
	}

	ip := net.ParseIP(value)
	if ip == nil {
		return nil, fmt.Errorf("middleware: invalid trusted proxy %q", value)
	}
	bits := 128
	if ip4 := ip.To4(); ip4 != nil {
		ip, bits = ip4, 32
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
}
