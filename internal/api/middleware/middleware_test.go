package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/pkg/metrics"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuth(t *testing.T) {
	var gotID int64
	var gotRoles []string
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserID(r.Context())
		gotRoles = GetRoles(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderUserID, "42")
	r.Header.Set(HeaderUserRoles, " Admin, accommodation_manager ,")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), gotID)
	assert.Equal(t, []string{"admin", "accommodation_manager"}, gotRoles)

	for _, header := range []string{"", "abc", "0", "-5"} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderUserID, header)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestRequireRoles(t *testing.T) {
	h := Auth(RequireRoles(domain.StaffRoles...)(http.HandlerFunc(okHandler)))

	tests := []struct {
		name       string
		roles      string
		wantStatus int
	}{
		{name: "manager", roles: "accommodation_manager", wantStatus: http.StatusOK},
		{name: "admin among others", roles: "user,admin", wantStatus: http.StatusOK},
		{name: "no staff role", roles: "user", wantStatus: http.StatusForbidden},
		{name: "no roles", roles: "", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/v1/placements", nil)
			r.Header.Set(HeaderUserID, "7")
			r.Header.Set(HeaderUserRoles, tt.roles)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	w := httptest.NewRecorder()
	RequireRoles(domain.RoleAdmin)(http.HandlerFunc(okHandler)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(HeaderRequestID))

	incoming := uuid.NewString()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderRequestID, incoming)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, incoming, seen)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderRequestID, "not-a-uuid")
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.NotEqual(t, "not-a-uuid", seen)
}

func newLimiter(t *testing.T, burst int, idleTTL time.Duration, trustedProxies ...string) *IPRateLimiter {
	t.Helper()
	limiter, err := NewIPRateLimiter(0, burst, idleTTL, trustedProxies...)
	require.NoError(t, err)
	return limiter
}

func TestRateLimit(t *testing.T) {
	limiter := newLimiter(t, 2, time.Minute)
	h := RateLimit(limiter)(http.HandlerFunc(okHandler))

	send := func(addr string) int {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5002"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:5000"), "limits are per IP")
	assert.Equal(t, 2, limiter.Len())
}

func TestRateLimit_ForwardedForFromUntrustedClient(t *testing.T) {
	limiter := newLimiter(t, 1, time.Minute)
	h := RateLimit(limiter)(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for _, spoofed := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "203.0.113.7:4000"
		r.Header.Set("X-Forwarded-For", spoofed)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 1, limiter.Len(), "header values do not create limiters")
}

func TestRateLimit_IdleLimitersExpire(t *testing.T) {
	limiter := newLimiter(t, 1, 20*time.Millisecond)

	assert.True(t, limiter.GetLimiter("10.0.0.1").Allow())
	assert.False(t, limiter.GetLimiter("10.0.0.1").Allow())

	time.Sleep(60 * time.Millisecond)
	assert.True(t, limiter.GetLimiter("10.0.0.1").Allow(), "expired limiter is recreated")
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name      string
		trusted   []string
		remote    string
		forwarded string
		want      string
	}{
		{name: "no proxy", remote: "10.0.0.1:5000", want: "10.0.0.1"},
		{name: "header ignored without trusted proxy", remote: "10.0.0.1:5000", forwarded: "192.168.1.10", want: "10.0.0.1"},
		{name: "header ignored from other address", trusted: []string{"10.0.0.0/8"}, remote: "203.0.113.7:5000",
			forwarded: "192.168.1.10", want: "203.0.113.7"},
		{name: "trusted proxy", trusted: []string{"10.0.0.0/8"}, remote: "10.0.0.1:5000",
			forwarded: "192.168.1.10", want: "192.168.1.10"},
		{name: "rightmost untrusted hop", trusted: []string{"10.0.0.0/8"}, remote: "10.0.0.1:5000",
			forwarded: "1.1.1.1, 192.168.1.10, 10.0.0.2", want: "192.168.1.10"},
		{name: "single trusted address", trusted: []string{"10.0.0.1"}, remote: "10.0.0.1:5000",
			forwarded: "192.168.1.10", want: "192.168.1.10"},
		{name: "garbage in header", trusted: []string{"10.0.0.0/8"}, remote: "10.0.0.1:5000",
			forwarded: "not-an-ip", want: "10.0.0.1"},
		{name: "empty header", trusted: []string{"10.0.0.0/8"}, remote: "10.0.0.1:5000", want: "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := newLimiter(t, 1, time.Minute, tt.trusted...)

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, limiter.clientIP(r))
		})
	}
}

func TestNewIPRateLimiter_InvalidProxy(t *testing.T) {
	_, err := NewIPRateLimiter(1, 1, time.Minute, "10.0.0.0/33")
	assert.Error(t, err)

	_, err = NewIPRateLimiter(1, 1, time.Minute, "proxy.local")
	assert.Error(t, err)
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "fest-test")

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/api/v1/rooms/{roomId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, id := range []string{"1", "2"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/rooms/"+id, strings.NewReader("")))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/rooms/{roomId}", "404")))
}
