package room

import (
	"context"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/pkg/dbmetrics"
)

// CachedRepository кэширует GetByID каталога комнат
// Внутри транзакции кэш не используется: комната читается из той же транзакции
type CachedRepository struct {
	repo  Repository
	store *cache.Cache
}

func NewCachedRepository(repo Repository, ttl, cleanupInterval time.Duration) *CachedRepository {
	return &CachedRepository{
		repo:  repo,
		store: cache.New(ttl, cleanupInterval),
	}
}

func (r *CachedRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	if dbmetrics.IsInTransaction(ctx) {
		return r.repo.GetByID(ctx, id)
	}

	if cached, found := r.store.Get(key(id)); found {
		room := *cached.(*domain.Room)
		return &room, nil
	}

	room, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stored := *room
	r.store.SetDefault(key(id), &stored)
	return room, nil
}

func (r *CachedRepository) List(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error) {
	return r.repo.List(ctx, filter)
}

// Update и Delete сбрасывают запись; вызывающий код сбрасывает ее еще раз через Invalidate после commit
func (r *CachedRepository) Update(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	r.Invalidate(room.ID)
	return r.repo.Update(ctx, room)
}

func (r *CachedRepository) Delete(ctx context.Context, id int64) error {
	r.Invalidate(id)
	return r.repo.Delete(ctx, id)
}

// Invalidate удаляет комнату из кэша
func (r *CachedRepository) Invalidate(id int64) {
	r.store.Delete(key(id))
}

func key(id int64) string {
	return "room:" + strconv.FormatInt(id, 10)
}
