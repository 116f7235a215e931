package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/narender/anime-explorer/anime-service/src/repositories"
	"github.com/narender/anime-explorer/anime-service/src/services"
)

// Registry hands out one AnimeStore per user, created on first use.
type Registry struct {
	mu        sync.Mutex
	stores    map[string]*AnimeStore
	service   services.AnimeService
	favorites repositories.FavoritesRepository
	logger    *slog.Logger
	opts      []Option
}

// NewRegistry creates a Registry whose stores are built with opts.
func NewRegistry(service services.AnimeService, favorites repositories.FavoritesRepository, logger *slog.Logger, opts ...Option) *Registry {
	return &Registry{
		stores:    make(map[string]*AnimeStore),
		service:   service,
		favorites: favorites,
		logger:    logger,
		opts:      opts,
	}
}

// For returns the store of userID.
func (r *Registry) For(ctx context.Context, userID string) *AnimeStore {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[userID]; ok {
		return s
	}
	s := NewAnimeStore(ctx, userID, r.service, r.favorites, r.logger, r.opts...)
	r.stores[userID] = s
	return s
}

// Drop forgets the in-memory store of userID. Persisted favorites remain.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, userID)
}
