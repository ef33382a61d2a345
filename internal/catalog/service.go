package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ovenline/pizza-storefront/internal/pkg/cache"
)

// Service fronts the repository with a Redis read-through cache.
// Storefront reads (menu listing, single pizza) are hot and rarely
// change; admin writes invalidate the affected keys.
type Service struct {
	repo  Repository
	cache cache.Cache
	ttl   time.Duration
}

// NewService returns a catalog service. cache may be nil to disable
// caching (tests, local dev without Redis).
func NewService(repo Repository, c cache.Cache, ttl time.Duration) *Service {
	return &Service{repo: repo, cache: c, ttl: ttl}
}

// List returns all pizzas, cached under a single list key.
func (s *Service) List(ctx context.Context) ([]Pizza, error) {
	if s.cache != nil {
		key := s.cache.GenerateKey("list", "all")
		if raw, err := s.cache.Get(ctx, key); err == nil && raw != "" {
			var pizzas []Pizza
			if err := json.Unmarshal([]byte(raw), &pizzas); err == nil {
				return pizzas, nil
			}
		}
	}

	pizzas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, s.key("list", "all"), pizzas)
	return pizzas, nil
}

// Get returns one pizza by id, cached per id.
func (s *Service) Get(ctx context.Context, id string) (Pizza, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, s.key("get", id)); err == nil && raw != "" {
			var p Pizza
			if err := json.Unmarshal([]byte(raw), &p); err == nil {
				return p, nil
			}
		}
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Pizza{}, err
	}
	s.cacheSet(ctx, s.key("get", id), p)
	return p, nil
}

// Create persists a new pizza, minting an id when none is supplied.
func (s *Service) Create(ctx context.Context, p Pizza) (Pizza, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.repo.Create(ctx, p); err != nil {
		return Pizza{}, err
	}
	s.invalidate(ctx, p.ID)
	return p, nil
}

// Update replaces a pizza and invalidates its cache entries.
func (s *Service) Update(ctx context.Context, p Pizza) (Pizza, error) {
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pizza{}, err
	}
	s.invalidate(ctx, p.ID)
	return p, nil
}

// Delete removes a pizza and invalidates its cache entries.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *Service) key(operation, id string) string {
	if s.cache == nil {
		return ""
	}
	return s.cache.GenerateKey(operation, id)
}

// cacheSet is best-effort: a cache failure never fails the read.
func (s *Service) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
		slog.WarnContext(ctx, "catalog cache set failed", "key", key, "error", err)
	}
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.key("list", "all"), s.key("get", id)); err != nil {
		slog.WarnContext(ctx, "catalog cache invalidation failed", "pizza_id", id, "error", err)
	}
}
