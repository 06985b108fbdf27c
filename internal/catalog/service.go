package catalog

import (
	"context"
	"time"

	"miraiz/internal/cache"
	"miraiz/internal/model"
)

// cache key for the raw catalog snapshot
const snapshotKey = "props"

// Service hands out the current catalog snapshot, fetching through the
// cache on a miss. A fetch failure still produces a cacheable empty
// snapshot, so repeated failures do not storm upstream within the TTL
// window.
type Service struct {
	fetcher *Fetcher
	cache   *cache.TTLCache[*model.CatalogResponse]
	ttl     time.Duration
}

// NewService creates a catalog service with the given snapshot TTL.
func NewService(fetcher *Fetcher, ttl time.Duration) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   cache.New[*model.CatalogResponse](),
		ttl:     ttl,
	}
}

// TTL returns the snapshot time-to-live.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Snapshot returns the cached catalog, fetching it on a miss. Each request
// reads whatever snapshot is current; there are no cross-request ordering
// guarantees.
//
// The fetch runs detached from the caller's cancellation: its outcome is
// cached and shared by every request within the TTL window, so one
// client's disconnect must not abort it and poison the cache with an
// empty snapshot. The fetcher's own 5s timeout still bounds the call.
func (s *Service) Snapshot(ctx context.Context) *model.CatalogResponse {
	resp, _ := s.cache.GetOrLoad(snapshotKey, s.ttl, func() (*model.CatalogResponse, error) {
		return s.fetcher.Fetch(context.WithoutCancel(ctx)), nil
	})
	return resp
}

// Items returns the current snapshot's listings.
func (s *Service) Items(ctx context.Context) []*model.PropertyItem {
	return s.Snapshot(ctx).Data
}

// FindByID returns the listing with the given id, or nil.
func (s *Service) FindByID(ctx context.Context, id int) *model.PropertyItem {
	for _, p := range s.Items(ctx) {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Refresh drops the cached snapshot so the next read refetches.
func (s *Service) Refresh() {
	s.cache.Invalidate(snapshotKey)
}
