package market

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	errx "github.com/crypgene/advisor/internal/core/error"
	logx "github.com/crypgene/advisor/pkg/logger"
)

// ErrNotFound means the provider search produced no result for the candidate
// identifier. Never cached.
var ErrNotFound = errors.New("no matching asset")

// DefaultFreshness is the window after which a cached snapshot is stale.
const DefaultFreshness = 5 * time.Minute

type cacheEntry struct {
	snap      Snapshot
	expiresAt time.Time
}

// Service wraps a Provider with a time-boxed in-process cache. Each fetch is
// coalesced per key so concurrent lookups of the same subject trigger at most
// one network call. Expired entries are silently superseded on the next
// lookup, never merged with fresh data.
type Service struct {
	provider  Provider
	freshness time.Duration
	now       func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

func NewService(provider Provider, freshness time.Duration) *Service {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	return &Service{
		provider:  provider,
		freshness: freshness,
		now:       time.Now,
		entries:   make(map[string]cacheEntry),
	}
}

// AssetSnapshot returns fresh-enough market data for a free-text identifier.
// The identifier is resolved to a canonical id via the provider's search; the
// result is stored under both the alias key and the canonical key, so a later
// lookup through a different alias of the same asset still hits the cache.
func (s *Service) AssetSnapshot(ctx context.Context, identifier string) (*AssetSnapshot, error) {
	key := assetKey(identifier)
	if e, ok := s.lookup(key); ok {
		return e.Asset, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		// Another flight may have filled the entry while we queued.
		if e, ok := s.lookup(key); ok {
			return e.Asset, nil
		}

		refs, err := s.provider.Search(ctx, identifier)
		if err != nil {
			return nil, errx.WrapProvider(err)
		}
		if len(refs) == 0 {
			return nil, ErrNotFound
		}

		snap, err := s.provider.AssetDetail(ctx, refs[0].ID)
		if err != nil {
			return nil, errx.WrapProvider(err)
		}

		entry := cacheEntry{
			snap:      Snapshot{Asset: snap},
			expiresAt: s.now().Add(s.freshness),
		}
		s.store(key, entry)
		s.store(assetKey(refs[0].ID), entry)

		logx.Debug().Str("asset", refs[0].ID).Msg("fetched asset snapshot")
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*AssetSnapshot), nil
}

// GlobalSnapshot returns fresh-enough aggregate market statistics.
func (s *Service) GlobalSnapshot(ctx context.Context) (*GlobalSnapshot, error) {
	const key = "global"
	if e, ok := s.lookup(key); ok {
		return e.Global, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		if e, ok := s.lookup(key); ok {
			return e.Global, nil
		}

		snap, err := s.provider.GlobalData(ctx)
		if err != nil {
			return nil, errx.WrapProvider(err)
		}

		s.store(key, cacheEntry{
			snap:      Snapshot{Global: snap},
			expiresAt: s.now().Add(s.freshness),
		})

		logx.Debug().Msg("fetched global snapshot")
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*GlobalSnapshot), nil
}

func assetKey(identifier string) string {
	return "asset:" + strings.ToLower(strings.TrimSpace(identifier))
}

// lookup returns the entry only while now <= expiresAt; a stale entry reads
// as a miss so the caller always re-fetches.
func (s *Service) lookup(key string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || s.now().After(e.expiresAt) {
		return Snapshot{}, false
	}
	return e.snap, true
}

func (s *Service) store(key string, e cacheEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = e
}
