package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/DavidRSR1/verifica/internal/apperrors"
	"github.com/DavidRSR1/verifica/internal/model"
)

// PanelCatalog is the slice of the panel API client the catalog needs.
type PanelCatalog interface {
	Providers(ctx context.Context) ([]model.Provider, error)
	Stations(ctx context.Context, provider string) ([]model.Station, error)
}

type cachedProviders struct {
	data      []model.Provider
	fetchedAt time.Time
}

type cachedStations struct {
	data      []model.Station
	fetchedAt time.Time
}

// CatalogService caches the provider and station catalogs. The catalogs
// change rarely, so entries are served from memory until the TTL lapses;
// concurrent misses for the same key are collapsed into one upstream call.
type CatalogService struct {
	panel PanelCatalog
	ttl   time.Duration
	group singleflight.Group
	now   func() time.Time

	mu        sync.RWMutex
	providers cachedProviders
	stations  map[string]cachedStations
}

// NewCatalogService creates a new CatalogService with the given cache TTL.
func NewCatalogService(panel PanelCatalog, ttl time.Duration) *CatalogService {
	return &CatalogService{
		panel:    panel,
		ttl:      ttl,
		now:      time.Now,
		stations: make(map[string]cachedStations),
	}
}

// Providers returns the provider catalog, fetching it when the cache is cold
// or expired.
func (s *CatalogService) Providers(ctx context.Context) ([]model.Provider, error) {
	s.mu.RLock()
	cached := s.providers
	s.mu.RUnlock()
	if cached.data != nil && s.now().Sub(cached.fetchedAt) < s.ttl {
		return cached.data, nil
	}

	result, err, _ := s.group.Do("providers", func() (any, error) {
		providers, err := s.panel.Providers(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveProviders, err)
		}
		s.mu.Lock()
		s.providers = cachedProviders{data: providers, fetchedAt: s.now()}
		s.mu.Unlock()
		return providers, nil
	})
	if err != nil {
		// Serve the stale catalog rather than an error when we have one.
		if cached.data != nil {
			return cached.data, nil
		}
		return nil, err
	}
	return result.([]model.Provider), nil
}

// Provider resolves a provider by slug, or ErrProviderNotFound.
func (s *CatalogService) Provider(ctx context.Context, slug string) (model.Provider, error) {
	providers, err := s.Providers(ctx)
	if err != nil {
		return model.Provider{}, err
	}
	for _, p := range providers {
		if p.Slug == slug {
			return p, nil
		}
	}
	return model.Provider{}, fmt.Errorf("%w: %s", apperrors.ErrProviderNotFound, slug)
}

// Stations returns the station catalog of a provider. The provider must
// exist in the provider catalog.
func (s *CatalogService) Stations(ctx context.Context, slug string) ([]model.Station, error) {
	if _, err := s.Provider(ctx, slug); err != nil {
		return nil, err
	}

	s.mu.RLock()
	cached, ok := s.stations[slug]
	s.mu.RUnlock()
	if ok && s.now().Sub(cached.fetchedAt) < s.ttl {
		return cached.data, nil
	}

	result, err, _ := s.group.Do("stations:"+slug, func() (any, error) {
		stations, err := s.panel.Stations(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveStations, err)
		}
		s.mu.Lock()
		s.stations[slug] = cachedStations{data: stations, fetchedAt: s.now()}
		s.mu.Unlock()
		return stations, nil
	})
	if err != nil {
		if ok {
			return cached.data, nil
		}
		return nil, err
	}
	return result.([]model.Station), nil
}

// Station resolves a station of a provider by CNPJ, or ErrStationNotFound.
func (s *CatalogService) Station(ctx context.Context, slug, cnpj string) (model.Station, error) {
	stations, err := s.Stations(ctx, slug)
	if err != nil {
		return model.Station{}, err
	}
	for _, st := range stations {
		if st.CNPJ == cnpj {
			return st, nil
		}
	}
	return model.Station{}, fmt.Errorf("%w: %s", apperrors.ErrStationNotFound, cnpj)
}

// RefreshAll re-fetches the provider catalog and the station lists of every
// provider that has them, in parallel. Run at startup and on a schedule so
// the dropdowns are warm before the operator opens them.
func (s *CatalogService) RefreshAll(ctx context.Context) error {
	providers, err := s.panel.Providers(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveProviders, err)
	}
	s.mu.Lock()
	s.providers = cachedProviders{data: providers, fetchedAt: s.now()}
	s.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, p := range providers {
		if !p.HasPostos {
			continue
		}
		p := p
		g.Go(func() error {
			stations, err := s.panel.Stations(ctx, p.Slug)
			if err != nil {
				return fmt.Errorf("refresh stations %s: %w", p.Slug, err)
			}
			s.mu.Lock()
			s.stations[p.Slug] = cachedStations{data: stations, fetchedAt: s.now()}
			s.mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}
