package refcache

import (
	"context"
	"sync"
	"time"

	"github.com/sgsc/sgsc-services/internal/apisvc/models"
	log "github.com/sirupsen/logrus"
)

// Source runs the reference queries against the database.
type Source interface {
	ListSectors(ctx context.Context) ([]models.Sector, error)
	ListShifts(ctx context.Context) ([]models.Shift, error)
	ListPersonnel(ctx context.Context) ([]models.Personnel, error)
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	ListBooths(ctx context.Context) ([]models.Booth, error)
	ListSupervisors(ctx context.Context) ([]models.Personnel, error)
}

// Fetchers answer reference collections from the cache, loading them from
// Source on a miss. A failed load is logged and yields an empty collection.
type Fetchers struct {
	cache *Cache
	src   Source
}

func NewFetchers(cache *Cache, src Source) *Fetchers {
	return &Fetchers{cache: cache, src: src}
}

func (f *Fetchers) Cache() *Cache {
	return f.cache
}

func fetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func(context.Context) ([]T, error)) []T {
	if cached, ok := GetAs[[]T](c, key); ok {
		return cached
	}
	result, err := load(ctx)
	if err != nil {
		log.WithError(err).Errorf("Error fetching %s", key)
		return []T{}
	}
	if result == nil {
		result = []T{}
	}
	c.Set(key, result, ttl)
	return result
}

func (f *Fetchers) Sectors(ctx context.Context) []models.Sector {
	return fetch(ctx, f.cache, KeySectors, SectorsTTL, f.src.ListSectors)
}

func (f *Fetchers) Shifts(ctx context.Context) []models.Shift {
	return fetch(ctx, f.cache, KeyShifts, ShiftsTTL, f.src.ListShifts)
}

func (f *Fetchers) Personnel(ctx context.Context) []models.Personnel {
	return fetch(ctx, f.cache, KeyPersonnel, PersonnelTTL, f.src.ListPersonnel)
}

func (f *Fetchers) Vehicles(ctx context.Context) []models.Vehicle {
	return fetch(ctx, f.cache, KeyVehicles, VehiclesTTL, f.src.ListVehicles)
}

func (f *Fetchers) Booths(ctx context.Context) []models.Booth {
	return fetch(ctx, f.cache, KeyBooths, BoothsTTL, f.src.ListBooths)
}

// Supervisors are active personnel holding a supervising cargo.
func (f *Fetchers) Supervisors(ctx context.Context) []models.Personnel {
	return fetch(ctx, f.cache, KeySupervisors, SupervisorsTTL, f.src.ListSupervisors)
}

// Preload warms sectors, shifts and personnel in parallel.
func (f *Fetchers) Preload(ctx context.Context) {
	var wg sync.WaitGroup
	for _, warm := range []func(context.Context){
		func(ctx context.Context) { f.Sectors(ctx) },
		func(ctx context.Context) { f.Shifts(ctx) },
		func(ctx context.Context) { f.Personnel(ctx) },
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			warm(ctx)
		}()
	}
	wg.Wait()
	log.Infof("reference cache preloaded: %v", f.cache.Stats().Keys)
}
