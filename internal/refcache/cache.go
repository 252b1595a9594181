// Package refcache keeps reference collections (sectors, shifts, personnel,
// vehicles, booths, supervisors) in memory for a short time so list screens
// and report filters do not hit the database on every request.
package refcache

import (
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Collection keys.
const (
	KeySectors     = "sectors"
	KeyShifts      = "turnos"
	KeyPersonnel   = "personal"
	KeyVehicles    = "vehiculos"
	KeyBooths      = "cabinas"
	KeySupervisors = "supervisors"
)

// Per-collection time to live.
const (
	SectorsTTL     = 5 * time.Minute
	ShiftsTTL      = 5 * time.Minute
	PersonnelTTL   = 2 * time.Minute
	SupervisorsTTL = 2 * time.Minute
	VehiclesTTL    = 3 * time.Minute
	BoothsTTL      = 5 * time.Minute
	StaticTTL      = 10 * time.Minute
)

type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

// Stats describes the cache content.
type Stats struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}

// Cache is a key-value store with a per-entry TTL. An entry is returned while
// its age is below the TTL and dropped on the first read at or past it.
type Cache struct {
	items *gocache.Cache
	now   func() time.Time
}

type Option func(*Cache)

// WithClock replaces time.Now for the age check.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func New(opts ...Option) *Cache {
	c := &Cache{
		items: gocache.New(StaticTTL, 2*StaticTTL),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set stores value under key. A non-positive ttl means StaticTTL.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = StaticTTL
	}
	c.items.Set(key, entry{value: value, storedAt: c.now(), ttl: ttl}, ttl)
}

func (c *Cache) Get(key string) (any, bool) {
	raw, ok := c.items.Get(key)
	if !ok {
		return nil, false
	}
	e := raw.(entry)
	if c.now().Sub(e.storedAt) >= e.ttl {
		c.items.Delete(key)
		return nil, false
	}
	return e.value, true
}

// GetAs is Get with a type assertion; a value of another type is a miss.
func GetAs[T any](c *Cache, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

func (c *Cache) Invalidate(keys ...string) {
	for _, k := range keys {
		c.items.Delete(k)
	}
}

func (c *Cache) Clear() {
	c.items.Flush()
}

// Stats lists the live keys in sorted order. Entries past their TTL are
// left out even before a read drops them.
func (c *Cache) Stats() Stats {
	items := c.items.Items()
	now := c.now()
	keys := make([]string, 0, len(items))
	for k, it := range items {
		if e, ok := it.Object.(entry); ok && now.Sub(e.storedAt) >= e.ttl {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return Stats{Size: len(keys), Keys: keys}
}
