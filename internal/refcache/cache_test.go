package refcache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestCache() (*Cache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	return New(WithClock(clock.Now)), clock
}

func TestGetBeforeAndAfterTTL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		elapsed time.Duration
		wantHit bool
	}{
		{name: "fresh", elapsed: 0, wantHit: true},
		{name: "just before ttl", elapsed: 119999 * time.Millisecond, wantHit: true},
		{name: "exactly ttl", elapsed: 120000 * time.Millisecond, wantHit: false},
		{name: "past ttl", elapsed: 120001 * time.Millisecond, wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, clock := newTestCache()
			c.Set("personal", []string{"Ana"}, 120000*time.Millisecond)
			clock.Advance(tt.elapsed)

			got, ok := c.Get("personal")
			assert.Equal(t, tt.wantHit, ok)
			if tt.wantHit {
				assert.Equal(t, []string{"Ana"}, got)
				return
			}
			assert.Nil(t, got)
			assert.NotContains(t, c.Stats().Keys, "personal", "expired entry is dropped on read")
		})
	}
}

func TestSetDefaultsToStaticTTL(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache()
	c.Set("tipos", 1, 0)
	clock.Advance(StaticTTL - time.Millisecond)
	assert.True(t, c.Has("tipos"))
	clock.Advance(time.Millisecond)
	assert.False(t, c.Has("tipos"))
}

func TestGetAs(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache()
	c.Set("n", 42, time.Minute)

	n, ok := GetAs[int](c, "n")
	require.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = GetAs[string](c, "n")
	assert.False(t, ok)

	_, ok = GetAs[int](c, "missing")
	assert.False(t, ok)
}

func TestInvalidateAndClear(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache()
	c.Set("a", 1, time.Hour)
	c.Set("b", 2, time.Hour)
	c.Set("c", 3, time.Hour)

	c.Invalidate("b")
	assert.False(t, c.Has("b"))
	assert.Equal(t, Stats{Size: 2, Keys: []string{"a", "c"}}, c.Stats())

	c.Clear()
	assert.Equal(t, 0, c.Stats().Size)
	assert.Empty(t, c.Stats().Keys)
}

func TestStatsSkipsExpired(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache()
	c.Set(KeyPersonnel, []string{"p"}, PersonnelTTL)
	c.Set(KeySectors, []string{"s"}, SectorsTTL)

	clock.Advance(PersonnelTTL)
	assert.Equal(t, Stats{Size: 1, Keys: []string{KeySectors}}, c.Stats())
}

func TestInvalidationHelpers(t *testing.T) {
	t.Parallel()

	all := []string{KeySectors, KeyShifts, KeyPersonnel, KeyVehicles, KeyBooths, KeySupervisors}
	tests := []struct {
		name    string
		apply   func(*Cache)
		dropped []string
	}{
		{name: "sector", apply: (*Cache).OnSectorChanged, dropped: []string{KeySectors, KeyPersonnel}},
		{name: "shift", apply: (*Cache).OnShiftChanged, dropped: []string{KeyShifts, KeyPersonnel}},
		{name: "personnel", apply: (*Cache).OnPersonnelChanged, dropped: []string{KeyPersonnel, KeySupervisors}},
		{name: "vehicle", apply: (*Cache).OnVehicleChanged, dropped: []string{KeyVehicles}},
		{name: "booth", apply: (*Cache).OnBoothChanged, dropped: []string{KeyBooths}},
		{name: "clear all", apply: (*Cache).ClearAll, dropped: all},
		{name: "table sector", apply: func(c *Cache) { c.ForTable("sector") }, dropped: []string{KeySectors, KeyPersonnel}},
		{name: "table turno", apply: func(c *Cache) { c.ForTable("turno") }, dropped: []string{KeyShifts, KeyPersonnel}},
		{name: "table personal", apply: func(c *Cache) { c.ForTable("personal") }, dropped: []string{KeyPersonnel, KeySupervisors}},
		{name: "table vehiculo", apply: func(c *Cache) { c.ForTable("vehiculo") }, dropped: []string{KeyVehicles}},
		{name: "table cabina", apply: func(c *Cache) { c.ForTable("cabina") }, dropped: []string{KeyBooths}},
		{name: "uncached table", apply: func(c *Cache) { c.ForTable("incidencia") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, _ := newTestCache()
			for _, k := range all {
				c.Set(k, k, time.Hour)
			}
			tt.apply(c)
			for _, k := range all {
				assert.Equal(t, !contains(tt.dropped, k), c.Has(k), k)
			}
		})
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
