package refcache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/sgsc/sgsc-services/internal/apisvc/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	calls atomic.Int32
	err   error
}

func (s *fakeSource) ListSectors(context.Context) ([]models.Sector, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return []models.Sector{{ID: "s1", NombreSector: "Centro"}}, nil
}

func (s *fakeSource) ListShifts(context.Context) ([]models.Shift, error) {
	s.calls.Add(1)
	return []models.Shift{{ID: "t1", NombreTurno: "Mañana"}}, s.err
}

func (s *fakeSource) ListPersonnel(context.Context) ([]models.Personnel, error) {
	s.calls.Add(1)
	return nil, s.err
}

func (s *fakeSource) ListVehicles(context.Context) ([]models.Vehicle, error) {
	s.calls.Add(1)
	return []models.Vehicle{{ID: "v1", Placa: "ABC-123"}}, s.err
}

func (s *fakeSource) ListBooths(context.Context) ([]models.Booth, error) {
	s.calls.Add(1)
	return []models.Booth{{ID: "c1", NombreCabina: "Cabina 1"}}, s.err
}

func (s *fakeSource) ListSupervisors(context.Context) ([]models.Personnel, error) {
	s.calls.Add(1)
	return []models.Personnel{{ID: "p1", Cargo: "Supervisor"}}, s.err
}

func TestFetcherCachesUntilExpiry(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache()
	src := &fakeSource{}
	f := NewFetchers(c, src)
	ctx := context.Background()

	first := f.Sectors(ctx)
	require.Len(t, first, 1)
	assert.Equal(t, "Centro", first[0].NombreSector)
	assert.Equal(t, first, f.Sectors(ctx))
	assert.EqualValues(t, 1, src.calls.Load())

	clock.Advance(SectorsTTL)
	f.Sectors(ctx)
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestFetcherReloadsAfterInvalidation(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache()
	src := &fakeSource{}
	f := NewFetchers(c, src)
	ctx := context.Background()

	f.Supervisors(ctx)
	f.Supervisors(ctx)
	assert.EqualValues(t, 1, src.calls.Load())

	c.OnPersonnelChanged()
	f.Supervisors(ctx)
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestFetcherFailureYieldsEmptyAndIsNotCached(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache()
	src := &fakeSource{err: errors.New("connection refused")}
	f := NewFetchers(c, src)
	ctx := context.Background()

	got := f.Sectors(ctx)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, f.Vehicles(ctx))
	assert.False(t, c.Has(KeySectors))
	assert.False(t, c.Has(KeyVehicles))
}

func TestFetcherNilResultIsEmptyCollection(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache()
	f := NewFetchers(c, &fakeSource{})
	got := f.Personnel(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.True(t, c.Has(KeyPersonnel))
}

func TestPreload(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache()
	src := &fakeSource{}
	NewFetchers(c, src).Preload(context.Background())

	assert.Equal(t, []string{KeyPersonnel, KeySectors, KeyShifts}, c.Stats().Keys)
	assert.EqualValues(t, 3, src.calls.Load())
	_, ok := GetAs[[]models.Booth](c, KeyBooths)
	assert.False(t, ok)
}
