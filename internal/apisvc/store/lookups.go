package store

import (
	"context"

	"github.com/sgsc/sgsc-services/internal/apisvc/models"
)

// Lookups runs the unfiltered reference queries the cache fetchers load.
type Lookups struct {
	Sectors   *SectorStore
	Shifts    *ShiftStore
	Personnel *PersonnelStore
	Vehicles  *VehicleStore
	Booths    *BoothStore
}

func NewLookups(db DBTX) *Lookups {
	return &Lookups{
		Sectors:   NewSectorStore(db),
		Shifts:    NewShiftStore(db),
		Personnel: NewPersonnelStore(db),
		Vehicles:  NewVehicleStore(db),
		Booths:    NewBoothStore(db),
	}
}

func (l *Lookups) ListSectors(ctx context.Context) ([]models.Sector, error) {
	return l.Sectors.List(ctx, NoFilter{})
}

func (l *Lookups) ListShifts(ctx context.Context) ([]models.Shift, error) {
	return l.Shifts.List(ctx, NoFilter{})
}

func (l *Lookups) ListPersonnel(ctx context.Context) ([]models.Personnel, error) {
	return l.Personnel.List(ctx, PersonnelFilter{})
}

func (l *Lookups) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return l.Vehicles.List(ctx, VehicleFilter{})
}

func (l *Lookups) ListBooths(ctx context.Context) ([]models.Booth, error) {
	return l.Booths.List(ctx, BoothFilter{})
}

func (l *Lookups) ListSupervisors(ctx context.Context) ([]models.Personnel, error) {
	return l.Personnel.ListSupervisors(ctx)
}
