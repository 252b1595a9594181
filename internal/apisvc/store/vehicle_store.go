package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
)

type VehicleFilter struct {
	Estado string
}

type VehicleStore struct {
	db DBTX
}

func NewVehicleStore(db DBTX) *VehicleStore {
	return &VehicleStore{db: db}
}

func (s *VehicleStore) base() *Select {
	return From("vehiculo v").Columns("v.id::text", "v.placa", "COALESCE(v.tipo, '')", "COALESCE(v.estado, '')", "v.created_at")
}

func scanVehicle(row pgx.CollectableRow) (models.Vehicle, error) {
	var v models.Vehicle
	err := row.Scan(&v.ID, &v.Placa, &v.Tipo, &v.Estado, &v.CreatedAt)
	return v, err
}

func (s *VehicleStore) List(ctx context.Context, f VehicleFilter) ([]models.Vehicle, error) {
	query, args := s.base().EqOpt("v.estado", f.Estado).OrderBy("v.placa", true).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list vehicles", err)
	}
	vehicles, err := pgx.CollectRows(rows, scanVehicle)
	return vehicles, wrap("list vehicles", err)
}

func (s *VehicleStore) Get(ctx context.Context, id string) (*models.Vehicle, error) {
	query, args := s.base().Eq("v.id", id).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("get vehicle", err)
	}
	v, err := pgx.CollectExactlyOneRow(rows, scanVehicle)
	if err != nil {
		return nil, wrap("get vehicle", err)
	}
	return &v, nil
}

var vehicleCols = []string{"placa", "tipo", "estado"}

func (s *VehicleStore) Create(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	ensureID(&v.ID)
	_, err := s.db.Exec(ctx, insertSQL("vehiculo", append([]string{"id"}, vehicleCols...)), v.ID, v.Placa, v.Tipo, v.Estado)
	if err != nil {
		return nil, wrap("create vehicle", err)
	}
	return s.Get(ctx, v.ID)
}

func (s *VehicleStore) Update(ctx context.Context, id string, v *models.Vehicle) (*models.Vehicle, error) {
	tag, err := s.db.Exec(ctx, updateSQL("vehiculo", vehicleCols), id, v.Placa, v.Tipo, v.Estado)
	if err := affected("update vehicle", tag, err); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *VehicleStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM vehiculo WHERE id = $1", id)
	return affected("delete vehicle", tag, err)
}
