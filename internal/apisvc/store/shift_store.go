package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
)

type ShiftStore struct {
	db DBTX
}

func NewShiftStore(db DBTX) *ShiftStore {
	return &ShiftStore{db: db}
}

func (s *ShiftStore) base() *Select {
	return From("turno t").Columns("t.id::text", "t.nombre_turno", "t.hora_inicio::text", "t.hora_fin::text", "t.created_at")
}

func scanShift(row pgx.CollectableRow) (models.Shift, error) {
	var t models.Shift
	err := row.Scan(&t.ID, &t.NombreTurno, &t.HoraInicio, &t.HoraFin, &t.CreatedAt)
	return t, err
}

func (s *ShiftStore) List(ctx context.Context, _ NoFilter) ([]models.Shift, error) {
	query, args := s.base().OrderBy("t.nombre_turno", true).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list shifts", err)
	}
	shifts, err := pgx.CollectRows(rows, scanShift)
	return shifts, wrap("list shifts", err)
}

func (s *ShiftStore) Get(ctx context.Context, id string) (*models.Shift, error) {
	query, args := s.base().Eq("t.id", id).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("get shift", err)
	}
	t, err := pgx.CollectExactlyOneRow(rows, scanShift)
	if err != nil {
		return nil, wrap("get shift", err)
	}
	return &t, nil
}

var shiftTableCols = []string{"nombre_turno", "hora_inicio", "hora_fin"}

func (s *ShiftStore) Create(ctx context.Context, t *models.Shift) (*models.Shift, error) {
	ensureID(&t.ID)
	_, err := s.db.Exec(ctx, insertSQL("turno", append([]string{"id"}, shiftTableCols...)),
		t.ID, t.NombreTurno, t.HoraInicio, t.HoraFin)
	if err != nil {
		return nil, wrap("create shift", err)
	}
	return s.Get(ctx, t.ID)
}

func (s *ShiftStore) Update(ctx context.Context, id string, t *models.Shift) (*models.Shift, error) {
	tag, err := s.db.Exec(ctx, updateSQL("turno", shiftTableCols), id, t.NombreTurno, t.HoraInicio, t.HoraFin)
	if err := affected("update shift", tag, err); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ShiftStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM turno WHERE id = $1", id)
	return affected("delete shift", tag, err)
}
