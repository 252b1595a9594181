package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
)

type SupervisorFilter struct {
	SectorID string
	TurnoID  string
}

type SupervisorStore struct {
	db DBTX
}

func NewSupervisorStore(db DBTX) *SupervisorStore {
	return &SupervisorStore{db: db}
}

func (s *SupervisorStore) base() *Select {
	return From("supervisor su").
		Columns("su.id::text", "su.personal_id::text", "su.sector_id::text", "su.turno_id::text", "su.created_at").
		Columns(personCols("pe")...).
		LeftJoin("personal pe", "pe.id = su.personal_id")
}

func scanSupervisor(row pgx.CollectableRow) (models.Supervisor, error) {
	var (
		su     models.Supervisor
		person personScan
	)
	dest := append([]any{&su.ID, &su.PersonalID, &su.SectorID, &su.TurnoID, &su.CreatedAt}, person.dest()...)
	if err := row.Scan(dest...); err != nil {
		return su, err
	}
	su.Personal = person.ref()
	return su, nil
}

func (s *SupervisorStore) List(ctx context.Context, f SupervisorFilter) ([]models.Supervisor, error) {
	query, args := s.base().
		EqOpt("su.sector_id", f.SectorID).
		EqOpt("su.turno_id", f.TurnoID).
		OrderBy("pe.nombres", true).
		SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list supervisor assignments", err)
	}
	out, err := pgx.CollectRows(rows, scanSupervisor)
	return out, wrap("list supervisor assignments", err)
}

func (s *SupervisorStore) Get(ctx context.Context, id string) (*models.Supervisor, error) {
	query, args := s.base().Eq("su.id", id).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("get supervisor assignment", err)
	}
	su, err := pgx.CollectExactlyOneRow(rows, scanSupervisor)
	if err != nil {
		return nil, wrap("get supervisor assignment", err)
	}
	return &su, nil
}

var supervisorCols = []string{"personal_id", "sector_id", "turno_id"}

func (s *SupervisorStore) Create(ctx context.Context, su *models.Supervisor) (*models.Supervisor, error) {
	ensureID(&su.ID)
	_, err := s.db.Exec(ctx, insertSQL("supervisor", append([]string{"id"}, supervisorCols...)),
		su.ID, su.PersonalID, su.SectorID, su.TurnoID)
	if err != nil {
		return nil, wrap("create supervisor assignment", err)
	}
	return s.Get(ctx, su.ID)
}

func (s *SupervisorStore) Update(ctx context.Context, id string, su *models.Supervisor) (*models.Supervisor, error) {
	tag, err := s.db.Exec(ctx, updateSQL("supervisor", supervisorCols), id, su.PersonalID, su.SectorID, su.TurnoID)
	if err := affected("update supervisor assignment", tag, err); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *SupervisorStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM supervisor WHERE id = $1", id)
	return affected("delete supervisor assignment", tag, err)
}
