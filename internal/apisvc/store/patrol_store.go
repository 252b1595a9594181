package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
)

type PatrolFilter struct {
	Fecha    string
	TurnoID  string
	SectorID string
	Estado   string
}

type PatrolStore struct {
	db DBTX
}

func NewPatrolStore(db DBTX) *PatrolStore {
	return &PatrolStore{db: db}
}

func (s *PatrolStore) base() *Select {
	return From("patrullaje p").
		Columns("p.id::text", "p.fecha::text", "p.turno_id::text", "p.sector_id::text", "p.personal_id::text",
			"p.hora_inicio::text", "p.hora_fin::text", "p.ruta_patrullaje", "p.observaciones",
			"p.incidencias_encontradas", "p.estado_patrullaje", "p.supervisor_id::text", "p.created_at").
		Columns(personCols("pe")...).
		Columns(shiftCols("tu")...).
		Columns("se.nombre_sector").
		Columns(personCols("sv")...).
		LeftJoin("personal pe", "pe.id = p.personal_id").
		LeftJoin("turno tu", "tu.id = p.turno_id").
		LeftJoin("sector se", "se.id = p.sector_id").
		LeftJoin("personal sv", "sv.id = p.supervisor_id")
}

func scanPatrol(row pgx.CollectableRow) (models.Patrol, error) {
	var (
		p                  models.Patrol
		person, supervisor personScan
		shift              shiftScan
		sector             *string
	)
	dest := []any{&p.ID, &p.Fecha, &p.TurnoID, &p.SectorID, &p.PersonalID, &p.HoraInicio, &p.HoraFin,
		&p.RutaPatrullaje, &p.Observaciones, &p.IncidenciasEncontradas, &p.EstadoPatrullaje,
		&p.SupervisorID, &p.CreatedAt}
	dest = append(dest, person.dest()...)
	dest = append(dest, shift.dest()...)
	dest = append(dest, &sector)
	dest = append(dest, supervisor.dest()...)
	if err := row.Scan(dest...); err != nil {
		return p, err
	}
	p.Personal = person.ref()
	p.Turno = shift.ref()
	p.Sector = sectorRef(sector)
	p.Supervisor = supervisor.ref()
	return p, nil
}

func (s *PatrolStore) List(ctx context.Context, f PatrolFilter) ([]models.Patrol, error) {
	query, args := s.base().
		EqOpt("p.fecha", f.Fecha).
		EqOpt("p.turno_id", f.TurnoID).
		EqOpt("p.sector_id", f.SectorID).
		EqOpt("p.estado_patrullaje", f.Estado).
		OrderBy("p.fecha", false).
		OrderBy("p.hora_inicio", false).
		SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list patrols", err)
	}
	patrols, err := pgx.CollectRows(rows, scanPatrol)
	return patrols, wrap("list patrols", err)
}

func (s *PatrolStore) Get(ctx context.Context, id string) (*models.Patrol, error) {
	query, args := s.base().Eq("p.id", id).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("get patrol", err)
	}
	p, err := pgx.CollectExactlyOneRow(rows, scanPatrol)
	if err != nil {
		return nil, wrap("get patrol", err)
	}
	return &p, nil
}

var patrolCols = []string{"fecha", "turno_id", "sector_id", "personal_id", "hora_inicio", "hora_fin",
	"ruta_patrullaje", "observaciones", "incidencias_encontradas", "estado_patrullaje", "supervisor_id"}

func patrolValues(p *models.Patrol) []any {
	return []any{p.Fecha, p.TurnoID, p.SectorID, p.PersonalID, p.HoraInicio, p.HoraFin,
		p.RutaPatrullaje, p.Observaciones, p.IncidenciasEncontradas, p.EstadoPatrullaje, p.SupervisorID}
}

func (s *PatrolStore) Create(ctx context.Context, p *models.Patrol) (*models.Patrol, error) {
	ensureID(&p.ID)
	args := append([]any{p.ID}, patrolValues(p)...)
	if _, err := s.db.Exec(ctx, insertSQL("patrullaje", append([]string{"id"}, patrolCols...)), args...); err != nil {
		return nil, wrap("create patrol", err)
	}
	return s.Get(ctx, p.ID)
}

func (s *PatrolStore) Update(ctx context.Context, id string, p *models.Patrol) (*models.Patrol, error) {
	args := append([]any{id}, patrolValues(p)...)
	tag, err := s.db.Exec(ctx, updateSQL("patrullaje", patrolCols), args...)
	if err := affected("update patrol", tag, err); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *PatrolStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM patrullaje WHERE id = $1", id)
	return affected("delete patrol", tag, err)
}
