package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
)

type PersonnelFilter struct {
	Estado   string
	Cargo    string
	SectorID string
	TurnoID  string
}

type PersonnelStore struct {
	db DBTX
}

func NewPersonnelStore(db DBTX) *PersonnelStore {
	return &PersonnelStore{db: db}
}

func (s *PersonnelStore) base() *Select {
	return From("personal p").
		Columns("p.id::text", "p.dni", "p.nombres", "p.apellidos", "p.cargo", "p.estado",
			"p.sector_id::text", "p.turno_id::text", "p.created_at", "se.nombre_sector").
		Columns(shiftCols("tu")...).
		LeftJoin("sector se", "se.id = p.sector_id").
		LeftJoin("turno tu", "tu.id = p.turno_id")
}

func scanPersonnel(row pgx.CollectableRow) (models.Personnel, error) {
	var (
		p      models.Personnel
		sector *string
		shift  shiftScan
	)
	dest := append([]any{&p.ID, &p.DNI, &p.Nombres, &p.Apellidos, &p.Cargo, &p.Estado,
		&p.SectorID, &p.TurnoID, &p.CreatedAt, &sector}, shift.dest()...)
	if err := row.Scan(dest...); err != nil {
		return p, err
	}
	p.Sector = sectorRef(sector)
	p.Turno = shift.ref()
	return p, nil
}

func (s *PersonnelStore) List(ctx context.Context, f PersonnelFilter) ([]models.Personnel, error) {
	q := s.base().
		EqOpt("p.estado", f.Estado).
		EqOpt("p.cargo", f.Cargo).
		EqOpt("p.sector_id", f.SectorID).
		EqOpt("p.turno_id", f.TurnoID).
		OrderBy("p.nombres", true)
	return s.collect(ctx, "list personnel", q)
}

// ListSupervisors returns active personnel whose cargo qualifies them to
// supervise.
func (s *PersonnelStore) ListSupervisors(ctx context.Context) ([]models.Personnel, error) {
	q := s.base().
		In("p.cargo", models.SupervisorRoles).
		Eq("p.estado", models.PersonnelActive).
		OrderBy("p.nombres", true)
	return s.collect(ctx, "list supervisors", q)
}

func (s *PersonnelStore) collect(ctx context.Context, op string, q *Select) ([]models.Personnel, error) {
	query, args := q.SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	people, err := pgx.CollectRows(rows, scanPersonnel)
	return people, wrap(op, err)
}

func (s *PersonnelStore) Get(ctx context.Context, id string) (*models.Personnel, error) {
	query, args := s.base().Eq("p.id", id).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("get personnel", err)
	}
	p, err := pgx.CollectExactlyOneRow(rows, scanPersonnel)
	if err != nil {
		return nil, wrap("get personnel", err)
	}
	return &p, nil
}

var personnelCols = []string{"dni", "nombres", "apellidos", "cargo", "estado", "sector_id", "turno_id"}

func (s *PersonnelStore) Create(ctx context.Context, p *models.Personnel) (*models.Personnel, error) {
	ensureID(&p.ID)
	_, err := s.db.Exec(ctx, insertSQL("personal", append([]string{"id"}, personnelCols...)),
		p.ID, p.DNI, p.Nombres, p.Apellidos, p.Cargo, p.Estado, p.SectorID, p.TurnoID)
	if err != nil {
		return nil, wrap("create personnel", err)
	}
	return s.Get(ctx, p.ID)
}

func (s *PersonnelStore) Update(ctx context.Context, id string, p *models.Personnel) (*models.Personnel, error) {
	tag, err := s.db.Exec(ctx, updateSQL("personal", personnelCols),
		id, p.DNI, p.Nombres, p.Apellidos, p.Cargo, p.Estado, p.SectorID, p.TurnoID)
	if err := affected("update personnel", tag, err); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *PersonnelStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM personal WHERE id = $1", id)
	return affected("delete personnel", tag, err)
}
