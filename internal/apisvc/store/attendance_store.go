package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
)

type AttendanceFilter struct {
	Fecha    string
	TurnoID  string
	SectorID string
	Estado   string
}

type AttendanceStore struct {
	db DBTX
}

func NewAttendanceStore(db DBTX) *AttendanceStore {
	return &AttendanceStore{db: db}
}

func (s *AttendanceStore) base() *Select {
	return From("asistencia a").
		Columns("a.id::text", "a.fecha::text", "a.turno_id::text", "a.sector_id::text", "a.personal_id::text",
			"a.estado_asistencia", "a.hora_entrada::text", "a.observaciones", "a.supervisor_id::text",
			"COALESCE(a.parte_fisico_entregado, false)", "a.created_at").
		Columns(personCols("pe")...).
		Columns(shiftCols("tu")...).
		Columns("se.nombre_sector").
		LeftJoin("personal pe", "pe.id = a.personal_id").
		LeftJoin("turno tu", "tu.id = a.turno_id").
		LeftJoin("sector se", "se.id = a.sector_id")
}

func scanAttendance(row pgx.CollectableRow) (models.Attendance, error) {
	var (
		a      models.Attendance
		person personScan
		shift  shiftScan
		sector *string
	)
	dest := []any{&a.ID, &a.Fecha, &a.TurnoID, &a.SectorID, &a.PersonalID, &a.EstadoAsistencia,
		&a.HoraEntrada, &a.Observaciones, &a.SupervisorID, &a.ParteFisicoEntregado, &a.CreatedAt}
	dest = append(dest, person.dest()...)
	dest = append(dest, shift.dest()...)
	dest = append(dest, &sector)
	if err := row.Scan(dest...); err != nil {
		return a, err
	}
	a.Personal = person.ref()
	a.Turno = shift.ref()
	a.Sector = sectorRef(sector)
	return a, nil
}

func (s *AttendanceStore) List(ctx context.Context, f AttendanceFilter) ([]models.Attendance, error) {
	query, args := s.base().
		EqOpt("a.fecha", f.Fecha).
		EqOpt("a.turno_id", f.TurnoID).
		EqOpt("a.sector_id", f.SectorID).
		EqOpt("a.estado_asistencia", f.Estado).
		OrderBy("a.fecha", false).
		OrderBy("a.hora_entrada", false).
		SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list attendance", err)
	}
	list, err := pgx.CollectRows(rows, scanAttendance)
	return list, wrap("list attendance", err)
}

func (s *AttendanceStore) Get(ctx context.Context, id string) (*models.Attendance, error) {
	query, args := s.base().Eq("a.id", id).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("get attendance", err)
	}
	a, err := pgx.CollectExactlyOneRow(rows, scanAttendance)
	if err != nil {
		return nil, wrap("get attendance", err)
	}
	return &a, nil
}

var attendanceCols = []string{"fecha", "turno_id", "sector_id", "personal_id", "estado_asistencia",
	"hora_entrada", "observaciones", "supervisor_id", "parte_fisico_entregado"}

func attendanceValues(a *models.Attendance) []any {
	return []any{a.Fecha, a.TurnoID, a.SectorID, a.PersonalID, a.EstadoAsistencia,
		a.HoraEntrada, a.Observaciones, a.SupervisorID, a.ParteFisicoEntregado}
}

func (s *AttendanceStore) Create(ctx context.Context, a *models.Attendance) (*models.Attendance, error) {
	ensureID(&a.ID)
	args := append([]any{a.ID}, attendanceValues(a)...)
	if _, err := s.db.Exec(ctx, insertSQL("asistencia", append([]string{"id"}, attendanceCols...)), args...); err != nil {
		return nil, wrap("create attendance", err)
	}
	return s.Get(ctx, a.ID)
}

func (s *AttendanceStore) Update(ctx context.Context, id string, a *models.Attendance) (*models.Attendance, error) {
	args := append([]any{id}, attendanceValues(a)...)
	tag, err := s.db.Exec(ctx, updateSQL("asistencia", attendanceCols), args...)
	if err := affected("update attendance", tag, err); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *AttendanceStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM asistencia WHERE id = $1", id)
	return affected("delete attendance", tag, err)
}
