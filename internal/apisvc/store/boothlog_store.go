package store

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
)

type BoothLogFilter struct {
	Fecha    string
	TurnoID  string
	CabinaID string
	// Estado matches any of the camera, monitor or recording states.
	Estado string
}

type BoothLogStore struct {
	db DBTX
}

func NewBoothLogStore(db DBTX) *BoothLogStore {
	return &BoothLogStore{db: db}
}

func (s *BoothLogStore) base() *Select {
	return From("bitacora_cabina b").
		Columns("b.id::text", "b.fecha::text", "b.turno_id::text", "b.cabina_id::text", "b.personal_id::text",
			"b.hora_revision::text", "b.estado_camara", "b.estado_monitor", "b.estado_grabacion",
			"b.observaciones", "b.incidencias_detectadas", "b.acciones_tomadas", "b.supervisor_id::text",
			"b.created_at").
		Columns(personCols("pe")...).
		Columns(shiftCols("tu")...).
		Columns("ca.nombre_cabina", "ca.ubicacion", "ca.numero_camaras").
		Columns(personCols("sv")...).
		LeftJoin("personal pe", "pe.id = b.personal_id").
		LeftJoin("turno tu", "tu.id = b.turno_id").
		LeftJoin("cabina ca", "ca.id = b.cabina_id").
		LeftJoin("personal sv", "sv.id = b.supervisor_id")
}

func scanBoothLog(row pgx.CollectableRow) (models.BoothLog, error) {
	var (
		b                  models.BoothLog
		person, supervisor personScan
		shift              shiftScan
		boothName, place   *string
		cameras            *int
	)
	dest := []any{&b.ID, &b.Fecha, &b.TurnoID, &b.CabinaID, &b.PersonalID, &b.HoraRevision,
		&b.EstadoCamara, &b.EstadoMonitor, &b.EstadoGrabacion, &b.Observaciones,
		&b.IncidenciasDetectadas, &b.AccionesTomadas, &b.SupervisorID, &b.CreatedAt}
	dest = append(dest, person.dest()...)
	dest = append(dest, shift.dest()...)
	dest = append(dest, &boothName, &place, &cameras)
	dest = append(dest, supervisor.dest()...)
	if err := row.Scan(dest...); err != nil {
		return b, err
	}
	b.Personal = person.ref()
	b.Turno = shift.ref()
	b.Supervisor = supervisor.ref()
	if boothName != nil {
		b.Cabina = &models.BoothRef{NombreCabina: *boothName, Ubicacion: str(place)}
		if cameras != nil {
			b.Cabina.NumeroCamaras = *cameras
		}
	}
	return b, nil
}

func (s *BoothLogStore) listQuery(f BoothLogFilter) (string, []any) {
	q := s.base().
		EqOpt("b.fecha", f.Fecha).
		EqOpt("b.turno_id", f.TurnoID).
		EqOpt("b.cabina_id", f.CabinaID)
	if estado := strings.TrimSpace(f.Estado); estado != "" {
		q.AnyEq([]string{"b.estado_camara", "b.estado_monitor", "b.estado_grabacion"}, estado)
	}
	return q.OrderBy("b.fecha", false).OrderBy("b.hora_revision", false).SQL()
}

func (s *BoothLogStore) List(ctx context.Context, f BoothLogFilter) ([]models.BoothLog, error) {
	query, args := s.listQuery(f)
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list booth logs", err)
	}
	logs, err := pgx.CollectRows(rows, scanBoothLog)
	return logs, wrap("list booth logs", err)
}

func (s *BoothLogStore) Get(ctx context.Context, id string) (*models.BoothLog, error) {
	query, args := s.base().Eq("b.id", id).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("get booth log", err)
	}
	b, err := pgx.CollectExactlyOneRow(rows, scanBoothLog)
	if err != nil {
		return nil, wrap("get booth log", err)
	}
	return &b, nil
}

var boothLogCols = []string{"fecha", "turno_id", "cabina_id", "personal_id", "hora_revision", "estado_camara",
	"estado_monitor", "estado_grabacion", "observaciones", "incidencias_detectadas", "acciones_tomadas",
	"supervisor_id"}

func boothLogValues(b *models.BoothLog) []any {
	return []any{b.Fecha, b.TurnoID, b.CabinaID, b.PersonalID, b.HoraRevision, b.EstadoCamara,
		b.EstadoMonitor, b.EstadoGrabacion, b.Observaciones, b.IncidenciasDetectadas, b.AccionesTomadas,
		b.SupervisorID}
}

func (s *BoothLogStore) Create(ctx context.Context, b *models.BoothLog) (*models.BoothLog, error) {
	ensureID(&b.ID)
	args := append([]any{b.ID}, boothLogValues(b)...)
	if _, err := s.db.Exec(ctx, insertSQL("bitacora_cabina", append([]string{"id"}, boothLogCols...)), args...); err != nil {
		return nil, wrap("create booth log", err)
	}
	return s.Get(ctx, b.ID)
}

func (s *BoothLogStore) Update(ctx context.Context, id string, b *models.BoothLog) (*models.BoothLog, error) {
	args := append([]any{id}, boothLogValues(b)...)
	tag, err := s.db.Exec(ctx, updateSQL("bitacora_cabina", boothLogCols), args...)
	if err := affected("update booth log", tag, err); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *BoothLogStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM bitacora_cabina WHERE id = $1", id)
	return affected("delete booth log", tag, err)
}
