package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
)

type MobilityFilter struct {
	Fecha         string
	VehiculoPlaca string
	SectorID      string
}

type MobilityStore struct {
	db DBTX
}

func NewMobilityStore(db DBTX) *MobilityStore {
	return &MobilityStore{db: db}
}

func (s *MobilityStore) base() *Select {
	return From("movilidad m").
		Columns("m.id::text", "m.fecha::text", "m.turno_id::text", "m.sector_id::text", "m.personal_id::text",
			"m.vehiculo_placa", "m.kilometraje_inicial::float8", "m.kilometraje_final::float8",
			"m.combustible_inicial::float8", "m.combustible_final::float8", "m.destino", "m.motivo_traslado",
			"m.hora_salida::text", "m.hora_retorno::text", "m.observaciones", "m.estado_vehiculo_salida",
			"m.estado_vehiculo_retorno", "m.supervisor_id::text", "m.created_at").
		Columns(personCols("pe")...).
		Columns(shiftCols("tu")...).
		Columns("se.nombre_sector").
		Columns(personCols("sv")...).
		LeftJoin("personal pe", "pe.id = m.personal_id").
		LeftJoin("turno tu", "tu.id = m.turno_id").
		LeftJoin("sector se", "se.id = m.sector_id").
		LeftJoin("personal sv", "sv.id = m.supervisor_id")
}

func scanMobility(row pgx.CollectableRow) (models.MobilityLog, error) {
	var (
		m                  models.MobilityLog
		person, supervisor personScan
		shift              shiftScan
		sector             *string
	)
	dest := []any{&m.ID, &m.Fecha, &m.TurnoID, &m.SectorID, &m.PersonalID, &m.VehiculoPlaca,
		&m.KilometrajeInicial, &m.KilometrajeFinal, &m.CombustibleInicial, &m.CombustibleFinal,
		&m.Destino, &m.MotivoTraslado, &m.HoraSalida, &m.HoraRetorno, &m.Observaciones,
		&m.EstadoVehiculoSalida, &m.EstadoVehiculoRetorno, &m.SupervisorID, &m.CreatedAt}
	dest = append(dest, person.dest()...)
	dest = append(dest, shift.dest()...)
	dest = append(dest, &sector)
	dest = append(dest, supervisor.dest()...)
	if err := row.Scan(dest...); err != nil {
		return m, err
	}
	m.Personal = person.ref()
	m.Turno = shift.ref()
	m.Sector = sectorRef(sector)
	m.Supervisor = supervisor.ref()
	return m, nil
}

func (s *MobilityStore) List(ctx context.Context, f MobilityFilter) ([]models.MobilityLog, error) {
	query, args := s.base().
		EqOpt("m.fecha", f.Fecha).
		EqOpt("m.vehiculo_placa", f.VehiculoPlaca).
		EqOpt("m.sector_id", f.SectorID).
		OrderBy("m.fecha", false).
		OrderBy("m.hora_salida", false).
		SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list mobility logs", err)
	}
	logs, err := pgx.CollectRows(rows, scanMobility)
	return logs, wrap("list mobility logs", err)
}

func (s *MobilityStore) Get(ctx context.Context, id string) (*models.MobilityLog, error) {
	query, args := s.base().Eq("m.id", id).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("get mobility log", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, scanMobility)
	if err != nil {
		return nil, wrap("get mobility log", err)
	}
	return &m, nil
}

var mobilityCols = []string{"fecha", "turno_id", "sector_id", "personal_id", "vehiculo_placa",
	"kilometraje_inicial", "kilometraje_final", "combustible_inicial", "combustible_final", "destino",
	"motivo_traslado", "hora_salida", "hora_retorno", "observaciones", "estado_vehiculo_salida",
	"estado_vehiculo_retorno", "supervisor_id"}

func mobilityValues(m *models.MobilityLog) []any {
	return []any{m.Fecha, m.TurnoID, m.SectorID, m.PersonalID, m.VehiculoPlaca,
		m.KilometrajeInicial, m.KilometrajeFinal, m.CombustibleInicial, m.CombustibleFinal, m.Destino,
		m.MotivoTraslado, m.HoraSalida, m.HoraRetorno, m.Observaciones, m.EstadoVehiculoSalida,
		m.EstadoVehiculoRetorno, m.SupervisorID}
}

func (s *MobilityStore) Create(ctx context.Context, m *models.MobilityLog) (*models.MobilityLog, error) {
	ensureID(&m.ID)
	args := append([]any{m.ID}, mobilityValues(m)...)
	if _, err := s.db.Exec(ctx, insertSQL("movilidad", append([]string{"id"}, mobilityCols...)), args...); err != nil {
		return nil, wrap("create mobility log", err)
	}
	return s.Get(ctx, m.ID)
}

func (s *MobilityStore) Update(ctx context.Context, id string, m *models.MobilityLog) (*models.MobilityLog, error) {
	args := append([]any{id}, mobilityValues(m)...)
	tag, err := s.db.Exec(ctx, updateSQL("movilidad", mobilityCols), args...)
	if err := affected("update mobility log", tag, err); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *MobilityStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM movilidad WHERE id = $1", id)
	return affected("delete mobility log", tag, err)
}
