package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
)

type IncidentFilter struct {
	Fecha    string
	SectorID string
	Estado   string
	Tipo     string
	Limit    int
}

type IncidentStore struct {
	db DBTX
}

func NewIncidentStore(db DBTX) *IncidentStore {
	return &IncidentStore{db: db}
}

func (s *IncidentStore) base() *Select {
	return From("incidencia i").
		Columns("i.id::text", "i.fecha::text", "i.hora::text", "i.descripcion", "i.tipo_incidencia",
			"i.sector_id::text", "i.anexo_id::text", "i.personal_reporta", "i.patrullaje_id::text", "i.estado",
			"i.reportado_por", "i.imagen_url", "COALESCE(i.parte_fisico_entregado, false)", "i.created_at",
			"se.nombre_sector", "an.nombre_anexo").
		LeftJoin("sector se", "se.id = i.sector_id").
		LeftJoin("anexo an", "an.id = i.anexo_id")
}

func scanIncident(row pgx.CollectableRow) (models.Incident, error) {
	var (
		i             models.Incident
		sector, annex *string
	)
	err := row.Scan(&i.ID, &i.Fecha, &i.Hora, &i.Descripcion, &i.TipoIncidencia, &i.SectorID, &i.AnexoID,
		&i.PersonalReporta, &i.PatrullajeID, &i.Estado, &i.ReportadoPor, &i.ImagenURL,
		&i.ParteFisicoEntregado, &i.CreatedAt, &sector, &annex)
	if err != nil {
		return i, err
	}
	i.Sector = sectorRef(sector)
	if annex != nil {
		i.Anexo = &models.AnnexRef{NombreAnexo: *annex}
	}
	return i, nil
}

func (s *IncidentStore) List(ctx context.Context, f IncidentFilter) ([]models.Incident, error) {
	query, args := s.base().
		EqOpt("i.fecha", f.Fecha).
		EqOpt("i.sector_id", f.SectorID).
		EqOpt("i.estado", f.Estado).
		EqOpt("i.tipo_incidencia", f.Tipo).
		OrderBy("i.fecha", false).
		OrderBy("i.hora", false).
		Limit(f.Limit).
		SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list incidents", err)
	}
	incidents, err := pgx.CollectRows(rows, scanIncident)
	return incidents, wrap("list incidents", err)
}

func (s *IncidentStore) Get(ctx context.Context, id string) (*models.Incident, error) {
	query, args := s.base().Eq("i.id", id).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("get incident", err)
	}
	i, err := pgx.CollectExactlyOneRow(rows, scanIncident)
	if err != nil {
		return nil, wrap("get incident", err)
	}
	return &i, nil
}

var incidentCols = []string{"fecha", "hora", "descripcion", "tipo_incidencia", "sector_id", "anexo_id",
	"personal_reporta", "patrullaje_id", "estado", "reportado_por", "imagen_url", "parte_fisico_entregado"}

func incidentValues(i *models.Incident) []any {
	return []any{i.Fecha, i.Hora, i.Descripcion, i.TipoIncidencia, i.SectorID, i.AnexoID,
		i.PersonalReporta, i.PatrullajeID, i.Estado, i.ReportadoPor, i.ImagenURL, i.ParteFisicoEntregado}
}

func (s *IncidentStore) Create(ctx context.Context, i *models.Incident) (*models.Incident, error) {
	ensureID(&i.ID)
	args := append([]any{i.ID}, incidentValues(i)...)
	if _, err := s.db.Exec(ctx, insertSQL("incidencia", append([]string{"id"}, incidentCols...)), args...); err != nil {
		return nil, wrap("create incident", err)
	}
	return s.Get(ctx, i.ID)
}

func (s *IncidentStore) Update(ctx context.Context, id string, i *models.Incident) (*models.Incident, error) {
	args := append([]any{id}, incidentValues(i)...)
	tag, err := s.db.Exec(ctx, updateSQL("incidencia", incidentCols), args...)
	if err := affected("update incident", tag, err); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// SetImage records the evidence URL of an incident.
func (s *IncidentStore) SetImage(ctx context.Context, id, url string) error {
	tag, err := s.db.Exec(ctx, "UPDATE incidencia SET imagen_url = $2 WHERE id = $1", id, url)
	return affected("set incident image", tag, err)
}

func (s *IncidentStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM incidencia WHERE id = $1", id)
	return affected("delete incident", tag, err)
}
