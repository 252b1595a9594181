package store

import (
	"context"

	"github.com/sgsc/sgsc-services/internal/apisvc/models"
)

// DashboardStore answers the summary counters of the landing screen.
type DashboardStore struct {
	db        DBTX
	incidents *IncidentStore
}

func NewDashboardStore(db DBTX) *DashboardStore {
	return &DashboardStore{db: db, incidents: NewIncidentStore(db)}
}

const dashboardCountsSQL = `SELECT
	(SELECT count(*) FROM personal WHERE estado = 'activo'),
	(SELECT count(*) FROM patrullaje WHERE fecha = $1),
	(SELECT count(*) FROM incidencia WHERE fecha = $1),
	(SELECT count(*) FROM movilidad WHERE hora_retorno IS NULL),
	(SELECT count(*) FROM bitacora_cabina WHERE fecha = $1 AND estado_camara = 'operativo')`

// Summary counts the day's activity for the given date (YYYY-MM-DD) and
// attaches the latest incidents.
func (s *DashboardStore) Summary(ctx context.Context, date string, recent int) (*models.Dashboard, error) {
	d := &models.Dashboard{Fecha: date}
	err := s.db.QueryRow(ctx, dashboardCountsSQL, date).Scan(
		&d.PersonalActivo, &d.PatrullajesHoy, &d.IncidenciasHoy, &d.MovilidadesEnCurso, &d.CabinasOperativas)
	if err != nil {
		return nil, wrap("dashboard counts", err)
	}
	d.IncidenciasRecientes, err = s.incidents.List(ctx, IncidentFilter{Limit: recent})
	if err != nil {
		return nil, err
	}
	return d, nil
}
