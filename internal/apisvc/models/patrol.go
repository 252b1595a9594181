package models

import "time"

const (
	PatrolInProgress  = "en_curso"
	PatrolCompleted   = "completado"
	PatrolInterrupted = "interrumpido"
	PatrolCancelled   = "cancelado"
)

// Patrol is a row of the patrullaje table.
type Patrol struct {
	ID                     string     `json:"id"`
	Fecha                  string     `json:"fecha"` // YYYY-MM-DD
	TurnoID                string     `json:"turno_id"`
	SectorID               string     `json:"sector_id"`
	PersonalID             string     `json:"personal_id"`
	HoraInicio             string     `json:"hora_inicio"`
	HoraFin                *string    `json:"hora_fin"`
	RutaPatrullaje         string     `json:"ruta_patrullaje"`
	Observaciones          *string    `json:"observaciones"`
	IncidenciasEncontradas *string    `json:"incidencias_encontradas"`
	EstadoPatrullaje       string     `json:"estado_patrullaje"`
	SupervisorID           *string    `json:"supervisor_id"`
	CreatedAt              time.Time  `json:"created_at"`
	Personal               *PersonRef `json:"personal,omitempty"`
	Turno                  *ShiftRef  `json:"turno,omitempty"`
	Sector                 *SectorRef `json:"sector,omitempty"`
	Supervisor             *PersonRef `json:"supervisor,omitempty"`
}

func (p Patrol) Validate() error {
	return required("fecha", p.Fecha, "turno_id", p.TurnoID, "sector_id", p.SectorID,
		"personal_id", p.PersonalID, "hora_inicio", p.HoraInicio, "ruta_patrullaje", p.RutaPatrullaje)
}

func (p *Patrol) ApplyDefaults(now time.Time) {
	if p.Fecha == "" {
		p.Fecha = now.Format(time.DateOnly)
	}
	if p.EstadoPatrullaje == "" {
		p.EstadoPatrullaje = PatrolInProgress
	}
}
