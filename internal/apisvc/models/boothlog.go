package models

import "time"

// BoothLog is a row of the bitacora_cabina table: one camera-booth check.
type BoothLog struct {
	ID                    string     `json:"id"`
	Fecha                 string     `json:"fecha"`
	TurnoID               string     `json:"turno_id"`
	CabinaID              string     `json:"cabina_id"`
	PersonalID            string     `json:"personal_id"`
	HoraRevision          string     `json:"hora_revision"`
	EstadoCamara          string     `json:"estado_camara"`
	EstadoMonitor         string     `json:"estado_monitor"`
	EstadoGrabacion       string     `json:"estado_grabacion"`
	Observaciones         *string    `json:"observaciones"`
	IncidenciasDetectadas *string    `json:"incidencias_detectadas"`
	AccionesTomadas       *string    `json:"acciones_tomadas"`
	SupervisorID          *string    `json:"supervisor_id"`
	CreatedAt             time.Time  `json:"created_at"`
	Personal              *PersonRef `json:"personal,omitempty"`
	Turno                 *ShiftRef  `json:"turno,omitempty"`
	Cabina                *BoothRef  `json:"cabina,omitempty"`
	Supervisor            *PersonRef `json:"supervisor,omitempty"`
}

func (b BoothLog) Validate() error {
	return required("fecha", b.Fecha, "turno_id", b.TurnoID, "cabina_id", b.CabinaID,
		"personal_id", b.PersonalID, "hora_revision", b.HoraRevision)
}

func (b *BoothLog) ApplyDefaults(now time.Time) {
	if b.Fecha == "" {
		b.Fecha = now.Format(time.DateOnly)
	}
	if b.EstadoCamara == "" {
		b.EstadoCamara = "operativo"
	}
	if b.EstadoMonitor == "" {
		b.EstadoMonitor = "operativo"
	}
	if b.EstadoGrabacion == "" {
		b.EstadoGrabacion = "grabando"
	}
}
