package models

import "time"

const (
	AttendancePresent      = "asistio_firmo"
	AttendanceAbsent       = "falta"
	AttendanceRestDay      = "descanso_semanal"
	AttendanceHoliday      = "feriado"
	AttendanceMedicalLeave = "permiso_medico"
)

// Attendance is a row of the asistencia table.
type Attendance struct {
	ID                   string     `json:"id"`
	Fecha                string     `json:"fecha"`
	TurnoID              string     `json:"turno_id"`
	SectorID             string     `json:"sector_id"`
	PersonalID           string     `json:"personal_id"`
	EstadoAsistencia     string     `json:"estado_asistencia"`
	HoraEntrada          *string    `json:"hora_entrada"`
	Observaciones        *string    `json:"observaciones"`
	SupervisorID         *string    `json:"supervisor_id"`
	ParteFisicoEntregado bool       `json:"parte_fisico_entregado"`
	CreatedAt            time.Time  `json:"created_at"`
	Personal             *PersonRef `json:"personal,omitempty"`
	Turno                *ShiftRef  `json:"turno,omitempty"`
	Sector               *SectorRef `json:"sector,omitempty"`
}

func (a Attendance) Validate() error {
	return required("fecha", a.Fecha, "turno_id", a.TurnoID, "sector_id", a.SectorID, "personal_id", a.PersonalID)
}

func (a *Attendance) ApplyDefaults(now time.Time) {
	if a.Fecha == "" {
		a.Fecha = now.Format(time.DateOnly)
	}
	if a.EstadoAsistencia == "" {
		a.EstadoAsistencia = AttendancePresent
	}
}
