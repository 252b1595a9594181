package models

import "time"

// Shift is a row of the turno table.
type Shift struct {
	ID          string    `json:"id"`
	NombreTurno string    `json:"nombre_turno"`
	HoraInicio  string    `json:"hora_inicio"` // HH:MM[:SS]
	HoraFin     string    `json:"hora_fin"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s Shift) Validate() error {
	return required("nombre_turno", s.NombreTurno, "hora_inicio", s.HoraInicio, "hora_fin", s.HoraFin)
}
