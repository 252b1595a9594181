package models

import "time"

const (
	PersonnelActive   = "activo"
	PersonnelInactive = "inactivo"
)

// SupervisorRoles are the cargo values that qualify a person as supervisor.
var SupervisorRoles = []string{"Supervisor", "Jefe de turno", "Coordinador"}

// Personnel is a row of the personal table.
type Personnel struct {
	ID        string     `json:"id"`
	DNI       string     `json:"dni"`
	Nombres   string     `json:"nombres"`
	Apellidos string     `json:"apellidos"`
	Cargo     string     `json:"cargo"`
	Estado    string     `json:"estado"`
	SectorID  *string    `json:"sector_id"`
	TurnoID   *string    `json:"turno_id"`
	CreatedAt time.Time  `json:"created_at"`
	Sector    *SectorRef `json:"sector,omitempty"`
	Turno     *ShiftRef  `json:"turno,omitempty"`
}

func (p Personnel) Validate() error {
	return required("dni", p.DNI, "nombres", p.Nombres, "apellidos", p.Apellidos, "cargo", p.Cargo)
}

func (p *Personnel) ApplyDefaults(time.Time) {
	if p.Estado == "" {
		p.Estado = PersonnelActive
	}
}
