package models

import "time"

// Supervisor assigns a person to supervise a sector during a shift.
type Supervisor struct {
	ID         string     `json:"id"`
	PersonalID string     `json:"personal_id"`
	SectorID   string     `json:"sector_id"`
	TurnoID    string     `json:"turno_id"`
	CreatedAt  time.Time  `json:"created_at"`
	Personal   *PersonRef `json:"personal,omitempty"`
}

func (s Supervisor) Validate() error {
	return required("personal_id", s.PersonalID, "sector_id", s.SectorID, "turno_id", s.TurnoID)
}
