package models

import "time"

// Annex is a row of the anexo table, a neighbourhood inside a sector.
type Annex struct {
	ID          string     `json:"id"`
	NombreAnexo string     `json:"nombre_anexo"`
	SectorID    string     `json:"sector_id"`
	CreatedAt   time.Time  `json:"created_at"`
	Sector      *SectorRef `json:"sector,omitempty"`
}

func (a Annex) Validate() error {
	return required("nombre_anexo", a.NombreAnexo, "sector_id", a.SectorID)
}
