package models

import "time"

type Sector struct {
	ID           string    `json:"id"`
	NombreSector string    `json:"nombre_sector"`
	Descripcion  string    `json:"descripcion"`
	CreatedAt    time.Time `json:"created_at"`
}

func (s Sector) Validate() error {
	return required("nombre_sector", s.NombreSector)
}
