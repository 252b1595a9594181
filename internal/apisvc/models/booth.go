package models

import "time"

// Booth is a camera booth (cabina).
type Booth struct {
	ID            string    `json:"id"`
	NombreCabina  string    `json:"nombre_cabina"`
	Ubicacion     string    `json:"ubicacion"`
	NumeroCamaras int       `json:"numero_camaras"`
	AnexoID       *string   `json:"anexo_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (b Booth) Validate() error {
	return required("nombre_cabina", b.NombreCabina, "ubicacion", b.Ubicacion)
}
