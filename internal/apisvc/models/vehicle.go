package models

import "time"

type Vehicle struct {
	ID        string    `json:"id"`
	Placa     string    `json:"placa"`
	Tipo      string    `json:"tipo"`
	Estado    string    `json:"estado"` // operativo, mantenimiento, fuera_servicio
	CreatedAt time.Time `json:"created_at"`
}

func (v Vehicle) Validate() error {
	return required("placa", v.Placa)
}

func (v *Vehicle) ApplyDefaults(time.Time) {
	if v.Estado == "" {
		v.Estado = "operativo"
	}
}
