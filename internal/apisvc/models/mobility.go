package models

import "time"

// MobilityLog is a row of the movilidad table: one vehicle trip.
type MobilityLog struct {
	ID                    string     `json:"id"`
	Fecha                 string     `json:"fecha"`
	TurnoID               string     `json:"turno_id"`
	SectorID              string     `json:"sector_id"`
	PersonalID            string     `json:"personal_id"`
	VehiculoPlaca         string     `json:"vehiculo_placa"`
	KilometrajeInicial    float64    `json:"kilometraje_inicial"`
	KilometrajeFinal      *float64   `json:"kilometraje_final"`
	CombustibleInicial    float64    `json:"combustible_inicial"`
	CombustibleFinal      *float64   `json:"combustible_final"`
	Destino               string     `json:"destino"`
	MotivoTraslado        string     `json:"motivo_traslado"`
	HoraSalida            string     `json:"hora_salida"`
	HoraRetorno           *string    `json:"hora_retorno"`
	Observaciones         *string    `json:"observaciones"`
	EstadoVehiculoSalida  string     `json:"estado_vehiculo_salida"`
	EstadoVehiculoRetorno *string    `json:"estado_vehiculo_retorno"`
	SupervisorID          *string    `json:"supervisor_id"`
	CreatedAt             time.Time  `json:"created_at"`
	Personal              *PersonRef `json:"personal,omitempty"`
	Turno                 *ShiftRef  `json:"turno,omitempty"`
	Sector                *SectorRef `json:"sector,omitempty"`
	Supervisor            *PersonRef `json:"supervisor,omitempty"`
}

func (m MobilityLog) Validate() error {
	return required("fecha", m.Fecha, "turno_id", m.TurnoID, "sector_id", m.SectorID,
		"personal_id", m.PersonalID, "vehiculo_placa", m.VehiculoPlaca, "destino", m.Destino,
		"motivo_traslado", m.MotivoTraslado, "hora_salida", m.HoraSalida)
}

func (m *MobilityLog) ApplyDefaults(now time.Time) {
	if m.Fecha == "" {
		m.Fecha = now.Format(time.DateOnly)
	}
	if m.EstadoVehiculoSalida == "" {
		m.EstadoVehiculoSalida = "bueno"
	}
}
