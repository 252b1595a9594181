package models

import "time"

const (
	IncidentPending  = "pendiente"
	IncidentResolved = "resuelto"
	IncidentReferred = "derivado_pnp" // handed over to the national police
)

// Incident is a row of the incidencia table.
type Incident struct {
	ID                   string     `json:"id"`
	Fecha                string     `json:"fecha"`
	Hora                 string     `json:"hora"`
	Descripcion          string     `json:"descripcion"`
	TipoIncidencia       string     `json:"tipo_incidencia"`
	SectorID             string     `json:"sector_id"`
	AnexoID              *string    `json:"anexo_id"`
	PersonalReporta      string     `json:"personal_reporta"`
	PatrullajeID         *string    `json:"patrullaje_id"`
	Estado               string     `json:"estado"`
	ReportadoPor         *string    `json:"reportado_por"`
	ImagenURL            *string    `json:"imagen_url"`
	ParteFisicoEntregado bool       `json:"parte_fisico_entregado"`
	CreatedAt            time.Time  `json:"created_at"`
	Sector               *SectorRef `json:"sector,omitempty"`
	Anexo                *AnnexRef  `json:"anexo,omitempty"`
}

func (i Incident) Validate() error {
	return required("fecha", i.Fecha, "hora", i.Hora, "descripcion", i.Descripcion,
		"tipo_incidencia", i.TipoIncidencia, "sector_id", i.SectorID, "personal_reporta", i.PersonalReporta)
}

func (i *Incident) ApplyDefaults(now time.Time) {
	if i.Fecha == "" {
		i.Fecha = now.Format(time.DateOnly)
	}
	if i.Estado == "" {
		i.Estado = IncidentPending
	}
}
