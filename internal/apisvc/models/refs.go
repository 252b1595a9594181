package models

// Nested relation projections returned alongside operational records.

type PersonRef struct {
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	DNI       string `json:"dni,omitempty"`
	Cargo     string `json:"cargo,omitempty"`
}

type ShiftRef struct {
	NombreTurno string `json:"nombre_turno"`
	HoraInicio  string `json:"hora_inicio"`
	HoraFin     string `json:"hora_fin"`
}

type SectorRef struct {
	NombreSector string `json:"nombre_sector"`
}

type AnnexRef struct {
	NombreAnexo string `json:"nombre_anexo"`
}

type BoothRef struct {
	NombreCabina  string `json:"nombre_cabina"`
	Ubicacion     string `json:"ubicacion"`
	NumeroCamaras int    `json:"numero_camaras"`
}

// FullName joins nombres and apellidos, tolerating a nil receiver.
func (p *PersonRef) FullName() string {
	if p == nil {
		return ""
	}
	switch {
	case p.Nombres == "":
		return p.Apellidos
	case p.Apellidos == "":
		return p.Nombres
	}
	return p.Nombres + " " + p.Apellidos
}
