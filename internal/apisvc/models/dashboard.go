package models

type Dashboard struct {
	Fecha                string     `json:"fecha"`
	PersonalActivo       int        `json:"personal_activo"`
	PatrullajesHoy       int        `json:"patrullajes_hoy"`
	IncidenciasHoy       int        `json:"incidencias_hoy"`
	MovilidadesEnCurso   int        `json:"movilidades_en_curso"`
	CabinasOperativas    int        `json:"cabinas_operativas"`
	IncidenciasRecientes []Incident `json:"incidencias_recientes"`
}
