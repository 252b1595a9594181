package store

import (
	"github.com/google/uuid"
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
)

// Column lists for the nested relation projections. Every join uses the
// alias given as prefix, e.g. personCols("pe") expects "personal pe".

func personCols(alias string) []string {
	return []string{alias + ".nombres", alias + ".apellidos", alias + ".dni", alias + ".cargo"}
}

func shiftCols(alias string) []string {
	return []string{alias + ".nombre_turno", alias + ".hora_inicio::text", alias + ".hora_fin::text"}
}

// personScan collects the nullable columns of a LEFT JOINed person.
type personScan struct {
	nombres, apellidos, dni, cargo *string
}

func (p *personScan) dest() []any {
	return []any{&p.nombres, &p.apellidos, &p.dni, &p.cargo}
}

func (p *personScan) ref() *models.PersonRef {
	if p.nombres == nil {
		return nil
	}
	return &models.PersonRef{Nombres: *p.nombres, Apellidos: str(p.apellidos), DNI: str(p.dni), Cargo: str(p.cargo)}
}

type shiftScan struct {
	nombre, inicio, fin *string
}

func (s *shiftScan) dest() []any {
	return []any{&s.nombre, &s.inicio, &s.fin}
}

func (s *shiftScan) ref() *models.ShiftRef {
	if s.nombre == nil {
		return nil
	}
	return &models.ShiftRef{NombreTurno: *s.nombre, HoraInicio: str(s.inicio), HoraFin: str(s.fin)}
}

func sectorRef(name *string) *models.SectorRef {
	if name == nil {
		return nil
	}
	return &models.SectorRef{NombreSector: *name}
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
