package models

import "strings"

// Registration is the admin form that creates a login and its personal row.
type Registration struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	DNI             string `json:"dni"`
	Nombres         string `json:"nombres"`
	Apellidos       string `json:"apellidos"`
	Cargo           string `json:"cargo"`
	Role            string `json:"role"`
	SectorID        string `json:"sector_id"`
	TurnoID         string `json:"turno_id"`
}

const (
	MinPasswordLength = 6
	DNILength         = 8
	DefaultRole       = "sereno"
)

func (r Registration) Validate() error {
	if err := required("email", r.Email, "password", r.Password, "dni", r.DNI,
		"nombres", r.Nombres, "apellidos", r.Apellidos); err != nil {
		return err
	}
	if r.Password != r.ConfirmPassword {
		return &ValidationError{Field: "confirmPassword", Reason: "does not match password"}
	}
	if len(r.Password) < MinPasswordLength {
		return &ValidationError{Field: "password", Reason: "must have at least 6 characters"}
	}
	if len(strings.TrimSpace(r.DNI)) != DNILength {
		return &ValidationError{Field: "dni", Reason: "must have 8 digits"}
	}
	return nil
}

func (r *Registration) ApplyDefaults() {
	if r.Cargo == "" {
		r.Cargo = DefaultRole
	}
	if r.Role == "" {
		r.Role = DefaultRole
	}
}

// Personnel is the personal row created for the registered user.
func (r Registration) Personnel() *Personnel {
	return &Personnel{
		DNI:       strings.TrimSpace(r.DNI),
		Nombres:   r.Nombres,
		Apellidos: r.Apellidos,
		Cargo:     r.Cargo,
		Estado:    PersonnelActive,
		SectorID:  optional(r.SectorID),
		TurnoID:   optional(r.TurnoID),
	}
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
