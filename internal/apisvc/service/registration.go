package service

import (
	"context"
	"fmt"

	"github.com/sgsc/sgsc-services/internal/apisvc/models"
	"github.com/sgsc/sgsc-services/internal/auth"
	"github.com/sgsc/sgsc-services/internal/comm"
	log "github.com/sirupsen/logrus"
)

type SignUpper interface {
	SignUp(ctx context.Context, req auth.SignUpRequest) (*auth.User, error)
}

type PersonnelCreator interface {
	Create(ctx context.Context, p *models.Personnel) (*models.Personnel, error)
}

// Registered is the outcome of a registration.
type Registered struct {
	UserID    string            `json:"user_id"`
	Email     string            `json:"email"`
	Personnel *models.Personnel `json:"personal"`
}

type RegistrationService struct {
	auth      SignUpper
	personnel PersonnelCreator
	notify    *Notifier
}

func NewRegistrationService(auth SignUpper, personnel PersonnelCreator, notify *Notifier) *RegistrationService {
	return &RegistrationService{auth: auth, personnel: personnel, notify: notify}
}

// Register creates the auth user and then its active personal row. A failed
// insert leaves the auth user in place.
func (s *RegistrationService) Register(ctx context.Context, reg models.Registration) (*Registered, error) {
	reg.ApplyDefaults()
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	user, err := s.auth.SignUp(ctx, auth.SignUpRequest{
		Email:    reg.Email,
		Password: reg.Password,
		Metadata: map[string]any{
			"role":      reg.Role,
			"dni":       reg.DNI,
			"nombres":   reg.Nombres,
			"apellidos": reg.Apellidos,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sign up %s: %w", reg.Email, err)
	}

	p, err := s.personnel.Create(ctx, reg.Personnel())
	if err != nil {
		log.WithError(err).Errorf("auth user %s created without personal row", user.ID)
		return nil, err
	}
	s.notify.RecordChanged(ctx, "personal", comm.OpCreate, p.ID)

	log.Infof("registered user %s (%s %s)", user.ID, reg.Nombres, reg.Apellidos)
	return &Registered{UserID: user.ID, Email: reg.Email, Personnel: p}, nil
}
