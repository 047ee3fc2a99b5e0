package identity

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ehospitality/hospital-api/internal/platform/auth"
)

// Resolver adapts the identity service to the small lookup interfaces the
// other domain handlers declare, mapping the authenticated user to their
// profile id.
type Resolver struct {
	svc *Service
}

func NewResolver(svc *Service) *Resolver { return &Resolver{svc: svc} }

func (r *Resolver) DoctorIDByUser(c echo.Context) (uuid.UUID, error) {
	d, err := r.svc.DoctorByUserID(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, err
	}
	return d.ID, nil
}

func (r *Resolver) PatientIDByUser(c echo.Context) (uuid.UUID, error) {
	p, err := r.svc.PatientByUserID(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, err
	}
	return p.ID, nil
}
