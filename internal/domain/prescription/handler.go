package prescription

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ehospitality/hospital-api/internal/platform/auth"
	"github.com/ehospitality/hospital-api/pkg/pagination"
)

type DoctorResolver interface {
	DoctorIDByUser(c echo.Context) (uuid.UUID, error)
}

type PatientResolver interface {
	PatientIDByUser(c echo.Context) (uuid.UUID, error)
}

type Handler struct {
	svc      *Service
	doctors  DoctorResolver
	patients PatientResolver
}

func NewHandler(svc *Service, doctors DoctorResolver, patients PatientResolver) *Handler {
	return &Handler{svc: svc, doctors: doctors, patients: patients}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/prescriptions", h.Issue, auth.RequireRole("doctor"))
	api.GET("/prescriptions", h.List)
	api.GET("/prescriptions/:id", h.Get)
}

type issueRequest struct {
	PatientID uuid.UUID `json:"patient_id"`
	Notes     string    `json:"notes"`
	Items     []*Item   `json:"items"`
}

func (h *Handler) Issue(c echo.Context) error {
	doctorID, err := h.doctors.DoctorIDByUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "no doctor profile for user")
	}
	var req issueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p := &Prescription{
		DoctorID:  doctorID,
		PatientID: req.PatientID,
		Notes:     req.Notes,
		Items:     req.Items,
	}
	if err := h.svc.Issue(c.Request().Context(), p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
	}
	if !h.mayView(c, p) {
		return echo.NewHTTPError(http.StatusForbidden, "not your prescription")
	}
	return c.JSON(http.StatusOK, p)
}

// List scopes by role: doctors see prescriptions they wrote, patients see
// their own, admins may inspect any patient via patient_id.
func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	ctx := c.Request().Context()

	switch auth.RoleFromContext(ctx) {
	case auth.RoleDoctor:
		doctorID, err := h.doctors.DoctorIDByUser(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusForbidden, "no doctor profile for user")
		}
		items, total, err := h.svc.ListByDoctor(ctx, doctorID, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	case auth.RolePatient:
		patientID, err := h.patients.PatientIDByUser(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusForbidden, "no patient profile for user")
		}
		items, total, err := h.svc.ListByPatient(ctx, patientID, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	case auth.RoleAdmin:
		patientID, err := uuid.Parse(c.QueryParam("patient_id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "patient_id is required")
		}
		items, total, err := h.svc.ListByPatient(ctx, patientID, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	}
	return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
}

func (h *Handler) mayView(c echo.Context, p *Prescription) bool {
	switch auth.RoleFromContext(c.Request().Context()) {
	case auth.RoleAdmin:
		return true
	case auth.RoleDoctor:
		id, err := h.doctors.DoctorIDByUser(c)
		return err == nil && id == p.DoctorID
	case auth.RolePatient:
		id, err := h.patients.PatientIDByUser(c)
		return err == nil && id == p.PatientID
	}
	return false
}
