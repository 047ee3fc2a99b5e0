package billing

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ehospitality/hospital-api/internal/platform/auth"
	"github.com/ehospitality/hospital-api/pkg/pagination"
)

type PatientResolver interface {
	PatientIDByUser(c echo.Context) (uuid.UUID, error)
}

type Handler struct {
	svc      *Service
	patients PatientResolver
}

func NewHandler(svc *Service, patients PatientResolver) *Handler {
	return &Handler{svc: svc, patients: patients}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/bills", h.ListBills)
	api.GET("/bills/:id", h.GetBill)
	api.POST("/bills/:id/pay", h.Pay, auth.RequireRole("patient"))
	api.POST("/bills", h.CreateBill, auth.RequireRole("admin"))
}

func (h *Handler) CreateBill(c echo.Context) error {
	var b Bill
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) GetBill(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "bill not found")
	}
	if !h.mayView(c, b) {
		return echo.NewHTTPError(http.StatusForbidden, "not your bill")
	}
	return c.JSON(http.StatusOK, b)
}

// ListBills scopes by role: patients see their own bills, admins see all and
// may filter on status.
func (h *Handler) ListBills(c echo.Context) error {
	pg := pagination.FromContext(c)
	switch auth.RoleFromContext(c.Request().Context()) {
	case auth.RoleAdmin:
		items, total, err := h.svc.ListAll(c.Request().Context(), c.QueryParam("status"), pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	case auth.RolePatient:
		patientID, err := h.patients.PatientIDByUser(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusForbidden, "no patient profile for user")
		}
		items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	}
	return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
}

// Pay marks the bill settled. The gateway checkout happens elsewhere; this is
// the success callback surface.
func (h *Handler) Pay(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "bill not found")
	}
	if !h.mayView(c, b) {
		return echo.NewHTTPError(http.StatusForbidden, "not your bill")
	}
	paid, err := h.svc.MarkPaid(c.Request().Context(), id)
	switch {
	case errors.Is(err, ErrAlreadyPaid):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "bill not found")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, paid)
}

func (h *Handler) mayView(c echo.Context, b *Bill) bool {
	switch auth.RoleFromContext(c.Request().Context()) {
	case auth.RoleAdmin:
		return true
	case auth.RolePatient:
		id, err := h.patients.PatientIDByUser(c)
		return err == nil && id == b.PatientID
	}
	return false
}
