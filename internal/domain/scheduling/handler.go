package scheduling

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ehospitality/hospital-api/internal/platform/auth"
	"github.com/ehospitality/hospital-api/pkg/pagination"
)

// DoctorResolver and PatientResolver map the authenticated user to their
// profile ids. Implemented by the identity service; wired in main.
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
	api.GET("/doctors/:id/slots", h.ListSlots)
	api.GET("/appointments", h.ListAppointments)
	api.GET("/appointments/:id", h.GetAppointment)

	api.POST("/appointments", h.Book, auth.RequireRole("patient"))

	doctorGroup := api.Group("/appointments", auth.RequireRole("doctor"))
	doctorGroup.POST("/:id/confirm", h.Confirm)
	doctorGroup.POST("/:id/cancel", h.Cancel)
	doctorGroup.POST("/:id/complete", h.Complete)

	adminGroup := api.Group("/appointments", auth.RequireRole("admin"))
	adminGroup.PUT("/:id", h.AdminUpdate)
	adminGroup.DELETE("/:id", h.AdminDelete)
}

// ListSlots returns the open slots for a doctor on a given date.
func (h *Handler) ListSlots(c echo.Context) error {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	date, err := parseDate(c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	slots, err := h.svc.AvailableSlots(c.Request().Context(), doctorID, date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if slots == nil {
		slots = []string{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"doctor_id":       doctorID,
		"date":            date.Format("2006-01-02"),
		"available_slots": slots,
	})
}

type bookRequest struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
	Reason   string    `json:"reason"`
}

func (h *Handler) Book(c echo.Context) error {
	patientID, err := h.patients.PatientIDByUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "no patient profile for user")
	}
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.DoctorID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "doctor_id is required")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	a, err := h.svc.Book(c.Request().Context(), patientID, req.DoctorID, date, req.Time, req.Reason)
	switch {
	case errors.Is(err, ErrPastDate):
		return h.rejectBooking(c, http.StatusBadRequest, err, req.DoctorID, date)
	case errors.Is(err, ErrSlotUnavailable), errors.Is(err, ErrSlotTaken):
		return h.rejectBooking(c, http.StatusConflict, err, req.DoctorID, date)
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

// rejectBooking answers a failed booking with the refreshed slot list so the
// caller can re-select without another round trip.
func (h *Handler) rejectBooking(c echo.Context, code int, cause error, doctorID uuid.UUID, date time.Time) error {
	slots, err := h.svc.AvailableSlots(c.Request().Context(), doctorID, date)
	if err != nil || slots == nil {
		slots = []string{}
	}
	return c.JSON(code, map[string]interface{}{
		"error":           cause.Error(),
		"available_slots": slots,
	})
}

func (h *Handler) Confirm(c echo.Context) error { return h.transition(c, h.svc.Confirm) }
func (h *Handler) Cancel(c echo.Context) error  { return h.transition(c, h.svc.Cancel) }
func (h *Handler) Complete(c echo.Context) error {
	return h.transition(c, h.svc.Complete)
}

func (h *Handler) transition(c echo.Context, fn func(ctx context.Context, id, doctorID uuid.UUID) (*Appointment, error)) error {
	doctorID, err := h.doctors.DoctorIDByUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "no doctor profile for user")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := fn(c.Request().Context(), id, doctorID)
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	case errors.Is(err, ErrNotOwner):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	if !h.mayView(c, a) {
		return echo.NewHTTPError(http.StatusForbidden, "not your appointment")
	}
	return c.JSON(http.StatusOK, a)
}

// ListAppointments scopes results by role: patients and doctors see their own
// appointments, admins see everything and may filter freely.
func (h *Handler) ListAppointments(c echo.Context) error {
	pg := pagination.FromContext(c)
	p := SearchParams{Status: c.QueryParam("status")}

	var err error
	if p.DateFrom, err = parseOptionalDate(c.QueryParam("from")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "from must be YYYY-MM-DD")
	}
	if p.DateTo, err = parseOptionalDate(c.QueryParam("to")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "to must be YYYY-MM-DD")
	}

	switch auth.RoleFromContext(c.Request().Context()) {
	case auth.RoleDoctor:
		doctorID, err := h.doctors.DoctorIDByUser(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusForbidden, "no doctor profile for user")
		}
		p.DoctorID = doctorID
	case auth.RolePatient:
		patientID, err := h.patients.PatientIDByUser(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusForbidden, "no patient profile for user")
		}
		p.PatientID = patientID
	case auth.RoleAdmin:
		if v := c.QueryParam("doctor_id"); v != "" {
			if p.DoctorID, err = uuid.Parse(v); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor_id")
			}
		}
		if v := c.QueryParam("patient_id"); v != "" {
			if p.PatientID, err = uuid.Parse(v); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
			}
		}
	default:
		return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
	}

	items, total, err := h.svc.Query(c.Request().Context(), p, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type adminUpdateRequest struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (h *Handler) AdminUpdate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	var req adminUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Date != "" {
		if a.Date, err = parseDate(req.Date); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
	}
	if req.Time != "" {
		a.Time = req.Time
	}
	if req.Status != "" {
		a.Status = req.Status
	}
	if req.Reason != "" {
		a.Reason = req.Reason
	}
	if err := h.svc.AdminUpdate(c.Request().Context(), a); err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrSlotUnavailable):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) AdminDelete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.AdminDelete(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) mayView(c echo.Context, a *Appointment) bool {
	switch auth.RoleFromContext(c.Request().Context()) {
	case auth.RoleAdmin:
		return true
	case auth.RoleDoctor:
		id, err := h.doctors.DoctorIDByUser(c)
		return err == nil && id == a.DoctorID
	case auth.RolePatient:
		id, err := h.patients.PatientIDByUser(c)
		return err == nil && id == a.PatientID
	}
	return false
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
