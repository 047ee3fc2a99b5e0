package availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ehospitality/hospital-api/internal/platform/auth"
)

// DoctorResolver maps an authenticated user to their doctor profile id.
// Implemented by the identity service; wired in main.
type DoctorResolver interface {
	DoctorIDByUser(c echo.Context) (uuid.UUID, error)
}

type Handler struct {
	svc     *Service
	doctors DoctorResolver
}

func NewHandler(svc *Service, doctors DoctorResolver) *Handler {
	return &Handler{svc: svc, doctors: doctors}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/availability", auth.RequireRole("doctor"))
	g.POST("", h.Add)
	g.GET("", h.List)
	g.DELETE("/:id", h.Remove)

	// Anyone authenticated may inspect a doctor's declared windows.
	api.GET("/doctors/:id/availability", h.ListForDoctor)
}

type addRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (h *Handler) Add(c echo.Context) error {
	doctorID, err := h.doctors.DoctorIDByUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "no doctor profile for user")
	}
	var req addRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.Add(c.Request().Context(), doctorID, req.DayOfWeek, req.StartTime, req.EndTime)
	switch {
	case errors.Is(err, ErrOverlap):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidInterval), errors.Is(err, ErrInvalidDay), errors.Is(err, ErrInvalidTime):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) List(c echo.Context) error {
	doctorID, err := h.doctors.DoctorIDByUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "no doctor profile for user")
	}
	items, err := h.svc.List(c.Request().Context(), doctorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Availability{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Remove(c echo.Context) error {
	doctorID, err := h.doctors.DoctorIDByUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "no doctor profile for user")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Remove(c.Request().Context(), id, doctorID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "availability not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListForDoctor(c echo.Context) error {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	items, err := h.svc.List(c.Request().Context(), doctorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Availability{}
	}
	return c.JSON(http.StatusOK, items)
}
