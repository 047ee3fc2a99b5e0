package records

import (
	"errors"
	"net/http"
	"time"

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
	own := api.Group("/medical-history", auth.RequireRole("patient"))
	own.POST("", h.Add)
	own.GET("", h.ListOwn)
	own.PUT("/:id", h.Update)
	own.DELETE("/:id", h.Delete)

	// Doctors read any patient's history for treatment context.
	api.GET("/patients/:id/medical-history", h.ListForPatient, auth.RequireRole("doctor"))
}

type entryRequest struct {
	Diagnosis   string `json:"diagnosis"`
	Medications string `json:"medications"`
	Allergies   string `json:"allergies"`
	Treatment   string `json:"treatment"`
	Date        string `json:"date"`
}

func (h *Handler) Add(c echo.Context) error {
	patientID, err := h.patients.PatientIDByUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "no patient profile for user")
	}
	var req entryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	m := &MedicalHistory{
		PatientID:   patientID,
		Diagnosis:   req.Diagnosis,
		Medications: req.Medications,
		Allergies:   req.Allergies,
		Treatment:   req.Treatment,
		Date:        date,
	}
	if err := h.svc.Add(c.Request().Context(), m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) ListOwn(c echo.Context) error {
	patientID, err := h.patients.PatientIDByUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "no patient profile for user")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	patientID, err := h.patients.PatientIDByUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "no patient profile for user")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req entryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m := &MedicalHistory{
		ID:          id,
		PatientID:   patientID,
		Diagnosis:   req.Diagnosis,
		Medications: req.Medications,
		Allergies:   req.Allergies,
		Treatment:   req.Treatment,
	}
	if req.Date != "" {
		if m.Date, err = time.Parse("2006-01-02", req.Date); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
	}
	if err := h.svc.Update(c.Request().Context(), m); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "entry not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) Delete(c echo.Context) error {
	patientID, err := h.patients.PatientIDByUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "no patient profile for user")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id, patientID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "entry not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListForPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
