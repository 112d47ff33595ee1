package medication

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/carebridge/internal/platform/auth"
)

// PatientResolver maps an authenticated user to their patient record.
type PatientResolver interface {
	PatientIDForUser(ctx context.Context, userID int) (int, error)
}

// DoctorDirectory resolves the prescribing doctor and their display name.
type DoctorDirectory interface {
	DoctorIDForUser(ctx context.Context, userID int) (int, error)
	DoctorDisplayName(ctx context.Context, doctorID int) (string, error)
}

type Handler struct {
	svc      *Service
	patients PatientResolver
	doctors  DoctorDirectory
}

func NewHandler(svc *Service, patients PatientResolver, doctors DoctorDirectory) *Handler {
	return &Handler{svc: svc, patients: patients, doctors: doctors}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	p := api.Group("/patient", auth.RequireRole("patient"))
	p.GET("/medications", h.List)
	p.POST("/medications", h.Add)
	p.POST("/medications/:id/taken", h.MarkTaken)

	d := api.Group("/doctor", auth.RequireRole("doctor"))
	d.POST("/medications", h.Prescribe)
}

func (h *Handler) patientID(c echo.Context) (int, error) {
	return h.patients.PatientIDForUser(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()))
}

func (h *Handler) List(c echo.Context) error {
	patientID, err := h.patientID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient record not found")
	}

	items, err := h.svc.ListByPatient(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch medications")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Add(c echo.Context) error {
	patientID, err := h.patientID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient record not found")
	}

	var in AddInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	m, err := h.svc.Add(c.Request().Context(), patientID, in)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) MarkTaken(c echo.Context) error {
	patientID, err := h.patientID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient record not found")
	}

	medicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid medication id")
	}

	if err := h.svc.MarkTaken(c.Request().Context(), medicationID, patientID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "medication not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update medication")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Medication marked as taken"})
}

func (h *Handler) Prescribe(c echo.Context) error {
	ctx := c.Request().Context()
	doctorID, err := h.doctors.DoctorIDForUser(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor record not found")
	}

	prescriber, err := h.doctors.DoctorDisplayName(ctx, doctorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve doctor")
	}

	var in PrescribeInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	m, err := h.svc.Prescribe(ctx, doctorID, prescriber, in)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, m)
}
