package portal

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/carebridge/internal/platform/auth"
)

// DoctorResolver maps an authenticated user to their doctor record.
type DoctorResolver interface {
	DoctorIDForUser(ctx context.Context, userID int) (int, error)
}

type Handler struct {
	svc     *Service
	doctors DoctorResolver
}

func NewHandler(svc *Service, doctors DoctorResolver) *Handler {
	return &Handler{svc: svc, doctors: doctors}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	d := api.Group("/doctor", auth.RequireRole("doctor"))
	d.GET("/patients", h.Roster)
	d.GET("/patients/:id", h.PatientDetail)
}

func (h *Handler) doctorID(c echo.Context) (int, error) {
	return h.doctors.DoctorIDForUser(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()))
}

func (h *Handler) Roster(c echo.Context) error {
	doctorID, err := h.doctorID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor record not found")
	}

	items, err := h.svc.Roster(c.Request().Context(), doctorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch patients")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) PatientDetail(c echo.Context) error {
	doctorID, err := h.doctorID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor record not found")
	}

	patientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}

	detail, err := h.svc.PatientDetail(c.Request().Context(), patientID, doctorID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch patient")
	}
	return c.JSON(http.StatusOK, detail)
}
