package alerts

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/carebridge/internal/platform/auth"
	"github.com/carebridge/carebridge/pkg/pagination"
)

// PatientResolver maps an authenticated user to their patient record.
type PatientResolver interface {
	PatientIDForUser(ctx context.Context, userID int) (int, error)
}

// DoctorResolver maps an authenticated user to their doctor record.
type DoctorResolver interface {
	DoctorIDForUser(ctx context.Context, userID int) (int, error)
}

type Handler struct {
	svc      *Service
	patients PatientResolver
	doctors  DoctorResolver
}

func NewHandler(svc *Service, patients PatientResolver, doctors DoctorResolver) *Handler {
	return &Handler{svc: svc, patients: patients, doctors: doctors}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	p := api.Group("/patient", auth.RequireRole("patient"))
	p.GET("/alerts", h.ListMine)
	p.POST("/alerts/:id/read", h.MarkMineRead)

	d := api.Group("/doctor", auth.RequireRole("doctor"))
	d.GET("/alerts", h.ListForDoctor)
	d.POST("/alerts/:id/read", h.MarkReadForDoctor)
}

func (h *Handler) ListMine(c echo.Context) error {
	patientID, err := h.patients.PatientIDForUser(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient record not found")
	}

	unreadOnly := c.QueryParam("unread") == "true"
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, unreadOnly, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch alerts")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) MarkMineRead(c echo.Context) error {
	patientID, err := h.patients.PatientIDForUser(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient record not found")
	}

	alertID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid alert id")
	}

	if err := h.svc.MarkRead(c.Request().Context(), alertID, patientID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "alert not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update alert")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Alert marked as read"})
}

func (h *Handler) ListForDoctor(c echo.Context) error {
	doctorID, err := h.doctors.DoctorIDForUser(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor record not found")
	}

	unreadOnly := c.QueryParam("unread") == "true"
	pg := pagination.FromContext(c)
	items, err := h.svc.ListForDoctor(c.Request().Context(), doctorID, unreadOnly, pg.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch alerts")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) MarkReadForDoctor(c echo.Context) error {
	doctorID, err := h.doctors.DoctorIDForUser(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor record not found")
	}

	alertID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid alert id")
	}

	if err := h.svc.MarkReadForDoctor(c.Request().Context(), alertID, doctorID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "alert not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update alert")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Alert marked as read"})
}
