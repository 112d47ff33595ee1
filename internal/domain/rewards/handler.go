package rewards

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/carebridge/internal/platform/auth"
)

// PatientResolver maps an authenticated user to their patient record.
type PatientResolver interface {
	PatientIDForUser(ctx context.Context, userID int) (int, error)
}

type Handler struct {
	svc      *Service
	patients PatientResolver
}

func NewHandler(svc *Service, patients PatientResolver) *Handler {
	return &Handler{svc: svc, patients: patients}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	p := api.Group("/patient", auth.RequireRole("patient"))
	p.GET("/points", h.Points)
}

const defaultHistoryLimit = 20

func (h *Handler) Points(c echo.Context) error {
	ctx := c.Request().Context()
	patientID, err := h.patients.PatientIDForUser(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient record not found")
	}

	total, err := h.svc.Total(ctx, patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch points")
	}

	limit := defaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	history, err := h.svc.History(ctx, patientID, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch points")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"total":   total,
		"history": history,
	})
}
