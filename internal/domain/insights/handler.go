package insights

import (
	"context"
	"net/http"

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
	p.GET("/recommendations", h.Recommendations)
}

func (h *Handler) Recommendations(c echo.Context) error {
	ctx := c.Request().Context()
	patientID, err := h.patients.PatientIDForUser(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient record not found")
	}

	recs, err := h.svc.Recommendations(ctx, patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate recommendations")
	}
	return c.JSON(http.StatusOK, recs)
}
