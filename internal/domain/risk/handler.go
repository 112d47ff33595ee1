package risk

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
	scores   ScoreRepository
	patients PatientResolver
}

func NewHandler(scores ScoreRepository, patients PatientResolver) *Handler {
	return &Handler{scores: scores, patients: patients}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/patient", auth.RequireRole("patient"))
	g.GET("/risk-score", h.LatestScore)
	g.GET("/risk-score/history", h.ScoreHistory)
}

// LatestScore returns the patient's most recent score, or zero when no
// reading has been analyzed yet.
func (h *Handler) LatestScore(c echo.Context) error {
	ctx := c.Request().Context()
	patientID, err := h.patients.PatientIDForUser(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient record not found")
	}

	rec, err := h.scores.Latest(ctx, patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch risk score")
	}

	score := 0
	if rec != nil {
		score = rec.Score
	}
	return c.JSON(http.StatusOK, map[string]int{"score": score})
}

func (h *Handler) ScoreHistory(c echo.Context) error {
	ctx := c.Request().Context()
	patientID, err := h.patients.PatientIDForUser(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient record not found")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 100 {
		limit = 30
	}

	items, err := h.scores.Recent(ctx, patientID, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch risk score history")
	}
	return c.JSON(http.StatusOK, items)
}
