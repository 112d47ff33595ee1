package identity

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/carebridge/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)

	api.GET("/profile", h.Profile)
	api.GET("/doctors", h.ListDoctors)

	p := api.Group("/patient", auth.RequireRole("patient"))
	p.GET("/profile", h.PatientProfile)

	d := api.Group("/doctor", auth.RequireRole("doctor"))
	d.GET("/profile", h.DoctorProfile)
}

func (h *Handler) Register(c echo.Context) error {
	var in RegisterInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u, err := h.svc.Register(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, "email already registered")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, u)
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c echo.Context) error {
	var in loginInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, u, err := h.svc.Login(c.Request().Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  u,
	})
}

// Profile routes to the role-specific profile of the authenticated user.
func (h *Handler) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	switch auth.RoleFromContext(ctx) {
	case RolePatient:
		return h.PatientProfile(c)
	case RoleDoctor:
		return h.DoctorProfile(c)
	default:
		return echo.NewHTTPError(http.StatusForbidden, "unknown role")
	}
}

func (h *Handler) PatientProfile(c echo.Context) error {
	ctx := c.Request().Context()
	patientID, err := h.svc.PatientIDForUser(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient record not found")
	}
	p, err := h.svc.PatientProfile(ctx, patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch profile")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DoctorProfile(c echo.Context) error {
	ctx := c.Request().Context()
	doctorID, err := h.svc.DoctorIDForUser(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor record not found")
	}
	d, err := h.svc.DoctorProfile(ctx, doctorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch profile")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	items, err := h.svc.ListDoctors(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch doctors")
	}
	return c.JSON(http.StatusOK, items)
}
