package scheduling

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
	p.GET("/appointments", h.ListMine)
	p.POST("/appointments", h.Book)
	p.POST("/telemedicine/requests", h.RequestTelemedicine)

	d := api.Group("/doctor", auth.RequireRole("doctor"))
	d.GET("/appointments", h.ListForDoctor)
	d.PUT("/appointments/:id/status", h.UpdateStatus)
	d.GET("/telemedicine/requests", h.ListRequests)
	d.PUT("/telemedicine/requests/:id/status", h.UpdateRequestStatus)
}

func (h *Handler) patientID(c echo.Context) (int, error) {
	return h.patients.PatientIDForUser(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()))
}

func (h *Handler) doctorID(c echo.Context) (int, error) {
	return h.doctors.DoctorIDForUser(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()))
}

func (h *Handler) Book(c echo.Context) error {
	patientID, err := h.patientID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient record not found")
	}

	var in BookInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a, err := h.svc.Book(c.Request().Context(), patientID, in)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListMine(c echo.Context) error {
	patientID, err := h.patientID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient record not found")
	}

	items, err := h.svc.ListByPatient(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch appointments")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListForDoctor(c echo.Context) error {
	doctorID, err := h.doctorID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor record not found")
	}

	items, err := h.svc.ListByDoctor(c.Request().Context(), doctorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch appointments")
	}
	return c.JSON(http.StatusOK, items)
}

type statusInput struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	doctorID, err := h.doctorID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor record not found")
	}

	appointmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment id")
	}

	var in statusInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.svc.UpdateStatus(c.Request().Context(), appointmentID, doctorID, in.Status); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Appointment updated"})
}

func (h *Handler) RequestTelemedicine(c echo.Context) error {
	patientID, err := h.patientID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient record not found")
	}

	var in RequestInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req, err := h.svc.RequestTelemedicine(c.Request().Context(), patientID, in)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, req)
}

func (h *Handler) ListRequests(c echo.Context) error {
	doctorID, err := h.doctorID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor record not found")
	}

	items, err := h.svc.ListRequestsByDoctor(c.Request().Context(), doctorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch requests")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateRequestStatus(c echo.Context) error {
	doctorID, err := h.doctorID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor record not found")
	}

	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request id")
	}

	var in statusInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.svc.UpdateRequestStatus(c.Request().Context(), requestID, doctorID, in.Status); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "request not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Request updated"})
}
