package api

import (
	"errors"
	"net/http"
	"time"

	"vetclinic/internal/domain/user"
	reqdto "vetclinic/internal/handler/dto/request"
	resdto "vetclinic/internal/handler/dto/response"
	"vetclinic/internal/handler/middleware"
	"vetclinic/internal/pkg/errs"
	"vetclinic/internal/usecase/commands"
	"vetclinic/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	appointmentCommands commands.AppointmentCommands
	appointmentQueries  queries.AppointmentQueries
}

func NewAppointmentHandler(
	appointmentCommands commands.AppointmentCommands,
	appointmentQueries queries.AppointmentQueries,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentCommands: appointmentCommands,
		appointmentQueries:  appointmentQueries,
	}
}

// @Summary Book appointment
// @Description Book a provider time slot for a pet
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BookAppointmentRequest true "Booking request"
// @Success 201 {object} resdto.BookAppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /appointments [post]
func (h *AppointmentHandler) Book(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.appointmentCommands.Book(c.Request.Context(), actor, req)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.BookAppointmentResponse{ID: id})
}

// @Summary Get appointment
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID format"})
		return
	}

	view, err := h.appointmentQueries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// @Summary List own appointments
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.AppointmentResponse
// @Router /appointments [get]
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	views, err := h.appointmentQueries.ListForCustomer(c.Request.Context(), actor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentViews(views))
}

// @Summary Provider calendar for one day
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Param date query string true "Day in YYYY-MM-DD"
// @Success 200 {array} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /providers/{providerId}/appointments [get]
func (h *AppointmentHandler) ListProviderDay(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	providerID, err := uuid.Parse(c.Param("providerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider ID format"})
		return
	}

	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	views, err := h.appointmentQueries.ListByProviderDay(c.Request.Context(), actor, providerID, day)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentViews(views))
}

// @Summary Approve appointment
// @Tags appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /appointments/{id}/approve [post]
func (h *AppointmentHandler) Approve(c *gin.Context) {
	h.lifecycle(c, func(actor user.Actor, id uuid.UUID) error {
		return h.appointmentCommands.Approve(c.Request.Context(), actor, id)
	})
}

// @Summary Reject appointment
// @Tags appointments
// @Accept json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.RejectAppointmentRequest true "Rejection reason"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /appointments/{id}/reject [post]
func (h *AppointmentHandler) Reject(c *gin.Context) {
	var req reqdto.RejectAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rejection reason required"})
		return
	}
	h.lifecycle(c, func(actor user.Actor, id uuid.UUID) error {
		return h.appointmentCommands.Reject(c.Request.Context(), actor, id, req.Reason)
	})
}

// @Summary Complete appointment
// @Tags appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204 "No Content"
// @Router /appointments/{id}/complete [post]
func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.lifecycle(c, func(actor user.Actor, id uuid.UUID) error {
		return h.appointmentCommands.Complete(c.Request.Context(), actor, id)
	})
}

// @Summary Cancel appointment
// @Tags appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204 "No Content"
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.lifecycle(c, func(actor user.Actor, id uuid.UUID) error {
		return h.appointmentCommands.Cancel(c.Request.Context(), actor, id)
	})
}

// @Summary Mark appointment as no-show
// @Tags appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204 "No Content"
// @Router /appointments/{id}/no-show [post]
func (h *AppointmentHandler) MarkNoShow(c *gin.Context) {
	h.lifecycle(c, func(actor user.Actor, id uuid.UUID) error {
		return h.appointmentCommands.MarkNoShow(c.Request.Context(), actor, id)
	})
}

// @Summary Reschedule appointment
// @Tags appointments
// @Accept json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.RescheduleAppointmentRequest true "New slot"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /appointments/{id}/reschedule [post]
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req reqdto.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	h.lifecycle(c, func(actor user.Actor, id uuid.UUID) error {
		return h.appointmentCommands.Reschedule(c.Request.Context(), actor, id, req)
	})
}

// @Summary Delete appointment
// @Description Hard-delete an appointment record. Admin only.
// @Tags appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204 "No Content"
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
	h.lifecycle(c, func(actor user.Actor, id uuid.UUID) error {
		return h.appointmentCommands.Delete(c.Request.Context(), actor, id)
	})
}

func (h *AppointmentHandler) lifecycle(c *gin.Context, run func(actor user.Actor, id uuid.UUID) error) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID format"})
		return
	}

	if err := run(actor, id); err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AppointmentHandler) respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment data"})
	case errors.Is(err, errs.ErrSlotConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Time slot conflicts with an existing appointment"})
	case errors.Is(err, errs.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Appointment state does not allow this operation"})
	case errors.Is(err, errs.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
	case errors.Is(err, errs.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the owner of this appointment"})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
