package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/barberhub/booking-api/internal/domain/booking"
	"github.com/barberhub/booking-api/internal/httperr"
	"github.com/barberhub/booking-api/internal/httpresp"
	"github.com/barberhub/booking-api/internal/middleware"
	ucBooking "github.com/barberhub/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER (customer side)
// ======================================================

type AppointmentHandler struct {
	submit  *ucBooking.SubmitBooking
	history *ucBooking.ListUserAppointments
	cancel  *ucBooking.CancelAppointment
}

func NewAppointmentHandler(
	submit *ucBooking.SubmitBooking,
	history *ucBooking.ListUserAppointments,
	cancel *ucBooking.CancelAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		submit:  submit,
		history: history,
		cancel:  cancel,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	// Empty means "no preference"; the server assigns a barber.
	BarberID string `json:"barber_id"`

	Date string `json:"appointment_date" binding:"required"`
	Time string `json:"appointment_time" binding:"required"`

	ServiceIDs []string `json:"service_ids" binding:"required,min=1"`

	TotalPrice float64 `json:"total_price"`
	Notes      string  `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in := ucBooking.SubmitBookingInput{
		Date:       req.Date,
		Time:       req.Time,
		TotalPrice: req.TotalPrice,
		Notes:      req.Notes,
	}

	if req.BarberID != "" {
		id, err := uuid.Parse(req.BarberID)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
			return
		}
		in.BarberID = &id
	}

	for _, raw := range req.ServiceIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
			return
		}
		in.ServiceIDs = append(in.ServiceIDs, id)
	}

	ap, err := h.submit.Execute(c.Request.Context(), userID, in)
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Não foi possível criar o agendamento.")
			return
		}
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST (history view)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	aps, err := h.history.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, aps)
}

// ======================================================
// CANCEL (customer, pending only)
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Agendamento inválido.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), domain.ActorCustomer, userID, id)
	if err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
			return
		}
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Agendamento não pode ser cancelado.")
			return
		}
		httperr.Internal(c, "failed_to_cancel", "Erro ao cancelar agendamento.")
		return
	}

	httpresp.OK(c, ap)
}
