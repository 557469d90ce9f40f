package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/barberhub/booking-api/internal/domain/booking"
	"github.com/barberhub/booking-api/internal/dto"
	"github.com/barberhub/booking-api/internal/httperr"
	"github.com/barberhub/booking-api/internal/httpresp"
	"github.com/barberhub/booking-api/internal/middleware"
	"github.com/barberhub/booking-api/internal/timezone"
	ucBooking "github.com/barberhub/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER (barber side)
// ======================================================

type ScheduleHandler struct {
	repo     domain.Repository
	timeline *ucBooking.BarberTimeline
	confirm  *ucBooking.ConfirmAppointment
	complete *ucBooking.CompleteAppointment
	cancel   *ucBooking.CancelAppointment
}

func NewScheduleHandler(
	repo domain.Repository,
	timeline *ucBooking.BarberTimeline,
	confirm *ucBooking.ConfirmAppointment,
	complete *ucBooking.CompleteAppointment,
	cancel *ucBooking.CancelAppointment,
) *ScheduleHandler {
	return &ScheduleHandler{
		repo:     repo,
		timeline: timeline,
		confirm:  confirm,
		complete: complete,
		cancel:   cancel,
	}
}

// barberForCaller maps the authenticated staff login to its chair.
func (h *ScheduleHandler) barberForCaller(c *gin.Context) (uuid.UUID, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	barber, err := h.repo.GetBarberForUser(c.Request.Context(), userID)
	if err != nil {
		httperr.NotFound(c, "barber_profile_not_found", "Cadeira não encontrada para este usuário.")
		return uuid.Nil, false
	}
	return barber.ID, true
}

// ======================================================
// WEEK VIEW
// ======================================================

// Week renders the timeline: ?anchor=YYYY-MM-DD picks the week,
// ?day=YYYY-MM-DD picks the highlighted day. Both default to today.
func (h *ScheduleHandler) Week(c *gin.Context) {
	barberID, ok := h.barberForCaller(c)
	if !ok {
		return
	}

	anchor := timezone.Now()
	if s := c.Query("anchor"); s != "" {
		parsed, err := timezone.ParseDate(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		anchor = parsed
	}

	day := anchor
	if s := c.Query("day"); s != "" {
		parsed, err := timezone.ParseDate(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		day = parsed
	}

	result, err := h.timeline.Execute(c.Request.Context(), barberID, anchor, day)
	if err != nil {
		httperr.Internal(c, "failed_to_load_schedule", "Erro ao carregar agenda.")
		return
	}

	httpresp.OK(c, gin.H{
		"timeline":    result,
		"day_entries": dto.NewScheduleEntries(result.Day),
	})
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *ScheduleHandler) Confirm(c *gin.Context) {
	h.transition(c, func(barberID, apID uuid.UUID) (any, error) {
		return h.confirm.Execute(c.Request.Context(), barberID, apID)
	})
}

func (h *ScheduleHandler) Complete(c *gin.Context) {
	h.transition(c, func(barberID, apID uuid.UUID) (any, error) {
		return h.complete.Execute(c.Request.Context(), barberID, apID)
	})
}

func (h *ScheduleHandler) Cancel(c *gin.Context) {
	h.transition(c, func(barberID, apID uuid.UUID) (any, error) {
		return h.cancel.Execute(c.Request.Context(), domain.ActorBarber, barberID, apID)
	})
}

func (h *ScheduleHandler) transition(
	c *gin.Context,
	run func(barberID, apID uuid.UUID) (any, error),
) {
	barberID, ok := h.barberForCaller(c)
	if !ok {
		return
	}

	apID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Agendamento inválido.")
		return
	}

	ap, err := run(barberID, apID)
	if err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
			return
		}
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Transição de status inválida.")
			return
		}
		httperr.Internal(c, "failed_to_update_status", "Erro ao atualizar status.")
		return
	}

	httpresp.OK(c, ap)
}
