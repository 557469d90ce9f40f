package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/barberhub/booking-api/internal/domain/booking"
	"github.com/barberhub/booking-api/internal/httperr"
	"github.com/barberhub/booking-api/internal/httpresp"
	ucCatalog "github.com/barberhub/booking-api/internal/usecase/catalog"
)

type CatalogHandler struct {
	listBarbers  *ucCatalog.ListActiveBarbers
	listServices *ucCatalog.ListActiveServices
	repo         domain.Repository
}

func NewCatalogHandler(
	listBarbers *ucCatalog.ListActiveBarbers,
	listServices *ucCatalog.ListActiveServices,
	repo domain.Repository,
) *CatalogHandler {
	return &CatalogHandler{
		listBarbers:  listBarbers,
		listServices: listServices,
		repo:         repo,
	}
}

func (h *CatalogHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.listBarbers.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}
	httpresp.List(c, barbers)
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.listServices.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}
	httpresp.List(c, services)
}

// ListSlots enumerates bookable start times at the barber's slot
// interval. Without an id the default grid is returned, used by the
// "no preference" path.
func (h *CatalogHandler) ListSlots(c *gin.Context) {
	interval := domain.DefaultSlotIntervalMinutes

	if idStr := c.Query("barber_id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
			return
		}
		barber, err := h.repo.GetBarber(c.Request.Context(), id)
		if err != nil {
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
			return
		}
		interval = barber.SlotIntervalMinutes
	}

	httpresp.List(c, domain.SlotTimes(interval))
}
