package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barberhub/booking-api/internal/audit"
	"github.com/barberhub/booking-api/internal/httperr"
	"github.com/barberhub/booking-api/internal/httpresp"
	"github.com/barberhub/booking-api/internal/images"
	"github.com/barberhub/booking-api/internal/middleware"
	"github.com/barberhub/booking-api/internal/models"
	"github.com/barberhub/booking-api/internal/storage"
)

type AdminProductHandler struct {
	db      *gorm.DB
	audit   *audit.Dispatcher
	storage *storage.S3Storage
}

func NewAdminProductHandler(db *gorm.DB, audit *audit.Dispatcher, storage *storage.S3Storage) *AdminProductHandler {
	return &AdminProductHandler{db: db, audit: audit, storage: storage}
}

type ProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	Category      string  `json:"category"`
	StockQuantity *int    `json:"stock_quantity"`
	IsActive      *bool   `json:"is_active"`
}

func (h *AdminProductHandler) List(c *gin.Context) {
	var products []models.Product
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "Erro ao listar produtos.")
		return
	}
	httpresp.List(c, products)
}

func (h *AdminProductHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsActive:    true,
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			httperr.BadRequest(c, "invalid_stock", "Estoque inválido.")
			return
		}
		product.StockQuantity = *req.StockQuantity
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.db.Create(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_create_product", "Erro ao criar produto.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "product_created",
		Entity:   "product",
		EntityID: &product.ID,
	})

	httpresp.Created(c, product)
}

func (h *AdminProductHandler) Update(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_product_id", "Produto inválido.")
		return
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "product_not_found", "Produto não encontrado.")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Category = req.Category
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			httperr.BadRequest(c, "invalid_stock", "Estoque inválido.")
			return
		}
		product.StockQuantity = *req.StockQuantity
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.db.Save(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "Erro ao atualizar produto.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "product_updated",
		Entity:   "product",
		EntityID: &product.ID,
	})

	httpresp.OK(c, product)
}

func (h *AdminProductHandler) UploadImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_product_id", "Produto inválido.")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo obrigatório.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Arquivo inválido.")
		return
	}
	defer src.Close()

	encoded, err := images.ToWebP(src)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
		return
	}

	key := fmt.Sprintf("products/%s.webp", id)
	url, err := h.storage.Upload(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao enviar imagem.")
		return
	}

	if err := h.db.Model(&models.Product{}).
		Where("id = ?", id).
		Update("image_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "Erro ao atualizar produto.")
		return
	}

	httpresp.OK(c, gin.H{"image_url": url})
}
