package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	Total  float64 `gorm:"not null" json:"total"`
	Status string  `gorm:"size:20;default:'pending'" json:"status"`

	// Delivery address captured at checkout, stored as-is.
	Address string `gorm:"type:text" json:"address"`
	Notes   string `gorm:"size:255" json:"notes"`

	MercadoPagoPreferenceID string `gorm:"size:100" json:"mercadopago_preference_id"`
	MercadoPagoPaymentID    string `gorm:"size:100" json:"mercadopago_payment_id"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	OrderID uuid.UUID `gorm:"type:uuid;index;not null" json:"order_id"`

	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product   Product   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"product"`

	Quantity        int     `gorm:"not null" json:"quantity"`
	PriceAtPurchase float64 `gorm:"not null" json:"price_at_purchase"`

	CreatedAt time.Time `json:"created_at"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
