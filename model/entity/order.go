package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Order statuses.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderRefunded  = "refunded"
	OrderCancelled = "cancelled"
)

// Order is a persisted customer order. Items is a JSON array of
// {productId, variantId, quantity, unitPrice} line objects.
type Order struct {
	ID            uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CustomerEmail string         `gorm:"column:customer_email;type:varchar(255);not null;index" json:"customerEmail"`
	CustomerName  string         `gorm:"column:customer_name;type:varchar(255)" json:"customerName"`
	Items         datatypes.JSON `gorm:"column:items;not null" json:"items"`
	Total         float64        `gorm:"column:total;type:decimal(12,2);not null" json:"total"`
	Status        string         `gorm:"column:status;type:varchar(16);not null;default:pending" json:"status"`
	Marketplace   string         `gorm:"column:marketplace;type:varchar(32)" json:"marketplace,omitempty"`
	ExternalID    string         `gorm:"column:external_id;type:varchar(64);index" json:"externalId,omitempty"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}
