package models

import (
	"time"
)

const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderCancelled = "cancelled"
)

type Order struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	BuyerID   uint      `gorm:"not null;index" json:"buyer_id"`
	SellerID  uint      `gorm:"not null;index" json:"seller_id"`
	Amount    float64   `json:"amount"`
	Status    string    `gorm:"type:varchar(20);default:pending" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
