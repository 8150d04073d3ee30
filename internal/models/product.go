package models

import (
	"time"
)

const (
	ProductAvailable = "available"
	ProductReserved  = "reserved"
	ProductSold      = "sold"
)

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID    uint      `gorm:"not null;index" json:"seller_id"`
	Title       string    `gorm:"type:varchar(150);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Currency    string    `gorm:"type:varchar(8);default:BRL" json:"currency"`
	ImageURL    string    `gorm:"type:varchar(255)" json:"image_url"`
	Location    string    `gorm:"type:varchar(100)" json:"location"`
	Status      string    `gorm:"type:varchar(20);default:available" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
