package models

import (
	"time"
)

// this is used for sending and retrieving conversation records; a "conversation"
// for the UI is not one row but the grouping of rows by counterpart + product
type Message struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	ProductID  *uint     `gorm:"index" json:"product_id,omitempty"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsRead     bool      `gorm:"default:false" json:"is_read"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ProductIDValue flattens the nullable column for key building.
func (m Message) ProductIDValue() uint {
	if m.ProductID == nil {
		return 0
	}
	return *m.ProductID
}
