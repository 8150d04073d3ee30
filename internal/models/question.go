package models

import (
	"time"
)

// ProductQuestion is a public Q&A row on a listing. Answer stays nil until the
// seller replies; AnsweredAt is set in the same update.
type ProductQuestion struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID    uint       `gorm:"not null;index" json:"product_id"`
	ProductTitle string     `gorm:"type:varchar(150)" json:"product_title"`
	AskerID      uint       `gorm:"not null;index" json:"asker_id"`
	SellerID     uint       `gorm:"not null;index" json:"seller_id"`
	Question     string     `gorm:"type:text;not null" json:"question"`
	Answer       *string    `gorm:"type:text" json:"answer,omitempty"`
	AnsweredAt   *time.Time `json:"answered_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// QuestionFeed is the shape of GET /notifications/product-questions: questions
// on the caller's listings plus the caller's own questions elsewhere.
type QuestionFeed struct {
	AsSeller []ProductQuestion `json:"as_seller"`
	AsAsker  []ProductQuestion `json:"as_asker"`
}
