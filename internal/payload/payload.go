package payload

import (
	"time"
)

const (
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// Offer is a price proposal carried inside an ordinary message body.
type Offer struct {
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	ProductID    uint      `json:"productId"`
	ProductTitle string    `json:"productTitle"`
	ProductImage string    `json:"productImage,omitempty"`
	SenderName   string    `json:"senderName"`
	Message      string    `json:"message,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OfferResponse answers a specific offer message. Responses are new messages,
// never edits; if more than one targets the same message the latest wins.
type OfferResponse struct {
	TargetMessageID string    `json:"targetMessageId"`
	Status          string    `json:"status"`
	Offer           Offer     `json:"offer"`
	ResponderID     uint      `json:"responderId"`
	ResponderName   string    `json:"responderName"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ProductContext is the informational listing preview auto-sent at the top of
// a new thread. It never mutates offer state.
type ProductContext struct {
	ProductID uint      `json:"productId"`
	Title     string    `json:"title"`
	Image     string    `json:"image,omitempty"`
	Price     float64   `json:"price,omitempty"`
	Location  string    `json:"location,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
