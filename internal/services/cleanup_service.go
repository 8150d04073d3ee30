package services

import (
	"time"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/config"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
)

// CancelStalePendingOrders cancels purchase requests the seller never acted
// on. A week is long enough that the buyer has moved on.
func CancelStalePendingOrders() (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -7)
	result := config.DB.Model(&models.Order{}).
		Where("status = ? AND created_at < ?", models.OrderPending, cutoff).
		Update("status", models.OrderCancelled)
	return result.RowsAffected, result.Error
}

// RemoveOldAnsweredQuestions drops answered Q&A rows past the retention
// window. Unanswered questions are kept so sellers still see them.
func RemoveOldAnsweredQuestions() (int64, error) {
	cutoff := time.Now().AddDate(0, -3, 0)
	result := config.DB.
		Where("answer IS NOT NULL AND answered_at < ?", cutoff).
		Delete(&models.ProductQuestion{})
	return result.RowsAffected, result.Error
}
