package repositories

import (
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/config"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(message *models.Message) error
	ListForUser(userID uint) ([]models.Message, error)
	Thread(userID, counterpartID uint, productID *uint) ([]models.Message, error)
	MarkThreadRead(userID, counterpartID uint, productID *uint) error
	UnreadCount(userID uint) (int64, error)
	DeleteByID(id, userID uint) (int64, error)
	DeleteThread(userID, counterpartID, productID uint) (int64, error)
}

type GormMessageRepository struct{ db *gorm.DB }

func NewMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *GormMessageRepository) ListForUser(userID uint) ([]models.Message, error) {
	var rows []models.Message
	err := r.db.
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *GormMessageRepository) Thread(userID, counterpartID uint, productID *uint) ([]models.Message, error) {
	q := r.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, counterpartID, counterpartID, userID,
	)
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	} else {
		q = q.Where("product_id IS NULL")
	}
	var rows []models.Message
	err := q.Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *GormMessageRepository) MarkThreadRead(userID, counterpartID uint, productID *uint) error {
	q := r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = false", userID, counterpartID)
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	} else {
		q = q.Where("product_id IS NULL")
	}
	return q.Update("is_read", true).Error
}

func (r *GormMessageRepository) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = false", userID).
		Count(&count).Error
	return count, err
}

func (r *GormMessageRepository) DeleteByID(id, userID uint) (int64, error) {
	result := r.db.
		Where("id = ? AND (sender_id = ? OR receiver_id = ?)", id, userID, userID).
		Delete(&models.Message{})
	return result.RowsAffected, result.Error
}

func (r *GormMessageRepository) DeleteThread(userID, counterpartID, productID uint) (int64, error) {
	result := r.db.
		Where("product_id = ?", productID).
		Where(
			"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, counterpartID, counterpartID, userID,
		).
		Delete(&models.Message{})
	return result.RowsAffected, result.Error
}

func DefaultMessageRepository() MessageRepository { return NewMessageRepository(config.DB) }
