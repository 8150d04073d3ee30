package repositories

import (
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/config"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *models.Order) error
	ListForSeller(sellerID uint) ([]models.Order, error)
}

type GormOrderRepository struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) *GormOrderRepository { return &GormOrderRepository{db: db} }

func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *GormOrderRepository) ListForSeller(sellerID uint) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.Where("seller_id = ?", sellerID).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func DefaultOrderRepository() OrderRepository { return NewOrderRepository(config.DB) }
