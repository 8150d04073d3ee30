package repositories

import (
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/config"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
	"gorm.io/gorm"
)

type ProductRepository interface {
	FindByID(id uint) (*models.Product, error)
	Save(product *models.Product) error
}

type GormProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindByID(id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProductRepository) Save(product *models.Product) error {
	return r.db.Save(product).Error
}

func DefaultProductRepository() ProductRepository { return NewProductRepository(config.DB) }
