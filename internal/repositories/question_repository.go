package repositories

import (
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/config"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(q *models.ProductQuestion) error
	Save(q *models.ProductQuestion) error
	FindByID(id uint) (*models.ProductQuestion, error)
	AsSeller(userID uint) ([]models.ProductQuestion, error)
	AsAsker(userID uint) ([]models.ProductQuestion, error)
}

type GormQuestionRepository struct{ db *gorm.DB }

func NewQuestionRepository(db *gorm.DB) *GormQuestionRepository {
	return &GormQuestionRepository{db: db}
}

func (r *GormQuestionRepository) Create(q *models.ProductQuestion) error {
	return r.db.Create(q).Error
}

func (r *GormQuestionRepository) Save(q *models.ProductQuestion) error {
	return r.db.Save(q).Error
}

func (r *GormQuestionRepository) FindByID(id uint) (*models.ProductQuestion, error) {
	var q models.ProductQuestion
	if err := r.db.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *GormQuestionRepository) AsSeller(userID uint) ([]models.ProductQuestion, error) {
	var rows []models.ProductQuestion
	err := r.db.Where("seller_id = ?", userID).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *GormQuestionRepository) AsAsker(userID uint) ([]models.ProductQuestion, error) {
	var rows []models.ProductQuestion
	err := r.db.Where("asker_id = ?", userID).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func DefaultQuestionRepository() QuestionRepository { return NewQuestionRepository(config.DB) }
