package services

import (
	"fmt"
	"time"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/repositories"
)

type QuestionService struct {
	questions repositories.QuestionRepository
	products  repositories.ProductRepository
}

func NewQuestionService(q repositories.QuestionRepository, p repositories.ProductRepository) *QuestionService {
	return &QuestionService{questions: q, products: p}
}

// Feed returns both sides of the signed-in user's pending Q&A.
func (s *QuestionService) Feed(userID uint) (models.QuestionFeed, error) {
	asSeller, err := s.questions.AsSeller(userID)
	if err != nil {
		return models.QuestionFeed{}, err
	}
	asAsker, err := s.questions.AsAsker(userID)
	if err != nil {
		return models.QuestionFeed{}, err
	}
	return models.QuestionFeed{AsSeller: asSeller, AsAsker: asAsker}, nil
}

func (s *QuestionService) Ask(askerID, productID uint, text string) (models.ProductQuestion, error) {
	product, err := s.products.FindByID(productID)
	if err != nil {
		return models.ProductQuestion{}, fmt.Errorf("unknown product %d", productID)
	}
	if product.SellerID == askerID {
		return models.ProductQuestion{}, fmt.Errorf("cannot ask a question on your own listing")
	}
	q := models.ProductQuestion{
		ProductID:    productID,
		ProductTitle: product.Title,
		AskerID:      askerID,
		SellerID:     product.SellerID,
		Question:     text,
	}
	if err := s.questions.Create(&q); err != nil {
		return models.ProductQuestion{}, err
	}
	return q, nil
}

func (s *QuestionService) Answer(sellerID, questionID uint, text string) (models.ProductQuestion, error) {
	q, err := s.questions.FindByID(questionID)
	if err != nil {
		return models.ProductQuestion{}, fmt.Errorf("question %d not found", questionID)
	}
	if q.SellerID != sellerID {
		return models.ProductQuestion{}, fmt.Errorf("only the seller can answer")
	}
	now := time.Now()
	q.Answer = &text
	q.AnsweredAt = &now
	if err := s.questions.Save(q); err != nil {
		return models.ProductQuestion{}, err
	}
	return *q, nil
}
