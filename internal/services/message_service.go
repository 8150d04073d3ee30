package services

import (
	"fmt"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/repositories"
)

type MessageService struct {
	messages repositories.MessageRepository
	products repositories.ProductRepository
}

func NewMessageService(m repositories.MessageRepository, p repositories.ProductRepository) *MessageService {
	return &MessageService{messages: m, products: p}
}

// SendMessage stores one conversation record. When a product id is given the
// listing must exist and the sender must be one of the two legitimate parties.
func (s *MessageService) SendMessage(senderID, receiverID uint, productID *uint, content string) (models.Message, error) {
	if senderID == receiverID {
		return models.Message{}, fmt.Errorf("cannot message yourself")
	}
	if productID != nil {
		product, err := s.products.FindByID(*productID)
		if err != nil {
			return models.Message{}, fmt.Errorf("unknown product %d", *productID)
		}
		if senderID != product.SellerID && receiverID != product.SellerID {
			return models.Message{}, fmt.Errorf("neither party owns product %d", *productID)
		}
	}
	msg := models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		ProductID:  productID,
		Content:    content,
	}
	if err := s.messages.Create(&msg); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// Thread returns the ordered exchange with one counterpart and marks the
// caller's incoming half read, so the unread count endpoint stays in step
// with what the caller has actually fetched.
func (s *MessageService) Thread(userID, counterpartID uint, productID *uint) ([]models.Message, error) {
	rows, err := s.messages.Thread(userID, counterpartID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.messages.MarkThreadRead(userID, counterpartID, productID); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *MessageService) Conversations(userID uint) ([]models.Message, error) {
	return s.messages.ListForUser(userID)
}

func (s *MessageService) UnreadCount(userID uint) (int64, error) {
	return s.messages.UnreadCount(userID)
}

func (s *MessageService) DeleteMessage(id, userID uint) error {
	affected, err := s.messages.DeleteByID(id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("message %d not found", id)
	}
	return nil
}

func (s *MessageService) DeleteConversation(userID, counterpartID, productID uint) (int64, error) {
	return s.messages.DeleteThread(userID, counterpartID, productID)
}
