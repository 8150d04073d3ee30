package handlers

import (
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/repositories"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/services"
)

// Svcs holds initialized service singletons for handlers to use.
var Svcs struct {
	Auth     *services.AuthService
	Message  *services.MessageService
	Product  *services.ProductService
	Question *services.QuestionService
}

func InitHandlers() {
	userRepo := repositories.DefaultUserRepository()
	msgRepo := repositories.DefaultMessageRepository()
	productRepo := repositories.DefaultProductRepository()
	questionRepo := repositories.DefaultQuestionRepository()
	orderRepo := repositories.DefaultOrderRepository()

	Svcs.Auth = services.NewAuthService(userRepo)
	Svcs.Message = services.NewMessageService(msgRepo, productRepo)
	Svcs.Product = services.NewProductService(productRepo, orderRepo)
	Svcs.Question = services.NewQuestionService(questionRepo, productRepo)
}
