package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/api/handlers"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/api/middleware"
)

func NewServer() {
	// Create a router
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"Status": "ok"})
	})

	// User routes
	mux.HandleFunc("GET /api/users", handlers.GetUsers)
	mux.HandleFunc("POST /api/users", handlers.CreateUser)
	mux.HandleFunc("POST /api/users/login", handlers.Login)
	mux.HandleFunc("POST /api/users/refresh", handlers.RefreshTokens)
	mux.Handle("POST /api/users/logout", middleware.AuthMiddleware(http.HandlerFunc(handlers.LogOut)))
	mux.Handle("POST /api/users/update", middleware.AuthMiddleware(http.HandlerFunc(handlers.UpdateUser)))

	// Message routes
	mux.Handle("GET /api/messages", middleware.AuthMiddleware(http.HandlerFunc(handlers.GetMessages)))
	mux.Handle("POST /api/messages", middleware.AuthMiddleware(http.HandlerFunc(handlers.SendMessage)))
	mux.Handle("GET /api/messages/seller/{id}", middleware.AuthMiddleware(http.HandlerFunc(handlers.GetThread)))
	mux.Handle("POST /api/messages/seller/{id}", middleware.AuthMiddleware(http.HandlerFunc(handlers.SendDirectMessage)))
	mux.Handle("GET /api/messages/unread/count", middleware.AuthMiddleware(http.HandlerFunc(handlers.GetUnreadCount)))
	mux.Handle("DELETE /api/messages/{id}", middleware.AuthMiddleware(http.HandlerFunc(handlers.DeleteMessage)))
	mux.Handle("DELETE /api/messages/conversation/{productId}/{counterpartId}", middleware.AuthMiddleware(http.HandlerFunc(handlers.DeleteConversation)))

	// Product routes
	mux.Handle("GET /api/products/{id}", middleware.AuthMiddleware(http.HandlerFunc(handlers.GetProduct)))
	mux.Handle("PUT /api/products/{id}/status", middleware.AuthMiddleware(http.HandlerFunc(handlers.UpdateProductStatus)))
	mux.Handle("POST /api/products/{id}/purchase", middleware.AuthMiddleware(http.HandlerFunc(handlers.RequestPurchase)))
	mux.Handle("POST /api/products/{id}/questions", middleware.AuthMiddleware(http.HandlerFunc(handlers.AskQuestion)))

	// Question and order routes
	mux.Handle("GET /api/notifications/product-questions", middleware.AuthMiddleware(http.HandlerFunc(handlers.GetProductQuestions)))
	mux.Handle("POST /api/questions/{id}/answer", middleware.AuthMiddleware(http.HandlerFunc(handlers.AnswerQuestion)))
	mux.Handle("GET /api/orders/seller", middleware.AuthMiddleware(http.HandlerFunc(handlers.GetSellerOrders)))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Println("Server starting on port " + port + "...")
	log.Fatal(http.ListenAndServe(":"+port, middleware.CheckCORS(mux)))
}
