package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSellerOrders lists orders placed against the caller's listings. Pending
// ones feed the client's notification dot.
func GetSellerOrders(w http.ResponseWriter, r *http.Request) {
	encoder := json.NewEncoder(w)
	userID, ok := r.Context().Value("userID").(uint)

	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := Svcs.Product.SellerOrders(userID)
	if err != nil {
		http.Error(w, "Unable to fetch orders", http.StatusInternalServerError)
		return
	}

	encoder.Encode(gin.H{
		"Orders": orders,
	})
}
