package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetProduct(w http.ResponseWriter, r *http.Request) {
	encoder := json.NewEncoder(w)

	productID, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || productID == 0 {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := Svcs.Product.Get(uint(productID))
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	encoder.Encode(gin.H{
		"Product": product,
	})
}

// UpdateProductStatus flips a listing between available, reserved and sold.
// Accepting an offer calls this before the acceptance message goes out, so a
// failure here must abort the whole flow.
func UpdateProductStatus(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)
	encoder := json.NewEncoder(w)
	userID, ok := r.Context().Value("userID").(uint)

	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	productID, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || productID == 0 {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	var requestBody struct {
		Status string `json:"status"`
	}
	if err := decoder.Decode(&requestBody); err != nil {
		http.Error(w, "Unable to decode request body", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	product, err := Svcs.Product.UpdateStatus(userID, uint(productID), requestBody.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	encoder.Encode(map[string]interface{}{
		"Status":  "success",
		"Product": product,
	})
}

// RequestPurchase records a pending order for the seller to confirm.
func RequestPurchase(w http.ResponseWriter, r *http.Request) {
	encoder := json.NewEncoder(w)
	userID, ok := r.Context().Value("userID").(uint)

	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	productID, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || productID == 0 {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	order, err := Svcs.Product.RequestPurchase(userID, uint(productID))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	encoder.Encode(map[string]interface{}{
		"Status": "success",
		"Order":  order,
	})
}
