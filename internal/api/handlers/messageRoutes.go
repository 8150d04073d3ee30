package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetMessages returns every conversation row for the signed-in user. The
// client groups them into threads; the server hands back raw rows, newest
// first.
func GetMessages(w http.ResponseWriter, r *http.Request) {
	encoder := json.NewEncoder(w)
	userID, ok := r.Context().Value("userID").(uint)

	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	messages, err := Svcs.Message.Conversations(userID)
	if err != nil {
		http.Error(w, "Unable to fetch messages", http.StatusInternalServerError)
		return
	}

	encoder.Encode(gin.H{
		"Messages": messages,
	})
}

// GetThread returns the messages exchanged with one counterpart, scoped to a
// product when ?productId= is set. Fetching a thread marks the caller's side
// of it as read.
func GetThread(w http.ResponseWriter, r *http.Request) {
	encoder := json.NewEncoder(w)
	userID, ok := r.Context().Value("userID").(uint)

	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	counterpartID, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || counterpartID == 0 {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var productID *uint
	if p := r.URL.Query().Get("productId"); p != "" {
		pid, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			http.Error(w, "Invalid product ID", http.StatusBadRequest)
			return
		}
		id := uint(pid)
		productID = &id
	}

	messages, err := Svcs.Message.Thread(userID, uint(counterpartID), productID)
	if err != nil {
		http.Error(w, "Unable to fetch thread", http.StatusInternalServerError)
		return
	}

	encoder.Encode(gin.H{
		"Messages": messages,
	})
}

func SendMessage(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)
	encoder := json.NewEncoder(w)
	senderID, ok := r.Context().Value("userID").(uint)

	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var requestBody struct {
		ReceiverID uint   `json:"receiver_id"`
		ProductID  *uint  `json:"product_id"`
		Content    string `json:"content"`
	}

	if err := decoder.Decode(&requestBody); err != nil {
		http.Error(w, "Unable to decode request body", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	if requestBody.Content == "" || requestBody.ReceiverID == 0 {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	message, err := Svcs.Message.SendMessage(senderID, requestBody.ReceiverID, requestBody.ProductID, requestBody.Content)
	if err != nil {
		http.Error(w, "Unable to create messsage", http.StatusInternalServerError)
		return
	}

	encoder.Encode(map[string]interface{}{
		"Status":  "success",
		"Message": message,
	})
}

// SendDirectMessage posts to a counterpart outside any product context.
func SendDirectMessage(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)
	encoder := json.NewEncoder(w)
	senderID, ok := r.Context().Value("userID").(uint)

	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	receiverID, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || receiverID == 0 {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var requestBody struct {
		Content string `json:"content"`
	}

	if err := decoder.Decode(&requestBody); err != nil {
		http.Error(w, "Unable to decode request body", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	if requestBody.Content == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	message, err := Svcs.Message.SendMessage(senderID, uint(receiverID), nil, requestBody.Content)
	if err != nil {
		http.Error(w, "Unable to create messsage", http.StatusInternalServerError)
		return
	}

	encoder.Encode(map[string]interface{}{
		"Status":  "success",
		"Message": message,
	})
}

func DeleteMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(uint)

	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	messageID, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || messageID == 0 {
		http.Error(w, "Please provide a valid message id", http.StatusBadRequest)
		return
	}

	if err := Svcs.Message.DeleteMessage(uint(messageID), userID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"Status": "Message Deleted Successfully",
	})
}

// DeleteConversation removes an entire thread with a counterpart, scoped to a
// product. A product id of 0 targets the plain thread.
func DeleteConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(uint)

	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	productID, err := strconv.ParseUint(r.PathValue("productId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	counterpartID, err := strconv.ParseUint(r.PathValue("counterpartId"), 10, 64)
	if err != nil || counterpartID == 0 {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	deleted, err := Svcs.Message.DeleteConversation(userID, uint(counterpartID), uint(productID))
	if err != nil {
		http.Error(w, "Error deleting conversation", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"Status":  "Conversation Deleted Successfully",
		"Deleted": deleted,
	})
}

// GetUnreadCount returns the total number of messages addressed to the caller
// that no thread fetch has touched yet. The client badges on this number.
func GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(uint)

	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	count, err := Svcs.Message.UnreadCount(userID)
	if err != nil {
		http.Error(w, "Unable to fetch unread count", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(gin.H{
		"Count": count,
	})
}
