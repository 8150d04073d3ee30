package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// GetProductQuestions returns the public Q&A feed for the signed-in user:
// questions on their listings plus their own questions elsewhere. The client
// polls this to raise question/answer notifications.
func GetProductQuestions(w http.ResponseWriter, r *http.Request) {
	encoder := json.NewEncoder(w)
	userID, ok := r.Context().Value("userID").(uint)

	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	feed, err := Svcs.Question.Feed(userID)
	if err != nil {
		http.Error(w, "Unable to fetch questions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	encoder.Encode(feed)
}

func AskQuestion(w http.ResponseWriter, r *http.Request) {
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
		Question string `json:"question"`
	}
	if err := decoder.Decode(&requestBody); err != nil {
		http.Error(w, "Unable to decode request body", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	if requestBody.Question == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	question, err := Svcs.Question.Ask(userID, uint(productID), requestBody.Question)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	encoder.Encode(map[string]interface{}{
		"Status":   "success",
		"Question": question,
	})
}

func AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)
	encoder := json.NewEncoder(w)
	userID, ok := r.Context().Value("userID").(uint)

	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	questionID, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || questionID == 0 {
		http.Error(w, "Invalid question ID", http.StatusBadRequest)
		return
	}

	var requestBody struct {
		Answer string `json:"answer"`
	}
	if err := decoder.Decode(&requestBody); err != nil {
		http.Error(w, "Unable to decode request body", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	if requestBody.Answer == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	question, err := Svcs.Question.Answer(userID, uint(questionID), requestBody.Answer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	encoder.Encode(map[string]interface{}{
		"Status":   "success",
		"Question": question,
	})
}
