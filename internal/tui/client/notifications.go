package client

import (
	"encoding/json"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
)

// GetProductQuestions fetches pending public Q&A for the signed-in user, both
// sides: questions on their listings and their own questions elsewhere.
func (c *APIClient) GetProductQuestions() (models.QuestionFeed, error) {
	var result models.QuestionFeed
	body, err := c.get("/notifications/product-questions")
	if err != nil {
		return result, err
	}
	if len(body) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return models.QuestionFeed{}, err
	}
	return result, nil
}
