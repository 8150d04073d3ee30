package client

import (
	"encoding/json"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
)

// GetSellerOrders lists orders on the signed-in user's listings, used to badge
// pending purchase requests.
func (c *APIClient) GetSellerOrders() ([]models.Order, error) {
	resp, err := c.get("/orders/seller")
	if err != nil {
		return nil, err
	}
	var result struct {
		Orders []models.Order `json:"Orders"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}
	return result.Orders, nil
}
