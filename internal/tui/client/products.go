package client

import (
	"encoding/json"
	"fmt"

	"github.com/patrickmn/go-cache"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
)

// Product endpoints

// GetProduct resolves listing metadata for context previews. Cached: the
// thread screen asks for the same product on every open.
func (c *APIClient) GetProduct(id uint) (models.Product, error) {
	cacheKey := fmt.Sprintf("product:%d", id)
	if c.cache != nil {
		if v, ok := c.cache.Get(cacheKey); ok {
			if p, ok := v.(models.Product); ok {
				return p, nil
			}
		}
	}

	resp, err := c.get(fmt.Sprintf("/products/%v", id))
	if err != nil {
		return models.Product{}, err
	}
	var result struct {
		Product models.Product `json:"Product"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return models.Product{}, err
	}
	if c.cache != nil {
		c.cache.Set(cacheKey, result.Product, cache.DefaultExpiration)
	}
	return result.Product, nil
}

// UpdateProductStatus marks a listing sold/reserved/available. The cached copy
// is dropped so the next read sees the new status.
func (c *APIClient) UpdateProductStatus(id uint, status string) error {
	_, err := c.put(fmt.Sprintf("/products/%v/status", id), map[string]any{
		"status": status,
	})
	if err == nil && c.cache != nil {
		c.cache.Delete(fmt.Sprintf("product:%d", id))
	}
	return err
}

// RequestPurchase asks the seller to confirm a sale, creating a pending order.
func (c *APIClient) RequestPurchase(productID uint) (models.Order, error) {
	res, err := c.post(fmt.Sprintf("/products/%v/purchase", productID), nil)
	if err != nil {
		return models.Order{}, err
	}
	var order models.Order
	if raw, ok := res["Order"]; ok {
		if b, e := json.Marshal(raw); e == nil {
			_ = json.Unmarshal(b, &order)
		}
	}
	return order, nil
}
