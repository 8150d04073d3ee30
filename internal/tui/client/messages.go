package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
)

// Message endpoints

// GetConversations lists every conversation record for the signed-in user.
// The caller groups them into threads; the server hands back raw rows.
func (c *APIClient) GetConversations() ([]models.Message, error) {
	resp, err := c.get("/messages")
	if err != nil {
		return nil, err
	}
	var result struct {
		Messages []models.Message `json:"Messages"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}
	return result.Messages, nil
}

// GetThread fetches the ordered messages exchanged with one counterpart,
// scoped to a product when productID is non-zero.
func (c *APIClient) GetThread(counterpartID, productID uint) ([]models.Message, error) {
	path := fmt.Sprintf("/messages/seller/%v", counterpartID)
	if productID != 0 {
		path = path + "?productId=" + url.QueryEscape(fmt.Sprintf("%d", productID))
	}
	resp, err := c.get(path)
	if err != nil {
		return nil, err
	}
	var result struct {
		Messages []models.Message `json:"Messages"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}
	return result.Messages, nil
}

// SendMessage posts a message inside a product context (productID may be 0
// for a plain thread).
func (c *APIClient) SendMessage(receiverID, productID uint, content string) (models.Message, error) {
	data := map[string]any{
		"receiver_id": receiverID,
		"content":     content,
	}
	if productID != 0 {
		data["product_id"] = productID
	}
	res, err := c.post("/messages", data)
	if err != nil {
		return models.Message{}, err
	}
	return messageFromResponse(res)
}

// SendDirectMessage posts to a counterpart outside any product context.
func (c *APIClient) SendDirectMessage(receiverID uint, content string) (models.Message, error) {
	res, err := c.post(fmt.Sprintf("/messages/seller/%v", receiverID), map[string]any{
		"content": content,
	})
	if err != nil {
		return models.Message{}, err
	}
	return messageFromResponse(res)
}

func (c *APIClient) DeleteMessage(id uint) error {
	_, err := c.delete(fmt.Sprintf("/messages/%v", id), nil)
	return err
}

func (c *APIClient) DeleteConversation(productID, counterpartID uint) error {
	_, err := c.delete(fmt.Sprintf("/messages/conversation/%v/%v", productID, counterpartID), nil)
	return err
}

func (c *APIClient) GetUnreadCount() (int, error) {
	resp, err := c.get("/messages/unread/count")
	if err != nil {
		return 0, err
	}
	var result struct {
		Count int `json:"Count"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

func messageFromResponse(res map[string]any) (models.Message, error) {
	var message models.Message
	raw, ok := res["Message"]
	if !ok {
		return message, fmt.Errorf("unexpected response sending message")
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return message, err
	}
	if err := json.Unmarshal(b, &message); err != nil {
		return message, err
	}
	return message, nil
}
