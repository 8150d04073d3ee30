package client

import (
	"fmt"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/config"
)

type APIClient struct {
	baseURL      string
	httpClient   *http.Client
	accessToken  string
	refreshToken string
	cache        *cache.Cache
}

func NewAPIClient(cfg config.Client) (*APIClient, error) {

	baseURL := cfg.ServerURL + "/api"
	httpClient := &http.Client{Timeout: 15 * time.Second}

	req, err := http.NewRequest("GET", baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create test request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server at %s: %w", baseURL, err)
	}
	defer resp.Body.Close()

	// Check for a successful response
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("server returned unexpected status: %s", resp.Status)
	}

	return &APIClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		cache:      cache.New(time.Minute*5, time.Second*30),
	}, nil
}

func (c *APIClient) SetTokenPair(access, refresh string) {
	c.accessToken = access
	c.refreshToken = refresh
}
