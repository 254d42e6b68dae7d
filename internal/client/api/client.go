// Package api is the REST client the reveal CLI uses to fetch cards from
// the server.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/unbox-app/unbox/internal/common"
	"github.com/unbox-app/unbox/internal/models"
)

const defaultTimeout = 10 * time.Second

// Client talks to the card server's JSON API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the server at baseURL, e.g.
// "https://cards.example.com".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// GetCard fetches a card by id. A 404 maps to common.ErrNotFound.
func (c *Client) GetCard(ctx context.Context, id string) (*models.GreetingCard, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/cards/"+id, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, common.ErrNotFound
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var card models.GreetingCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, fmt.Errorf("decode card: %w", err)
	}
	return &card, nil
}

// Healthz pings the server.
func (c *Client) Healthz(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
