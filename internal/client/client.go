// Package client is the Go counterpart of the browser app: an API client plus
// the stateful pieces that live on the caller's side of the wire (session
// holder, cart ledger, purchase committer, award flow, roster helpers).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"school-store/internal/domain/dto"

	"github.com/google/uuid"
)

// APIError is a non-2xx response decoded into the backend's error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client talks to the school store backend. The cookie jar carries the
// session cookie, so callers never see or manage the credential itself.
type Client struct {
	http    *http.Client
	baseURL string
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("client.New: %w", err)
	}

	return &Client{
		http: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr != nil || envelope.Error == "" {
			envelope.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Error}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}

	return nil
}

// Login opens a session; the session cookie lands in the jar.
func (c *Client) Login(ctx context.Context, username, password string) (dto.UserDTO, error) {
	var envelope struct {
		Message string      `json:"message"`
		User    dto.UserDTO `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Username: username, Password: password}, &envelope)
	if err != nil {
		return dto.UserDTO{}, err
	}
	return envelope.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Me re-fetches the authenticated profile. This is the only source of truth
// for the points balance.
func (c *Client) Me(ctx context.Context) (dto.UserDTO, error) {
	var user dto.UserDTO
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user)
	return user, err
}

func (c *Client) ListUsers(ctx context.Context) ([]dto.UserDTO, error) {
	var users []dto.UserDTO
	err := c.do(ctx, http.MethodGet, "/users", nil, &users)
	return users, err
}

func (c *Client) CreateUser(ctx context.Context, req dto.CreateUserRequest) (dto.UserDTO, error) {
	var user dto.UserDTO
	err := c.do(ctx, http.MethodPost, "/users", req, &user)
	return user, err
}

func (c *Client) UpdateUser(ctx context.Context, userID uuid.UUID, req dto.UpdateUserRequest) (dto.UserDTO, error) {
	var user dto.UserDTO
	err := c.do(ctx, http.MethodPut, "/users/"+userID.String(), req, &user)
	return user, err
}

func (c *Client) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/users/"+userID.String(), nil, nil)
}

func (c *Client) ListItems(ctx context.Context) ([]dto.ItemDTO, error) {
	var items []dto.ItemDTO
	err := c.do(ctx, http.MethodGet, "/store/items", nil, &items)
	return items, err
}

func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := c.do(ctx, http.MethodGet, "/store/categories", nil, &categories)
	return categories, err
}

func (c *Client) CreateItem(ctx context.Context, req dto.CreateItemRequest) (dto.ItemDTO, error) {
	var item dto.ItemDTO
	err := c.do(ctx, http.MethodPost, "/store/items", req, &item)
	return item, err
}

func (c *Client) UpdateItem(ctx context.Context, itemID uuid.UUID, req dto.UpdateItemRequest) (dto.ItemDTO, error) {
	var item dto.ItemDTO
	err := c.do(ctx, http.MethodPut, "/store/items/"+itemID.String(), req, &item)
	return item, err
}

func (c *Client) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/store/items/"+itemID.String(), nil, nil)
}

// Purchase submits one cart line. The response envelope is the pinned
// contract: message, purchase, new_balance.
func (c *Client) Purchase(ctx context.Context, req dto.PurchaseRequest) (dto.PurchaseResponse, error) {
	var resp dto.PurchaseResponse
	err := c.do(ctx, http.MethodPost, "/store/purchase", req, &resp)
	return resp, err
}

func (c *Client) ListPurchases(ctx context.Context, page int) (dto.PurchasesPage, error) {
	var out dto.PurchasesPage
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/store/purchases?page=%d", page), nil, &out)
	return out, err
}

func (c *Client) Award(ctx context.Context, req dto.AwardRequest) (dto.AwardResponse, error) {
	var resp dto.AwardResponse
	err := c.do(ctx, http.MethodPost, "/points/award", req, &resp)
	return resp, err
}

func (c *Client) ListTransactions(ctx context.Context, page int) (dto.TransactionsPage, error) {
	var out dto.TransactionsPage
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/points/transactions?page=%d", page), nil, &out)
	return out, err
}

func (c *Client) Leaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	var envelope struct {
		Leaderboard []dto.LeaderboardEntry `json:"leaderboard"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/points/leaderboard?limit=%d", limit), nil, &envelope)
	return envelope.Leaderboard, err
}
