package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client is the single chokepoint for outbound HTTP calls. Each call is one
// best-effort attempt: no retries, no caching, no client-imposed timeout.
// Failure handling belongs to the calling store.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
	}
}

// NewClientWithHTTP allows injecting the underlying http.Client, mostly for tests.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Body: string(bytes.TrimSpace(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response of %s %s: %w", method, path, err)
	}
	return nil
}

// Auth endpoints

func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/Auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/Auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ValidateToken(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/Auth/validate", nil, nil)
}

// Catalog endpoints

func (c *Client) Platforms(ctx context.Context) (*PlatformsResponse, error) {
	var resp PlatformsResponse
	if err := c.do(ctx, http.MethodGet, "/Plataforma", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) PlatformByID(ctx context.Context, id int64) (*PlatformsResponse, error) {
	var resp PlatformsResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/Plataforma/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CoinPackages(ctx context.Context) (*CoinPackagesResponse, error) {
	var resp CoinPackagesResponse
	if err := c.do(ctx, http.MethodGet, "/Moeda", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CoinPackagesByPlatform(ctx context.Context, platformID int64) (*CoinPackagesResponse, error) {
	var resp CoinPackagesResponse
	path := fmt.Sprintf("/Moeda/plataforma/%d", platformID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Cart endpoints

func (c *Client) CreateCart(ctx context.Context, userID int64) (*CreateCartResponse, error) {
	var resp CreateCartResponse
	if err := c.do(ctx, http.MethodPost, "/Carrinho/criar", CreateCartRequest{IDUser: userID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetCart(ctx context.Context, cartID int64) (*CartResponse, error) {
	var resp CartResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/Carrinho/%d", cartID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetCartByUser(ctx context.Context, userID int64) (*CartResponse, error) {
	var resp CartResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/Carrinho/usuario/%d", userID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddCartItem(ctx context.Context, cartID, coinID int64, quantity int) (*MutationResponse, error) {
	var resp MutationResponse
	req := AddItemRequest{IDCarrinho: cartID, IDMoeda: coinID, Quantidade: quantity}
	if err := c.do(ctx, http.MethodPost, "/Carrinho/adicionar-item", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) (*MutationResponse, error) {
	var resp MutationResponse
	path := fmt.Sprintf("/Carrinho/remover-item/%d", itemID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateCartItemQuantity(ctx context.Context, itemID int64, quantity int) (*MutationResponse, error) {
	var resp MutationResponse
	path := fmt.Sprintf("/Carrinho/atualizar-item/%d", itemID)
	if err := c.do(ctx, http.MethodPut, path, UpdateQuantityRequest{Quantidade: quantity}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Checkout endpoint

func (c *Client) FinalizePurchase(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	var resp CheckoutResponse
	if err := c.do(ctx, http.MethodPost, "/Checkout/finalizar-compra", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
