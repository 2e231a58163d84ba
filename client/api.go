package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/CharlieNndwa/e-commerce-app-v2/errs"
	"github.com/CharlieNndwa/e-commerce-app-v2/models"
)

// API is the authenticated transport to the storefront backend. All calls
// are plain request/response; classification of failures follows the shared
// error taxonomy.
type API struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewAPI(baseURL string) *API {
	return &API{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *API) SetToken(token string) {
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
}

func (a *API) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

type signinResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	Cart    []models.CartItem `json:"cart"`
}

// Signin authenticates and returns the bearer token together with the
// server-persisted cart, so the caller can apply server-wins replacement.
func (a *API) Signin(ctx context.Context, email, password string) (string, []models.CartItem, error) {
	body := map[string]string{"email": email, "password": password}

	var resp signinResponse
	if err := a.do(ctx, http.MethodPost, "/api/auth/signin", body, &resp); err != nil {
		return "", nil, err
	}
	a.SetToken(resp.Token)
	return resp.Token, resp.Cart, nil
}

type cartResponse struct {
	Cart []models.CartItem `json:"cart"`
}

func (a *API) GetCart(ctx context.Context) ([]models.CartItem, error) {
	var resp cartResponse
	if err := a.do(ctx, http.MethodGet, "/api/cart", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cart, nil
}

// SaveCart pushes the full cart snapshot; the server replaces its copy
// wholesale.
func (a *API) SaveCart(ctx context.Context, items []models.CartItem) error {
	body := map[string]interface{}{"cartItems": items}
	return a.do(ctx, http.MethodPost, "/api/cart", body, nil)
}

func (a *API) Wishlist(ctx context.Context) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := a.do(ctx, http.MethodGet, "/api/wishlist", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (a *API) AddToWishlist(ctx context.Context, productID uint) error {
	body := map[string]uint{"productId": productID}
	return a.do(ctx, http.MethodPost, "/api/wishlist/add", body, nil)
}

func (a *API) RemoveFromWishlist(ctx context.Context, productID uint) error {
	path := "/api/wishlist/remove/" + strconv.FormatUint(uint64(productID), 10)
	return a.do(ctx, http.MethodDelete, path, nil, nil)
}

type checkoutResponse struct {
	Message       string `json:"message"`
	ClientSecret  string `json:"clientSecret"`
	TransactionID string `json:"transactionId"`
}

// Checkout asks the server to assemble a payment intent for the persisted
// cart. The amount is computed server-side; only the shipping address is sent.
func (a *API) Checkout(ctx context.Context, addr models.Address) (clientSecret, transactionID string, err error) {
	body := map[string]interface{}{"shippingAddress": addr}

	var resp checkoutResponse
	if err := a.do(ctx, http.MethodPost, "/api/checkout", body, &resp); err != nil {
		return "", "", err
	}
	return resp.ClientSecret, resp.TransactionID, nil
}

func (a *API) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := a.do(ctx, http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *API) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := a.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		msg := apiErr.Error
		if msg == "" {
			msg = apiErr.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("%w: %s", errs.FromStatus(resp.StatusCode), msg)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
