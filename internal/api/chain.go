package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/config"
)

// CartItem is one line added to a cart or an order
type CartItem struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// OrderRequest is the payload of an order or checkout call
type OrderRequest struct {
	Items          []CartItem     `json:"items"`
	Address        config.Address `json:"address"`
	Payment        config.Card    `json:"payment"`
	DeliveryOption string         `json:"deliveryOption,omitempty"`
}

func join(base, id string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(id)
}

// GetUser fetches a user by id, or the current user ("me") when id is empty
func (h *Harness) GetUser(ctx context.Context, s Session, id string) (*Response, map[string]interface{}, error) {
	if id == "" {
		id = "me"
	}
	resp, err := h.client.Get(ctx, join(h.endpoints.Users, id), s.Headers(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("get user: %w", err)
	}
	return resp, ExtractEntity(resp.JSON, "user"), nil
}

// ListProducts fetches the catalogue, reading products, data or the root
// array
func (h *Harness) ListProducts(ctx context.Context, s Session) (*Response, []interface{}, error) {
	resp, err := h.client.Get(ctx, h.endpoints.Products, s.Headers(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("list products: %w", err)
	}
	return resp, ExtractList(resp.JSON, "products"), nil
}

// GetProduct fetches one product by id
func (h *Harness) GetProduct(ctx context.Context, s Session, id string) (*Response, map[string]interface{}, error) {
	resp, err := h.client.Get(ctx, join(h.endpoints.Products, id), s.Headers(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("get product: %w", err)
	}
	return resp, ExtractEntity(resp.JSON, "product"), nil
}

// AddToCart adds qty of a product to the session's cart
func (h *Harness) AddToCart(ctx context.Context, s Session, productID string, qty int) (*Response, error) {
	resp, err := h.client.Post(ctx, h.endpoints.Cart, CartItem{ProductID: productID, Qty: qty}, s.Headers())
	if err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}
	return resp, nil
}

// CreateOrder posts an order, falling back to the checkout endpoint when the
// API has no orders endpoint. Any other refusal, a declined card included,
// is returned as is.
func (h *Harness) CreateOrder(ctx context.Context, s Session, req OrderRequest) (*Response, map[string]interface{}, error) {
	resp, err := h.client.Post(ctx, h.endpoints.Orders, req, s.Headers())
	if err != nil {
		return nil, nil, fmt.Errorf("create order: %w", err)
	}
	if resp.Status == http.StatusNotFound || resp.Status == http.StatusMethodNotAllowed {
		h.log.Info("orders endpoint missing, trying checkout",
			zap.Int("status", resp.Status),
			zap.String("fallback", h.endpoints.Checkout),
		)
		resp, err = h.client.Post(ctx, h.endpoints.Checkout, req, s.Headers())
		if err != nil {
			return nil, nil, fmt.Errorf("checkout: %w", err)
		}
	}
	return resp, ExtractEntity(resp.JSON, "order"), nil
}

// MyOrders lists the orders placed by the session's user
func (h *Harness) MyOrders(ctx context.Context, s Session) (*Response, []interface{}, error) {
	resp, err := h.client.Get(ctx, h.endpoints.Orders+"/mine", s.Headers(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("list orders: %w", err)
	}
	return resp, ExtractList(resp.JSON, "orders"), nil
}

// FirstProductID lists products and returns the id of the first one
func (h *Harness) FirstProductID(ctx context.Context, s Session) (string, error) {
	resp, products, err := h.ListProducts(ctx, s)
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", fmt.Errorf("list products: status %d", resp.Status)
	}
	if len(products) == 0 {
		return "", fmt.Errorf("list products: catalogue is empty")
	}
	id := ExtractID(products[0])
	if id == "" {
		return "", fmt.Errorf("list products: first product has no id")
	}
	return id, nil
}

// StatusText renders a status for messages
func StatusText(status int) string {
	return fmt.Sprintf("%d %s", status, http.StatusText(status))
}
