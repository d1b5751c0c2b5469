package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/services"
)

// CartHandler serves the authenticated user's cart
type CartHandler struct {
	orders   services.OrderService
	envelope Envelope
	log      *zap.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(orders services.OrderService, envelope Envelope, log *zap.Logger) *CartHandler {
	return &CartHandler{orders: orders, envelope: envelope, log: log}
}

// lineRequest accepts both {productId, qty} and {id, quantity}
type lineRequest struct {
	ProductID string `json:"productId"`
	Product   string `json:"product"`
	ID        string `json:"id"`
	Qty       *int   `json:"qty"`
	Quantity  *int   `json:"quantity"`
}

func (l lineRequest) line() services.OrderLine {
	line := services.OrderLine{ProductRef: l.ProductID, Qty: 1}
	if line.ProductRef == "" {
		line.ProductRef = l.Product
	}
	if line.ProductRef == "" {
		line.ProductRef = l.ID
	}
	switch {
	case l.Qty != nil:
		line.Qty = *l.Qty
	case l.Quantity != nil:
		line.Qty = *l.Quantity
	}
	return line
}

// Add handles POST /api/cart
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req lineRequest
	if err := decode(w, r, &req); err != nil {
		sendError(w, h.log, err)
		return
	}
	line := req.line()
	if line.ProductRef == "" {
		sendErrorResponse(w, "productId is required", http.StatusBadRequest)
		return
	}

	cart, err := h.orders.AddToCart(currentUser(r).ID, line.ProductRef, line.Qty)
	if err != nil {
		sendError(w, h.log, err)
		return
	}
	sendJSON(w, h.log, http.StatusCreated, h.envelope.wrap("cart", cartJSON(cart), nil))
}

// Get handles GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.orders.GetCart(currentUser(r).ID)
	if err != nil {
		sendError(w, h.log, err)
		return
	}
	sendJSON(w, h.log, http.StatusOK, h.envelope.wrap("cart", cartJSON(cart), nil))
}
