package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/config"
	"github.com/amazona/e2e/internal/models"
	"github.com/amazona/e2e/internal/services"
)

// OrderHandler serves order placement and history
type OrderHandler struct {
	orders   services.OrderService
	envelope Envelope
	log      *zap.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders services.OrderService, envelope Envelope, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, envelope: envelope, log: log}
}

// orderRequest accepts the harness shape (items, address, payment) and the
// Amazona shape (orderItems, shippingAddress, paymentMethod)
type orderRequest struct {
	Items           []lineRequest   `json:"items"`
	OrderItems      []lineRequest   `json:"orderItems"`
	Address         *config.Address `json:"address"`
	ShippingAddress *config.Address `json:"shippingAddress"`
	Payment         config.Card     `json:"payment"`
	PaymentMethod   string          `json:"paymentMethod"`
	DeliveryOption  string          `json:"deliveryOption"`
}

func (req orderRequest) input() services.PlaceOrderInput {
	in := services.PlaceOrderInput{
		PaymentMethod: req.PaymentMethod,
		Card: models.Card{
			Number: req.Payment.Number,
			Expiry: req.Payment.Expiry,
			CVV:    req.Payment.CVV,
			Name:   req.Payment.Name,
		},
	}
	for _, item := range append(req.Items, req.OrderItems...) {
		in.Lines = append(in.Lines, item.line())
	}

	addr := req.Address
	if addr == nil {
		addr = req.ShippingAddress
	}
	if addr != nil {
		in.Address = models.ShippingAddress{
			FullName:   addr.FullName,
			Address:    addr.Address,
			City:       addr.City,
			PostalCode: addr.PostalCode,
			Country:    addr.Country,
		}
	}
	if in.PaymentMethod == "" && !in.Card.Empty() {
		in.PaymentMethod = "Card"
	}
	return in
}

// Create handles POST /api/orders and POST /api/checkout. A declined card
// answers 402 with the failed order's id.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decode(w, r, &req); err != nil {
		sendError(w, h.log, err)
		return
	}

	order, err := h.orders.PlaceOrder(currentUser(r).ID, req.input())
	if errors.Is(err, models.ErrInvalidCard) && order != nil {
		sendJSON(w, h.log, http.StatusPaymentRequired, ErrorResponse{
			Error:   http.StatusText(http.StatusPaymentRequired),
			Message: "payment failed: " + err.Error(),
			OrderID: order.ID,
		})
		return
	}
	if err != nil {
		sendError(w, h.log, err)
		return
	}
	sendJSON(w, h.log, http.StatusCreated, h.envelope.wrap("order", orderJSON(order), nil))
}

// Get handles GET /api/orders/{id}; the id may also be the order reference
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(currentUser(r).ID, mux.Vars(r)["id"])
	if err != nil {
		sendError(w, h.log, err)
		return
	}
	sendJSON(w, h.log, http.StatusOK, h.envelope.wrap("order", orderJSON(order), nil))
}

// Mine handles GET /api/orders/mine
func (h *OrderHandler) Mine(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(currentUser(r).ID)
	if err != nil {
		sendError(w, h.log, err)
		return
	}

	list := make([]interface{}, 0, len(orders))
	for i := range orders {
		list = append(list, orderJSON(&orders[i]))
	}
	sendJSON(w, h.log, http.StatusOK, h.envelope.wrap("orders", list, nil))
}
