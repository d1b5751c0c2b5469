package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/config"
	"github.com/amazona/e2e/internal/models"
	"github.com/amazona/e2e/internal/services"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	OrderID string `json:"orderId,omitempty"`
}

var (
	errBadRequest   = errors.New("malformed request body")
	errUnauthorized = errors.New("authorization token required")
)

// Envelope shapes response bodies. Flat returns entities at the root the way
// Amazona does, nested keys them by name and data wraps them in "data".
type Envelope string

// wrap places v in the envelope. extra keys (such as token) sit next to the
// entity fields, or next to the named entity when nested.
func (e Envelope) wrap(name string, v interface{}, extra map[string]interface{}) interface{} {
	switch e {
	case config.EnvelopeNested:
		body := map[string]interface{}{name: v}
		for k, val := range extra {
			body[k] = val
		}
		return body
	case config.EnvelopeData:
		return map[string]interface{}{"data": merge(v, extra)}
	default:
		return merge(v, extra)
	}
}

func merge(v interface{}, extra map[string]interface{}) interface{} {
	m, ok := v.(map[string]interface{})
	if !ok || len(extra) == 0 {
		return v
	}
	for k, val := range extra {
		m[k] = val
	}
	return m
}

// sendJSON writes v with the given status
func sendJSON(w http.ResponseWriter, log *zap.Logger, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("error encoding response", zap.Error(err))
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// sendError maps a domain error to its status. Unexpected errors are logged
// and reported without detail.
func sendError(w http.ResponseWriter, log *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
		sendErrorResponse(w, "internal server error", status)
		return
	}
	sendErrorResponse(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, models.ErrMissingFields),
		errors.Is(err, models.ErrInvalidEmail),
		errors.Is(err, models.ErrEmptyOrder),
		errors.Is(err, models.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, errUnauthorized),
		errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrInvalidCard):
		return http.StatusPaymentRequired
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrOutOfStock):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into v
func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		return errBadRequest
	}
	return nil
}

func userJSON(u *models.User) map[string]interface{} {
	return map[string]interface{}{
		"_id":       u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"isAdmin":   u.IsAdmin,
		"createdAt": u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func productJSON(p models.Product) map[string]interface{} {
	return map[string]interface{}{
		"_id":          p.ID,
		"name":         p.Name,
		"slug":         p.Slug,
		"category":     p.Category,
		"brand":        p.Brand,
		"image":        p.Image,
		"description":  p.Description,
		"price":        models.Dollars(p.Price),
		"countInStock": p.CountInStock,
		"rating":       p.Rating,
		"numReviews":   p.NumReviews,
	}
}

func cartJSON(c *models.Cart) map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, map[string]interface{}{
			"product": item.ProductID,
			"name":    item.Name,
			"price":   models.Dollars(item.Price),
			"qty":     item.Qty,
		})
	}
	return map[string]interface{}{
		"user":       c.UserID,
		"cartItems":  items,
		"itemsCount": c.Count(),
		"itemsPrice": models.Dollars(c.Subtotal()),
	}
}

func orderJSON(o *models.Order) map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, map[string]interface{}{
			"product": item.ProductID,
			"name":    item.Name,
			"price":   models.Dollars(item.Price),
			"qty":     item.Qty,
		})
	}
	body := map[string]interface{}{
		"_id":        o.ID,
		"reference":  o.Reference,
		"user":       o.UserID,
		"orderItems": items,
		"shippingAddress": map[string]interface{}{
			"fullName":   o.ShippingAddress.FullName,
			"address":    o.ShippingAddress.Address,
			"city":       o.ShippingAddress.City,
			"postalCode": o.ShippingAddress.PostalCode,
			"country":    o.ShippingAddress.Country,
		},
		"paymentMethod": o.PaymentMethod,
		"itemsPrice":    models.Dollars(o.ItemsPrice),
		"taxPrice":      models.Dollars(o.TaxPrice),
		"shippingPrice": models.Dollars(o.ShippingPrice),
		"totalPrice":    models.Dollars(o.TotalPrice),
		"status":        string(o.Status),
		"isPaid":        o.IsPaid(),
		"createdAt":     o.CreatedAt.UTC().Format(time.RFC3339),
	}
	if o.PaidAt != nil {
		body["paidAt"] = o.PaidAt.UTC().Format(time.RFC3339)
	}
	if o.FailureReason != "" {
		body["failureReason"] = o.FailureReason
	}
	return body
}
