package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/models"
	"github.com/amazona/e2e/internal/services"
)

// ProductHandler serves the catalogue
type ProductHandler struct {
	catalog  services.CatalogService
	envelope Envelope
	log      *zap.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog services.CatalogService, envelope Envelope, log *zap.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, envelope: envelope, log: log}
}

// List handles GET /api/products and /api/products/search. Query parameters
// query, category, brand, min, max, rating and order narrow the listing.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := services.ProductFilter{
		Query:     q.Get("query"),
		Category:  q.Get("category"),
		Brand:     q.Get("brand"),
		MinPrice:  priceParam(q.Get("min")),
		MaxPrice:  priceParam(q.Get("max")),
		MinRating: floatParam(q.Get("rating")),
		Order:     q.Get("order"),
	}
	if filter.Query == "" {
		filter.Query = q.Get("name")
	}

	products, err := h.catalog.ListProducts(filter)
	if err != nil {
		sendError(w, h.log, err)
		return
	}

	list := make([]interface{}, 0, len(products))
	for _, p := range products {
		list = append(list, productJSON(p))
	}
	sendJSON(w, h.log, http.StatusOK, h.envelope.wrap("products", list, nil))
}

// Get handles GET /api/products/{id}; the id may also be a slug
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, h.log, err)
		return
	}
	sendJSON(w, h.log, http.StatusOK, h.envelope.wrap("product", productJSON(*product), nil))
}

func priceParam(v string) int64 {
	return models.Cents(floatParam(v))
}

func floatParam(v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
