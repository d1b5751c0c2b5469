package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/amazona/e2e/internal/models"
)

// ProductRepository defines the interface for catalogue persistence
type ProductRepository interface {
	SeedProducts(products []models.Product) error
	ListProducts() ([]models.Product, error)
	GetProduct(ref string) (*models.Product, error)
}

// Sort orders accepted by ProductFilter
const (
	SortLowest   = "lowest"
	SortHighest  = "highest"
	SortTopRated = "toprated"
	SortNewest   = "newest"
)

// ProductFilter narrows and orders a catalogue listing. Zero values do not
// filter.
type ProductFilter struct {
	Query     string
	Category  string
	Brand     string
	MinPrice  int64
	MaxPrice  int64
	MinRating float64
	Order     string
}

// CatalogService serves the product catalogue
type CatalogService interface {
	ListProducts(filter ProductFilter) ([]models.Product, error)
	GetProduct(ref string) (*models.Product, error)
}

// CatalogServiceImpl implements CatalogService
type CatalogServiceImpl struct {
	products ProductRepository
}

// NewCatalogService creates a new catalogue service
func NewCatalogService(products ProductRepository) CatalogService {
	return &CatalogServiceImpl{
		products: products,
	}
}

// ListProducts returns the products matching the filter
func (s *CatalogServiceImpl) ListProducts(filter ProductFilter) ([]models.Product, error) {
	all, err := s.products.ListProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	matched := make([]models.Product, 0, len(all))
	for _, p := range all {
		if filter.matches(p) {
			matched = append(matched, p)
		}
	}

	switch filter.Order {
	case SortLowest:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case SortHighest:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	case SortTopRated:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Rating > matched[j].Rating })
	case SortNewest:
		// Seed order is insertion order
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}
	return matched, nil
}

// GetProduct retrieves a product by id or slug
func (s *CatalogServiceImpl) GetProduct(ref string) (*models.Product, error) {
	p, err := s.products.GetProduct(ref)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

func (f ProductFilter) matches(p models.Product) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Query)) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
		return false
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	return p.Rating >= f.MinRating
}
