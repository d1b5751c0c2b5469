package models

import (
	"errors"
	"fmt"
	"strings"
)

// Product is a catalogue entry. Price is in cents.
type Product struct {
	ID           string
	Name         string
	Slug         string
	Category     string
	Brand        string
	Image        string
	Description  string
	Price        int64
	CountInStock int
	Rating       float64
	NumReviews   int
}

// ErrOutOfStock is returned when a cart asks for more than the stock holds
var ErrOutOfStock = errors.New("product is out of stock")

// InStock reports whether qty units can be sold
func (p Product) InStock(qty int) bool {
	return qty > 0 && p.CountInStock >= qty
}

// Matches reports whether ref names the product by id or slug
func (p Product) Matches(ref string) bool {
	return p.ID == ref || strings.EqualFold(p.Slug, ref)
}

// SeedProducts returns the catalogue served by a fresh store. The ids line up
// with the default product fixtures.
func SeedProducts() []Product {
	return []Product{
		{
			ID: "prod-001", Name: "Dell XPS 13 Laptop", Slug: "dell-xps-13-laptop",
			Category: "Electronics", Brand: "Dell", Image: "/images/p1.jpg",
			Description: "13 inch ultrabook with an edge to edge display.",
			Price:       89999, CountInStock: 10, Rating: 4.5, NumReviews: 12,
		},
		{
			ID: "prod-instock-001", Name: "Lenovo IdeaPad Laptop", Slug: "lenovo-ideapad-laptop",
			Category: "Electronics", Brand: "Lenovo", Image: "/images/p2.jpg",
			Description: "Everyday laptop with a long battery life.",
			Price:       54900, CountInStock: 25, Rating: 4.1, NumReviews: 8,
		},
		{
			ID: "prod-outofstock-001", Name: "Apple MacBook Pro Laptop", Slug: "apple-macbook-pro-laptop",
			Category: "Electronics", Brand: "Apple", Image: "/images/p3.jpg",
			Description: "Pro laptop, currently sold out.",
			Price:       199900, CountInStock: 0, Rating: 4.8, NumReviews: 30,
		},
		{
			ID: "prod-004", Name: "The Go Programming Language", Slug: "the-go-programming-language",
			Category: "Books", Brand: "Addison-Wesley", Image: "/images/p4.jpg",
			Description: "Introduction to Go by Donovan and Kernighan.",
			Price:       3499, CountInStock: 40, Rating: 4.7, NumReviews: 21,
		},
		{
			ID: "prod-005", Name: "Slim Fit Shirt", Slug: "slim-fit-shirt",
			Category: "Fashion", Brand: "Nike", Image: "/images/p5.jpg",
			Description: "Cotton shirt in a slim fit.",
			Price:       3999, CountInStock: 18, Rating: 3.9, NumReviews: 5,
		},
		{
			ID: "prod-006", Name: "Running Shoes", Slug: "running-shoes",
			Category: "Fashion", Brand: "Adidas", Image: "/images/p6.jpg",
			Description: "Light running shoes with a cushioned sole.",
			Price:       12000, CountInStock: 7, Rating: 4.3, NumReviews: 14,
		},
	}
}

// String renders the product for logs
func (p Product) String() string {
	return fmt.Sprintf("%s (%s, %s)", p.Name, p.ID, FormatCents(p.Price))
}
