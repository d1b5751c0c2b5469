package pages

import (
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/config"
)

// Set bundles every page object bound to the same browser page
type Set struct {
	*Base
	Home     *Home
	Product  *Product
	Cart     *Cart
	Checkout *Checkout
	Login    *Login
	Register *Register
	Orders   *Orders
	Profile  *Profile
}

// NewSet builds all page objects for page
func NewSet(page playwright.Page, cfg config.Config, log *zap.Logger) *Set {
	b := NewBase(page, cfg, log)
	return &Set{
		Base:     b,
		Home:     NewHome(b),
		Product:  NewProduct(b),
		Cart:     NewCart(b),
		Checkout: NewCheckout(b),
		Login:    NewLogin(b),
		Register: NewRegister(b),
		Orders:   NewOrders(b),
		Profile:  NewProfile(b),
	}
}
