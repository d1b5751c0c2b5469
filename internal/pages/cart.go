package pages

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/amazona/e2e/internal/locator"
)

// Cart is the shopping cart page
type Cart struct {
	*Base
}

// NewCart returns the cart page object
func NewCart(b *Base) *Cart {
	return &Cart{Base: b}
}

func (c *Cart) Items() *locator.Handle {
	return c.handle("cart items", locator.CSS(`[data-test="cart-item"], .cart-item, .row:has([class*="cart"])`))
}

// Row waits for cart row i
func (c *Cart) Row(i int) (playwright.Locator, error) {
	return c.Items().Nth(i)
}

func (c *Cart) IncreaseButton(row playwright.Locator) *locator.Handle {
	return c.within(row, "increase quantity",
		locator.Role("button", `\+|increase`),
		locator.CSS(`button:has-text("+"), [data-test="inc"]`),
	)
}

func (c *Cart) DecreaseButton(row playwright.Locator) *locator.Handle {
	return c.within(row, "decrease quantity",
		locator.Role("button", `-|decrease`),
		locator.CSS(`button:has-text("-"), [data-test="dec"]`),
	)
}

func (c *Cart) RemoveButton(row playwright.Locator) *locator.Handle {
	return c.within(row, "remove item",
		locator.Role("button", "remove|delete"),
		locator.CSS(`button:has-text("Remove"), .remove, [data-test="remove"]`),
	)
}

func (c *Cart) QuantityInput(row playwright.Locator) *locator.Handle {
	return c.within(row, "quantity",
		locator.Role("spinbutton", ""),
		locator.CSS(`input[type="number"], select[name*="qty" i]`),
	)
}

func (c *Cart) Subtotal() *locator.Handle {
	return c.handle("subtotal",
		locator.CSS(`[data-test="cart-subtotal"], #subtotal`),
		locator.Text("subtotal"),
	)
}

func (c *Cart) Total() *locator.Handle {
	return c.handle("total",
		locator.CSS(`[data-test="cart-total"], #total`),
		locator.Text("total"),
	)
}

func (c *Cart) EmptyMessage() *locator.Handle {
	return c.handle("empty cart message",
		locator.Text(`cart is empty|no items in cart`),
		locator.CSS(`[data-test="cart-empty"], .alert-info`),
	)
}

func (c *Cart) CheckoutButton() *locator.Handle {
	return c.handle("checkout button",
		locator.Role("button", "proceed to checkout|checkout"),
		locator.CSS(`a[href*="shipping"], a[href*="signin"]`),
	)
}

// Open navigates to the cart
func (c *Cart) Open() error {
	return c.Goto(c.cfg.Fixtures.Pages.Cart)
}

// AssertItemCountAtLeast expects at least n rows, and never fewer than one
func (c *Cart) AssertItemCountAtLeast(n int) error {
	want := max(n, 1)
	return c.expectCount(c.Items(), fmt.Sprintf("at least %d", want), func(got int) bool { return got >= want })
}

// AssertSubtotalExists expects a visible subtotal
func (c *Cart) AssertSubtotalExists() error {
	return c.expectVisible(c.Subtotal())
}

// ProceedToCheckout clicks the checkout control
func (c *Cart) ProceedToCheckout() error {
	if err := c.CheckoutButton().Click(); err != nil {
		return err
	}
	return c.WaitForNetworkIdle()
}

func (c *Cart) clickInFirstRow(button func(playwright.Locator) *locator.Handle) error {
	row, err := c.Row(0)
	if err != nil {
		return err
	}
	if err := button(row).Click(); err != nil {
		return err
	}
	return c.WaitForNetworkIdle()
}

// IncreaseFirstItem bumps the quantity of the first row
func (c *Cart) IncreaseFirstItem() error {
	return c.clickInFirstRow(c.IncreaseButton)
}

// DecreaseFirstItem lowers the quantity of the first row
func (c *Cart) DecreaseFirstItem() error {
	return c.clickInFirstRow(c.DecreaseButton)
}

// RemoveFirstItem removes the first row
func (c *Cart) RemoveFirstItem() error {
	return c.clickInFirstRow(c.RemoveButton)
}

// Quantity reads the quantity of row i
func (c *Cart) Quantity(i int) (int, error) {
	row, err := c.Row(i)
	if err != nil {
		return 0, err
	}
	v, err := c.QuantityInput(row).Value()
	if err != nil {
		return 0, err
	}
	qty, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("parse quantity %q: %w", v, err)
	}
	return qty, nil
}

// AssertCartEmpty expects no rows and a visible empty-state message
func (c *Cart) AssertCartEmpty() error {
	items := c.Items()
	empty := c.EmptyMessage()
	return c.eventually("cart is empty", func() error {
		if n := items.Count(); n != 0 {
			return fmt.Errorf("cart still has %d items", n)
		}
		if !empty.Visible() {
			return fmt.Errorf("%s is not visible", empty)
		}
		return nil
	})
}

// AssertCheckoutDisabled passes when the checkout control is absent,
// disabled, or hidden
func (c *Cart) AssertCheckoutDisabled() error {
	btn := c.CheckoutButton()
	if !btn.Present() {
		return nil
	}
	disabledWindow := min(2*time.Second, c.cfg.Timeouts.Expect)
	err := c.eventuallyWithin(disabledWindow, "checkout disabled", func() error {
		loc, _, err := btn.Match()
		if err != nil {
			return nil
		}
		disabled, err := loc.First().IsDisabled()
		if err != nil {
			return err
		}
		if !disabled {
			return fmt.Errorf("%s is enabled", btn)
		}
		return nil
	})
	if err == nil {
		return nil
	}
	return c.expectHidden(btn)
}
