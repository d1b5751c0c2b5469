package pages

import (
	"github.com/playwright-community/playwright-go"

	"github.com/amazona/e2e/internal/locator"
)

// Orders is the order history page and its detail view
type Orders struct {
	*Base
}

// NewOrders returns the orders page object
func NewOrders(b *Base) *Orders {
	return &Orders{Base: b}
}

func (o *Orders) Rows() *locator.Handle {
	return o.handle("order rows",
		locator.CSS(`[data-test="order-row"], .order-row, table tbody tr, .order-list .order`))
}

func (o *Orders) DetailsButton(row playwright.Locator) *locator.Handle {
	return o.within(row, "order details",
		locator.Role("link", "view details|details|view"),
		locator.CSS(`a:has-text("Details"), button:has-text("Details")`),
	)
}

func (o *Orders) Items() *locator.Handle {
	return o.handle("order items", locator.CSS(`[data-test="order-item"], .order-item, .order-details .item`))
}

func (o *Orders) ShippingAddress() *locator.Handle {
	return o.handle("shipping address", locator.CSS(`[data-test="shipping-address"], .shipping-address, #shipping-address`))
}

func (o *Orders) Status() *locator.Handle {
	return o.handle("order status",
		locator.CSS(`[data-test="order-status"], .status`),
		locator.Text("status"),
	)
}

// Open navigates to the order history
func (o *Orders) Open() error {
	return o.Goto(o.cfg.Fixtures.Pages.Orders)
}

// OpenOrderDetails opens the details of order row i
func (o *Orders) OpenOrderDetails(i int) error {
	row, err := o.Rows().Nth(i)
	if err != nil {
		return err
	}
	if err := o.DetailsButton(row).Click(); err != nil {
		return err
	}
	return o.WaitForNetworkIdle()
}

// AssertOrdersVisible expects at least one order row
func (o *Orders) AssertOrdersVisible() error {
	return o.expectCount(o.Rows(), "not empty", func(n int) bool { return n > 0 })
}

// AssertOrderDetailsVisible expects items, shipping address and status
func (o *Orders) AssertOrderDetailsVisible() error {
	for _, h := range []*locator.Handle{o.Items(), o.ShippingAddress(), o.Status()} {
		if err := o.expectVisible(h); err != nil {
			return err
		}
	}
	return nil
}
