package pages

import (
	"fmt"

	"github.com/amazona/e2e/internal/config"
	"github.com/amazona/e2e/internal/locator"
)

// Checkout covers the shipping, payment, promo and place-order steps
type Checkout struct {
	*Base
}

// NewCheckout returns the checkout page object
func NewCheckout(b *Base) *Checkout {
	return &Checkout{Base: b}
}

func (c *Checkout) FullNameInput() *locator.Handle {
	return c.handle("full name", locator.Label("full name|name"))
}

func (c *Checkout) AddressInput() *locator.Handle {
	return c.handle("address", locator.Label("address"))
}

func (c *Checkout) CityInput() *locator.Handle {
	return c.handle("city", locator.Label("city"))
}

func (c *Checkout) PostalCodeInput() *locator.Handle {
	return c.handle("postal code", locator.Label("postal|zip"))
}

func (c *Checkout) CountryInput() *locator.Handle {
	return c.handle("country", locator.Label("country"))
}

func (c *Checkout) ContinueButton() *locator.Handle {
	return c.handle("continue button", locator.Role("button", "continue|next|place order|pay"))
}

func (c *Checkout) ValidationError() *locator.Handle {
	return c.handle("validation error",
		locator.Role("alert", ""),
		locator.CSS(`.error, .invalid-feedback, [data-test="validation-error"]`),
	)
}

func (c *Checkout) PaymentMethodRadio(name string) *locator.Handle {
	return c.handle("payment method "+name, locator.Role("radio", quote(name)))
}

func (c *Checkout) CardNumberInput() *locator.Handle {
	return c.handle("card number",
		locator.Label("card number|number"),
		locator.CSS(`input[name*="card" i]`),
	)
}

func (c *Checkout) ExpiryInput() *locator.Handle {
	return c.handle("expiry",
		locator.Label("exp|expiry|expiration"),
		locator.CSS(`input[name*="exp" i]`),
	)
}

func (c *Checkout) CVVInput() *locator.Handle {
	return c.handle("cvv",
		locator.Label("cvv|cvc|security code"),
		locator.CSS(`input[name*="cvv" i], input[name*="cvc" i]`),
	)
}

func (c *Checkout) CardNameInput() *locator.Handle {
	return c.handle("name on card", locator.Label("name on card|cardholder|name"))
}

func (c *Checkout) PlaceOrderButton() *locator.Handle {
	return c.handle("place order button",
		locator.Role("button", "place order"),
		locator.CSS(`button[type="submit"]`),
	)
}

func (c *Checkout) SuccessMessage() *locator.Handle {
	return c.handle("order success",
		locator.Role("heading", "order placed|success|thank"),
		locator.CSS(`[data-test="order-success"], .alert-success`),
	)
}

func (c *Checkout) PromoCodeInput() *locator.Handle {
	return c.handle("promo code",
		locator.Label("promo|coupon"),
		locator.CSS(`input[name*="promo" i], input[name*="coupon" i]`),
	)
}

func (c *Checkout) ApplyPromoButton() *locator.Handle {
	return c.handle("apply promo button", locator.Role("button", "apply"))
}

func (c *Checkout) PromoSuccess() *locator.Handle {
	return c.handle("promo success",
		locator.Text("discount applied"),
		locator.CSS(`[data-test="promo-success"], .alert-success`),
	)
}

func (c *Checkout) PromoError() *locator.Handle {
	return c.handle("promo error",
		locator.Text("invalid promo|invalid code"),
		locator.CSS(`[data-test="promo-error"], .alert-danger`),
	)
}

func (c *Checkout) OrderSummary() *locator.Handle {
	return c.handle("order summary", locator.CSS(`[data-test="order-summary"], #order-summary, .order-summary`))
}

// FillShippingAddress fills the shipping form and continues. Empty fields of
// addr fall back to a generic sample address.
func (c *Checkout) FillShippingAddress(addr config.Address) error {
	fields := []struct {
		input    *locator.Handle
		value    string
		fallback string
	}{
		{c.FullNameInput(), addr.FullName, "John Test"},
		{c.AddressInput(), addr.Address, "1 Test St"},
		{c.CityInput(), addr.City, "Testville"},
		{c.PostalCodeInput(), addr.PostalCode, "12345"},
		{c.CountryInput(), addr.Country, "USA"},
	}
	for _, f := range fields {
		v := f.value
		if v == "" {
			v = f.fallback
		}
		if err := f.input.Fill(v); err != nil {
			return err
		}
	}
	return c.ContinueButton().Click()
}

// SubmitEmptyShipping continues without filling the form
func (c *Checkout) SubmitEmptyShipping() error {
	return c.ContinueButton().Click()
}

// SelectPayment picks a payment method when offered and continues
func (c *Checkout) SelectPayment(name string) error {
	if radio := c.PaymentMethodRadio(name); radio.Present() {
		if err := radio.Check(); err != nil {
			return err
		}
	}
	return c.ContinueButton().Click()
}

// ChooseCreditCard ticks a credit card payment option if there is one
func (c *Checkout) ChooseCreditCard() bool {
	radio := c.PaymentMethodRadio("credit").WithTimeout(c.cfg.Timeouts.Expect)
	return !c.steps.Optional("choose credit card", radio.Check).Skipped()
}

// FillCardDetails types a card into the payment form
func (c *Checkout) FillCardDetails(card config.Card) error {
	for _, f := range []struct {
		input *locator.Handle
		value string
	}{
		{c.CardNumberInput(), card.Number},
		{c.ExpiryInput(), card.Expiry},
		{c.CVVInput(), card.CVV},
		{c.CardNameInput(), card.Name},
	} {
		if err := f.input.Fill(f.value); err != nil {
			return err
		}
	}
	return nil
}

// HasCardForm reports whether card inputs are currently rendered
func (c *Checkout) HasCardForm() bool {
	return c.CardNumberInput().Present()
}

// ApplyPromo enters and applies a promo code when the form supports one
func (c *Checkout) ApplyPromo(code string) error {
	input := c.PromoCodeInput()
	if !input.Present() {
		c.log.Info("promo code input not rendered")
		return nil
	}
	if err := input.Fill(code); err != nil {
		return err
	}
	return c.ApplyPromoButton().Click()
}

// PlaceOrder submits the order
func (c *Checkout) PlaceOrder() error {
	if err := c.PlaceOrderButton().Click(); err != nil {
		return err
	}
	return c.WaitForNetworkIdle()
}

// AssertOrderSuccess expects the order confirmation
func (c *Checkout) AssertOrderSuccess() error {
	return c.expectVisible(c.SuccessMessage())
}

// AssertValidationError expects a visible error whose text matches pattern
func (c *Checkout) AssertValidationError(pattern string) error {
	errBox := c.ValidationError()
	if err := c.expectVisible(errBox); err != nil {
		return err
	}
	if pattern == "" {
		return nil
	}
	return c.expectText(errBox, pattern)
}

// AssertPromoFeedback checks the promo success or error message, when the
// page renders one
func (c *Checkout) AssertPromoFeedback(accepted bool) error {
	h := c.PromoError()
	if accepted {
		h = c.PromoSuccess()
	}
	if !h.Present() {
		return nil
	}
	return c.expectVisible(h)
}

// AssertSummaryVisible expects the summary to show subtotal, tax, shipping
// and total lines
func (c *Checkout) AssertSummaryVisible() error {
	summary := c.OrderSummary()
	if err := c.expectVisible(summary); err != nil {
		return err
	}
	for _, line := range []string{"subtotal", "tax", "shipping", "total"} {
		err := c.eventually("summary shows "+line, func() error {
			loc, _, err := summary.Match()
			if err != nil {
				return err
			}
			h := c.within(loc.First(), "summary "+line, locator.Text(line))
			if !h.Present() {
				return fmt.Errorf("no %s line", line)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
