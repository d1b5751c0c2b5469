package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/amazona/e2e/internal/api"
	"github.com/amazona/e2e/internal/config"
)

// ErrChainFailed is wrapped by every failed chain step
var ErrChainFailed = errors.New("api chain failed")

// RunChain signs up a fresh user, logs in and reads the user back, checking
// that the email round-trips. With purchase set it then adds the first
// listed product to the cart and places an order with the fixture card.
// Progress is written to out, one line per step.
func RunChain(ctx context.Context, h *api.Harness, fixtures config.Fixtures, purchase bool, out io.Writer) error {
	session, err := h.SignupAndLogin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrChainFailed, err)
	}
	if !session.Valid() {
		return fmt.Errorf("%w: login for %s returned neither token nor user id", ErrChainFailed, session.Credentials.Email)
	}
	fmt.Fprintf(out, "signup+login  %s (id %s, token %t)\n", session.Credentials.Email, session.UserID, session.Token != "")

	resp, user, err := h.GetUser(ctx, session, session.UserID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrChainFailed, err)
	}
	if !resp.OK() {
		return fmt.Errorf("%w: get user: %s", ErrChainFailed, api.StatusText(resp.Status))
	}
	email := api.StringField(user, "email")
	if email != session.Credentials.Email {
		return fmt.Errorf("%w: get user returned email %q, want %q", ErrChainFailed, email, session.Credentials.Email)
	}
	fmt.Fprintf(out, "get user      %s (%s)\n", email, api.StatusText(resp.Status))

	if !purchase {
		return nil
	}

	productID, err := h.FirstProductID(ctx, session)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrChainFailed, err)
	}

	resp, err = h.AddToCart(ctx, session, productID, fixtures.Cart.DefaultQty)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrChainFailed, err)
	}
	if !resp.OK() {
		return fmt.Errorf("%w: add %s to cart: %s", ErrChainFailed, productID, api.StatusText(resp.Status))
	}
	fmt.Fprintf(out, "add to cart   %s x%d (%s)\n", productID, fixtures.Cart.DefaultQty, api.StatusText(resp.Status))

	resp, order, err := h.CreateOrder(ctx, session, api.OrderRequest{
		Items:          []api.CartItem{{ProductID: productID, Qty: fixtures.Cart.DefaultQty}},
		Address:        fixtures.Checkout.ValidAddress,
		Payment:        fixtures.Checkout.ValidCard,
		DeliveryOption: fixtures.Checkout.DeliveryOption,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrChainFailed, err)
	}
	if !resp.OK() {
		return fmt.Errorf("%w: create order: %s", ErrChainFailed, api.StatusText(resp.Status))
	}
	fmt.Fprintf(out, "create order  %s (%s)\n", api.ExtractID(order), api.StatusText(resp.Status))
	return nil
}
