package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Card is a payment card submitted with an order
type Card struct {
	Number string
	Expiry string
	CVV    string
	Name   string
}

// ErrInvalidCard is wrapped by every card validation failure
var ErrInvalidCard = errors.New("invalid card")

// Empty reports whether no card was submitted
func (c Card) Empty() bool {
	return c.Number == "" && c.Expiry == "" && c.CVV == ""
}

// Validate checks the number with the Luhn algorithm, the MM/YY expiry
// against now and the CVV length.
func (c Card) Validate(now time.Time) error {
	number := strings.NewReplacer(" ", "", "-", "").Replace(c.Number)
	if len(number) < 12 || len(number) > 19 || !digits(number) {
		return fmt.Errorf("%w: card number is malformed", ErrInvalidCard)
	}
	if !luhn(number) {
		return fmt.Errorf("%w: card number failed checksum", ErrInvalidCard)
	}

	month, year, err := parseExpiry(c.Expiry)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCard, err)
	}
	// A card is valid through the last day of its expiry month.
	expires := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	if !now.Before(expires) {
		return fmt.Errorf("%w: card expired %s", ErrInvalidCard, c.Expiry)
	}

	if (len(c.CVV) != 3 && len(c.CVV) != 4) || !digits(c.CVV) {
		return fmt.Errorf("%w: cvv is malformed", ErrInvalidCard)
	}
	return nil
}

// Last4 returns the last four digits of the number
func (c Card) Last4() string {
	if len(c.Number) < 4 {
		return c.Number
	}
	return c.Number[len(c.Number)-4:]
}

func parseExpiry(expiry string) (int, int, error) {
	mm, yy, ok := strings.Cut(strings.TrimSpace(expiry), "/")
	if !ok {
		return 0, 0, fmt.Errorf("expiry %q is not MM/YY", expiry)
	}
	month, err := strconv.Atoi(mm)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("expiry month %q is invalid", mm)
	}
	year, err := strconv.Atoi(yy)
	if err != nil || year < 0 {
		return 0, 0, fmt.Errorf("expiry year %q is invalid", yy)
	}
	if year < 100 {
		year += 2000
	}
	return month, year, nil
}

func luhn(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
