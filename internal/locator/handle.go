package locator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/amazona/e2e/internal/wait"
)

// ErrNotFound is wrapped when no strategy of a handle matched in time
var ErrNotFound = errors.New("element not found")

// Options bounds the waiting done by a handle
type Options struct {
	Timeout  time.Duration
	Interval time.Duration
}

// DefaultOptions matches the default action timeout of the suite
func DefaultOptions() Options {
	return Options{Timeout: 10 * time.Second, Interval: 100 * time.Millisecond}
}

// Handle is a named locator intent made of ordered alternative strategies
type Handle struct {
	scope      Scope
	opts       Options
	name       string
	strategies []Strategy
}

// New builds a handle. Nothing is evaluated until the handle is queried.
func New(scope Scope, opts Options, name string, strategies ...Strategy) *Handle {
	if opts.Timeout <= 0 || opts.Interval <= 0 {
		def := DefaultOptions()
		if opts.Timeout <= 0 {
			opts.Timeout = def.Timeout
		}
		if opts.Interval <= 0 {
			opts.Interval = def.Interval
		}
	}
	return &Handle{scope: scope, opts: opts, name: name, strategies: strategies}
}

// Name returns the human readable intent
func (h *Handle) Name() string {
	return h.name
}

// Strategies returns the strategies in evaluation order
func (h *Handle) Strategies() []Strategy {
	return append([]Strategy(nil), h.strategies...)
}

// WithTimeout returns a copy of the handle waiting at most d
func (h *Handle) WithTimeout(d time.Duration) *Handle {
	c := *h
	c.opts.Timeout = d
	return &c
}

func (h *Handle) String() string {
	parts := make([]string, len(h.strategies))
	for i, s := range h.strategies {
		parts[i] = s.String()
	}
	return fmt.Sprintf("%s (%s)", h.name, strings.Join(parts, " | "))
}

// Match evaluates the strategies once, in order, and returns the locator of
// the first one with at least one element. Strategies after the first match
// are not evaluated.
func (h *Handle) Match() (playwright.Locator, Strategy, error) {
	var errs []error
	for _, s := range h.strategies {
		loc := h.scope.Find(s)
		n, err := loc.Count()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s, err))
			continue
		}
		if n > 0 {
			return loc, s, nil
		}
	}
	if len(errs) > 0 {
		return nil, Strategy{}, fmt.Errorf("%w: %s: %w", ErrNotFound, h, errors.Join(errs...))
	}
	return nil, Strategy{}, fmt.Errorf("%w: %s", ErrNotFound, h)
}

// Count returns the number of elements of the winning strategy, 0 if none
func (h *Handle) Count() int {
	loc, _, err := h.Match()
	if err != nil {
		return 0
	}
	n, err := loc.Count()
	if err != nil {
		return 0
	}
	return n
}

// Present reports whether any strategy currently matches
func (h *Handle) Present() bool {
	_, _, err := h.Match()
	return err == nil
}

// Visible reports whether the first element of the winning strategy is visible
func (h *Handle) Visible() bool {
	loc, _, err := h.Match()
	if err != nil {
		return false
	}
	ok, err := loc.First().IsVisible()
	return err == nil && ok
}

// Resolve waits until some strategy matches and returns its locator
func (h *Handle) Resolve() (playwright.Locator, error) {
	var found playwright.Locator
	err := wait.For(h.opts.Timeout, h.opts.Interval, func() error {
		loc, _, err := h.Match()
		if err != nil {
			return err
		}
		found = loc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// First waits for a match and returns its first element
func (h *Handle) First() (playwright.Locator, error) {
	loc, err := h.Resolve()
	if err != nil {
		return nil, err
	}
	return loc.First(), nil
}

// Nth waits until the winning strategy has more than i elements and returns
// element i.
func (h *Handle) Nth(i int) (playwright.Locator, error) {
	var found playwright.Locator
	err := wait.For(h.opts.Timeout, h.opts.Interval, func() error {
		loc, _, err := h.Match()
		if err != nil {
			return err
		}
		n, err := loc.Count()
		if err != nil {
			return err
		}
		if n <= i {
			return fmt.Errorf("%w: %s: want index %d, have %d elements", ErrNotFound, h, i, n)
		}
		found = loc.Nth(i)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// All waits for a match and returns every element of the winning strategy
func (h *Handle) All() ([]playwright.Locator, error) {
	loc, err := h.Resolve()
	if err != nil {
		return nil, err
	}
	return loc.All()
}

// Click clicks the first matching element
func (h *Handle) Click() error {
	el, err := h.First()
	if err != nil {
		return err
	}
	if err := el.Click(); err != nil {
		return fmt.Errorf("click %s: %w", h.name, err)
	}
	return nil
}

// Fill types value into the first matching element
func (h *Handle) Fill(value string) error {
	el, err := h.First()
	if err != nil {
		return err
	}
	if err := el.Fill(value); err != nil {
		return fmt.Errorf("fill %s: %w", h.name, err)
	}
	return nil
}

// Check ticks the first matching checkbox or radio
func (h *Handle) Check() error {
	el, err := h.First()
	if err != nil {
		return err
	}
	if err := el.Check(); err != nil {
		return fmt.Errorf("check %s: %w", h.name, err)
	}
	return nil
}

// Select picks an option by visible label in the first matching select
func (h *Handle) Select(label string) error {
	el, err := h.First()
	if err != nil {
		return err
	}
	if _, err := el.SelectOption(playwright.SelectOptionValues{Labels: &[]string{label}}); err != nil {
		return fmt.Errorf("select %q in %s: %w", label, h.name, err)
	}
	return nil
}

// Text returns the inner text of the first matching element
func (h *Handle) Text() (string, error) {
	el, err := h.First()
	if err != nil {
		return "", err
	}
	text, err := el.InnerText()
	if err != nil {
		return "", fmt.Errorf("read text of %s: %w", h.name, err)
	}
	return text, nil
}

// Value returns the current input value of the first matching element
func (h *Handle) Value() (string, error) {
	el, err := h.First()
	if err != nil {
		return "", err
	}
	v, err := el.InputValue()
	if err != nil {
		return "", fmt.Errorf("read value of %s: %w", h.name, err)
	}
	return v, nil
}

// Attribute returns an attribute of the first matching element
func (h *Handle) Attribute(name string) (string, error) {
	el, err := h.First()
	if err != nil {
		return "", err
	}
	v, err := el.GetAttribute(name)
	if err != nil {
		return "", fmt.Errorf("read %s of %s: %w", name, h.name, err)
	}
	return v, nil
}

// Disabled reports whether the first matching element is disabled
func (h *Handle) Disabled() (bool, error) {
	el, err := h.First()
	if err != nil {
		return false, err
	}
	d, err := el.IsDisabled()
	if err != nil {
		return false, fmt.Errorf("read disabled state of %s: %w", h.name, err)
	}
	return d, nil
}

// WaitVisible waits until the first matching element is visible
func (h *Handle) WaitVisible() error {
	return wait.For(h.opts.Timeout, h.opts.Interval, func() error {
		if h.Visible() {
			return nil
		}
		return fmt.Errorf("%s is not visible", h)
	})
}

// WaitAbsent waits until no strategy matches any element
func (h *Handle) WaitAbsent() error {
	return wait.For(h.opts.Timeout, h.opts.Interval, func() error {
		if n := h.Count(); n > 0 {
			return fmt.Errorf("%s still has %d elements", h, n)
		}
		return nil
	})
}
