// Package pages models the Amazona storefront as page objects. Accessors
// return lazy locator handles, actions perform one user operation and
// assertions poll until the expected outcome holds or the expect timeout
// passes.
package pages

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/config"
	"github.com/amazona/e2e/internal/locator"
	"github.com/amazona/e2e/internal/logging"
	"github.com/amazona/e2e/internal/step"
	"github.com/amazona/e2e/internal/wait"
)

// ErrAssertion is wrapped by every failed page assertion
var ErrAssertion = errors.New("assertion failed")

// Base holds what every page object shares: the page, the run configuration
// and the optional-step recorder.
type Base struct {
	page  playwright.Page
	cfg   config.Config
	log   *zap.Logger
	steps *step.Recorder
}

// NewBase binds page objects to one browser page
func NewBase(page playwright.Page, cfg config.Config, log *zap.Logger) *Base {
	log = logging.OrNop(log)
	return &Base{page: page, cfg: cfg, log: log, steps: step.NewRecorder(log)}
}

// Page returns the underlying browser page
func (b *Base) Page() playwright.Page { return b.page }

// Config returns the run configuration
func (b *Base) Config() config.Config { return b.cfg }

// Steps returns the recorder holding outcomes of best-effort steps
func (b *Base) Steps() *step.Recorder { return b.steps }

func (b *Base) actionOptions() locator.Options {
	return locator.Options{Timeout: b.cfg.Timeouts.Action, Interval: b.cfg.Timeouts.Poll}
}

func (b *Base) handle(name string, strategies ...locator.Strategy) *locator.Handle {
	return locator.New(locator.OnPage(b.page), b.actionOptions(), name, strategies...)
}

func (b *Base) within(root playwright.Locator, name string, strategies ...locator.Strategy) *locator.Handle {
	return locator.New(locator.Within(root), b.actionOptions(), name, strategies...)
}

// Goto navigates to a path relative to the base URL
func (b *Base) Goto(path string) error {
	url := b.cfg.URL(path)
	b.log.Debug("navigate", zap.String("url", url))
	if _, err := b.page.Goto(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// WaitForNetworkIdle waits until the page has no in-flight requests
func (b *Base) WaitForNetworkIdle() error {
	timeout := float64(b.cfg.Timeouts.Navigation.Milliseconds())
	err := b.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: &timeout,
	})
	if err != nil {
		return fmt.Errorf("wait for network idle: %w", err)
	}
	return nil
}

// URL returns the current page URL
func (b *Base) URL() string {
	return b.page.URL()
}

// Toast matches the generic alert/toast area
func (b *Base) Toast() *locator.Handle {
	return b.handle("toast",
		locator.Role("alert", ""),
		locator.CSS(`[class*="toast"], .Toastify, .alert, .message`),
	)
}

// AssertToastContains waits for the toast area to contain pattern
func (b *Base) AssertToastContains(pattern string) error {
	return b.expectText(b.Toast(), pattern)
}

// ClickNav clicks a navigation link by accessible name
func (b *Base) ClickNav(pattern string) error {
	return b.handle("nav link "+pattern, locator.Role("link", pattern)).Click()
}

// AssertURLMatches waits until the current URL matches pattern
func (b *Base) AssertURLMatches(pattern string) error {
	re := regexp.MustCompile(pattern)
	return b.eventually("url matches "+pattern, func() error {
		if u := b.page.URL(); !re.MatchString(u) {
			return fmt.Errorf("url is %s", u)
		}
		return nil
	})
}

// eventually polls check until the expect timeout passes
func (b *Base) eventually(desc string, check func() error) error {
	return b.eventuallyWithin(b.cfg.Timeouts.Expect, desc, check)
}

func (b *Base) eventuallyWithin(timeout time.Duration, desc string, check func() error) error {
	if err := wait.For(timeout, b.cfg.Timeouts.Poll, check); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrAssertion, desc, err)
	}
	return nil
}

func (b *Base) expectVisible(h *locator.Handle) error {
	return b.eventually(h.Name()+" visible", func() error {
		if !h.Visible() {
			return fmt.Errorf("%s is not visible", h)
		}
		return nil
	})
}

func (b *Base) expectHidden(h *locator.Handle) error {
	return b.eventually(h.Name()+" hidden", func() error {
		if h.Visible() {
			return fmt.Errorf("%s is visible", h)
		}
		return nil
	})
}

func (b *Base) expectCount(h *locator.Handle, desc string, ok func(n int) bool) error {
	return b.eventually(h.Name()+" "+desc, func() error {
		if n := h.Count(); !ok(n) {
			return fmt.Errorf("%s has %d elements", h, n)
		}
		return nil
	})
}

// expectText waits until the first element of h contains pattern
func (b *Base) expectText(h *locator.Handle, pattern string) error {
	re := regexp.MustCompile("(?i)" + pattern)
	return b.eventually(fmt.Sprintf("%s contains /%s/i", h.Name(), pattern), func() error {
		text, err := textNow(h)
		if err != nil {
			return err
		}
		if !re.MatchString(text) {
			return fmt.Errorf("%s text is %q", h, text)
		}
		return nil
	})
}

// textNow reads the text of the first match without waiting
func textNow(h *locator.Handle) (string, error) {
	loc, _, err := h.Match()
	if err != nil {
		return "", err
	}
	text, err := loc.First().InnerText()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// quote makes fixture text safe to embed in a locator pattern
func quote(s string) string {
	return regexp.QuoteMeta(s)
}
