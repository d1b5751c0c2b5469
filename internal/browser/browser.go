// Package browser manages the playwright driver, the browser process and the
// isolated per-scenario sessions built on top of them.
package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/config"
	"github.com/amazona/e2e/internal/logging"
)

// Launcher owns the driver and one browser shared by every session
type Launcher struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     config.Config
	log     *zap.Logger
}

// Install downloads the driver and the binaries of the named browser
func Install(browser string) error {
	if browser == "" {
		browser = config.BrowserChromium
	}
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{browser}}); err != nil {
		return fmt.Errorf("install %s: %w", browser, err)
	}
	return nil
}

// Launch starts the driver and the configured browser
func Launch(cfg config.Config, log *zap.Logger) (*Launcher, error) {
	log = logging.OrNop(log)

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	engine, err := engineFor(pw, cfg.Browser)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}

	opts := playwright.BrowserTypeLaunchOptions{Headless: playwright.Bool(cfg.Headless)}
	if cfg.SlowMo > 0 {
		opts.SlowMo = playwright.Float(float64(cfg.SlowMo.Milliseconds()))
	}
	b, err := engine.Launch(opts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch %s: %w", cfg.Browser, err)
	}

	log.Info("browser launched",
		zap.String("browser", cfg.Browser),
		zap.Bool("headless", cfg.Headless),
		zap.String("version", b.Version()),
	)
	return &Launcher{pw: pw, browser: b, cfg: cfg, log: log}, nil
}

func engineFor(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch name {
	case config.BrowserChromium, "":
		return pw.Chromium, nil
	case config.BrowserFirefox:
		return pw.Firefox, nil
	case config.BrowserWebkit:
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("%w: unknown browser %q", config.ErrInvalid, name)
	}
}

// Close shuts the browser and stops the driver
func (l *Launcher) Close() error {
	var errs []string
	if err := l.browser.Close(); err != nil {
		errs = append(errs, err.Error())
	}
	if err := l.pw.Stop(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("close browser: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Dialog is a JavaScript dialog the page opened
type Dialog struct {
	Type    string
	Message string
}

// Session is one isolated browser context with a single page
type Session struct {
	Context playwright.BrowserContext
	Page    playwright.Page

	cfg config.Config
	log *zap.Logger

	mu      sync.Mutex
	dialogs []Dialog
}

// NewSession opens a fresh context with the base URL, the desktop viewport
// and the configured timeouts. Dialogs are recorded and dismissed.
func (l *Launcher) NewSession() (*Session, error) {
	desktop := l.cfg.Fixtures.UI.Desktop
	ctx, err := l.browser.NewContext(playwright.BrowserNewContextOptions{
		BaseURL:  playwright.String(l.cfg.BaseURL),
		Viewport: &playwright.Size{Width: desktop.Width, Height: desktop.Height},
	})
	if err != nil {
		return nil, fmt.Errorf("new browser context: %w", err)
	}
	ctx.SetDefaultTimeout(float64(l.cfg.Timeouts.Action.Milliseconds()))
	ctx.SetDefaultNavigationTimeout(float64(l.cfg.Timeouts.Navigation.Milliseconds()))

	page, err := ctx.NewPage()
	if err != nil {
		_ = ctx.Close()
		return nil, fmt.Errorf("new page: %w", err)
	}

	s := &Session{Context: ctx, Page: page, cfg: l.cfg, log: l.log}
	page.OnDialog(func(d playwright.Dialog) {
		s.record(Dialog{Type: d.Type(), Message: d.Message()})
		if err := d.Dismiss(); err != nil {
			s.log.Warn("dismiss dialog", zap.Error(err))
		}
	})
	return s, nil
}

func (s *Session) record(d Dialog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialogs = append(s.dialogs, d)
	s.log.Debug("dialog", zap.String("type", d.Type), zap.String("message", d.Message))
}

// Dialogs returns the dialogs opened so far
func (s *Session) Dialogs() []Dialog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Dialog(nil), s.dialogs...)
}

// Close captures a screenshot when the scenario failed and screenshots are
// enabled, then closes the context
func (s *Session) Close(failed bool, name string) error {
	if failed && s.cfg.Screenshots {
		if path, err := s.screenshot(name); err != nil {
			s.log.Warn("failure screenshot", zap.String("scenario", name), zap.Error(err))
		} else {
			s.log.Info("failure screenshot", zap.String("scenario", name), zap.String("path", path))
		}
	}
	if err := s.Context.Close(); err != nil {
		return fmt.Errorf("close browser context: %w", err)
	}
	return nil
}

func (s *Session) screenshot(name string) (string, error) {
	if err := os.MkdirAll(s.cfg.ArtifactsDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.cfg.ArtifactsDir, screenshotName(name))
	if _, err := s.Page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", err
	}
	return path, nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// screenshotName turns a test name such as "TestCart/remove item" into a
// file name
func screenshotName(name string) string {
	clean := strings.Trim(unsafeChars.ReplaceAllString(name, "_"), "_")
	if clean == "" {
		clean = "scenario"
	}
	return clean + ".png"
}
