package pages

import (
	"fmt"

	"github.com/amazona/e2e/internal/config"
	"github.com/amazona/e2e/internal/locator"
)

// Login is the sign-in page plus the header session controls
type Login struct {
	*Base
}

// NewLogin returns the login page object
func NewLogin(b *Base) *Login {
	return &Login{Base: b}
}

func (l *Login) EmailInput() *locator.Handle {
	return l.handle("email input",
		locator.Label("email"),
		locator.CSS(`input[type="email"], #email`),
	)
}

func (l *Login) PasswordInput() *locator.Handle {
	return l.handle("password input",
		locator.Label("password"),
		locator.CSS(`input[type="password"], #password`),
	)
}

func (l *Login) SignInButton() *locator.Handle {
	return l.handle("sign in button", locator.Role("button", "sign in|login"))
}

func (l *Login) SignInLink() *locator.Handle {
	return l.handle("sign in link", locator.Role("link", "sign in"))
}

func (l *Login) UserMenu() *locator.Handle {
	return l.handle("user menu",
		locator.CSS(`header a:text-matches("sign out|profile|account|orders|admin|user", "i")`),
		locator.CSS(`header .dropdown-toggle, [data-test="user-menu"]`),
	)
}

func (l *Login) SignOutLink() *locator.Handle {
	return l.handle("sign out",
		locator.Role("link", "sign out|logout"),
		locator.Role("button", "sign out|logout"),
		locator.CSS(`button:has-text("Sign Out"), button:has-text("Logout")`),
	)
}

func (l *Login) ErrorMessage() *locator.Handle {
	return l.handle("login error",
		locator.Role("alert", ""),
		locator.CSS(`.alert, [class*="error"], [data-test="error"]`),
	)
}

func (l *Login) RequiredFieldErrors() *locator.Handle {
	return l.handle("required field errors", locator.Text(quote(l.cfg.Fixtures.Messages.RequiredField)))
}

// Open navigates to the sign-in page
func (l *Login) Open() error {
	return l.Goto(l.cfg.Fixtures.Pages.SignIn)
}

// Login opens the sign-in page and submits creds
func (l *Login) Login(creds config.Credentials) error {
	if err := l.Open(); err != nil {
		return err
	}
	if err := l.EmailInput().Fill(creds.Email); err != nil {
		return err
	}
	if err := l.PasswordInput().Fill(creds.Password); err != nil {
		return err
	}
	return l.SignInButton().Click()
}

// AssertLoginSuccess expects no sign in link to remain
func (l *Login) AssertLoginSuccess() error {
	if err := l.WaitForNetworkIdle(); err != nil {
		return err
	}
	return l.expectCount(l.SignInLink(), "gone", func(n int) bool { return n == 0 })
}

// AssertLoginError expects a visible error mentioning the failure
func (l *Login) AssertLoginError() error {
	errBox := l.ErrorMessage()
	if err := l.expectVisible(errBox); err != nil {
		return err
	}
	return l.expectText(errBox, "invalid|incorrect|failed")
}

// AssertRequiredErrors expects n "field required" messages
func (l *Login) AssertRequiredErrors(n int) error {
	return l.expectCount(l.RequiredFieldErrors(), fmt.Sprintf("exactly %d", n), func(got int) bool { return got == n })
}

// SignOut clicks the sign out control. When it is not directly reachable the
// user menu is opened first; failing to open the menu is tolerated.
func (l *Login) SignOut() error {
	link := l.SignOutLink()
	if link.Present() {
		return link.Click()
	}
	menu := l.UserMenu().WithTimeout(l.cfg.Timeouts.Expect)
	l.steps.Optional("open user menu", menu.Click)
	if link.Present() {
		return link.Click()
	}
	l.log.Info("no sign out control found")
	return nil
}
