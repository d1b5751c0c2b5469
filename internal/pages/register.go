package pages

import (
	"github.com/amazona/e2e/internal/locator"
)

// Registration is what the sign-up form asks for
type Registration struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register is the sign-up page and the forgot-password flow
type Register struct {
	*Base
}

// NewRegister returns the registration page object
func NewRegister(b *Base) *Register {
	return &Register{Base: b}
}

func (r *Register) NameInput() *locator.Handle {
	return r.handle("name input",
		locator.Role("textbox", "name"),
		locator.Label("^name|full name"),
	)
}

func (r *Register) EmailInput() *locator.Handle {
	return r.handle("email input",
		locator.Role("textbox", "email"),
		locator.Label("email"),
	)
}

func (r *Register) PasswordInput() *locator.Handle {
	return r.handle("password input",
		locator.Label("^password"),
		locator.CSS(`input[type="password"]`),
	)
}

func (r *Register) ConfirmPasswordInput() *locator.Handle {
	return r.handle("confirm password input", locator.Label("confirm password|confirm"))
}

func (r *Register) SubmitButton() *locator.Handle {
	return r.handle("sign up button", locator.Role("button", "sign up|register|create account"))
}

func (r *Register) ForgotPasswordLink() *locator.Handle {
	return r.handle("forgot password link", locator.Role("link", "forgot password"))
}

func (r *Register) ResetButton() *locator.Handle {
	return r.handle("reset button", locator.Role("button", "submit|send|reset"))
}

func (r *Register) Welcome() *locator.Handle {
	return r.handle("welcome",
		locator.Text(quote(r.cfg.Fixtures.Messages.Welcome)),
		locator.Role("link", "logout|sign out"),
		locator.Role("button", "logout|sign out"),
	)
}

func (r *Register) ResetConfirmation() *locator.Handle {
	return r.handle("reset confirmation", locator.Text(quote(r.cfg.Fixtures.Messages.ResetEmailSent)))
}

// FieldError matches an inline validation message
func (r *Register) FieldError(pattern string) *locator.Handle {
	return r.handle("field error "+pattern, locator.Text(pattern))
}

// Open navigates to the registration page
func (r *Register) Open() error {
	return r.Goto(r.cfg.Fixtures.Pages.Register)
}

// Register fills and submits the sign-up form
func (r *Register) Register(reg Registration) error {
	if err := r.Open(); err != nil {
		return err
	}
	for _, f := range []struct {
		input *locator.Handle
		value string
	}{
		{r.NameInput(), reg.Name},
		{r.EmailInput(), reg.Email},
		{r.PasswordInput(), reg.Password},
		{r.ConfirmPasswordInput(), reg.ConfirmPassword},
	} {
		if err := f.input.Fill(f.value); err != nil {
			return err
		}
	}
	return r.SubmitButton().Click()
}

// AssertRegistered expects a welcome text or a sign out control
func (r *Register) AssertRegistered() error {
	return r.expectVisible(r.Welcome())
}

// AssertFieldErrors expects a visible inline error for every pattern
func (r *Register) AssertFieldErrors(patterns ...string) error {
	for _, p := range patterns {
		if err := r.expectVisible(r.FieldError(p)); err != nil {
			return err
		}
	}
	return nil
}

// RequestPasswordReset asks for a reset link for email, reaching the form
// from the login page link or directly by URL
func (r *Register) RequestPasswordReset(email string) error {
	if err := r.Goto(r.cfg.Fixtures.Pages.Login); err != nil {
		return err
	}
	if link := r.ForgotPasswordLink(); link.Visible() {
		if err := link.Click(); err != nil {
			return err
		}
	} else if err := r.Goto(r.cfg.Fixtures.Pages.ForgotPassword); err != nil {
		return err
	}
	if err := r.EmailInput().Fill(email); err != nil {
		return err
	}
	return r.ResetButton().Click()
}

// AssertResetEmailSent expects the reset confirmation
func (r *Register) AssertResetEmailSent() error {
	return r.expectVisible(r.ResetConfirmation())
}
