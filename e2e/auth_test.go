//go:build e2e

package e2e

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/amazona/e2e/internal/pages"
)

// TestAuth_LoginWithValidCredentials tests the scenario "Login with valid credentials"
//
// Feature: Authentication
//
//	Scenario: Login with valid credentials
//	  Given I am on the login page
//	  When I sign in with the valid user
//	  Then a sign out control is visible
func TestAuth_LoginWithValidCredentials(t *testing.T) {
	p := newPages(t)

	loginAsValidUser(t, p)
}

// TestAuth_LoginWithInvalidCredentials tests the scenario "Login with invalid credentials"
//
//	Scenario: Login with invalid credentials
//	  When I sign in with unknown credentials
//	  Then an error message is shown
//	  And I stay on the login page
func TestAuth_LoginWithInvalidCredentials(t *testing.T) {
	p := newPages(t)

	must(t, "login", p.Login.Login(cfg.Fixtures.InvalidUser))
	must(t, "error shown", p.Login.AssertLoginError())
	must(t, "still on login", p.AssertURLMatches(regexp.QuoteMeta(cfg.Fixtures.Pages.Login)+"$"))
}

// TestAuth_LoginWithEmptyFields tests the scenario "Login with empty fields"
//
//	Scenario: Login with empty fields
//	  When I submit the login form without input
//	  Then two required field messages are shown
func TestAuth_LoginWithEmptyFields(t *testing.T) {
	p := newPages(t)

	must(t, "open login", p.Login.Open())
	must(t, "submit", p.Login.SignInButton().Click())
	must(t, "required errors", p.Login.AssertRequiredErrors(2))
}

// TestAuth_ForgotPassword tests the scenario "Forgot password"
//
//	Scenario: Forgot password
//	  When I request a reset link for the valid user
//	  Then the reset confirmation is shown
func TestAuth_ForgotPassword(t *testing.T) {
	p := newPages(t)

	must(t, "request reset", p.Register.RequestPasswordReset(cfg.Fixtures.ValidUser.Email))
	must(t, "reset sent", p.Register.AssertResetEmailSent())
}

// TestAuth_RegisterWithValidData tests the scenario "Register with valid data"
//
//	Scenario: Register with valid data
//	  When I sign up with a fresh email
//	  Then I am welcomed or signed in
func TestAuth_RegisterWithValidData(t *testing.T) {
	p := newPages(t)
	unique := time.Now().UnixNano()

	must(t, "register", p.Register.Register(pages.Registration{
		Name:            fmt.Sprintf("User %d", unique),
		Email:           fmt.Sprintf("user+%d@%s", unique, cfg.Fixtures.NewUser.EmailDomain),
		Password:        "StrongPassw0rd!",
		ConfirmPassword: "StrongPassw0rd!",
	}))
	must(t, "registered", p.Register.AssertRegistered())
}

// TestAuth_RegisterWithInvalidData tests the scenario "Register with invalid data"
//
//	Scenario: Register with invalid data
//	  When I sign up with a malformed email, weak and mismatched passwords
//	  Then each field shows its validation error
func TestAuth_RegisterWithInvalidData(t *testing.T) {
	p := newPages(t)

	must(t, "register", p.Register.Register(pages.Registration{
		Email:           "invalid-email",
		Password:        "123",
		ConfirmPassword: "456",
	}))
	must(t, "field errors", p.Register.AssertFieldErrors(
		`invalid email|email is invalid|enter a valid email`,
		`password.*weak|too short|requirements`,
		`passwords do not match|confirm password`,
	))
}

// TestAuth_Logout tests the scenario "Logout"
//
//	Scenario: Logout
//	  Given I am signed in
//	  When I sign out
//	  Then I am back on the login page
func TestAuth_Logout(t *testing.T) {
	p := newPages(t)
	loginAsValidUser(t, p)

	must(t, "sign out", p.Login.SignOut())
	must(t, "on login", p.AssertURLMatches(regexp.QuoteMeta(cfg.Fixtures.Pages.Login)))
	if !p.Login.SignInButton().Visible() && !p.Login.SignInLink().Visible() {
		t.Error("Expected a login control after signing out")
	}
}
