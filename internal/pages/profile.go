package pages

import (
	"github.com/amazona/e2e/internal/config"
	"github.com/amazona/e2e/internal/locator"
	"github.com/amazona/e2e/internal/step"
)

// Profile is the account page with profile edit and password change forms
type Profile struct {
	*Base
}

// NewProfile returns the profile page object
func NewProfile(b *Base) *Profile {
	return &Profile{Base: b}
}

func (p *Profile) NameInput() *locator.Handle {
	return p.handle("name", locator.Label("name"))
}

func (p *Profile) AddressInput() *locator.Handle {
	return p.handle("address", locator.Label("address"))
}

func (p *Profile) PhoneInput() *locator.Handle {
	return p.handle("phone", locator.Label("phone|mobile"))
}

func (p *Profile) SaveButton() *locator.Handle {
	return p.handle("save button", locator.Role("button", "save|update"))
}

func (p *Profile) SuccessAlert() *locator.Handle {
	return p.handle("success alert",
		locator.Role("alert", ""),
		locator.CSS(`.alert-success, [data-test="success"]`),
	)
}

func (p *Profile) CurrentPasswordInput() *locator.Handle {
	return p.handle("current password", locator.Label("current password|old password"))
}

func (p *Profile) NewPasswordInput() *locator.Handle {
	return p.handle("new password", locator.Label("new password"))
}

func (p *Profile) ConfirmPasswordInput() *locator.Handle {
	return p.handle("confirm password", locator.Label("confirm password|confirm"))
}

func (p *Profile) ChangePasswordButton() *locator.Handle {
	return p.handle("change password button", locator.Role("button", "change password|update password"))
}

func (p *Profile) OrdersLink() *locator.Handle {
	return p.handle("orders link", locator.Role("link", "orders|order history"))
}

// Open navigates to the profile page
func (p *Profile) Open() error {
	return p.Goto(p.cfg.Fixtures.Pages.Profile)
}

// EditProfile writes the non-empty fields of edits, saves and expects a
// success alert
func (p *Profile) EditProfile(edits config.ProfileEdits) error {
	for _, f := range []struct {
		input *locator.Handle
		value string
	}{
		{p.NameInput(), edits.Name},
		{p.AddressInput(), edits.Address},
		{p.PhoneInput(), edits.Phone},
	} {
		if f.value == "" {
			continue
		}
		if err := f.input.Fill(f.value); err != nil {
			return err
		}
	}
	if err := p.SaveButton().Click(); err != nil {
		return err
	}
	return p.expectVisible(p.SuccessAlert())
}

// ChangePassword submits the password change form and expects success
func (p *Profile) ChangePassword(current, next string) error {
	for _, f := range []struct {
		input *locator.Handle
		value string
	}{
		{p.CurrentPasswordInput(), current},
		{p.NewPasswordInput(), next},
		{p.ConfirmPasswordInput(), next},
	} {
		if err := f.input.Fill(f.value); err != nil {
			return err
		}
	}
	if err := p.ChangePasswordButton().Click(); err != nil {
		return err
	}
	return p.expectVisible(p.SuccessAlert())
}

// RevertPassword changes the password back from changed to original. It is
// best effort: the outcome is recorded, never returned as a failure.
func (p *Profile) RevertPassword(changed, original string) step.Outcome {
	return p.steps.Optional("revert password", func() error {
		return p.ChangePassword(changed, original)
	})
}
