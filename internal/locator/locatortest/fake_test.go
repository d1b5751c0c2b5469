package locatortest

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amazona/e2e/internal/locator"
)

func TestPage_RaiseDialogReachesEveryHandler(t *testing.T) {
	page := NewPage()
	var seen []string
	page.OnDialog(func(d playwright.Dialog) {
		seen = append(seen, "first:"+d.Message())
		// registering from inside a handler must not block delivery
		page.OnDialog(func(playwright.Dialog) {})
	})
	page.OnDialog(func(d playwright.Dialog) {
		seen = append(seen, "second:"+d.Type())
		assert.NoError(t, d.Dismiss())
	})

	d := &Dialog{Kind: "alert", Msg: "hi"}
	page.RaiseDialog(d)

	assert.Equal(t, []string{"first:hi", "second:alert"}, seen)
	assert.True(t, d.Dismissed)
}

func TestLocator_NestedLocatorReadsChildren(t *testing.T) {
	page := NewPage()
	card := (&Element{Text: "Laptop $999"}).Add(locator.CSS(".price"), &Element{Text: "$999"})
	page.Add(locator.CSS(".card"), card)

	price := page.Locator(".card").Locator(".price")

	n, err := price.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	text, err := price.InnerText()
	require.NoError(t, err)
	assert.Equal(t, "$999", text)
}
