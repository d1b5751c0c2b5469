package locator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amazona/e2e/internal/locator"
	"github.com/amazona/e2e/internal/locator/locatortest"
	"github.com/amazona/e2e/internal/wait"
)

var fast = locator.Options{Timeout: 150 * time.Millisecond, Interval: 10 * time.Millisecond}

func emailHandle(page *locatortest.Page) *locator.Handle {
	return locator.New(locator.OnPage(page), fast, "email input",
		locator.Label("email"),
		locator.CSS(`input[type="email"], #email`),
	)
}

func TestHandle_PrimaryOrFallback(t *testing.T) {
	tests := []struct {
		name      string
		primary   bool
		fallback  bool
		wantFound bool
		wantKind  locator.Kind
	}{
		{name: "both present prefers primary", primary: true, fallback: true, wantFound: true, wantKind: locator.KindLabel},
		{name: "only primary", primary: true, wantFound: true, wantKind: locator.KindLabel},
		{name: "only fallback", fallback: true, wantFound: true, wantKind: locator.KindCSS},
		{name: "neither", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN a page with the configured elements
			page := locatortest.NewPage()
			if tt.primary {
				page.Add(locator.Label("email"), &locatortest.Element{Text: "primary"})
			}
			if tt.fallback {
				page.Add(locator.CSS(`input[type="email"], #email`), &locatortest.Element{Text: "fallback"})
			}

			// WHEN matching the handle
			_, s, err := emailHandle(page).Match()

			// THEN the first strategy in declared order wins
			if !tt.wantFound {
				assert.ErrorIs(t, err, locator.ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, s.Kind)
		})
	}
}

func TestHandle_ActsOnPrimaryElement(t *testing.T) {
	page := locatortest.NewPage()
	primary := &locatortest.Element{}
	fallback := &locatortest.Element{}
	page.Add(locator.Label("email"), primary)
	page.Add(locator.CSS(`input[type="email"], #email`), fallback)

	require.NoError(t, emailHandle(page).Fill("a@b.c"))

	assert.Equal(t, []string{"a@b.c"}, primary.Filled)
	assert.Empty(t, fallback.Filled)
}

func TestHandle_ConstructionIsLazy(t *testing.T) {
	// GIVEN a handle built before the element exists
	page := locatortest.NewPage()
	h := emailHandle(page)
	assert.False(t, h.Present())

	// WHEN the element appears later
	page.Add(locator.CSS(`input[type="email"], #email`), &locatortest.Element{Text: "late"})

	// THEN the same handle finds it
	text, err := h.Text()
	require.NoError(t, err)
	assert.Equal(t, "late", text)
}

func TestHandle_ResolveWaitsForElement(t *testing.T) {
	page := locatortest.NewPage()
	btn := &locatortest.Element{}
	page.AddAfter(30*time.Millisecond, locator.Role("button", "sign in"), btn)

	h := locator.New(locator.OnPage(page), locator.Options{Timeout: time.Second, Interval: 5 * time.Millisecond},
		"sign in button", locator.Role("button", "sign in"))

	require.NoError(t, h.Click())
	page.Update(func() {
		assert.Equal(t, 1, btn.Clicks)
	})
}

func TestHandle_ResolveTimesOut(t *testing.T) {
	page := locatortest.NewPage()

	err := emailHandle(page).Click()

	assert.ErrorIs(t, err, locator.ErrNotFound)
	assert.ErrorIs(t, err, wait.ErrTimeout)
	assert.Contains(t, err.Error(), "email input")
}

func TestHandle_FirstAvoidsStrictModeViolation(t *testing.T) {
	page := locatortest.NewPage()
	first := &locatortest.Element{}
	page.Add(locator.CSS(".product-card"), first, &locatortest.Element{})

	h := locator.New(locator.OnPage(page), fast, "product cards", locator.CSS(".product-card"))

	assert.Equal(t, 2, h.Count())
	require.NoError(t, h.Click())
	assert.Equal(t, 1, first.Clicks)
}

func TestHandle_Nth(t *testing.T) {
	page := locatortest.NewPage()
	page.Add(locator.CSS(".row"), &locatortest.Element{Text: "a"}, &locatortest.Element{Text: "b"})
	h := locator.New(locator.OnPage(page), fast, "rows", locator.CSS(".row"))

	second, err := h.Nth(1)
	require.NoError(t, err)
	text, err := second.InnerText()
	require.NoError(t, err)
	assert.Equal(t, "b", text)

	_, err = h.Nth(2)
	assert.ErrorIs(t, err, locator.ErrNotFound)
}

func TestHandle_Within(t *testing.T) {
	// GIVEN two cart rows with their own remove buttons
	page := locatortest.NewPage()
	removeA := &locatortest.Element{}
	removeB := &locatortest.Element{}
	rowA := (&locatortest.Element{}).Add(locator.Role("button", "remove"), removeA)
	rowB := (&locatortest.Element{}).Add(locator.Role("button", "remove"), removeB)
	page.Add(locator.CSS(".cart-item"), rowA, rowB)

	rows := locator.New(locator.OnPage(page), fast, "cart rows", locator.CSS(".cart-item"))
	row, err := rows.Nth(1)
	require.NoError(t, err)

	// WHEN clicking remove scoped to the second row
	remove := locator.New(locator.Within(row), fast, "remove", locator.Role("button", "remove"))
	require.NoError(t, remove.Click())

	// THEN only that row's button is clicked
	assert.Equal(t, 0, removeA.Clicks)
	assert.Equal(t, 1, removeB.Clicks)
}

func TestHandle_VisibleAndDisabled(t *testing.T) {
	page := locatortest.NewPage()
	page.Add(locator.Role("button", "checkout"), &locatortest.Element{Hidden: true, Disabled: true})
	h := locator.New(locator.OnPage(page), fast, "checkout", locator.Role("button", "checkout"))

	assert.True(t, h.Present())
	assert.False(t, h.Visible())

	disabled, err := h.Disabled()
	require.NoError(t, err)
	assert.True(t, disabled)
	assert.Error(t, h.WaitVisible())
}

func TestHandle_WaitAbsent(t *testing.T) {
	page := locatortest.NewPage()
	s := locator.Text("loading")
	page.Add(s, &locatortest.Element{})
	time.AfterFunc(20*time.Millisecond, func() { page.Set(s) })

	h := locator.New(locator.OnPage(page), locator.Options{Timeout: time.Second, Interval: 5 * time.Millisecond}, "spinner", s)

	assert.NoError(t, h.WaitAbsent())
}

func TestHandle_String(t *testing.T) {
	h := emailHandle(locatortest.NewPage())

	assert.Equal(t, `email input (label=/email/i | css=input[type="email"], #email)`, h.String())
}

func TestHandle_DefaultOptions(t *testing.T) {
	page := locatortest.NewPage()
	page.Add(locator.CSS("#x"), &locatortest.Element{Attrs: map[string]string{"src": "/a.png"}})

	h := locator.New(locator.OnPage(page), locator.Options{}, "x", locator.CSS("#x"))
	src, err := h.Attribute("src")

	require.NoError(t, err)
	assert.Equal(t, "/a.png", src)
}
