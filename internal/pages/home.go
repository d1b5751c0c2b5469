package pages

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/playwright-community/playwright-go"

	"github.com/amazona/e2e/internal/locator"
)

// Home is the storefront landing page with search, categories, filters and
// sorting
type Home struct {
	*Base
}

// NewHome returns the home page object
func NewHome(b *Base) *Home {
	return &Home{Base: b}
}

func (h *Home) SearchInput() *locator.Handle {
	return h.handle("search input",
		locator.Role("textbox", "search"),
		locator.Role("searchbox", "search"),
		locator.CSS(`input[type="search"], #search`),
	)
}

func (h *Home) SearchButton() *locator.Handle {
	return h.handle("search button",
		locator.Role("button", "search"),
		locator.CSS(`button[type="submit"]`),
	)
}

func (h *Home) ProductCards() *locator.Handle {
	return h.handle("product cards", locator.CSS(`[data-test="product-card"], .product, .card`))
}

func (h *Home) NoResultsMessage() *locator.Handle {
	return h.handle("no results message",
		locator.Text(quote(h.cfg.Fixtures.Messages.NoProductsFound)),
		locator.CSS(`[data-test="no-results"], .no-results`),
		locator.Text(`no products? found`),
	)
}

func (h *Home) EnterKeywordPrompt() *locator.Handle {
	return h.handle("enter keyword prompt",
		locator.Text(quote(h.cfg.Fixtures.Messages.EnterKeyword)),
		locator.CSS(`[data-test="enter-keyword"], .search-prompt`),
	)
}

func (h *Home) Breadcrumb() *locator.Handle {
	return h.handle("breadcrumb", locator.CSS(`nav[aria-label="breadcrumb"], .breadcrumb, [data-test="breadcrumb"]`))
}

func (h *Home) SortControl() *locator.Handle {
	return h.handle("sort control",
		locator.CSS(`select[name="sort"], select#sort`),
		locator.Role("combobox", "sort"),
	)
}

func (h *Home) CategoryLink(name string) *locator.Handle {
	return h.handle("category link "+name,
		locator.Role("link", quote(name)),
		locator.CSS(fmt.Sprintf(`[data-test="category-link"]:has-text(%q)`, name)),
	)
}

func (h *Home) MinPriceInput() *locator.Handle {
	return h.handle("min price input",
		locator.Label(`min(imum)? price|from`),
		locator.CSS(`input[name="minPrice"], #minPrice`),
	)
}

func (h *Home) MaxPriceInput() *locator.Handle {
	return h.handle("max price input",
		locator.Label(`max(imum)? price|to`),
		locator.CSS(`input[name="maxPrice"], #maxPrice`),
	)
}

func (h *Home) BrandOption(brand string) *locator.Handle {
	return h.handle("brand option "+brand,
		locator.Label(quote(brand)),
		locator.CSS(fmt.Sprintf(`[data-test="brand"]:has-text(%q), .brand-filter:has-text(%q)`, brand, brand)),
	)
}

func (h *Home) RatingOption(rating int) *locator.Handle {
	return h.handle(fmt.Sprintf("rating option %d", rating),
		locator.Role("link", fmt.Sprintf(`%d(.|\n)*stars?`, rating)),
		locator.Label(fmt.Sprintf(`%d.?\+?\s*stars?`, rating)),
		locator.CSS(fmt.Sprintf(`[data-test="rating"]:has-text("%d"), .rating-filter:has-text("%d")`, rating, rating)),
	)
}

func (h *Home) ApplyFiltersButton() *locator.Handle {
	return h.handle("apply filters button",
		locator.Role("button", "apply|go|filter"),
		locator.CSS(`[data-test="apply-filters"]`),
	)
}

func (h *Home) FilterChips() *locator.Handle {
	return h.handle("active filter chips", locator.CSS(`[data-test="filter-chip"], .filter-chip, .chip`))
}

// Open navigates to the home page
func (h *Home) Open() error {
	return h.Goto(h.cfg.Fixtures.Pages.Home)
}

// SearchProduct types term into the search box and submits it
func (h *Home) SearchProduct(term string) error {
	if err := h.SearchInput().Fill(term); err != nil {
		return err
	}
	return h.SearchButton().Click()
}

// AssertSearchResultsContain expects at least one card, the first of which
// mentions term
func (h *Home) AssertSearchResultsContain(term string) error {
	if err := h.WaitForNetworkIdle(); err != nil {
		return err
	}
	cards := h.ProductCards()
	if err := h.expectCount(cards, "not empty", func(n int) bool { return n > 0 }); err != nil {
		return err
	}
	return h.expectText(cards, quote(term))
}

// AssertBlankSearchBehavior accepts either a non-empty result list or an
// explicit prompt asking for a keyword
func (h *Home) AssertBlankSearchBehavior() error {
	if err := h.WaitForNetworkIdle(); err != nil {
		return err
	}
	cards := h.ProductCards()
	prompt := h.EnterKeywordPrompt()
	return h.eventually("blank search shows products or a keyword prompt", func() error {
		if cards.Count() > 0 {
			return nil
		}
		if prompt.Visible() {
			return nil
		}
		return fmt.Errorf("neither %s nor %s", cards, prompt)
	})
}

// AssertNoResults expects the empty result message
func (h *Home) AssertNoResults() error {
	if err := h.WaitForNetworkIdle(); err != nil {
		return err
	}
	return h.expectVisible(h.NoResultsMessage())
}

// NavigateToCategory opens a category from the header or sidebar
func (h *Home) NavigateToCategory(name string) error {
	if err := h.CategoryLink(name).Click(); err != nil {
		return err
	}
	return h.WaitForNetworkIdle()
}

// AssertOnCategory expects the breadcrumb (when rendered) to name the
// category and at least one product card
func (h *Home) AssertOnCategory(name string) error {
	crumb := h.Breadcrumb()
	if crumb.Present() {
		if err := h.expectText(crumb, quote(name)); err != nil {
			return err
		}
	}
	return h.expectCount(h.ProductCards(), "not empty", func(n int) bool { return n > 0 })
}

// SetPriceRange fills whichever bounds r defines
func (h *Home) SetPriceRange(r PriceRange) error {
	if r.Min != nil {
		if err := h.MinPriceInput().Fill(formatAmount(*r.Min)); err != nil {
			return err
		}
	}
	if r.Max != nil {
		if err := h.MaxPriceInput().Fill(formatAmount(*r.Max)); err != nil {
			return err
		}
	}
	return nil
}

// SelectBrand ticks a brand filter when the catalogue offers one
func (h *Home) SelectBrand(brand string) error {
	opt := h.BrandOption(brand)
	if !opt.Present() {
		h.log.Info("brand filter not offered")
		return nil
	}
	el, err := opt.First()
	if err != nil {
		return err
	}
	checked := h.steps.Optional("check brand "+brand, func() error {
		role, err := el.GetAttribute("role")
		if err != nil {
			return err
		}
		kind, err := el.GetAttribute("type")
		if err != nil {
			return err
		}
		if role != "checkbox" && kind != "checkbox" {
			return errNotCheckbox
		}
		return el.Check()
	})
	if checked.Err == nil {
		return nil
	}
	return el.Click()
}

var errNotCheckbox = errors.New("not a checkbox")

// SelectRating clicks a minimum rating filter when present
func (h *Home) SelectRating(rating int) error {
	opt := h.RatingOption(rating)
	if !opt.Present() {
		h.log.Info("rating filter not offered")
		return nil
	}
	return opt.Click()
}

// ApplyFiltersIfNeeded clicks an apply button when the UI has one, then
// waits for the list to reload
func (h *Home) ApplyFiltersIfNeeded() error {
	if apply := h.ApplyFiltersButton(); apply.Present() {
		if err := apply.Click(); err != nil {
			return err
		}
	}
	return h.WaitForNetworkIdle()
}

// SortBy picks a sort option by its visible label, on either a native select
// or a combobox widget
func (h *Home) SortBy(label string) error {
	loc, s, err := h.SortControl().Match()
	if err != nil {
		h.log.Info("sort control not offered")
		return nil
	}
	el := loc.First()

	if s.Kind == locator.KindCSS {
		if err := h.SortControl().Select(label); err != nil {
			option := h.within(el, "sort option "+label, locator.CSS(fmt.Sprintf(`option:has-text(%q)`, label)))
			value, verr := option.Attribute("value")
			if verr != nil || value == "" {
				return err
			}
			if _, err := el.SelectOption(selectValue(value)); err != nil {
				return fmt.Errorf("select sort value %q: %w", value, err)
			}
		}
	} else {
		if err := el.Click(); err != nil {
			return fmt.Errorf("open sort control: %w", err)
		}
		option := h.handle("sort option "+label, locator.Role("option", quote(label)), locator.Text(quote(label)))
		if err := option.Click(); err != nil {
			return err
		}
	}
	return h.WaitForNetworkIdle()
}

// VisiblePrices returns the prices of up to limit product cards. Cards
// without a parseable price are skipped.
func (h *Home) VisiblePrices(limit int) ([]float64, error) {
	cards, err := h.ProductCards().All()
	if err != nil {
		return nil, err
	}
	if len(cards) > limit {
		cards = cards[:limit]
	}
	var texts []string
	for _, c := range cards {
		text, err := c.InnerText()
		if err != nil {
			return nil, fmt.Errorf("read product card: %w", err)
		}
		texts = append(texts, text)
	}
	return ParsePrices(texts), nil
}

// AssertPricesWithin expects every visible price to lie in r
func (h *Home) AssertPricesWithin(r PriceRange) error {
	return h.eventually("prices within "+r.String(), func() error {
		prices, err := h.VisiblePrices(10)
		if err != nil {
			return err
		}
		return CheckWithin(prices, r)
	})
}

// AssertPricesSortedAscending expects the visible prices in ascending order
func (h *Home) AssertPricesSortedAscending() error {
	return h.eventually("prices ascending", func() error {
		prices, err := h.VisiblePrices(10)
		if err != nil {
			return err
		}
		return CheckAscending(prices)
	})
}

// ActiveFilterChips returns the text of every active filter chip
func (h *Home) ActiveFilterChips() ([]string, error) {
	loc, _, err := h.FilterChips().Match()
	if err != nil {
		return nil, nil
	}
	return loc.AllInnerTexts()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func selectValue(value string) playwright.SelectOptionValues {
	return playwright.SelectOptionValues{Values: &[]string{value}}
}
