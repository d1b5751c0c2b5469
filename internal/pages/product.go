package pages

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/amazona/e2e/internal/locator"
)

// Product is the product detail page
type Product struct {
	*Base
}

// NewProduct returns the product page object
func NewProduct(b *Base) *Product {
	return &Product{Base: b}
}

func (p *Product) Title() *locator.Handle {
	return p.handle("product title", locator.Role("heading", ""))
}

func (p *Product) MainImage() *locator.Handle {
	return p.handle("main image",
		locator.CSS(`[data-test="product-main-image"], .product-main img, #main-image, img[alt*="product" i]`))
}

func (p *Product) GalleryThumbnails() *locator.Handle {
	return p.handle("gallery thumbnails",
		locator.CSS(`[data-test="thumbnail"], .thumbnails img, .product-gallery img, .swiper-slide img`))
}

func (p *Product) Description() *locator.Handle {
	return p.handle("description",
		locator.CSS(`[data-test="product-description"], #description, .description, article`))
}

func (p *Product) Price() *locator.Handle {
	return p.handle("price",
		locator.CSS(`[data-test="product-price"], .price, #price`),
		locator.Text(`\$\s?\d`),
	)
}

func (p *Product) Availability() *locator.Handle {
	return p.handle("availability",
		locator.CSS(`[data-test="availability"], #availability`),
		locator.Text(`in stock|out of stock|available`),
	)
}

func (p *Product) Ratings() *locator.Handle {
	return p.handle("ratings", locator.CSS(`[data-test="ratings"], .rating, [aria-label*="rating" i]`))
}

func (p *Product) AddToCartButton() *locator.Handle {
	return p.handle("add to cart button",
		locator.Role("button", "add to cart"),
		locator.CSS(`button#add-to-cart, button:has-text("Add to Cart")`),
	)
}

func (p *Product) CartCountBadge() *locator.Handle {
	return p.handle("cart count",
		locator.CSS(`[data-test="cart-count"], #cart-count`),
		locator.Role("link", "cart"),
	)
}

func (p *Product) ReviewsSection() *locator.Handle {
	return p.handle("reviews section",
		locator.CSS(`[data-test="reviews"], #reviews, .reviews`),
		locator.CSS(`section:has-text("Reviews")`),
	)
}

func (p *Product) ResultLink() *locator.Handle {
	return p.handle("product link in results",
		locator.Role("link", "details|more|view"),
		locator.CSS(`[data-test="product-card"] a, .product a, .card a`),
	)
}

// OpenFirstFromResults opens the first product of the current result list
func (p *Product) OpenFirstFromResults() error {
	if err := p.ResultLink().Click(); err != nil {
		return err
	}
	return p.WaitForNetworkIdle()
}

// OpenByID navigates straight to a product
func (p *Product) OpenByID(id string) error {
	return p.Goto(strings.TrimRight(p.cfg.Fixtures.Pages.Product, "/") + "/" + id)
}

// AddToCart clicks add to cart
func (p *Product) AddToCart() error {
	if err := p.AddToCartButton().Click(); err != nil {
		return err
	}
	return p.WaitForNetworkIdle()
}

// IsAddToCartDisabled reports whether the add to cart control is disabled
// natively or through aria-disabled
func (p *Product) IsAddToCartDisabled() (bool, error) {
	btn := p.AddToCartButton()
	disabled, err := btn.Disabled()
	if err != nil {
		return false, err
	}
	if disabled {
		return true, nil
	}
	aria, err := btn.Attribute("aria-disabled")
	if err != nil {
		return false, err
	}
	return aria == "true", nil
}

// AssertDetailsVisible expects title, image, description, price and the add
// to cart button
func (p *Product) AssertDetailsVisible() error {
	for _, h := range []*locator.Handle{
		p.Title(),
		p.MainImage(),
		p.Description(),
		p.Price(),
		p.AddToCartButton(),
	} {
		if err := p.expectVisible(h); err != nil {
			return err
		}
	}
	return nil
}

var (
	outOfStockText = regexp.MustCompile(`out of stock|unavailable`)
	inStockText    = regexp.MustCompile(`in stock|available|ships`)
)

// AssertAvailability checks the stock label when the page shows one
func (p *Product) AssertAvailability(outOfStock bool) error {
	avail := p.Availability()
	if !avail.Present() {
		p.log.Info("availability label not rendered")
		return nil
	}
	want := inStockText
	if outOfStock {
		want = outOfStockText
	}
	return p.eventually("availability matches "+want.String(), func() error {
		text, err := textNow(avail)
		if err != nil {
			return err
		}
		if !want.MatchString(strings.ToLower(text)) {
			return fmt.Errorf("availability is %q", text)
		}
		return nil
	})
}

// AssertReviewsBasic expects at least minCount review entries
func (p *Product) AssertReviewsBasic(minCount int) error {
	section := p.ReviewsSection()
	return p.eventually(fmt.Sprintf("at least %d reviews", minCount), func() error {
		loc, _, err := section.Match()
		if err != nil {
			return err
		}
		items := p.within(loc.First(), "review items", locator.CSS(`[data-test="review-item"], .review, li`))
		if n := items.Count(); n < minCount {
			return fmt.Errorf("%d reviews", n)
		}
		return nil
	})
}

var firstNumber = regexp.MustCompile(`\d+`)

// AssertCartCountAtLeast expects the header cart indicator to show n or more
func (p *Product) AssertCartCountAtLeast(n int) error {
	badge := p.CartCountBadge()
	return p.eventually(fmt.Sprintf("cart count at least %d", n), func() error {
		text, err := textNow(badge)
		if err != nil {
			return err
		}
		m := firstNumber.FindString(text)
		if m == "" {
			return fmt.Errorf("cart indicator %q has no count", text)
		}
		count, _ := strconv.Atoi(m)
		if count < n {
			return fmt.Errorf("cart count is %d", count)
		}
		return nil
	})
}

// SelectThumbnail clicks gallery thumbnail i
func (p *Product) SelectThumbnail(i int) error {
	thumb, err := p.GalleryThumbnails().Nth(i)
	if err != nil {
		return err
	}
	if err := thumb.Click(); err != nil {
		return fmt.Errorf("click thumbnail %d: %w", i, err)
	}
	return nil
}

// MainImageSource returns the src of the main image
func (p *Product) MainImageSource() (string, error) {
	return p.MainImage().Attribute("src")
}
