package pages

import (
	"fmt"
	"strings"

	"github.com/amazona/e2e/internal/locator"
)

const (
	overflowScript = `() => document.documentElement.scrollWidth > document.documentElement.clientWidth`
	focusedScript  = `() => {
  const el = document.activeElement;
  if (!el) return '';
  return (el.getAttribute('role') || el.tagName).toLowerCase();
}`
	hrefsScript = `() => Array.from(document.querySelectorAll('a[href]')).map(a => a.getAttribute('href') || '')`
	imageLoaded = `img => img.complete && Number(img.naturalWidth) > 0`
)

// Images matches every image on the page
func (b *Base) Images() *locator.Handle {
	return b.handle("images", locator.CSS("img"))
}

// HasHorizontalOverflow reports whether the document is wider than the
// viewport
func (b *Base) HasHorizontalOverflow() (bool, error) {
	v, err := b.page.Evaluate(overflowScript)
	if err != nil {
		return false, fmt.Errorf("measure overflow: %w", err)
	}
	overflow, _ := v.(bool)
	return overflow, nil
}

// SetViewport resizes the page
func (b *Base) SetViewport(width, height int) error {
	if err := b.page.SetViewportSize(width, height); err != nil {
		return fmt.Errorf("set viewport %dx%d: %w", width, height, err)
	}
	return nil
}

// TabAndFocusedRole presses Tab and returns the role or tag of the element
// that received focus
func (b *Base) TabAndFocusedRole() (string, error) {
	if err := b.page.Keyboard().Press("Tab"); err != nil {
		return "", fmt.Errorf("press tab: %w", err)
	}
	v, err := b.page.Evaluate(focusedScript)
	if err != nil {
		return "", fmt.Errorf("read focused element: %w", err)
	}
	role, _ := v.(string)
	return role, nil
}

// LinkTargets returns the href of every link that points somewhere
// fetchable, skipping fragments, mailto and tel links
func (b *Base) LinkTargets() ([]string, error) {
	v, err := b.page.Evaluate(hrefsScript)
	if err != nil {
		return nil, fmt.Errorf("collect links: %w", err)
	}
	raw, _ := v.([]interface{})
	var hrefs []string
	for _, h := range raw {
		href, _ := h.(string)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
			continue
		}
		hrefs = append(hrefs, href)
	}
	return hrefs, nil
}

// ImageProblem describes a visible image that failed a check
type ImageProblem struct {
	Index int
	Src   string
	Issue string
}

// CheckImages inspects every visible image. Broken images and, when
// requireAlt is set, images without alt text are reported.
func (b *Base) CheckImages(requireAlt bool) ([]ImageProblem, error) {
	imgs := b.Images()
	if !imgs.Present() {
		return nil, nil
	}
	all, err := imgs.All()
	if err != nil {
		return nil, err
	}
	var problems []ImageProblem
	for i, img := range all {
		visible, err := img.IsVisible()
		if err != nil || !visible {
			continue
		}
		src, _ := img.GetAttribute("src")
		loaded, err := img.Evaluate(imageLoaded, nil)
		if err != nil {
			return nil, fmt.Errorf("inspect image %d: %w", i, err)
		}
		if ok, _ := loaded.(bool); !ok {
			problems = append(problems, ImageProblem{Index: i, Src: src, Issue: "not loaded"})
		}
		if requireAlt {
			alt, _ := img.GetAttribute("alt")
			if strings.TrimSpace(alt) == "" {
				problems = append(problems, ImageProblem{Index: i, Src: src, Issue: "missing alt text"})
			}
		}
	}
	return problems, nil
}
