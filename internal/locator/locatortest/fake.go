// Package locatortest provides an in-memory stand-in for a playwright page so
// locator handles and page objects can be tested without a browser.
//
// Elements are registered under the locator.Strategy that should find them.
// Methods not overridden here panic through the nil embedded interface.
package locatortest

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/amazona/e2e/internal/locator"
)

// Element is one fake DOM node
type Element struct {
	Text     string
	Value    string
	Attrs    map[string]string
	Hidden   bool
	Disabled bool
	Options  []string // labels of a select element
	OnClick  func()
	Eval     interface{} // returned by Evaluate

	Clicks   int
	Checked  bool
	Filled   []string
	Selected []string
	Pressed  []string

	children map[string][]*Element
}

// Add registers children found by s below e
func (e *Element) Add(s locator.Strategy, children ...*Element) *Element {
	if e.children == nil {
		e.children = map[string][]*Element{}
	}
	e.children[s.String()] = append(e.children[s.String()], children...)
	return e
}

// Dialog is a fake browser dialog
type Dialog struct {
	playwright.Dialog
	Kind      string
	Msg       string
	Dismissed bool
}

func (d *Dialog) Type() string    { return d.Kind }
func (d *Dialog) Message() string { return d.Msg }
func (d *Dialog) Dismiss() error  { d.Dismissed = true; return nil }
func (d *Dialog) Accept(...string) error {
	return nil
}

// Page is a fake playwright.Page
type Page struct {
	playwright.Page

	mu       sync.Mutex
	elements map[string][]*Element
	url      string
	visits   []string
	idle     int
	keys     []string
	viewport [2]int
	dialogs  []func(playwright.Dialog)

	// EvalResult is returned by Evaluate, keyed by expression when present
	EvalResult map[string]interface{}
	// OnGoto runs after every navigation with the requested URL
	OnGoto func(url string)
}

// NewPage returns an empty fake page at about:blank
func NewPage() *Page {
	return &Page{elements: map[string][]*Element{}, url: "about:blank", EvalResult: map[string]interface{}{}}
}

// Add registers elements found by s
func (p *Page) Add(s locator.Strategy, els ...*Element) *Page {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.elements[s.String()] = append(p.elements[s.String()], els...)
	return p
}

// Set replaces the elements found by s
func (p *Page) Set(s locator.Strategy, els ...*Element) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(els) == 0 {
		delete(p.elements, s.String())
		return
	}
	p.elements[s.String()] = els
}

// AddAfter registers elements once d has elapsed
func (p *Page) AddAfter(d time.Duration, s locator.Strategy, els ...*Element) {
	time.AfterFunc(d, func() { p.Add(s, els...) })
}

// Update runs fn while holding the page lock, for mutating elements that a
// concurrent poll may be reading
func (p *Page) Update(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn()
}

// Visits returns every URL passed to Goto
func (p *Page) Visits() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.visits...)
}

// IdleWaits returns how many times WaitForLoadState was called
func (p *Page) IdleWaits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.idle
}

// Keys returns every key pressed through the keyboard
func (p *Page) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

// Viewport returns the last size set with SetViewportSize
func (p *Page) Viewport() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewport[0], p.viewport[1]
}

// SetURL moves the fake to url without recording a visit
func (p *Page) SetURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = url
}

// RaiseDialog delivers a dialog to every registered handler
func (p *Page) RaiseDialog(d *Dialog) {
	p.mu.Lock()
	handlers := append(([]func(playwright.Dialog))(nil), p.dialogs...)
	p.mu.Unlock()
	for _, h := range handlers {
		h(d)
	}
}

func (p *Page) lookup(key string) *Locator {
	return &Locator{page: p, key: key, resolve: func() []*Element {
		return p.elements[key]
	}}
}

func (p *Page) GetByRole(role playwright.AriaRole, options ...playwright.PageGetByRoleOptions) playwright.Locator {
	var name interface{}
	if len(options) > 0 {
		name = options[0].Name
	}
	return p.lookup(roleKey(string(role), name))
}

func (p *Page) GetByLabel(text interface{}, _ ...playwright.PageGetByLabelOptions) playwright.Locator {
	return p.lookup("label=" + patternKey(text))
}

func (p *Page) GetByText(text interface{}, _ ...playwright.PageGetByTextOptions) playwright.Locator {
	return p.lookup("text=" + patternKey(text))
}

func (p *Page) Locator(selector string, _ ...playwright.PageLocatorOptions) playwright.Locator {
	return p.lookup("css=" + selector)
}

func (p *Page) Goto(url string, _ ...playwright.PageGotoOptions) (playwright.Response, error) {
	p.mu.Lock()
	p.url = url
	p.visits = append(p.visits, url)
	hook := p.OnGoto
	p.mu.Unlock()
	if hook != nil {
		hook(url)
	}
	return nil, nil
}

func (p *Page) Reload(_ ...playwright.PageReloadOptions) (playwright.Response, error) {
	return nil, nil
}

func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *Page) WaitForLoadState(_ ...playwright.PageWaitForLoadStateOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.idle++
	return nil
}

func (p *Page) SetViewportSize(width, height int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewport = [2]int{width, height}
	return nil
}

func (p *Page) Evaluate(expression string, _ ...interface{}) (interface{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.EvalResult[expression]; ok {
		return v, nil
	}
	return nil, nil
}

func (p *Page) OnDialog(fn func(playwright.Dialog)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dialogs = append(p.dialogs, fn)
}

func (p *Page) Keyboard() playwright.Keyboard {
	return &keyboard{page: p}
}

func (p *Page) Screenshot(_ ...playwright.PageScreenshotOptions) ([]byte, error) {
	return []byte{}, nil
}

type keyboard struct {
	playwright.Keyboard
	page *Page
}

func (k *keyboard) Press(key string, _ ...playwright.KeyboardPressOptions) error {
	k.page.mu.Lock()
	defer k.page.mu.Unlock()
	k.page.keys = append(k.page.keys, key)
	return nil
}

type pwLocator = playwright.Locator

// Locator is a fake playwright.Locator evaluated against the live fake page
type Locator struct {
	pwLocator
	page    *Page
	key     string
	resolve func() []*Element // called with page.mu held
}

func (l *Locator) derive(key string, fn func(els []*Element) []*Element) *Locator {
	parent := l.resolve
	return &Locator{page: l.page, key: key, resolve: func() []*Element {
		return fn(parent())
	}}
}

func (l *Locator) String() string { return l.key }

// single returns the only element, as playwright's strict mode requires
func (l *Locator) single() (*Element, error) {
	l.page.mu.Lock()
	defer l.page.mu.Unlock()
	els := l.resolve()
	switch len(els) {
	case 0:
		return nil, fmt.Errorf("%s: %w", l.key, errNoElement)
	case 1:
		return els[0], nil
	default:
		return nil, fmt.Errorf("strict mode violation: %s resolved to %d elements", l.key, len(els))
	}
}

var errNoElement = errors.New("no element")

func (l *Locator) Count() (int, error) {
	l.page.mu.Lock()
	defer l.page.mu.Unlock()
	return len(l.resolve()), nil
}

func (l *Locator) First() playwright.Locator {
	return l.Nth(0)
}

func (l *Locator) Last() playwright.Locator {
	return l.derive(l.key+" >> last", func(els []*Element) []*Element {
		if len(els) == 0 {
			return nil
		}
		return els[len(els)-1:]
	})
}

func (l *Locator) Nth(i int) playwright.Locator {
	return l.derive(fmt.Sprintf("%s >> nth=%d", l.key, i), func(els []*Element) []*Element {
		if i < 0 || i >= len(els) {
			return nil
		}
		return els[i : i+1]
	})
}

func (l *Locator) All() ([]playwright.Locator, error) {
	n, _ := l.Count()
	out := make([]playwright.Locator, n)
	for i := range out {
		out[i] = l.Nth(i)
	}
	return out, nil
}

func (l *Locator) AllInnerTexts() ([]string, error) {
	l.page.mu.Lock()
	defer l.page.mu.Unlock()
	var texts []string
	for _, el := range l.resolve() {
		texts = append(texts, el.Text)
	}
	return texts, nil
}

func (l *Locator) Click(_ ...playwright.LocatorClickOptions) error {
	el, err := l.single()
	if err != nil {
		return err
	}
	l.page.mu.Lock()
	if el.Disabled {
		l.page.mu.Unlock()
		return fmt.Errorf("%s: element is disabled", l.key)
	}
	el.Clicks++
	hook := el.OnClick
	l.page.mu.Unlock()
	if hook != nil {
		hook()
	}
	return nil
}

func (l *Locator) Fill(value string, _ ...playwright.LocatorFillOptions) error {
	el, err := l.single()
	if err != nil {
		return err
	}
	l.page.mu.Lock()
	defer l.page.mu.Unlock()
	el.Value = value
	el.Filled = append(el.Filled, value)
	return nil
}

func (l *Locator) Check(_ ...playwright.LocatorCheckOptions) error {
	el, err := l.single()
	if err != nil {
		return err
	}
	l.page.mu.Lock()
	defer l.page.mu.Unlock()
	el.Checked = true
	return nil
}

func (l *Locator) Press(key string, _ ...playwright.LocatorPressOptions) error {
	el, err := l.single()
	if err != nil {
		return err
	}
	l.page.mu.Lock()
	defer l.page.mu.Unlock()
	el.Pressed = append(el.Pressed, key)
	return nil
}

func (l *Locator) SelectOption(values playwright.SelectOptionValues, _ ...playwright.LocatorSelectOptionOptions) ([]string, error) {
	el, err := l.single()
	if err != nil {
		return nil, err
	}
	l.page.mu.Lock()
	defer l.page.mu.Unlock()
	var picked []string
	if values.Labels != nil {
		picked = append(picked, *values.Labels...)
	}
	if values.Values != nil {
		picked = append(picked, *values.Values...)
	}
	for _, v := range picked {
		if len(el.Options) > 0 && !slices.Contains(el.Options, v) {
			return nil, fmt.Errorf("%s: no option %q", l.key, v)
		}
	}
	el.Selected = append(el.Selected, picked...)
	return picked, nil
}

func (l *Locator) IsVisible(_ ...playwright.LocatorIsVisibleOptions) (bool, error) {
	l.page.mu.Lock()
	defer l.page.mu.Unlock()
	els := l.resolve()
	if len(els) == 0 {
		return false, nil
	}
	if len(els) > 1 {
		return false, fmt.Errorf("strict mode violation: %s resolved to %d elements", l.key, len(els))
	}
	return !els[0].Hidden, nil
}

func (l *Locator) IsDisabled(_ ...playwright.LocatorIsDisabledOptions) (bool, error) {
	el, err := l.single()
	if err != nil {
		return false, err
	}
	l.page.mu.Lock()
	defer l.page.mu.Unlock()
	return el.Disabled, nil
}

func (l *Locator) IsChecked(_ ...playwright.LocatorIsCheckedOptions) (bool, error) {
	el, err := l.single()
	if err != nil {
		return false, err
	}
	l.page.mu.Lock()
	defer l.page.mu.Unlock()
	return el.Checked, nil
}

func (l *Locator) GetAttribute(name string, _ ...playwright.LocatorGetAttributeOptions) (string, error) {
	el, err := l.single()
	if err != nil {
		return "", err
	}
	l.page.mu.Lock()
	defer l.page.mu.Unlock()
	return el.Attrs[name], nil
}

func (l *Locator) InnerText(_ ...playwright.LocatorInnerTextOptions) (string, error) {
	el, err := l.single()
	if err != nil {
		return "", err
	}
	l.page.mu.Lock()
	defer l.page.mu.Unlock()
	return el.Text, nil
}

func (l *Locator) TextContent(_ ...playwright.LocatorTextContentOptions) (string, error) {
	return l.InnerText()
}

func (l *Locator) InputValue(_ ...playwright.LocatorInputValueOptions) (string, error) {
	el, err := l.single()
	if err != nil {
		return "", err
	}
	l.page.mu.Lock()
	defer l.page.mu.Unlock()
	return el.Value, nil
}

func (l *Locator) WaitFor(_ ...playwright.LocatorWaitForOptions) error {
	if n, _ := l.Count(); n == 0 {
		return fmt.Errorf("%s: %w", l.key, errNoElement)
	}
	return nil
}

func (l *Locator) Evaluate(_ string, _ interface{}, _ ...playwright.LocatorEvaluateOptions) (interface{}, error) {
	el, err := l.single()
	if err != nil {
		return nil, err
	}
	l.page.mu.Lock()
	defer l.page.mu.Unlock()
	return el.Eval, nil
}

func (l *Locator) ScrollIntoViewIfNeeded(_ ...playwright.LocatorScrollIntoViewIfNeededOptions) error {
	return nil
}

func (l *Locator) Hover(_ ...playwright.LocatorHoverOptions) error {
	return nil
}

func (l *Locator) children(key string) *Locator {
	return l.derive(l.key+" >> "+key, func(els []*Element) []*Element {
		var out []*Element
		for _, el := range els {
			out = append(out, el.children[key]...)
		}
		return out
	})
}

func (l *Locator) GetByRole(role playwright.AriaRole, options ...playwright.LocatorGetByRoleOptions) playwright.Locator {
	var name interface{}
	if len(options) > 0 {
		name = options[0].Name
	}
	return l.children(roleKey(string(role), name))
}

func (l *Locator) GetByLabel(text interface{}, _ ...playwright.LocatorGetByLabelOptions) playwright.Locator {
	return l.children("label=" + patternKey(text))
}

func (l *Locator) GetByText(text interface{}, _ ...playwright.LocatorGetByTextOptions) playwright.Locator {
	return l.children("text=" + patternKey(text))
}

func (l *Locator) Locator(selectorOrLocator interface{}, _ ...playwright.LocatorLocatorOptions) playwright.Locator {
	sel, _ := selectorOrLocator.(string)
	return l.children("css=" + sel)
}

func roleKey(role string, name interface{}) string {
	if name == nil {
		return "role=" + role
	}
	return fmt.Sprintf("role=%s[%s]", role, patternKey(name))
}

func patternKey(v interface{}) string {
	switch t := v.(type) {
	case *regexp.Regexp:
		return locator.FormatPattern(t)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
