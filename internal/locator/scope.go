package locator

import "github.com/playwright-community/playwright-go"

// Scope turns a strategy into a playwright locator within some root
type Scope interface {
	Find(s Strategy) playwright.Locator
}

// OnPage searches the whole page
func OnPage(page playwright.Page) Scope {
	return pageScope{page: page}
}

// Within searches the sub-tree below root, e.g. one cart row
func Within(root playwright.Locator) Scope {
	return locatorScope{root: root}
}

type pageScope struct {
	page playwright.Page
}

func (p pageScope) Find(s Strategy) playwright.Locator {
	switch s.Kind {
	case KindRole:
		opts := playwright.PageGetByRoleOptions{}
		if s.Pattern != nil {
			opts.Name = s.Pattern
		}
		return p.page.GetByRole(playwright.AriaRole(s.Role), opts)
	case KindLabel:
		return p.page.GetByLabel(s.Pattern)
	case KindText:
		return p.page.GetByText(s.Pattern)
	default:
		return p.page.Locator(s.Selector)
	}
}

type locatorScope struct {
	root playwright.Locator
}

func (l locatorScope) Find(s Strategy) playwright.Locator {
	switch s.Kind {
	case KindRole:
		opts := playwright.LocatorGetByRoleOptions{}
		if s.Pattern != nil {
			opts.Name = s.Pattern
		}
		return l.root.GetByRole(playwright.AriaRole(s.Role), opts)
	case KindLabel:
		return l.root.GetByLabel(s.Pattern)
	case KindText:
		return l.root.GetByText(s.Pattern)
	default:
		return l.root.Locator(s.Selector)
	}
}
