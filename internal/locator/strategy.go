// Package locator resolves UI elements through an ordered list of alternative
// strategies, so a page object keeps working across small markup changes.
//
// A Handle is lazy: building one touches nothing. Every query walks the
// strategies in declared order against the live DOM and uses the first one
// that finds at least one element.
package locator

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind tags the variant carried by a Strategy
type Kind int

const (
	KindRole Kind = iota
	KindLabel
	KindText
	KindCSS
)

func (k Kind) String() string {
	switch k {
	case KindRole:
		return "role"
	case KindLabel:
		return "label"
	case KindText:
		return "text"
	case KindCSS:
		return "css"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Strategy is one way of finding an element. Build it with Role, Label, Text
// or CSS.
type Strategy struct {
	Kind     Kind
	Role     string         // KindRole only
	Pattern  *regexp.Regexp // accessible name for KindRole (optional), KindLabel, KindText
	Selector string         // KindCSS only
}

// Role matches elements by ARIA role and, when pattern is not empty, by an
// accessible name containing pattern (case-insensitive).
func Role(role, pattern string) Strategy {
	s := Strategy{Kind: KindRole, Role: role}
	if pattern != "" {
		s.Pattern = compile(pattern)
	}
	return s
}

// Label matches form controls whose label contains pattern (case-insensitive)
func Label(pattern string) Strategy {
	return Strategy{Kind: KindLabel, Pattern: compile(pattern)}
}

// Text matches elements whose text contains pattern (case-insensitive)
func Text(pattern string) Strategy {
	return Strategy{Kind: KindText, Pattern: compile(pattern)}
}

// CSS matches a CSS selector. A comma-separated list is a plain selector union.
func CSS(selector string) Strategy {
	return Strategy{Kind: KindCSS, Selector: selector}
}

func compile(pattern string) *regexp.Regexp {
	if strings.HasPrefix(pattern, "(?i)") {
		return regexp.MustCompile(pattern)
	}
	return regexp.MustCompile("(?i)" + pattern)
}

// String renders the strategy as role=button[/sign in/i], label=/email/i,
// text=/no products/i or css=#email.
func (s Strategy) String() string {
	switch s.Kind {
	case KindRole:
		if s.Pattern == nil {
			return "role=" + s.Role
		}
		return fmt.Sprintf("role=%s[%s]", s.Role, FormatPattern(s.Pattern))
	case KindCSS:
		return "css=" + s.Selector
	default:
		return s.Kind.String() + "=" + FormatPattern(s.Pattern)
	}
}

// FormatPattern renders a compiled pattern the way JavaScript writes it
func FormatPattern(re *regexp.Regexp) string {
	if re == nil {
		return "//"
	}
	src := re.String()
	if rest, ok := strings.CutPrefix(src, "(?i)"); ok {
		return "/" + rest + "/i"
	}
	return "/" + src + "/"
}
