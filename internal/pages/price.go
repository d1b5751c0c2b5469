package pages

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var pricePattern = regexp.MustCompile(`[$€£]\s*([0-9][0-9,]*(?:\.[0-9]{2})?)`)

// ParsePrice extracts the first currency-prefixed amount from rendered text.
// ok is false when the text carries no such amount.
func ParsePrice(text string) (price float64, ok bool) {
	m := pricePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParsePrices parses every text and drops those without a price
func ParsePrices(texts []string) []float64 {
	prices := make([]float64, 0, len(texts))
	for _, t := range texts {
		if p, ok := ParsePrice(t); ok {
			prices = append(prices, p)
		}
	}
	return prices
}

// PriceRange bounds prices. A nil bound is open.
type PriceRange struct {
	Min *float64
	Max *float64
}

// Between returns a closed range
func Between(min, max float64) PriceRange {
	return PriceRange{Min: &min, Max: &max}
}

func (r PriceRange) String() string {
	lo, hi := "-inf", "+inf"
	if r.Min != nil {
		lo = strconv.FormatFloat(*r.Min, 'f', -1, 64)
	}
	if r.Max != nil {
		hi = strconv.FormatFloat(*r.Max, 'f', -1, 64)
	}
	return "[" + lo + ", " + hi + "]"
}

// CheckAscending fails unless there are at least two prices and they are in
// ascending order
func CheckAscending(prices []float64) error {
	if len(prices) < 2 {
		return fmt.Errorf("%w: need more than one price to check order, have %v", ErrAssertion, prices)
	}
	if !sort.Float64sAreSorted(prices) {
		return fmt.Errorf("%w: prices %v are not in ascending order", ErrAssertion, prices)
	}
	return nil
}

// CheckWithin fails unless there is at least one price and all lie in r
func CheckWithin(prices []float64, r PriceRange) error {
	if len(prices) == 0 {
		return fmt.Errorf("%w: no prices to check against %s", ErrAssertion, r)
	}
	for _, p := range prices {
		if r.Min != nil && p < *r.Min {
			return fmt.Errorf("%w: price %v below %s", ErrAssertion, p, r)
		}
		if r.Max != nil && p > *r.Max {
			return fmt.Errorf("%w: price %v above %s", ErrAssertion, p, r)
		}
	}
	return nil
}
