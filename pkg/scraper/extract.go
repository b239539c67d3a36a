package scraper

import (
	"github.com/PuerkitoBio/goquery"
)

// Strategy is one named way of pulling a field out of a page fragment. Site
// scrapers declare an ordered strategy list per field instead of burying
// fallbacks in nested conditionals, so a scrape result carries which
// strategy actually produced each value.
type Strategy struct {
	Name string
	Fn   func(*goquery.Selection) string
}

// Extraction is the outcome of running a strategy list: the value and the
// name of the strategy that matched. An empty Strategy means nothing
// matched.
type Extraction struct {
	Value    string
	Strategy string
}

// Found reports whether any strategy produced a value.
func (e Extraction) Found() bool { return e.Strategy != "" }

// Extract runs the strategies in order and stops at the first non-empty
// result.
func Extract(sel *goquery.Selection, strategies ...Strategy) Extraction {
	for _, s := range strategies {
		if v := cleanText(s.Fn(sel)); v != "" {
			return Extraction{Value: v, Strategy: s.Name}
		}
	}
	return Extraction{}
}

// Selector is shorthand for a strategy that takes the text of the first
// match of a CSS selector.
func Selector(name, selector string) Strategy {
	return Strategy{Name: name, Fn: func(sel *goquery.Selection) string {
		return sel.Find(selector).First().Text()
	}}
}

// Attr is shorthand for a strategy that takes an attribute of the first
// match of a CSS selector.
func Attr(name, selector, attr string) Strategy {
	return Strategy{Name: name, Fn: func(sel *goquery.Selection) string {
		v, _ := sel.Find(selector).First().Attr(attr)
		return v
	}}
}
