package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractProvenance(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div><h2>  Fallback  Name </h2><a class="site" href="https://x.example">x</a></div>`))
	require.NoError(t, err)
	sel := doc.Find("div")

	got := Extract(sel,
		Selector("primary-heading", "h1"),
		Selector("secondary-heading", "h2"),
	)
	assert.True(t, got.Found())
	assert.Equal(t, "Fallback Name", got.Value)
	assert.Equal(t, "secondary-heading", got.Strategy)

	href := Extract(sel, Attr("site-link", "a.site", "href"))
	assert.Equal(t, "https://x.example", href.Value)
	assert.Equal(t, "site-link", href.Strategy)

	missing := Extract(sel, Selector("primary-heading", "h1"))
	assert.False(t, missing.Found())
	assert.Empty(t, missing.Value)
}
