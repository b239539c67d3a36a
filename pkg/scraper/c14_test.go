package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const c14DirectoryHTML = `
<html><body>
<a href="123e4567-e89b-12d3-a456-426614174000">Satispay Mobile payments for everyone</a>
<a href="123e4567-e89b-12d3-a456-426614174001">Bending Spoons</a>
<a href="/startups?page=2">Next</a>
<a href="https://twitter.com/c14so">Twitter</a>
</body></html>`

func TestC14CollectLinks(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(c14DirectoryHTML))
	require.NoError(t, err)

	links := NewC14Scraper(0, nil).CollectLinks(doc)
	require.Len(t, links, 2)

	assert.Equal(t, "Satispay", links[0].Name)
	assert.Equal(t, "Mobile payments for everyone", links[0].Description)
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", links[0].UUID)
	assert.Equal(t, "https://www.c14.so/123e4567-e89b-12d3-a456-426614174000", links[0].URL)

	assert.Equal(t, "Bending", links[1].Name)
	assert.Equal(t, "Spoons", links[1].Description)
}

const c14NextDataHTML = `
<html><body>
<script id="__NEXT_DATA__" type="application/json">
{"props":{"pageProps":{"startup":{
  "name":"Satispay",
  "description":"Mobile payments independent network",
  "website":"https://www.satispay.com",
  "foundationDate":"Founded in 2013",
  "teamSize":"501-1000",
  "fundingStage":"Series D",
  "amountRaised":"€320M raised",
  "location":"Milan, Italy",
  "sectors":[{"name":"FinTech"},{"name":"Mobile"}]
}}}}
</script>
</body></html>`

func TestC14ExtractStartupFromNextData(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(c14NextDataHTML))
	require.NoError(t, err)

	link := StartupLink{Name: "Satispay", Description: "from listing", UUID: "x"}
	rec := NewC14Scraper(0, nil).ExtractStartup(doc, link)

	assert.Equal(t, "Satispay", rec["name"])
	assert.Equal(t, "Mobile payments independent network", rec["description"])
	assert.Equal(t, "https://www.satispay.com", rec["website"])
	assert.Equal(t, "2013", rec["founded_year"])
	assert.Equal(t, "501-1000", rec["employee_count"])
	assert.Equal(t, "Series D", rec["stage"])
	assert.Equal(t, "320", rec["total_funding"])
	assert.Equal(t, "Milan, Italy", rec["headquarters"])
	assert.Equal(t, "FinTech, Mobile", rec["sector"])
	assert.Equal(t, "active", rec["status"])
}

const c14MarkupHTML = `
<html><body>
<h1>Satispay</h1>
<a href="https://www.satispay.com">Visit website</a>
<dl>
  <dt>Location</dt><dd>Milan, Italy</dd>
  <dt>Foundation date</dt><dd>2013</dd>
  <dt>Team size</dt><dd>501-1000</dd>
  <dt>Funding stage</dt><dd>Unknown</dd>
  <dt>Amount raised</dt><dd>€320M</dd>
</dl>
<span class="tag-sector">FinTech</span>
</body></html>`

func TestC14ExtractStartupFromMarkup(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(c14MarkupHTML))
	require.NoError(t, err)

	link := StartupLink{Name: "satispay-from-listing", Description: "listing blurb", UUID: "x"}
	rec := NewC14Scraper(0, nil).ExtractStartup(doc, link)

	assert.Equal(t, "Satispay", rec["name"])
	assert.Equal(t, "listing blurb", rec["description"])
	assert.Equal(t, "https://www.satispay.com", rec["website"])
	assert.Equal(t, "Milan, Italy", rec["headquarters"])
	assert.Equal(t, "2013", rec["founded_year"])
	assert.Equal(t, "501-1000", rec["employee_count"])
	assert.Equal(t, "320", rec["total_funding"])
	assert.Equal(t, "FinTech", rec["sector"])
	// "Unknown" funding stage is dropped so the importer default applies
	_, present := rec["stage"]
	assert.False(t, present)
}
