package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const iffPortfolioHTML = `
<html><body>
<div class="card-portfolio">
  <div class="pop-up-portfolio">
    <h3>PayFlow</h3>
    <p class="portfolio_text">Payment infrastructure for European merchants</p>
    <a class="button-block-34" href="https://payflow.example">Visit</a>
    <img class="image-5" src="/images/icons8-italy-96.png">
    <div class="founders">
      <div class="founder-item">
        <a class="button-block-34" href="https://www.linkedin.com/in/mario-rossi/">
          <div class="job-title">Mario Rossi</div>
        </a>
      </div>
      <div class="founder-item">
        <a class="button-block-34" href="https://www.linkedin.com/in/anna-bianchi/">
          <div class="job-title">Anna Bianchi</div>
        </a>
      </div>
    </div>
  </div>
</div>
<div class="card-portfolio">
  <div class="pop-up-portfolio">
    <h3>TutorNow</h3>
    <p class="portfolio_text">Online tutoring for high school students</p>
    <img class="image-5" src="/images/icons8-usa-96.png">
    <div class="founders">
      <div class="founder-item">
        <a class="button-block-34" href="https://www.linkedin.com/in/mario-rossi/">
          <div class="job-title">Mario Rossi</div>
        </a>
      </div>
    </div>
  </div>
</div>
</body></html>`

func TestIFFProcessPortfolio(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(iffPortfolioHTML))
	require.NoError(t, err)

	acc := NewAccumulator()
	require.NoError(t, NewIFFScraper(nil).ProcessPortfolio(doc, acc))

	require.Len(t, acc.Startups, 2)
	payflow := acc.Startups[0]
	assert.Equal(t, "PayFlow", payflow["name"])
	assert.Equal(t, "Payment infrastructure for European merchants", payflow["description"])
	assert.Equal(t, "https://payflow.example", payflow["website"])
	assert.Equal(t, "Italy", payflow["headquarters"])
	assert.Equal(t, "FinTech", payflow["sector"])
	assert.Equal(t, "Seed", payflow["stage"])

	tutornow := acc.Startups[1]
	assert.Equal(t, "United States", tutornow["headquarters"])
	assert.Equal(t, "EdTech", tutornow["sector"])
	assert.Empty(t, tutornow["website"])

	// Mario Rossi founded both companies but is collected once
	require.Len(t, acc.People, 2)
	assert.Equal(t, "Mario", acc.People[0]["name"])
	assert.Equal(t, "Rossi", acc.People[0]["surname"])
	assert.Equal(t, "Bianchi", acc.People[1]["surname"])

	// one founding relationship per founder item
	require.Len(t, acc.Founded, 3)
	assert.Equal(t, "PayFlow", acc.Founded[0]["startup_name"])
	assert.Equal(t, "TutorNow", acc.Founded[2]["startup_name"])

	// one IFF investment per startup
	require.Len(t, acc.Investments, 2)
	assert.Equal(t, "Italian Founders Fund", acc.Investments[0]["investor_name"])
	assert.Equal(t, "VC_Firm", acc.Investments[0]["investor_type"])
}

func TestIFFWebsiteSkipsFounderLinks(t *testing.T) {
	// the founders block precedes the website button on some cards
	const card = `
<div class="card-portfolio">
  <div class="pop-up-portfolio">
    <h3>ShipFast</h3>
    <p class="portfolio_text">Logistics platform for e-commerce shipments</p>
    <div class="founders">
      <div class="founder-item">
        <a class="button-block-34" href="https://www.linkedin.com/in/carla-verdi/">
          <div class="job-title">Carla Verdi</div>
        </a>
      </div>
    </div>
    <a class="button-block-34" href="https://shipfast.example">Visit</a>
  </div>
</div>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(card))
	require.NoError(t, err)

	acc := NewAccumulator()
	require.NoError(t, NewIFFScraper(nil).ProcessPortfolio(doc, acc))
	require.Len(t, acc.Startups, 1)
	assert.Equal(t, "https://shipfast.example", acc.Startups[0]["website"])
}

func TestIFFEmptyPageFails(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)
	assert.Error(t, NewIFFScraper(nil).ProcessPortfolio(doc, NewAccumulator()))
}
