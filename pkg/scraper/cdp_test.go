package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cdpSnapshotHTML = `
<html><body>
<div class="blocks-portfolio__card-wrapper" data-category="InvestimentoDiretto"
     data-veicolo="Technology Transfer Fund" data-settore="Healthcare &amp; Lifescience" data-regione="Lombardia">
  <h4 class="h4">BioCure</h4>
  <a class="btn-animated-icon-grey" href="https://biocure.example">Sito</a>
</div>
<div class="blocks-portfolio__card-wrapper" data-category="InvestimentoDiretto"
     data-veicolo="Digital Transition NRRP Fund / Green Transition NRRP Fund" data-settore="Clean Tech" data-regione="Lazio">
  <h4 class="h4">SolarGrid</h4>
</div>
<div class="blocks-portfolio__card-wrapper" data-category="InvestimentoDiretto"
     data-veicolo="" data-settore="Other , tecnologiaAi" data-regione="Altro">
  <h4 class="h4">DeepParse</h4>
</div>
<div class="blocks-portfolio__card-wrapper" data-category="FondiSupportati"
     data-veicolo="VenturItaly Fund of Funds">
  <h4 class="h4">United Ventures II</h4>
  <a class="btn-animated-icon-grey" href="https://unitedventures.example">Sito</a>
</div>
</body></html>`

func TestCDPProcessDocument(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cdpSnapshotHTML))
	require.NoError(t, err)

	acc := NewAccumulator()
	require.NoError(t, NewCDPScraper("", nil).ProcessDocument(doc, acc))

	require.Len(t, acc.Startups, 3)
	biocure := acc.Startups[0]
	assert.Equal(t, "BioCure", biocure["name"])
	assert.Equal(t, "HealthTech", biocure["sector"])
	assert.Equal(t, "SaaS", biocure["business_model"])
	assert.Equal(t, "Italy", biocure["headquarters"])
	assert.Equal(t, "https://biocure.example", biocure["website"])

	// the first mapped sector wins, even when it is the catch-all
	assert.Equal(t, "Other", acc.Startups[2]["sector"])

	// one investment per vehicle, direct CDP investment when no vehicle
	require.Len(t, acc.Investments, 4)
	assert.Equal(t, "Technology Transfer Fund", acc.Investments[0]["investor_name"])
	assert.Equal(t, "VC_Fund", acc.Investments[0]["investor_type"])
	assert.Equal(t, "Digital Transition NRRP Fund", acc.Investments[1]["investor_name"])
	assert.Equal(t, "Green Transition NRRP Fund", acc.Investments[2]["investor_name"])
	assert.Equal(t, "CDP Venture Capital", acc.Investments[3]["investor_name"])
	assert.Equal(t, "VC_Firm", acc.Investments[3]["investor_type"])

	// a supported fund plus CDP's own six vehicles
	require.Len(t, acc.VCFunds, 7)
	assert.Equal(t, "United Ventures II", acc.VCFunds[0]["name"])
	assert.Equal(t, "VenturItaly Fund of Funds", acc.VCFunds[1]["name"])

	require.Len(t, acc.Participations, 1)
	lp := acc.Participations[0]
	assert.Equal(t, "VenturItaly Fund of Funds", lp["investor_name"])
	assert.Equal(t, "United Ventures II", lp["fund_name"])

	require.Len(t, acc.VCFirms, 1)
	assert.Equal(t, "CDP Venture Capital", acc.VCFirms[0]["name"])
	assert.Equal(t, "Government_VC", acc.VCFirms[0]["type"])
}

func TestSplitVehicle(t *testing.T) {
	assert.Nil(t, SplitVehicle("  "))
	assert.Equal(t, []string{"Technology Transfer Fund"}, SplitVehicle("Technology Transfer Fund"))
	assert.Equal(t,
		[]string{"VenturItaly Fund of Funds", "Technology Transfer Fund"},
		SplitVehicle("VenturItaly Fund of Funds / Technology Transfer Fund"))
	// unrecognized values pass through untouched
	assert.Equal(t, []string{"Fondo Sconosciuto"}, SplitVehicle("Fondo Sconosciuto"))
}

func TestMapCDPSector(t *testing.T) {
	assert.Equal(t, "HealthTech", MapCDPSector("Healthcare & Lifescience"))
	assert.Equal(t, "Other", MapCDPSector("Other , tecnologiaAi"))
	assert.Equal(t, "AI & Machine Learning", MapCDPSector("tecnologiaAi"))
	assert.Equal(t, "CleanTech", MapCDPSector("green hydrogen"))
	assert.Equal(t, "Other", MapCDPSector("something else"))
}

func TestCDPScrapeMissingSnapshot(t *testing.T) {
	err := NewCDPScraper("/nonexistent/CDP.html", nil).Scrape(NewAccumulator())
	assert.Error(t, err)
}
