package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPranaScrape(t *testing.T) {
	acc := NewAccumulator()
	require.NoError(t, NewPranaScraper(nil).Scrape(acc))

	assert.Len(t, acc.Startups, len(pranaPortfolio))
	assert.Len(t, acc.Investments, len(pranaPortfolio))
	assert.Empty(t, acc.People)

	for _, rec := range acc.Startups {
		assert.Equal(t, "Seed", rec["stage"])
		assert.Equal(t, "active", rec["status"])
		assert.NotEmpty(t, rec["sector"], rec["name"])
	}
	for _, rec := range acc.Investments {
		assert.Equal(t, "Prana Ventures", rec["investor_name"])
		assert.Equal(t, "VC_Firm", rec["investor_type"])
	}
}

func TestPrimoScrape(t *testing.T) {
	acc := NewAccumulator()
	require.NoError(t, NewPrimoScraper(nil).Scrape(acc))

	assert.Len(t, acc.Startups, len(primoPortfolio))
	assert.Len(t, acc.Investments, len(primoPortfolio))

	byName := map[string]Record{}
	for _, rec := range acc.Startups {
		assert.Equal(t, "Growth", rec["stage"])
		byName[rec["name"]] = rec
	}
	chai, ok := byName["ChAI"]
	require.True(t, ok)
	assert.Equal(t, "FinTech", chai["sector"])
	assert.Equal(t, "Italy", chai["headquarters"])

	vection, ok := byName["Vection Technologies"]
	require.True(t, ok)
	assert.Equal(t, "Australia", vection["headquarters"])
}
