package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		full, first, last string
	}{
		{"Mario Rossi", "Mario", "Rossi"},
		{"Anna Maria De Luca", "Anna", "Maria De Luca"},
		{"Madonna", "Madonna", ""},
		{"", "", ""},
		{"  Mario   Rossi  ", "Mario", "Rossi"},
	}
	for _, tt := range tests {
		first, last := SplitName(tt.full)
		assert.Equal(t, tt.first, first, tt.full)
		assert.Equal(t, tt.last, last, tt.full)
	}
}

func TestLinkedInUsername(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://www.linkedin.com/in/mario-rossi/", "mario-rossi"},
		{"http://www.linkedin.com/in/mario-rossi", "mario-rossi"},
		{"https://www.linkedin.com/in/https://www.linkedin.com/in/simone-patera", "simone-patera"},
		{"https://www.linkedin.com/in/mario-rossi?utm_source=share", "mario-rossi"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LinkedInUsername(tt.in), tt.in)
	}
}

func TestSectorFromDescription(t *testing.T) {
	assert.Equal(t, "FinTech", SectorFromDescription("Digital payment infrastructure for merchants"))
	assert.Equal(t, "HealthTech", SectorFromDescription("Clinical trials made simple"))
	assert.Equal(t, "Technology", SectorFromDescription(""))
	assert.Equal(t, "Technology", SectorFromDescription("something entirely unrelated"))
	// earlier rules win on multi-sector blurbs
	assert.Equal(t, "FinTech", SectorFromDescription("payment platform for enterprise"))
}

func TestBusinessModelHeuristics(t *testing.T) {
	assert.Equal(t, "SaaS", BusinessModelFromCategory("saas-platform", "Consumer Tech"))
	assert.Equal(t, "Marketplace", BusinessModelFromCategory("marketplace", ""))
	assert.Equal(t, "B2C", BusinessModelFromCategory("e-commerce", ""))
	assert.Equal(t, "B2B", BusinessModelFromCategory("", "HR Tech"))

	assert.Equal(t, "SaaS", BusinessModelFromDescription("The event management software", "Enterprise Software"))
	assert.Equal(t, "B2C", BusinessModelFromDescription("handmade goods", "Retail & E-commerce"))
	assert.Equal(t, "B2B", BusinessModelFromDescription("fluorescence microscopy", "HealthTech"))
}

func TestHeadquartersFromWebsite(t *testing.T) {
	assert.Equal(t, "Italy", HeadquartersFromWebsite("https://factanza.it/"))
	assert.Equal(t, "Australia", HeadquartersFromWebsite("https://www.vection.com.au/"))
	assert.Equal(t, "Switzerland", HeadquartersFromWebsite("https://example.ch/"))
	assert.Equal(t, "Italy", HeadquartersFromWebsite(""))
	assert.Equal(t, "Italy", HeadquartersFromWebsite("https://keyless.io/"))
}

func TestCountryFromFlagIcon(t *testing.T) {
	assert.Equal(t, "Italy", CountryFromFlagIcon("/images/icons8-italy-96.png"))
	assert.Equal(t, "United States", CountryFromFlagIcon("https://cdn.example.com/icons8-usa-96.png"))
	assert.Equal(t, "Unknown", CountryFromFlagIcon("/images/logo.png"))
}
