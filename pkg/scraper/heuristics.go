package scraper

import (
	"net/url"
	"strings"
)

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitName splits a display name into first name and the remaining parts
// as surname.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// LinkedInUsername reduces a LinkedIn profile URL to the bare username.
// Some sites double up the URL in the href, so the last occurrence wins.
func LinkedInUsername(raw string) string {
	s := strings.TrimSpace(raw)
	const marker = "linkedin.com/in/"
	if i := strings.LastIndex(s, marker); i >= 0 {
		s = s[i+len(marker):]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	return strings.Trim(s, "/")
}

type sectorRule struct {
	sector   string
	keywords []string
}

// Ordered: earlier rules win when a description matches several.
var sectorRules = []sectorRule{
	{"FinTech", []string{"payment", "finance", "financial", "fintech", "banking", "revenue"}},
	{"HealthTech", []string{"health", "medical", "healthcare", "biotech", "wellness", "clinical"}},
	{"EdTech", []string{"education", "learning", "tutoring", "educational", "teaching"}},
	{"HR Tech", []string{"hr", "human resources", "recruitment", "payroll", "talent", "skills"}},
	{"MarTech", []string{"marketing", "advertising", "market research", "customer insights", "ad spend"}},
	{"Energy & CleanTech", []string{"energy", "sustainability", "environmental", "esg", "clean"}},
	{"AI & Machine Learning", []string{"ai", "artificial intelligence", "machine learning", "ml", "automation"}},
	{"IoT & Hardware", []string{"iot", "internet of things", "hardware", "sensors", "monitoring"}},
	{"Enterprise Software", []string{"enterprise", "b2b", "business", "saas", "software", "platform"}},
	{"Consumer Tech", []string{"consumer", "mobile", "app", "social", "networking"}},
	{"Transportation", []string{"mobility", "transportation", "automotive", "logistics"}},
	{"Real Estate", []string{"real estate", "property", "construction", "housing"}},
	{"Retail & E-commerce", []string{"retail", "e-commerce", "ecommerce", "shopping", "marketplace"}},
}

// SectorFromDescription classifies a startup by keywords in its blurb.
func SectorFromDescription(description string) string {
	if description == "" {
		return "Technology"
	}
	desc := strings.ToLower(description)
	for _, rule := range sectorRules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return rule.sector
			}
		}
	}
	return "Technology"
}

// BusinessModelFromCategory maps a portfolio category tag to a business
// model, falling back to a sector-based guess.
func BusinessModelFromCategory(category, sector string) string {
	switch category {
	case "saas-platform", "ai":
		return "SaaS"
	case "marketplace":
		return "Marketplace"
	case "e-commerce":
		return "B2C"
	case "blockchain":
		return "B2B"
	}
	switch sector {
	case "Enterprise Software", "HR Tech", "MarTech":
		return "B2B"
	}
	return "B2B"
}

// BusinessModelFromDescription is the growth-portfolio variant: SaaS when
// the blurb says so, otherwise a sector-based guess.
func BusinessModelFromDescription(description, sector string) string {
	desc := strings.ToLower(description)
	for _, kw := range []string{"saas", "software", "platform", "api"} {
		if strings.Contains(desc, kw) {
			return "SaaS"
		}
	}
	switch sector {
	case "Retail & E-commerce", "Consumer Tech":
		return "B2C"
	}
	return "B2B"
}

// HeadquartersFromWebsite guesses a country from the website TLD. Italian
// VC portfolios default to Italy.
func HeadquartersFromWebsite(website string) string {
	if website == "" {
		return "Italy"
	}
	u, err := url.Parse(website)
	if err != nil {
		return "Italy"
	}
	domain := strings.ToLower(u.Hostname())
	switch {
	case strings.HasSuffix(domain, ".com.au"):
		return "Australia"
	case strings.HasSuffix(domain, ".ch"):
		return "Switzerland"
	case strings.HasSuffix(domain, ".fr"):
		return "France"
	default:
		return "Italy"
	}
}

// flag icon file -> country
var flagCountries = map[string]string{
	"icons8-italy-96.png":     "Italy",
	"icons8-usa-96.png":       "United States",
	"icons8-uk-96.png":        "United Kingdom",
	"icons8-singapore-96.png": "Singapore",
}

// CountryFromFlagIcon resolves the country behind a flag image source.
func CountryFromFlagIcon(src string) string {
	for file, country := range flagCountries {
		if strings.Contains(src, file) {
			return country
		}
	}
	return "Unknown"
}
