package scraper

import (
	"github.com/sirupsen/logrus"
)

// pranaPortfolio is the curated Prana Ventures portfolio. The site renders
// it client side, so the dataset is maintained here from the published
// portfolio section.
type pranaCompany struct {
	name        string
	description string
	website     string
	sector      string
	category    string
}

var pranaPortfolio = []pranaCompany{
	{"GetPica", "La soluzione che ridefinisce l'esperienza fotografica negli eventi", "https://getpica.com/", "Consumer Tech", "saas-platform"},
	{"Green Future Project", "Sustainable technology solutions for environmental challenges", "", "Energy & CleanTech", "saas-platform"},
	{"Daze", "Digital platform for modern experiences", "", "Consumer Tech", "saas-platform"},
	{"BeSafe", "Safety and security technology platform", "", "Enterprise Software", "saas-platform"},
	{"Aryel", "Augmented Reality platform for marketing and advertising", "https://www.aryel.io/", "MarTech", "saas-platform"},
	{"Sharewood", "Platform for sharing and collaboration", "", "Enterprise Software", "saas-platform"},
	{"Ring33", "AI-powered communication and interaction platform", "", "AI & Machine Learning", "ai"},
	{"Ponyu", "Digital platform for business optimization", "", "Enterprise Software", "saas-platform"},
	{"Plentiness", "Marketplace platform connecting businesses and consumers", "", "Retail & E-commerce", "marketplace"},
	{"JetHR", "Digital payroll management and HR processes for SMBs", "https://www.jethr.com/", "HR Tech", "saas-platform"},
	{"Hygge", "E-commerce platform for lifestyle and wellness products", "", "Retail & E-commerce", "e-commerce"},
	{"Hercle", "Blockchain-based platform for digital transformation", "", "FinTech", "blockchain"},
	{"Factanza", "Media platform for information and news distribution", "https://factanza.it/", "Media & Entertainment", "saas-platform"},
}

// PranaScraper emits the Prana Ventures seed portfolio as startup records
// plus the fund's investment relationships.
type PranaScraper struct {
	log *logrus.Logger
}

func NewPranaScraper(log *logrus.Logger) *PranaScraper {
	if log == nil {
		log = logrus.New()
	}
	return &PranaScraper{log: log}
}

// Scrape folds the portfolio into acc.
func (s *PranaScraper) Scrape(acc *Accumulator) error {
	s.log.WithField("companies", len(pranaPortfolio)).Info("processing Prana Ventures portfolio")
	for _, c := range pranaPortfolio {
		acc.AddStartup(Record{
			"name":           c.name,
			"description":    c.description,
			"website":        c.website,
			"stage":          "Seed",
			"sector":         c.sector,
			"business_model": BusinessModelFromCategory(c.category, c.sector),
			"headquarters":   HeadquartersFromWebsite(c.website),
			"status":         "active",
		})
		acc.AddInvestment(Record{
			"investor_name":    "Prana Ventures",
			"investor_type":    "VC_Firm",
			"startup_name":     c.name,
			"round_stage":      "Seed",
			"is_lead_investor": "true",
		})
	}
	return nil
}
