package scraper

import (
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CDP publishes its portfolio as a filterable card grid; the scraper works
// from a locally saved copy of that page because the live one renders the
// data attributes only after consent scripts run.

var cdpSectors = map[string]string{
	"Clean Tech":               "CleanTech",
	"Healthcare & Lifescience": "HealthTech",
	"IndustryTech":             "IndustryTech",
	"InfraTech & Mobility":     "Mobility & Transportation",
	"AgriTech & FoodTech":      "AgriTech & FoodTech",
	"Other":                    "Other",
	"tecnologiaAi":             "AI & Machine Learning",
}

type cdpFund struct {
	name        string
	focus       string
	vintageYear string
}

// CDP's own investment vehicles, referenced by the cards' data-veicolo
// attribute.
var cdpFundVehicles = []cdpFund{
	{"VenturItaly Fund of Funds", "Fund of Funds", "2019"},
	{"VenturItaly II Fund of Funds", "Fund of Funds", "2021"},
	{"Technology Transfer Fund", "Technology Transfer", "2020"},
	{"International Fund of Funds", "International", "2020"},
	{"Digital Transition NRRP Fund", "Digital Innovation", "2022"},
	{"Green Transition NRRP Fund", "Green Tech", "2022"},
}

func cdpFundByName(name string) (cdpFund, bool) {
	for _, f := range cdpFundVehicles {
		if f.name == name {
			return f, true
		}
	}
	return cdpFund{}, false
}

// CDPScraper extracts the CDP Venture Capital portfolio from a saved HTML
// snapshot: direct startup investments and the external funds CDP backs as
// an LP.
type CDPScraper struct {
	path string
	log  *logrus.Logger
}

func NewCDPScraper(path string, log *logrus.Logger) *CDPScraper {
	if log == nil {
		log = logrus.New()
	}
	return &CDPScraper{path: path, log: log}
}

// Scrape parses the snapshot file and folds everything into acc.
func (s *CDPScraper) Scrape(acc *Accumulator) error {
	f, err := os.Open(s.path)
	if err != nil {
		return errors.Wrapf(err, "open snapshot %s", s.path)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return errors.Wrapf(err, "parse snapshot %s", s.path)
	}
	return s.ProcessDocument(doc, acc)
}

// ProcessDocument folds an already parsed snapshot into acc.
func (s *CDPScraper) ProcessDocument(doc *goquery.Document, acc *Accumulator) error {
	cards := doc.Find("div.blocks-portfolio__card-wrapper")
	s.log.WithField("cards", cards.Length()).Info("processing portfolio cards")
	if cards.Length() == 0 {
		return errors.New("no portfolio cards found")
	}

	direct, supported := 0, 0
	cards.Each(func(_ int, card *goquery.Selection) {
		switch category, _ := card.Attr("data-category"); category {
		case "InvestimentoDiretto":
			s.processDirectInvestment(card, acc)
			direct++
		case "FondiSupportati":
			s.processSupportedFund(card, acc)
			supported++
		}
	})
	s.log.WithFields(logrus.Fields{"direct": direct, "supported": supported}).Info("portfolio cards processed")

	s.addOwnFunds(acc)
	s.addMainInvestor(acc)
	return nil
}

var (
	cdpNameStrategies = []Strategy{
		Selector("card-heading", "h4.h4"),
		Selector("any-heading", "h4"),
	}
	cdpWebsiteStrategies = []Strategy{
		Attr("website-button", "a.btn-animated-icon-grey", "href"),
	}
)

func (s *CDPScraper) processDirectInvestment(card *goquery.Selection, acc *Accumulator) {
	name := Extract(card, cdpNameStrategies...)
	if !name.Found() {
		s.log.Warn("direct investment card without a name")
		return
	}
	website := Extract(card, cdpWebsiteStrategies...)

	rawSector, _ := card.Attr("data-settore")
	sector := MapCDPSector(rawSector)
	rawRegion, _ := card.Attr("data-regione")
	headquarters := cdpRegionCountry(rawRegion)
	vehicle, _ := card.Attr("data-veicolo")

	acc.AddStartup(Record{
		"name":           name.Value,
		"description":    sector + " company",
		"website":        website.Value,
		"stage":          "Growth",
		"sector":         sector,
		"business_model": cdpBusinessModel(sector),
		"headquarters":   headquarters,
		"status":         "active",
	})

	investors := SplitVehicle(vehicle)
	if len(investors) == 0 {
		acc.AddInvestment(Record{
			"investor_name":    "CDP Venture Capital",
			"investor_type":    "VC_Firm",
			"startup_name":     name.Value,
			"round_stage":      "Growth",
			"is_lead_investor": "true",
		})
		return
	}
	for _, fund := range investors {
		acc.AddInvestment(Record{
			"investor_name":    fund,
			"investor_type":    "VC_Fund",
			"startup_name":     name.Value,
			"round_stage":      "Growth",
			"is_lead_investor": "true",
		})
	}
}

func (s *CDPScraper) processSupportedFund(card *goquery.Selection, acc *Accumulator) {
	name := Extract(card, cdpNameStrategies...)
	if !name.Found() {
		s.log.Warn("supported fund card without a name")
		return
	}

	acc.AddVCFund(Record{
		"name":             name.Value,
		"status":           "active",
		"target_sectors":   "Technology",
		"target_stages":    "Growth",
		"geographic_focus": "Italy",
	})

	vehicle, _ := card.Attr("data-veicolo")
	for _, cdpFundName := range SplitVehicle(vehicle) {
		// commitment_date is not published; rows stay incomplete until
		// curated by hand
		acc.AddParticipation(Record{
			"investor_name": cdpFundName,
			"investor_type": "VC_Fund",
			"fund_name":     name.Value,
			"lp_category":   "institutional",
		})
	}
}

func (s *CDPScraper) addOwnFunds(acc *Accumulator) {
	for _, f := range cdpFundVehicles {
		acc.AddVCFund(Record{
			"name":             f.name,
			"vintage_year":     f.vintageYear,
			"status":           "active",
			"target_sectors":   f.focus,
			"target_stages":    "Growth",
			"geographic_focus": "Italy",
		})
	}
}

func (s *CDPScraper) addMainInvestor(acc *Accumulator) {
	acc.AddVCFirm(Record{
		"name":                      "CDP Venture Capital",
		"description":               "Government venture capital arm of Cassa Depositi e Prestiti (CDP)",
		"website":                   "https://www.cdpventurecapital.it",
		"founded_year":              "2019",
		"headquarters":              "Italy",
		"type":                      "Government_VC",
		"investment_focus":          "Technology, Innovation, Digital Transition, Green Tech",
		"stage_focus":               "Growth, Expansion",
		"geographic_focus":          "Italy, Europe",
		"assets_under_management":   "2000000000",
		"portfolio_companies_count": strconv.Itoa(len(acc.Startups)),
	})
}

// MapCDPSector maps the card's data-settore attribute, which can carry a
// comma-separated list, to the catalogue's sector names.
func MapCDPSector(raw string) string {
	for _, part := range strings.Split(raw, ",") {
		if mapped, ok := cdpSectors[strings.TrimSpace(part)]; ok {
			return mapped
		}
	}
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "ai") || strings.Contains(lower, "artificial"):
		return "AI & Machine Learning"
	case strings.Contains(lower, "health") || strings.Contains(lower, "medical"):
		return "HealthTech"
	case strings.Contains(lower, "fintech") || strings.Contains(lower, "finance"):
		return "FinTech"
	case strings.Contains(lower, "clean") || strings.Contains(lower, "green"):
		return "CleanTech"
	default:
		return "Other"
	}
}

func cdpBusinessModel(sector string) string {
	switch sector {
	case "HealthTech", "AI & Machine Learning", "FinTech":
		return "SaaS"
	case "CleanTech", "IndustryTech":
		return "Hardware"
	case "AgriTech & FoodTech":
		return "Marketplace"
	default:
		return "Other"
	}
}

// SplitVehicle resolves a data-veicolo value to CDP fund names. Cards
// backed by several vehicles separate them with '/'. Unrecognized single
// values pass through as-is.
func SplitVehicle(vehicle string) []string {
	vehicle = strings.TrimSpace(vehicle)
	if vehicle == "" {
		return nil
	}
	if strings.Contains(vehicle, "/") {
		var funds []string
		for _, part := range strings.Split(vehicle, "/") {
			if f, ok := cdpFundByName(strings.TrimSpace(part)); ok {
				funds = append(funds, f.name)
			}
		}
		if len(funds) > 0 {
			return funds
		}
	}
	return []string{vehicle}
}

// Italian regions in the snapshot all resolve to Italy; the attribute only
// distinguishes regions for the page's own filter UI.
func cdpRegionCountry(raw string) string {
	return "Italy"
}
