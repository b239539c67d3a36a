package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const iffBaseURL = "https://www.italianfoundersfund.com"

// IFFScraper walks the Italian Founders Fund portfolio cards and collects
// startups, founders, founding relationships and the fund's own seed
// investments.
type IFFScraper struct {
	client *Client
	log    *logrus.Logger
}

func NewIFFScraper(log *logrus.Logger) *IFFScraper {
	if log == nil {
		log = logrus.New()
	}
	return &IFFScraper{client: NewClient("iff", time.Second, log), log: log}
}

// Scrape fetches the portfolio page and folds every card into acc.
func (s *IFFScraper) Scrape(ctx context.Context, acc *Accumulator) error {
	doc, err := s.client.Fetch(ctx, iffBaseURL)
	if err != nil {
		return errors.Wrap(err, "fetch portfolio page")
	}
	return s.ProcessPortfolio(doc, acc)
}

// ProcessPortfolio folds every portfolio card of an already parsed page
// into acc. Split from Scrape so tests can feed static HTML.
func (s *IFFScraper) ProcessPortfolio(doc *goquery.Document, acc *Accumulator) error {
	cards := doc.Find("div.card-portfolio")
	s.log.WithField("cards", cards.Length()).Info("processing portfolio cards")
	if cards.Length() == 0 {
		return errors.New("no portfolio cards found")
	}
	cards.Each(func(i int, card *goquery.Selection) {
		if err := s.processCard(card, acc); err != nil {
			s.log.WithField("card", i+1).WithError(err).Warn("skipping portfolio card")
		}
	})
	return nil
}

var (
	iffNameStrategies = []Strategy{
		Selector("popup-heading", "div.pop-up-portfolio h3"),
		Selector("card-heading", "h3"),
	}
	iffDescriptionStrategies = []Strategy{
		Selector("portfolio-text", "div.pop-up-portfolio p.portfolio_text"),
		Selector("first-paragraph", "div.pop-up-portfolio p"),
	}
	// The founder items reuse a.button-block-34 for LinkedIn profiles, so
	// the website strategy skips anything inside the founders block.
	iffWebsiteStrategies = []Strategy{
		{Name: "website-button", Fn: func(sel *goquery.Selection) string {
			var href string
			sel.Find("div.pop-up-portfolio a.button-block-34").EachWithBreak(func(_ int, a *goquery.Selection) bool {
				if a.Closest("div.founders").Length() > 0 {
					return true
				}
				v, _ := a.Attr("href")
				if strings.Contains(v, "linkedin.com") {
					return true
				}
				href = v
				return false
			})
			return href
		}},
	}
	iffCountryStrategies = []Strategy{
		Attr("flag-icon", "div.pop-up-portfolio img.image-5", "src"),
	}
)

func (s *IFFScraper) processCard(card *goquery.Selection, acc *Accumulator) error {
	name := Extract(card, iffNameStrategies...)
	if !name.Found() {
		return errors.New("no startup name found")
	}
	description := Extract(card, iffDescriptionStrategies...)
	website := Extract(card, iffWebsiteStrategies...)

	country := "Unknown"
	if flag := Extract(card, iffCountryStrategies...); flag.Found() {
		country = CountryFromFlagIcon(flag.Value)
	}

	sector := SectorFromDescription(description.Value)
	businessModel := BusinessModelFromDescription(description.Value, sector)

	s.log.WithFields(logrus.Fields{
		"startup":     name.Value,
		"name_via":    name.Strategy,
		"website_via": website.Strategy,
	}).Debug("extracted portfolio card")

	acc.AddStartup(Record{
		"name":           name.Value,
		"description":    description.Value,
		"website":        website.Value,
		"stage":          "Seed",
		"sector":         sector,
		"business_model": businessModel,
		"headquarters":   country,
		"status":         "active",
	})

	s.processFounders(card, name.Value, acc)

	acc.AddInvestment(Record{
		"investor_name":    "Italian Founders Fund",
		"investor_type":    "VC_Firm",
		"startup_name":     name.Value,
		"round_stage":      "Seed",
		"is_lead_investor": "true",
	})
	return nil
}

func (s *IFFScraper) processFounders(card *goquery.Selection, startup string, acc *Accumulator) {
	card.Find("div.founders div.founder-item").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a.button-block-34").First()
		founderName := cleanText(link.Find("div.job-title").Text())
		if founderName == "" {
			s.log.WithField("startup", startup).Warn("founder item without a name")
			return
		}
		linkedinURL, _ := link.Attr("href")

		first, last := SplitName(founderName)
		acc.AddPerson(Record{
			"name":         first,
			"surname":      last,
			"role_type":    "Founder",
			"linkedin_url": linkedinURL,
		})
		acc.AddFounded(Record{
			"person_name":    first,
			"person_surname": last,
			"startup_name":   startup,
			"role":           "Founder",
			"is_current":     "true",
		})
	})
}
