package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/coerce"
)

const c14BaseURL = "https://www.c14.so"

var uuidHref = regexp.MustCompile(`^[a-f0-9-]{36}$`)

// StartupLink is one entry of the C14 startup directory.
type StartupLink struct {
	Name        string
	Description string
	URL         string
	UUID        string
}

// C14Scraper walks the C14.so startup directory page by page and scrapes
// each startup's detail page.
type C14Scraper struct {
	client *Client
	log    *logrus.Logger
}

func NewC14Scraper(delay time.Duration, log *logrus.Logger) *C14Scraper {
	if log == nil {
		log = logrus.New()
	}
	return &C14Scraper{client: NewClient("c14", delay, log), log: log}
}

// ListStartups pages through the directory until a page yields no startup
// links. maxPages <= 0 means no limit.
func (s *C14Scraper) ListStartups(ctx context.Context, maxPages int) ([]StartupLink, error) {
	var links []StartupLink
	for page := 1; maxPages <= 0 || page <= maxPages; page++ {
		url := c14BaseURL + "/startups"
		if page > 1 {
			url = fmt.Sprintf("%s?page=%d", url, page)
		}
		doc, err := s.client.Fetch(ctx, url)
		if err != nil {
			if page == 1 {
				return nil, errors.Wrap(err, "fetch directory")
			}
			s.log.WithField("page", page).WithError(err).Error("stopping directory walk")
			break
		}

		found := s.CollectLinks(doc)
		if len(found) == 0 {
			s.log.WithField("page", page).Info("no more startups")
			break
		}
		links = append(links, found...)
		s.log.WithFields(logrus.Fields{"page": page, "found": len(found)}).Info("collected startup links")
	}
	s.log.WithField("total", len(links)).Info("directory walk finished")
	return links, nil
}

// CollectLinks pulls the uuid-href startup anchors out of one directory
// page. The anchor text is "Name Description" with the name as the first
// word.
func (s *C14Scraper) CollectLinks(doc *goquery.Document) []StartupLink {
	var links []StartupLink
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !uuidHref.MatchString(href) {
			return
		}
		text := cleanText(a.Text())
		if text == "" {
			return
		}
		name, description := text, ""
		if i := strings.IndexByte(text, ' '); i >= 0 {
			name, description = text[:i], text[i+1:]
		}
		links = append(links, StartupLink{
			Name:        name,
			Description: description,
			URL:         c14BaseURL + "/" + href,
			UUID:        href,
		})
	})
	return links
}

// ScrapeAll lists the directory and scrapes every detail page into acc.
// maxStartups <= 0 means no limit. Detail-page failures skip that startup
// and keep going.
func (s *C14Scraper) ScrapeAll(ctx context.Context, maxPages, maxStartups int, acc *Accumulator) error {
	links, err := s.ListStartups(ctx, maxPages)
	if err != nil {
		return err
	}
	if maxStartups > 0 && len(links) > maxStartups {
		links = links[:maxStartups]
	}
	for i, link := range links {
		s.log.WithFields(logrus.Fields{"n": i + 1, "of": len(links), "startup": link.Name}).Info("scraping startup")
		doc, err := s.client.Fetch(ctx, link.URL)
		if err != nil {
			s.log.WithField("url", link.URL).WithError(err).Error("skipping startup")
			continue
		}
		rec := s.ExtractStartup(doc, link)
		acc.AddStartup(rec)
	}
	return nil
}

// ExtractStartup turns one detail page into a startup record. The embedded
// next.js payload is tried first; CSS extraction covers the rest.
func (s *C14Scraper) ExtractStartup(doc *goquery.Document, link StartupLink) Record {
	rec := Record{
		"name":        link.Name,
		"description": link.Description,
		"status":      "active",
	}

	via := "listing"
	if payload := doc.Find("script#__NEXT_DATA__").First().Text(); payload != "" {
		if s.extractFromNextData(payload, rec) {
			via = "next-data"
		}
	}
	if via != "next-data" {
		s.extractFromMarkup(doc, rec)
		via = "markup"
	}
	s.log.WithFields(logrus.Fields{"startup": rec["name"], "via": via}).Debug("extracted startup detail")
	return rec
}

// next.js pages embed the page model as JSON; this is far more stable than
// the rendered markup when it is present.
func (s *C14Scraper) extractFromNextData(payload string, rec Record) bool {
	root := gjson.Get(payload, "props.pageProps.startup")
	if !root.Exists() {
		return false
	}
	set := func(col, path string) {
		if v := cleanText(root.Get(path).String()); v != "" {
			rec[col] = v
		}
	}
	set("name", "name")
	set("description", "description")
	set("website", "website")
	if v := root.Get("foundationDate").String(); v != "" {
		if y, ok := coerce.ExtractYear(v); ok {
			rec["founded_year"] = strconv.Itoa(y)
		}
	}
	if v := root.Get("teamSize").String(); v != "" {
		rec["employee_count"] = v
	}
	if v := root.Get("fundingStage").String(); v != "" && v != "Unknown" {
		rec["stage"] = v
	}
	if v := root.Get("amountRaised").String(); v != "" {
		if amount, ok := coerce.ParseFundingAmount(v); ok {
			rec["total_funding"] = strconv.FormatFloat(amount, 'f', -1, 64)
		}
	}
	if v := root.Get("location").String(); v != "" {
		rec["headquarters"] = cleanText(v)
	}
	var sectors []string
	root.Get("sectors.#.name").ForEach(func(_, value gjson.Result) bool {
		if name := cleanText(value.String()); name != "" {
			sectors = append(sectors, name)
		}
		return true
	})
	if len(sectors) > 0 {
		rec["sector"] = strings.Join(sectors, ", ")
	}
	return true
}

func (s *C14Scraper) extractFromMarkup(doc *goquery.Document, rec Record) {
	if name := cleanText(doc.Find("h1").First().Text()); name != "" {
		rec["name"] = name
	}

	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		text := strings.ToLower(cleanText(a.Text()))
		if strings.Contains(text, "website") {
			rec["website"], _ = a.Attr("href")
			return false
		}
		return true
	})

	// details live in a dt/dd list: a label element followed by its value
	labels := map[string]string{
		"location":      "headquarters",
		"foundation":    "founded_year",
		"founded":       "founded_year",
		"team size":     "employee_count",
		"funding stage": "stage",
		"amount raised": "total_funding",
	}
	doc.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		label := strings.ToLower(cleanText(dt.Text()))
		value := cleanText(dt.Next().Filter("dd").Text())
		if value == "" {
			return
		}
		for needle, col := range labels {
			if !strings.Contains(label, needle) {
				continue
			}
			switch col {
			case "founded_year":
				if y, ok := coerce.ExtractYear(value); ok {
					rec[col] = strconv.Itoa(y)
				}
			case "stage":
				if value != "Unknown" {
					rec[col] = value
				}
			case "total_funding":
				if amount, ok := coerce.ParseFundingAmount(value); ok {
					rec[col] = strconv.FormatFloat(amount, 'f', -1, 64)
				}
			default:
				rec[col] = value
			}
			return
		}
	})

	var sectors []string
	doc.Find(`[class*="tag"], [class*="category"], [class*="sector"]`).Each(func(_ int, tag *goquery.Selection) {
		if text := cleanText(tag.Text()); text != "" && len(text) < 50 {
			sectors = append(sectors, text)
		}
	})
	if len(sectors) > 0 {
		rec["sector"] = strings.Join(sectors, ", ")
	}
}
