package scraper

import (
	"context"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/graph/metrics"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Client fetches and parses pages for the site scrapers. Requests go out
// strictly sequentially with a fixed courtesy delay between them.
type Client struct {
	http   *http.Client
	source string
	delay  time.Duration
	last   time.Time
	log    *logrus.Logger
}

// NewClient returns a fetch client tagged with a source name for logging
// and metrics.
func NewClient(source string, delay time.Duration, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.New()
	}
	return &Client{
		http:   &http.Client{Timeout: 30 * time.Second},
		source: source,
		delay:  delay,
		log:    log,
	}
}

// Fetch retrieves one page and parses it. The inter-request delay is applied
// before the request, never before the first one.
func (c *Client) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	if !c.last.IsZero() {
		wait := c.delay - time.Since(c.last)
		if wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	c.last = time.Now()

	c.log.WithFields(logrus.Fields{"source": c.source, "url": url}).Info("fetching page")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "build request for %s", url)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.FetchErrors.WithLabelValues(c.source).Inc()
		return nil, errors.Wrapf(err, "fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.FetchErrors.WithLabelValues(c.source).Inc()
		return nil, errors.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		metrics.FetchErrors.WithLabelValues(c.source).Inc()
		return nil, errors.Wrapf(err, "parse %s", url)
	}
	metrics.PagesFetched.WithLabelValues(c.source).Inc()
	return doc, nil
}
