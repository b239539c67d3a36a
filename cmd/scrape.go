package cmd

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/scraper"
)

var (
	scrapeOutDir      string
	scrapeMaxPages    int
	scrapeMaxStartups int
	scrapeDelay       time.Duration
	cdpSnapshotPath   string
)

var scrapeCmd = &cobra.Command{
	Use:       "scrape <source>",
	Short:     "Scrape one source into pipe-delimited CSV files",
	Long:      "Scrapes a portfolio source and writes its startups, founders and relationships as timestamped CSV files ready for import.",
	ValidArgs: []string{"c14", "iff", "prana", "primo", "cdp"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]
		acc := scraper.NewAccumulator()

		var err error
		switch source {
		case "c14":
			err = scraper.NewC14Scraper(scrapeDelay, log).ScrapeAll(cmd.Context(), scrapeMaxPages, scrapeMaxStartups, acc)
		case "iff":
			err = scraper.NewIFFScraper(log).Scrape(cmd.Context(), acc)
		case "prana":
			err = scraper.NewPranaScraper(log).Scrape(acc)
		case "primo":
			err = scraper.NewPrimoScraper(log).Scrape(acc)
		case "cdp":
			err = scraper.NewCDPScraper(cdpSnapshotPath, log).Scrape(acc)
		}
		if err != nil {
			return errors.Wrapf(err, "scrape %s", source)
		}

		paths, err := scraper.SaveAll(scrapeOutDir, source, acc, log)
		if err != nil {
			return err
		}
		log.WithField("files", len(paths)).Info("scrape finished")
		return nil
	},
}

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeOutDir, "out", "o", ".", "output directory for CSV files")
	scrapeCmd.Flags().IntVar(&scrapeMaxPages, "max-pages", 0, "directory pages to walk, 0 for all (c14)")
	scrapeCmd.Flags().IntVar(&scrapeMaxStartups, "max-startups", 0, "startups to scrape, 0 for all (c14)")
	scrapeCmd.Flags().DurationVar(&scrapeDelay, "delay", time.Second, "delay between requests")
	scrapeCmd.Flags().StringVar(&cdpSnapshotPath, "cdp-file", "CDP.html", "path to the saved CDP portfolio page (cdp)")
	rootCmd.AddCommand(scrapeCmd)
}
