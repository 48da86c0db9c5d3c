package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kotrzina/gas-wizard/pkg/gwgp"
	"github.com/kotrzina/gas-wizard/pkg/prometheus"
)

var (
	sourceURL string
	parser    string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:          "gwgp",
	Short:        "gwgp scrapes gas price predictions and prints them.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sourceURL, "url", gwgp.SourceURL, "The prediction page to scrape.")
	rootCmd.PersistentFlags().StringVar(&parser, "parser", gwgp.SelectorXPath, "The selector backend (xpath or css).")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log scrape details to stderr.")
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func scrape(ctx context.Context) (*gwgp.Snapshot, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	selector, err := gwgp.NewSelector(parser)
	if err != nil {
		return nil, err
	}

	scraper := gwgp.NewScraper(
		sourceURL,
		gwgp.NewFetcher(),
		gwgp.NewExtractor(selector, gwgp.DefaultPatterns),
		prometheus.New(),
		logger,
	)

	return scraper.Scrape(ctx)
}
