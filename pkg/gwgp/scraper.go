package gwgp

import (
	"context"
	"fmt"
	"time"

	"github.com/kotrzina/gas-wizard/pkg/prometheus"
	"github.com/sirupsen/logrus"
)

// Scraper runs the whole pipeline: fetch, parse and extract
type Scraper struct {
	url       string
	fetcher   *Fetcher
	extractor *Extractor

	monitor *prometheus.Monitor
	logger  *logrus.Logger
}

func NewScraper(
	url string,
	fetcher *Fetcher,
	extractor *Extractor,
	monitor *prometheus.Monitor,
	logger *logrus.Logger,
) *Scraper {
	return &Scraper{
		url:       url,
		fetcher:   fetcher,
		extractor: extractor,

		monitor: monitor,
		logger:  logger,
	}
}

// Scrape produces a new snapshot on every call, snapshots are never shared
// between calls. Only fetch and parse failures are returned.
func (s *Scraper) Scrape(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	body, err := s.fetcher.Fetch(ctx, s.url)
	if err != nil {
		s.monitor.Scrapes.WithLabelValues("transport_error").Inc()
		return nil, fmt.Errorf("could not get prices: %w", err)
	}

	root, err := Parse(body)
	if err != nil {
		s.monitor.Scrapes.WithLabelValues("parse_error").Inc()
		return nil, fmt.Errorf("could not get prices: %w", err)
	}

	snapshot, report := s.extractor.Extract(root)
	d := time.Since(start)

	s.monitor.Scrapes.WithLabelValues("ok").Inc()
	s.monitor.ScrapeDuration.WithLabelValues().Set(d.Seconds())
	s.monitor.Cities.WithLabelValues().Set(float64(snapshot.Len()))
	s.monitor.LastScrape.WithLabelValues().SetToCurrentTime()
	s.monitor.RowsSkipped.WithLabelValues("no_city").Add(float64(report.SkippedNoCity))
	s.monitor.RowsSkipped.WithLabelValues("prices").Add(float64(report.SkippedPrices))
	s.monitor.RowsSkipped.WithLabelValues("malformed").Add(float64(report.SkippedMalformed))

	s.logger.WithFields(logrus.Fields{
		"url":        s.url,
		"date":       snapshot.DateInfo(),
		"rows":       report.Rows,
		"cities":     snapshot.Len(),
		"skipped":    report.Skipped(),
		"duplicates": report.Duplicates,
		"durationMs": d.Milliseconds(),
	}).Info("Prices scraped")

	if report.Skipped() > 0 {
		s.logger.Debugf(
			"skipped rows: %d without city, %d without prices, %d malformed",
			report.SkippedNoCity,
			report.SkippedPrices,
			report.SkippedMalformed,
		)
	}

	return snapshot, nil
}
