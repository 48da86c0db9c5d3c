package gwgp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// SourceURL is the page with regional gas price predictions
const SourceURL = "https://gaswizard.ca/gas-price-predictions/"

// TransportError means the document could not be retrieved at all
type TransportError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("could not fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("could not fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Fetcher struct {
	client http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch downloads the page and returns its body as utf-8.
// There are no retries, a single failure is returned to the caller.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", "gas-wizard-bot/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}

	enc, _, _ := charset.DetermineEncoding(content, resp.Header.Get("Content-Type"))
	body, err := decode(content, enc)
	if err != nil {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}

	return body, nil
}

// decode converts content from the detected encoding to utf-8
func decode(content []byte, enc encoding.Encoding) ([]byte, error) {
	out, err := enc.NewDecoder().Bytes(content)
	if err != nil {
		return nil, fmt.Errorf("could not decode document: %w", err)
	}
	return out, nil
}
