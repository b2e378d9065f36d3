package quotes

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StooqURL is the public quote endpoint for stooq.com.
const StooqURL = "https://stooq.com"

// Stooq fetches delayed last prices from stooq.com's CSV quote endpoint.
// No authentication is required; quotes are end-of-day or delayed.
type Stooq struct {
	// BaseURL overrides StooqURL, mainly for tests.
	BaseURL string

	// Suffix is the venue suffix appended to every symbol, e.g. ".us".
	Suffix string

	httpClient *http.Client
}

// NewStooq creates a stooq.com quote source. suffix is appended to each
// symbol before lookup (stooq keys US tickers as "aapl.us").
func NewStooq(suffix string, timeout time.Duration) *Stooq {
	return &Stooq{
		BaseURL: StooqURL,
		Suffix:  suffix,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name implements Source.
func (s *Stooq) Name() string { return "stooq" }

// Last implements Source.
func (s *Stooq) Last(ctx context.Context, symbol string) (Quote, error) {
	ticker := strings.ToLower(symbol) + s.Suffix

	// f=sd2t2ohlcv fixes the column order: Symbol,Date,Time,O,H,L,C,Volume.
	apiURL := fmt.Sprintf("%s/q/l/?s=%s&f=sd2t2ohlcv&h&e=csv", s.BaseURL, url.QueryEscape(ticker))

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Quote{}, fmt.Errorf("stooq error (status %d): %s", resp.StatusCode, string(body))
	}

	r := csv.NewReader(resp.Body)
	if _, err := r.Read(); err != nil {
		return Quote{}, fmt.Errorf("read quote header: %w", err)
	}
	row, err := r.Read()
	if err != nil {
		return Quote{}, fmt.Errorf("read quote row: %w", err)
	}
	if len(row) < 7 {
		return Quote{}, fmt.Errorf("short quote row for %s: %q", ticker, row)
	}

	// Stooq reports unknown symbols as rows of "N/D" rather than an error
	// status.
	closeField := row[6]
	if closeField == "" || strings.EqualFold(closeField, "N/D") {
		return Quote{}, ErrNoQuote
	}

	last, err := strconv.ParseFloat(closeField, 64)
	if err != nil {
		return Quote{}, fmt.Errorf("parse close price %q: %w", closeField, err)
	}

	return Quote{Symbol: symbol, Last: last, Source: "stooq"}, nil
}
