package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// YahooURL is the public chart API host for Yahoo Finance.
const YahooURL = "https://query1.finance.yahoo.com"

// Yahoo fetches last prices from Yahoo Finance's v8 chart endpoint. The
// endpoint is unauthenticated but throttled, so it sits behind stooq in
// the default provider chain.
type Yahoo struct {
	// BaseURL overrides YahooURL, mainly for tests.
	BaseURL string

	httpClient *http.Client
}

// NewYahoo creates a Yahoo Finance quote source.
func NewYahoo(timeout time.Duration) *Yahoo {
	return &Yahoo{
		BaseURL: YahooURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// chartMeta is the slice of the chart response we care about.
type chartMeta struct {
	Symbol             string  `json:"symbol"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
}

// chartResponse mirrors the v8 chart envelope.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta chartMeta `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Name implements Source.
func (y *Yahoo) Name() string { return "yahoo" }

// Last implements Source.
func (y *Yahoo) Last(ctx context.Context, symbol string) (Quote, error) {
	apiURL := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", y.BaseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("create request: %w", err)
	}
	// Yahoo rejects requests without a browser-ish user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; sizer)")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Quote{}, ErrNoQuote
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Quote{}, fmt.Errorf("yahoo error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return Quote{}, fmt.Errorf("decode response: %w", err)
	}

	if apiResp.Chart.Error != nil {
		return Quote{}, fmt.Errorf("yahoo error: %s: %s", apiResp.Chart.Error.Code, apiResp.Chart.Error.Description)
	}
	if len(apiResp.Chart.Result) == 0 {
		return Quote{}, ErrNoQuote
	}

	last := apiResp.Chart.Result[0].Meta.RegularMarketPrice
	if last <= 0 {
		return Quote{}, ErrNoQuote
	}

	return Quote{Symbol: symbol, Last: last, Source: "yahoo"}, nil
}
