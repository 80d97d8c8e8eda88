// Package quote wraps the Yahoo Finance quote endpoint for the stock
// commands. Results are memoized for a few seconds so an ETF fan-out plus a
// live-update tick does not hammer the upstream with duplicate symbols.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v7/finance/quote"

// MarketState is the session state reported by the upstream, collapsed to the
// four values the commands care about.
type MarketState string

const (
	StateRegular MarketState = "Regular Market"
	StatePre     MarketState = "Pre Market"
	StatePost    MarketState = "Post Market"
	StateUnknown MarketState = "Unknown"
)

// Terminal reports whether scheduled refreshing should stop: once the session
// has closed the numbers no longer move. Unmapped states keep refreshing; the
// update budget bounds them.
func (s MarketState) Terminal() bool {
	return s == StatePost
}

// Quote is one symbol's snapshot.
type Quote struct {
	Symbol         string
	LongName       string
	CurrencySymbol string
	State          MarketState

	Price         float64
	Change        float64
	ChangePercent float64

	// Pre/Post session figures, populated when the state matches.
	SessionPrice         float64
	SessionChange        float64
	SessionChangePercent float64

	DayHigh float64
	DayLow  float64
	Volume  int64
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol                   string  `json:"symbol"`
			LongName                 string  `json:"longName"`
			ShortName                string  `json:"shortName"`
			Currency                 string  `json:"currency"`
			MarketState              string  `json:"marketState"`
			RegularMarketPrice       float64 `json:"regularMarketPrice"`
			RegularMarketChange      float64 `json:"regularMarketChange"`
			RegularMarketChangePct   float64 `json:"regularMarketChangePercent"`
			RegularMarketDayHigh     float64 `json:"regularMarketDayHigh"`
			RegularMarketDayLow      float64 `json:"regularMarketDayLow"`
			RegularMarketVolume      int64   `json:"regularMarketVolume"`
			PreMarketPrice           float64 `json:"preMarketPrice"`
			PreMarketChange          float64 `json:"preMarketChange"`
			PreMarketChangePercent   float64 `json:"preMarketChangePercent"`
			PostMarketPrice          float64 `json:"postMarketPrice"`
			PostMarketChange         float64 `json:"postMarketChange"`
			PostMarketChangePercent  float64 `json:"postMarketChangePercent"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// Client fetches quotes with a short-lived in-process cache.
type Client struct {
	baseURL string
	http    *http.Client
	memo    *gocache.Cache
}

func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		memo:    gocache.New(5*time.Second, time.Minute),
	}
}

// NewClientWithBaseURL is used by tests to point at an httptest server.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// Get returns the quote for one symbol.
func (c *Client) Get(ctx context.Context, symbol string) (*Quote, error) {
	if q, found := c.memo.Get(symbol); found {
		return q.(*Quote), nil
	}

	u := fmt.Sprintf("%s?symbols=%s", c.baseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build quote request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch quote for %s", symbol)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("quote service returned %d for %s", resp.StatusCode, symbol)
	}

	var qr quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, errors.Wrapf(err, "decode quote for %s", symbol)
	}
	if len(qr.QuoteResponse.Result) == 0 {
		return nil, errors.Errorf("no quote data for %s", symbol)
	}

	r := qr.QuoteResponse.Result[0]
	name := r.LongName
	if name == "" {
		name = r.ShortName
	}

	q := &Quote{
		Symbol:         r.Symbol,
		LongName:       name,
		CurrencySymbol: currencySymbol(r.Currency),
		State:          mapState(r.MarketState),
		Price:          r.RegularMarketPrice,
		Change:         r.RegularMarketChange,
		ChangePercent:  r.RegularMarketChangePct,
		DayHigh:        r.RegularMarketDayHigh,
		DayLow:         r.RegularMarketDayLow,
		Volume:         r.RegularMarketVolume,
	}

	switch q.State {
	case StatePre:
		q.SessionPrice = r.PreMarketPrice
		q.SessionChange = r.PreMarketChange
		q.SessionChangePercent = r.PreMarketChangePercent
	case StatePost:
		q.SessionPrice = r.PostMarketPrice
		q.SessionChange = r.PostMarketChange
		q.SessionChangePercent = r.PostMarketChangePercent
	}

	c.memo.SetDefault(symbol, q)
	log.Debugf("fetched quote for %s: %s %.2f", q.Symbol, q.State, q.Price)
	return q, nil
}

func mapState(raw string) MarketState {
	switch raw {
	case "PREPRE", "POST", "CLOSED":
		return StatePost
	case "PRE":
		return StatePre
	case "REGULAR":
		return StateRegular
	default:
		return StateUnknown
	}
}

func currencySymbol(code string) string {
	switch code {
	case "", "USD":
		return "$"
	case "KRW":
		return "₩"
	case "JPY":
		return "¥"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	default:
		return code + " "
	}
}
