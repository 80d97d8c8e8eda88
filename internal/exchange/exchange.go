// Package exchange wraps the ExchangeRate-API pair endpoint.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultBaseURL = "https://v6.exchangerate-api.com/v6"

// Client converts amounts between currencies.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point at an httptest server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

type pairResponse struct {
	Result           string   `json:"result"`
	ErrorType        string   `json:"error-type"`
	ConversionRate   float64  `json:"conversion_rate"`
	ConversionResult *float64 `json:"conversion_result"`
}

// Convert returns amount converted from one currency to another. With
// amount 1 the upstream returns only the unit rate. The amount is rendered in
// plain decimal notation; the endpoint cannot parse exponent forms.
func (c *Client) Convert(ctx context.Context, from, to string, amount float64) (float64, error) {
	u := fmt.Sprintf("%s/%s/pair/%s/%s/%s", c.baseURL, c.apiKey, from, to,
		strconv.FormatFloat(amount, 'f', -1, 64))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, errors.Wrap(err, "build pair request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, errors.Wrapf(err, "fetch rate %s/%s", from, to)
	}
	defer resp.Body.Close()

	var pr pairResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return 0, errors.Wrapf(err, "decode rate %s/%s", from, to)
	}

	if pr.Result != "success" {
		if pr.ErrorType == "" {
			pr.ErrorType = "unknown error"
		}
		return 0, errors.Errorf("rate %s/%s: %s", from, to, pr.ErrorType)
	}

	if pr.ConversionResult != nil {
		return *pr.ConversionResult, nil
	}
	return pr.ConversionRate, nil
}

// Conversion is one fan-out slot. Err is set instead of aborting the batch so
// the reply can carry a per-currency failure marker.
type Conversion struct {
	Currency string
	Value    float64
	Err      error
}

// ConvertMany fans out one conversion per target currency and joins when all
// have finished. One failing target never cancels its siblings; the result
// always has exactly one slot per target, in the input order.
func (c *Client) ConvertMany(ctx context.Context, from string, amount float64, targets []string) []Conversion {
	results := make([]Conversion, len(targets))

	var g errgroup.Group
	for i, to := range targets {
		i, to := i, to
		g.Go(func() error {
			value, err := c.Convert(ctx, from, to, amount)
			if err != nil {
				log.Debugf("conversion to %s failed: %v", to, err)
			}
			results[i] = Conversion{Currency: to, Value: value, Err: err}
			return nil
		})
	}
	g.Wait()

	return results
}
