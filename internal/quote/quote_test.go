package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapState(t *testing.T) {
	tests := []struct {
		raw  string
		want MarketState
	}{
		{"REGULAR", StateRegular},
		{"PRE", StatePre},
		{"PREPRE", StatePost},
		{"POST", StatePost},
		{"CLOSED", StatePost},
		{"", StateUnknown},
		{"HALTED", StateUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mapState(tt.raw), "state %q", tt.raw)
	}
}

func TestMarketStateTerminal(t *testing.T) {
	assert.False(t, StateRegular.Terminal())
	assert.False(t, StatePre.Terminal())
	assert.True(t, StatePost.Terminal())

	// An unmapped upstream state must not kill live updates; the update
	// budget bounds it instead.
	assert.False(t, StateUnknown.Terminal())
}

const quoteBody = `{"quoteResponse":{"result":[{
	"symbol":"NVDA",
	"longName":"NVIDIA Corporation",
	"currency":"USD",
	"marketState":"REGULAR",
	"regularMarketPrice":120.5,
	"regularMarketChange":-1.25,
	"regularMarketChangePercent":-1.03,
	"regularMarketDayHigh":123.0,
	"regularMarketDayLow":119.0,
	"regularMarketVolume":251034000
}]}}`

func TestGetParsesQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "NVDA", r.URL.Query().Get("symbols"))
		fmt.Fprint(w, quoteBody)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	q, err := c.Get(context.Background(), "NVDA")
	require.NoError(t, err)

	assert.Equal(t, "NVDA", q.Symbol)
	assert.Equal(t, "NVIDIA Corporation", q.LongName)
	assert.Equal(t, "$", q.CurrencySymbol)
	assert.Equal(t, StateRegular, q.State)
	assert.InDelta(t, 120.5, q.Price, 0.001)
	assert.InDelta(t, -1.25, q.Change, 0.001)
	assert.Equal(t, int64(251034000), q.Volume)
}

func TestGetMemoizesWithinWindow(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, quoteBody)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	_, err := c.Get(context.Background(), "NVDA")
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "NVDA")
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
}

func TestGetEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteResponse":{"result":[]}}`)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	_, err := c.Get(context.Background(), "ZZZZ")
	assert.Error(t, err)
}

func TestGetUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	_, err := c.Get(context.Background(), "NVDA")
	assert.Error(t, err)
}

func TestGetPostMarketSessionFigures(t *testing.T) {
	body := `{"quoteResponse":{"result":[{
		"symbol":"SPY",
		"shortName":"SPDR S&P 500",
		"currency":"USD",
		"marketState":"POST",
		"regularMarketPrice":550.0,
		"postMarketPrice":551.2,
		"postMarketChange":1.2,
		"postMarketChangePercent":0.22
	}]}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	q, err := c.Get(context.Background(), "SPY")
	require.NoError(t, err)

	assert.Equal(t, StatePost, q.State)
	assert.Equal(t, "SPDR S&P 500", q.LongName)
	assert.InDelta(t, 551.2, q.SessionPrice, 0.001)
	assert.InDelta(t, 1.2, q.SessionChange, 0.001)
}
