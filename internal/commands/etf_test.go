package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gameinfo-discord-bot/internal/quote"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quoteServer(t *testing.T, failing map[string]bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := r.URL.Query().Get("symbols")
		if failing[symbol] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"quoteResponse":{"result":[{
			"symbol":"%s","longName":"%s Inc","currency":"USD","marketState":"REGULAR",
			"regularMarketPrice":10.0,"regularMarketChange":0.5,"regularMarketChangePercent":5.0,
			"regularMarketDayHigh":11.0,"regularMarketDayLow":9.0,"regularMarketVolume":1000
		}]}}`, symbol, symbol)
	}))
}

func TestCommandETFPartialFailureKeepsAllRows(t *testing.T) {
	srv := quoteServer(t, map[string]bool{"SOXS": true, "TLT": true})
	defer srv.Close()

	c := &Commands{Quotes: quote.NewClientWithBaseURL(srv.URL)}
	embed, state, err := c.CommandETF(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, quote.StateRegular, state)

	var ok, failed int
	for _, f := range embed.Fields[1:] { // skip the market-state header row
		switch f.Value {
		case "Failed to fetch data":
			failed++
		default:
			ok++
		}
	}
	assert.Equal(t, 2, failed)
	// Successful symbols render two fields each (price + change).
	assert.Equal(t, (len(ETFSymbols)-2)*2, ok)
}

func TestCommandETFBellwetherDownFailsWhole(t *testing.T) {
	srv := quoteServer(t, map[string]bool{"NVDA": true})
	defer srv.Close()

	c := &Commands{Quotes: quote.NewClientWithBaseURL(srv.URL)}
	_, _, err := c.CommandETF(context.Background(), 0, 3)
	assert.Error(t, err)
}

func TestCommandStockEmbed(t *testing.T) {
	srv := quoteServer(t, nil)
	defer srv.Close()

	c := &Commands{Quotes: quote.NewClientWithBaseURL(srv.URL)}
	embed, state, err := c.CommandStock(context.Background(), "NVDA", 2, 30)
	require.NoError(t, err)

	assert.Equal(t, quote.StateRegular, state)
	assert.Equal(t, "NVDA Inc / [NVDA]", embed.Title)
	assert.Equal(t, "Data from Yahoo Finance. #Update 2/30.", embed.Footer.Text)
	assert.Equal(t, ColorUpward, embed.Color)

	require.NotEmpty(t, embed.Fields)
	assert.Equal(t, "Regular Market 🟢", embed.Fields[0].Value)
}
