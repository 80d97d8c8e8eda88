package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// FallbackTitle is shown when the translation service is down or misbehaving.
const FallbackTitle = "Failed to translate the title"

// Client calls the translation micro-service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type request struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}

type response struct {
	Output string `json:"output"`
}

// Translate returns the text translated into the target language. Any failure
// degrades to FallbackTitle; a broken translator must never break a reply.
func (c *Client) Translate(ctx context.Context, text, target string) string {
	out, err := c.translate(ctx, text, target)
	if err != nil {
		log.Debugf("translation failed: %v", err)
		return FallbackTitle
	}
	return out
}

func (c *Client) translate(ctx context.Context, text, target string) (string, error) {
	if c.baseURL == "" {
		return "", errors.New("translate service not configured")
	}

	body, err := json.Marshal(request{Text: text, Target: target})
	if err != nil {
		return "", errors.Wrap(err, "marshal translate request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "build translate request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "call translate service")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("translate service returned %d", resp.StatusCode)
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", errors.Wrap(err, "decode translate response")
	}
	if r.Output == "" {
		return "", errors.New("translate service returned empty output")
	}
	return r.Output, nil
}
