// Package maintapi consumes the REST maintenance-info service, the id-bearing
// alternative to scraping the news feed. Selected with MAINT_SOURCE=api.
package maintapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"gameinfo-discord-bot/internal/cache"

	"github.com/pkg/errors"
)

type maintRecord struct {
	ID    string `json:"id"`
	Start int64  `json:"start"`
	End   int64  `json:"end"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Translator mirrors the lodestone package's collaborator contract.
type Translator interface {
	Translate(ctx context.Context, text, target string) string
}

// Source fetches the upcoming maintenance list and normalizes the first
// still-relevant record.
type Source struct {
	URL        string
	Translator Translator
	HTTP       *http.Client
	Now        func() time.Time
}

func NewSource(url string, tr Translator) *Source {
	return &Source{
		URL:        url,
		Translator: tr,
		HTTP:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *Source) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Fetch returns the first record whose window has not closed. Records carry
// ids; the translate call is gated on the id differing from the cached one so
// an unchanged record never triggers a re-translation.
func (s *Source) Fetch(ctx context.Context, cached *cache.Entry) (cache.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return cache.Result{}, errors.Wrap(err, "build maintenance request")
	}

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return cache.Result{}, errors.Wrap(err, "call maintenance api")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return cache.Result{}, errors.Errorf("maintenance api returned %d", resp.StatusCode)
	}

	var records []maintRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return cache.Result{}, errors.Wrap(err, "decode maintenance response")
	}

	now := s.now().Unix()
	for _, r := range records {
		if r.End <= now || r.ID == "" || r.Start == 0 {
			continue
		}

		title := r.Title
		titleKR := ""
		if cached != nil && cached.ID == r.ID {
			// Unchanged record: reuse the already translated title so the
			// policy's idempotent-adoption check sees identical content.
			titleKR = cached.TitleKR
		} else {
			titleKR = s.Translator.Translate(ctx, title, "ko")
		}

		return cache.Result{Candidate: &cache.Entry{
			ID:         r.ID,
			StartStamp: r.Start,
			EndStamp:   r.End,
			Title:      title,
			TitleKR:    titleKR,
			URL:        r.URL,
		}}, nil
	}

	return cache.Result{}, nil
}
