package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrUnavailable means neither the upstream nor the cache could produce a
// servable record. Commands render it as the fixed "unavailable" embed.
var ErrUnavailable = errors.New("no valid record available")

// Result is what a source's fetch cycle produced. ChangeNotice carries a
// revised-schedule record that, when valid, overrides everything else,
// including a cached entry with a matching id: a revised end time is newer
// information than the id can express.
type Result struct {
	Candidate    *Entry
	ChangeNotice *Entry
}

// Source fetches and normalizes one upstream. The cached entry is passed in so
// sources can skip expensive normalization (translation, DOM parsing) when the
// cache already covers the default item; returning an empty Result then lets
// the policy fall back to it.
type Source interface {
	Fetch(ctx context.Context, cached *Entry) (Result, error)
}

// Policy resolves a command invocation against one named cache entry.
type Policy struct {
	Store  *Store
	Key    string
	Source Source

	// CacheFirst serves a valid cached entry without fetching at all. Used by
	// announcement sources bounded by an expire stamp; window-bound sources
	// always fetch so change notices are seen.
	CacheFirst bool

	// Now is stubbed in tests; defaults to time.Now.
	Now func() time.Time
}

func (p *Policy) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Resolve returns the authoritative entry for the key, or ErrUnavailable.
// Adopted candidates are written through to the store before returning.
func (p *Policy) Resolve(ctx context.Context) (*Entry, error) {
	now := p.now()
	cached := p.Store.Get(p.Key)

	if p.CacheFirst && cached.IsValid(now) {
		return cached, nil
	}

	res, err := p.Source.Fetch(ctx, cached)
	if err != nil {
		log.Debugf("fetch for %s failed: %v", p.Key, err)
		return p.fallback(cached, now)
	}

	if res.ChangeNotice.IsValid(now) {
		return p.adopt(res.ChangeNotice)
	}

	cand := res.Candidate
	if cand == nil {
		return p.fallback(cached, now)
	}

	// Same id and still valid: keep the stored entry untouched so already
	// translated titles are not redone.
	if cached.IsValid(now) && cached.ID != "" && cached.ID == cand.ID {
		return cached, nil
	}

	if cand.IsValid(now) {
		return p.adopt(cand)
	}
	return p.fallback(cached, now)
}

func (p *Policy) adopt(e *Entry) (*Entry, error) {
	if err := p.Store.Put(p.Key, e); err != nil {
		// Persistence failures never block the reply; the next invocation
		// just refetches.
		log.Debugf("cache write for %s failed: %v", p.Key, err)
	}
	return e, nil
}

func (p *Policy) fallback(cached *Entry, now time.Time) (*Entry, error) {
	if cached.IsValid(now) {
		return cached, nil
	}
	return nil, ErrUnavailable
}
