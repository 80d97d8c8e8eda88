package cache

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	result Result
	err    error
	calls  int
}

func (s *stubSource) Fetch(_ context.Context, _ *Entry) (Result, error) {
	s.calls++
	return s.result, s.err
}

func newTestPolicy(t *testing.T, src *stubSource, now time.Time) *Policy {
	t.Helper()
	return &Policy{
		Store:  newTestStore(t),
		Key:    MaintInfoKey,
		Source: src,
		Now:    func() time.Time { return now },
	}
}

func TestResolveAdoptsValidCandidate(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cand := &Entry{Title: "window", StartStamp: now.Unix(), EndStamp: now.Add(time.Hour).Unix()}
	src := &stubSource{result: Result{Candidate: cand}}
	p := newTestPolicy(t, src, now)

	got, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cand, got)

	// Write-through: the adopted entry is on disk before the reply renders.
	assert.Equal(t, "window", p.Store.Get(MaintInfoKey).Title)
}

func TestResolveFallsBackToValidCacheOnFetchError(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cached := &Entry{ID: "42", Title: "cached", EndStamp: now.Add(time.Hour).Unix()}

	src := &stubSource{err: errors.New("upstream down")}
	p := newTestPolicy(t, src, now)
	require.NoError(t, p.Store.Put(MaintInfoKey, cached))

	got, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached", got.Title)
}

func TestResolveUnavailableWhenCacheExpiredAndFetchFails(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	cached := &Entry{ID: "42", Title: "cached", EndStamp: start.Add(time.Hour).Unix()}

	src := &stubSource{err: errors.New("upstream down")}
	// Two hours past the end stamp.
	p := newTestPolicy(t, src, start.Add(2*time.Hour))
	require.NoError(t, p.Store.Put(MaintInfoKey, cached))

	_, err := p.Resolve(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestResolveUnavailableOnEmptyFetchAndEmptyCache(t *testing.T) {
	src := &stubSource{}
	p := newTestPolicy(t, src, time.Unix(1_700_000_000, 0))

	_, err := p.Resolve(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestResolveIdempotentAdoptionOnMatchingID(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cached := &Entry{ID: "42", Title: "cached translated", EndStamp: now.Add(time.Hour).Unix()}
	cand := &Entry{ID: "42", Title: "fresh untranslated", EndStamp: now.Add(time.Hour).Unix()}

	src := &stubSource{result: Result{Candidate: cand}}
	p := newTestPolicy(t, src, now)
	require.NoError(t, p.Store.Put(MaintInfoKey, cached))

	got, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached translated", got.Title)

	// Stored entry unchanged: no redundant rewrite happened.
	assert.Equal(t, "cached translated", p.Store.Get(MaintInfoKey).Title)
}

func TestResolveAdoptsCandidateWithNewID(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cached := &Entry{ID: "42", Title: "old", EndStamp: now.Add(time.Hour).Unix()}
	cand := &Entry{ID: "43", Title: "new", EndStamp: now.Add(2 * time.Hour).Unix()}

	src := &stubSource{result: Result{Candidate: cand}}
	p := newTestPolicy(t, src, now)
	require.NoError(t, p.Store.Put(MaintInfoKey, cached))

	got, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "43", got.ID)
	assert.Equal(t, "43", p.Store.Get(MaintInfoKey).ID)
}

func TestResolveChangeNoticeOverridesMatchingID(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cached := &Entry{ID: "42", Title: "original schedule", EndStamp: now.Add(time.Hour).Unix()}
	notice := &Entry{ID: "42", Title: "extended schedule", EndStamp: now.Add(3 * time.Hour).Unix()}

	src := &stubSource{result: Result{
		Candidate:    cached,
		ChangeNotice: notice,
	}}
	p := newTestPolicy(t, src, now)
	require.NoError(t, p.Store.Put(MaintInfoKey, cached))

	got, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "extended schedule", got.Title)
	assert.Equal(t, "extended schedule", p.Store.Get(MaintInfoKey).Title)
}

func TestResolveExpiredChangeNoticeIsIgnored(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	notice := &Entry{Title: "stale notice", EndStamp: now.Add(-time.Hour).Unix()}
	cand := &Entry{Title: "current", EndStamp: now.Add(time.Hour).Unix()}

	src := &stubSource{result: Result{Candidate: cand, ChangeNotice: notice}}
	p := newTestPolicy(t, src, now)

	got, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "current", got.Title)
}

func TestResolveCacheFirstSkipsFetch(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cached := &Entry{Title: "cached", ExpireStamp: now.Add(time.Hour).Unix()}

	src := &stubSource{}
	p := newTestPolicy(t, src, now)
	p.CacheFirst = true
	require.NoError(t, p.Store.Put(PLLInfoKey, cached))
	p.Key = PLLInfoKey

	got, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached", got.Title)
	assert.Zero(t, src.calls)
}

func TestResolveCacheFirstFetchesWhenExpired(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cached := &Entry{Title: "stale", ExpireStamp: now.Add(-time.Minute).Unix()}
	cand := &Entry{Title: "fresh", ExpireStamp: now.Add(time.Hour).Unix()}

	src := &stubSource{result: Result{Candidate: cand}}
	p := newTestPolicy(t, src, now)
	p.CacheFirst = true
	require.NoError(t, p.Store.Put(MaintInfoKey, cached))

	got, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Title)
	assert.Equal(t, 1, src.calls)
}

func TestResolveExpiredCandidateFallsBackToValidCache(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cached := &Entry{Title: "cached", EndStamp: now.Add(time.Hour).Unix()}
	cand := &Entry{Title: "already over", EndStamp: now.Add(-time.Minute).Unix()}

	src := &stubSource{result: Result{Candidate: cand}}
	p := newTestPolicy(t, src, now)
	require.NoError(t, p.Store.Put(MaintInfoKey, cached))

	got, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached", got.Title)
}
