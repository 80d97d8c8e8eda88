package lodestone

import (
	"context"
	"regexp"
	"strings"
	"time"

	"gameinfo-discord-bot/internal/cache"
	"gameinfo-discord-bot/internal/feed"

	log "github.com/sirupsen/logrus"
)

const (
	// NewsFeedURL is the Lodestone news feed carrying maintenance items.
	NewsFeedURL = "https://jp.finalfantasyxiv.com/lodestone/news/news.xml"

	// changeNoticeMarker appears in titles announcing a revised end time.
	changeNoticeMarker = "終了時間変更のお知らせ"

	// defaultItemPrefix marks the all-worlds maintenance announcement.
	defaultItemPrefix = "全ワールド"
)

var (
	maintStartRe = regexp.MustCompile(`日　時：(\d{4}年\d{1,2}月\d{1,2}日\(.\)) (\d{1,2}:\d{2})より`)
	maintEndRe   = regexp.MustCompile(`(\d{4}年\d{1,2}月\d{1,2}日\(.\))? ?(\d{1,2}:\d{2})頃まで`)
)

// ExtractMaintWindow parses the maintenance window out of an announcement
// body. The end marker often omits its date; the start date is reused then.
// Returns ok=false on any parse failure.
func ExtractMaintWindow(content string) (start, end int64, ok bool) {
	sm := maintStartRe.FindStringSubmatch(content)
	em := maintEndRe.FindStringSubmatch(content)
	if sm == nil || em == nil {
		return 0, 0, false
	}

	start = parseJST(sm[1], sm[2])
	if em[1] != "" {
		end = parseJST(em[1], em[2])
	} else {
		end = parseJST(sm[1], em[2])
	}
	if start == 0 || end == 0 {
		return 0, 0, false
	}
	return start, end, true
}

// Translator produces the display title for a target language, degrading to a
// literal fallback on failure.
type Translator interface {
	Translate(ctx context.Context, text, target string) string
}

// MaintSource scrapes the news feed for the current maintenance window.
type MaintSource struct {
	Feed       *feed.Client
	Translator Translator
	URL        string
	Now        func() time.Time
}

func (s *MaintSource) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Fetch scans the feed. A valid change notice wins outright. Otherwise the
// default announcement is only extracted (and translated) when the cached
// window has lapsed; returning an empty result lets the policy serve the
// cache.
func (s *MaintSource) Fetch(ctx context.Context, cached *cache.Entry) (cache.Result, error) {
	url := s.URL
	if url == "" {
		url = NewsFeedURL
	}

	items, err := s.Feed.Fetch(ctx, url)
	if err != nil {
		return cache.Result{}, err
	}
	now := s.now()

	for _, item := range items {
		if !strings.Contains(item.Title, changeNoticeMarker) {
			continue
		}
		if e := s.extract(ctx, item); e != nil && e.IsValid(now) {
			return cache.Result{ChangeNotice: e}, nil
		}
	}

	if cached.IsValid(now) {
		return cache.Result{}, nil
	}

	for _, item := range items {
		if !strings.HasPrefix(item.Title, defaultItemPrefix) {
			continue
		}
		if e := s.extract(ctx, item); e != nil {
			return cache.Result{Candidate: e}, nil
		}
	}

	log.Debug("no maintenance item matched in news feed")
	return cache.Result{}, nil
}

func (s *MaintSource) extract(ctx context.Context, item feed.Item) *cache.Entry {
	start, end, ok := ExtractMaintWindow(item.Content)
	if !ok {
		return nil
	}
	return &cache.Entry{
		StartStamp: start,
		EndStamp:   end,
		Title:      item.Title,
		TitleKR:    s.Translator.Translate(ctx, item.Title, "ko"),
		URL:        item.Link,
	}
}
