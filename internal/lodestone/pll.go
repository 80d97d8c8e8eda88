package lodestone

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gameinfo-discord-bot/internal/cache"
	"gameinfo-discord-bot/internal/feed"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// TopicsFeedURL is the Lodestone topics feed carrying Letter Live items.
const TopicsFeedURL = "https://jp.finalfantasyxiv.com/lodestone/news/topics.xml"

var (
	pllTitleRe = regexp.MustCompile(`第\d+回\s?FFXIV\s?PLL`)
	pllDateRe  = regexp.MustCompile(`(\d{4}年\d{1,2}月\d{1,2}日（[^）]+）)\s?(\d{1,2}:\d{2})頃?～`)
	pllRoundRe = regexp.MustCompile(`第(\d+)回`)
)

// ExtractPLLStart pulls the broadcast start out of a topics summary.
// Returns 0 when no date is announced yet.
func ExtractPLLStart(summary string) int64 {
	m := pllDateRe.FindStringSubmatch(summary)
	if m == nil {
		return 0
	}
	return parseJST(m[1], m[2])
}

// PLLRound returns the broadcast round number from the item heading, or "".
func PLLRound(heading string) string {
	m := pllRoundRe.FindStringSubmatch(heading)
	if m == nil {
		return ""
	}
	return m[1]
}

// PLLDisplayTitle builds the Korean announcement line, substituting XX
// placeholders for anything that could not be parsed.
func PLLDisplayTitle(round string, start int64) string {
	if start == 0 {
		return "제 XX회 프로듀서 레터 라이브 X월 XX일 방송 결정!"
	}
	date := time.Unix(start, 0).In(kst)
	roundText := "제 XX회"
	if round != "" {
		roundText = fmt.Sprintf("제 %s회", round)
	}
	return fmt.Sprintf("%s 프로듀서 레터 라이브 %d월 %d일 방송 결정!",
		roundText, int(date.Month()), date.Day())
}

// PLLSource scrapes the topics feed for the next Producer Letter Live.
type PLLSource struct {
	Feed *feed.Client
	URL  string

	// TTL bounds how long an extracted item is served before rescraping;
	// Letter Live items have no natural end.
	TTL time.Duration
	Now func() time.Time
}

func (s *PLLSource) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Fetch finds the first Letter Live topic and normalizes it. The policy runs
// this source cache-first, so reaching here means the cache has expired.
func (s *PLLSource) Fetch(ctx context.Context, _ *cache.Entry) (cache.Result, error) {
	url := s.URL
	if url == "" {
		url = TopicsFeedURL
	}

	items, err := s.Feed.Fetch(ctx, url)
	if err != nil {
		return cache.Result{}, err
	}

	for _, item := range items {
		if !pllTitleRe.MatchString(item.Title) {
			continue
		}
		return cache.Result{Candidate: s.extract(item)}, nil
	}

	log.Debug("no Letter Live item matched in topics feed")
	return cache.Result{}, nil
}

func (s *PLLSource) extract(item feed.Item) *cache.Entry {
	heading := item.Title
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(item.Content)); err == nil {
		if h := strings.TrimSpace(doc.Find("h3.mdl-title__heading--lg").First().Text()); h != "" {
			heading = h
		}
	}

	start := ExtractPLLStart(item.Content)
	return &cache.Entry{
		StartStamp:  start,
		ExpireStamp: s.now().Add(s.TTL).Unix(),
		Title:       item.Title,
		TitleKR:     PLLDisplayTitle(PLLRound(heading), start),
		URL:         item.Link,
	}
}
