package feed

import (
	"context"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/pkg/errors"
)

// Item is the slice of a feed entry the extractors care about.
type Item struct {
	Title   string
	Content string
	Link    string
}

// Client fetches and flattens RSS feeds.
type Client struct {
	parser *gofeed.Parser
}

func NewClient() *Client {
	p := gofeed.NewParser()
	p.Client = &http.Client{Timeout: 10 * time.Second}
	return &Client{parser: p}
}

// Fetch returns the feed's items in document order.
func (c *Client) Fetch(ctx context.Context, url string) ([]Item, error) {
	f, err := c.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch feed %s", url)
	}

	items := make([]Item, 0, len(f.Items))
	for _, it := range f.Items {
		content := it.Content
		if content == "" {
			content = it.Description
		}
		items = append(items, Item{
			Title:   it.Title,
			Content: content,
			Link:    it.Link,
		})
	}
	return items, nil
}
