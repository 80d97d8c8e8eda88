package cache

import "time"

// Cache document keys shared with the original data file layout. WTInfoKey is
// hand-maintained by the bot owner and only ever read here.
const (
	MaintInfoKey = "MAINTINFO"
	PLLInfoKey   = "PLLINFO"
	WTInfoKey    = "WTINFO"
)

// Entry is one cached canonical record for a single information source.
type Entry struct {
	ID          string `json:"id,omitempty"`
	StartStamp  int64  `json:"start_stamp,omitempty"`
	EndStamp    int64  `json:"end_stamp,omitempty"`
	ExpireStamp int64  `json:"expire_stamp,omitempty"`
	Title       string `json:"title,omitempty"`
	TitleKR     string `json:"title_kr,omitempty"`
	URL         string `json:"url,omitempty"`
}

// IsValid reports whether the entry can still be served without refetching.
// Entries bounded by an event end use EndStamp; announcement entries with no
// natural end use ExpireStamp. An entry with neither bound is never valid.
func (e *Entry) IsValid(now time.Time) bool {
	if e == nil {
		return false
	}
	switch {
	case e.EndStamp > 0:
		return now.Unix() < e.EndStamp
	case e.ExpireStamp > 0:
		return now.Unix() < e.ExpireStamp
	}
	return false
}
