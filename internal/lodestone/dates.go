package lodestone

import (
	"regexp"
	"time"
)

// Lodestone announcements are always written in Japan time; anchoring to a
// fixed zone keeps parsing independent of the host timezone.
var (
	jst = time.FixedZone("JST", 9*60*60)
	kst = time.FixedZone("KST", 9*60*60)
)

var weekdayRe = regexp.MustCompile(`\([^)]*\)|（[^）]*）`)

// parseJST turns "2024年1月15日(月)" + "10:00" into a unix timestamp. The
// weekday parenthetical is dropped before parsing. Returns 0 when malformed.
func parseJST(dateStr, timeStr string) int64 {
	clean := weekdayRe.ReplaceAllString(dateStr, "")
	t, err := time.ParseInLocation("2006年1月2日 15:04", clean+" "+timeStr, jst)
	if err != nil {
		return 0
	}
	return t.Unix()
}
