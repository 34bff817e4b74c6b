package feed

import "time"

// pubDateFormats is the ordered fallback for item publish dates: RFC 2822
// with a timezone first (numeric, then named), then the same layout without
// any timezone, interpreted as UTC. Feeds in the wild also drop the leading
// zero of the day, so each layout appears in both forms.
var pubDateFormats = []string{
	time.RFC1123Z,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 02 Jan 2006 15:04:05",
	"Mon, 2 Jan 2006 15:04:05",
}

// ResolvePubDate parses a feed item's publish date. A date that matches no
// known layout resolves to the zero time: parse failure is a value here, not
// an error, and the zero time never counts as new or recent.
func ResolvePubDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range pubDateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
