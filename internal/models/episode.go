package models

import "time"

// Episode is an immutable snapshot of one upstream feed item, valid for the
// duration of a single pass. PubDate is zero when the feed carried a date we
// could not parse; such episodes are never considered new or recent.
type Episode struct {
	Title        string
	Description  string
	Link         string
	EnclosureURL string
	PubDate      time.Time
	RawPubDate   string
}
