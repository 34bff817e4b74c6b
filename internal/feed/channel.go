package feed

import (
	"time"

	"github.com/atareao/podmixer/internal/models"
)

// Channel is one fetched feed, re-fetched every pass and never cached.
// Episodes keep the upstream document order (newest first for virtually
// every podcast host).
type Channel struct {
	Title    string
	Episodes []models.Episode
}

// All returns every item, unfiltered, in feed order.
func (c *Channel) All() []models.Episode {
	all := make([]models.Episode, len(c.Episodes))
	copy(all, c.Episodes)
	return all
}

// NewerThan returns the episodes published strictly after t, in feed order.
// Episodes whose date could not be resolved are excluded: an unknown date
// must never look new.
func (c *Channel) NewerThan(t time.Time) []models.Episode {
	var newer []models.Episode
	for _, episode := range c.Episodes {
		if episode.PubDate.IsZero() {
			continue
		}
		if episode.PubDate.After(t) {
			newer = append(newer, episode)
		}
	}
	return newer
}

// New returns the episodes published after the podcast's watermark.
func (c *Channel) New(watermark time.Time) []models.Episode {
	return c.NewerThan(watermark)
}

// Recent returns the episodes published within the trailing windowDays
// before now. A zero window leaves only items published after now itself.
func (c *Channel) Recent(now time.Time, windowDays int) []models.Episode {
	return c.NewerThan(now.AddDate(0, 0, -windowDays))
}
