package models

import "time"

// Podcast is a registered upstream feed. LastPubDate is the watermark:
// the publish instant of the most recent episode already processed.
type Podcast struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	URL         string    `db:"url" json:"url"`
	Active      bool      `db:"active" json:"active"`
	LastPubDate time.Time `db:"last_pub_date" json:"last_pub_date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
