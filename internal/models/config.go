package models

import "time"

// Param is one row of the key/value config table.
type Param struct {
	ID        int64     `db:"id"`
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// FeedConfig is the channel-level metadata for the two generated RSS
// documents, read from the config table (feed_* keys) once per pass.
type FeedConfig struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Summary     string `json:"summary"`
	Link        string `json:"link"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	Rating      string `json:"rating"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Explicit    bool   `json:"explicit"`
	Keywords    string `json:"keywords"`
	OwnerName   string `json:"owner_name"`
	OwnerEmail  string `json:"owner_email"`
}

// TelegramConfig is the chat-bot notification channel (telegram_* keys).
type TelegramConfig struct {
	Active   bool   `json:"active"`
	Token    string `json:"token"`
	ChatID   string `json:"chat_id"`
	ThreadID string `json:"thread_id"`
	Template string `json:"template"`
}

// TwitterConfig is the micro-blogging notification channel (twitter_* keys).
// AccessToken/RefreshToken rotate on every pass that posts.
type TwitterConfig struct {
	Active       bool   `json:"active"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Template     string `json:"template"`
}
