package db

import (
	"log"
	"strconv"

	"github.com/atareao/podmixer/internal/models"
)

const (
	// DefaultSleepTime is the scheduling interval in seconds when the
	// config table does not carry a usable sleep_time.
	DefaultSleepTime = 3600
	// DefaultOlderThan is the trailing window in days for the short feed.
	DefaultOlderThan = 30
)

// Booleans in the config table are stored as the literal string "TRUE"
// (anything else reads as false).
const paramTrue = "TRUE"

func GetParam(key string) (string, error) {
	var value string
	err := DB.Get(&value, "SELECT value FROM config WHERE key = $1", key)
	return value, err
}

func SetParam(key, value string) error {
	query := `
		INSERT INTO config (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
	_, err := DB.Exec(query, key, value)
	if err != nil {
		log.Printf("Error setting param %s: %v", key, err)
	}
	return err
}

// GetParamsByPrefix loads every config row whose key starts with the given
// prefix into a map. The typed loaders below read whole channel/feed
// configurations in one query instead of a round trip per key.
func GetParamsByPrefix(prefix string) (map[string]string, error) {
	var params []models.Param
	err := DB.Select(&params, "SELECT * FROM config WHERE key LIKE $1", prefix+"%")
	if err != nil {
		log.Printf("Error getting params with prefix %s: %v", prefix, err)
		return nil, err
	}
	values := make(map[string]string, len(params))
	for _, p := range params {
		values[p.Key] = p.Value
	}
	return values, nil
}

func GetSleepTime() int {
	return intParam("sleep_time", DefaultSleepTime)
}

func GetOlderThan() int {
	return intParam("older_than", DefaultOlderThan)
}

func intParam(key string, fallback int) int {
	raw, err := GetParam(key)
	if err != nil {
		log.Printf("Param %s not readable, using %d: %v", key, fallback, err)
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Param %s is not an integer (%q), using %d", key, raw, fallback)
		return fallback
	}
	return value
}

func GetFeedConfig() (models.FeedConfig, error) {
	values, err := GetParamsByPrefix("feed_")
	if err != nil {
		return models.FeedConfig{}, err
	}
	return models.FeedConfig{
		Title:       values["feed_title"],
		Subtitle:    values["feed_subtitle"],
		Summary:     values["feed_summary"],
		Link:        values["feed_link"],
		ImageURL:    values["feed_image_url"],
		Category:    values["feed_category"],
		Rating:      values["feed_rating"],
		Description: values["feed_description"],
		Author:      values["feed_author"],
		Explicit:    values["feed_explicit"] == paramTrue,
		Keywords:    values["feed_keywords"],
		OwnerName:   values["feed_owner_name"],
		OwnerEmail:  values["feed_owner_email"],
	}, nil
}

func SetFeedConfig(cfg models.FeedConfig) error {
	values := map[string]string{
		"feed_title":       cfg.Title,
		"feed_subtitle":    cfg.Subtitle,
		"feed_summary":     cfg.Summary,
		"feed_link":        cfg.Link,
		"feed_image_url":   cfg.ImageURL,
		"feed_category":    cfg.Category,
		"feed_rating":      cfg.Rating,
		"feed_description": cfg.Description,
		"feed_author":      cfg.Author,
		"feed_explicit":    boolParam(cfg.Explicit),
		"feed_keywords":    cfg.Keywords,
		"feed_owner_name":  cfg.OwnerName,
		"feed_owner_email": cfg.OwnerEmail,
	}
	return setParams(values)
}

func GetTelegramConfig() (models.TelegramConfig, error) {
	values, err := GetParamsByPrefix("telegram_")
	if err != nil {
		return models.TelegramConfig{}, err
	}
	return models.TelegramConfig{
		Active:   values["telegram_active"] == paramTrue,
		Token:    values["telegram_token"],
		ChatID:   values["telegram_chat_id"],
		ThreadID: values["telegram_thread_id"],
		Template: values["telegram_template"],
	}, nil
}

func SetTelegramConfig(cfg models.TelegramConfig) error {
	values := map[string]string{
		"telegram_active":    boolParam(cfg.Active),
		"telegram_token":     cfg.Token,
		"telegram_chat_id":   cfg.ChatID,
		"telegram_thread_id": cfg.ThreadID,
		"telegram_template":  cfg.Template,
	}
	return setParams(values)
}

func GetTwitterConfig() (models.TwitterConfig, error) {
	values, err := GetParamsByPrefix("twitter_")
	if err != nil {
		return models.TwitterConfig{}, err
	}
	return models.TwitterConfig{
		Active:       values["twitter_active"] == paramTrue,
		ClientID:     values["twitter_client_id"],
		ClientSecret: values["twitter_client_secret"],
		AccessToken:  values["twitter_access_token"],
		RefreshToken: values["twitter_refresh_token"],
		Template:     values["twitter_template"],
	}, nil
}

func SetTwitterConfig(cfg models.TwitterConfig) error {
	values := map[string]string{
		"twitter_active":        boolParam(cfg.Active),
		"twitter_client_id":     cfg.ClientID,
		"twitter_client_secret": cfg.ClientSecret,
		"twitter_access_token":  cfg.AccessToken,
		"twitter_refresh_token": cfg.RefreshToken,
		"twitter_template":      cfg.Template,
	}
	return setParams(values)
}

// Params adapts SetParam to the notifier's credential store interface.
type Params struct{}

func (Params) Set(key, value string) error {
	return SetParam(key, value)
}

func setParams(values map[string]string) error {
	for key, value := range values {
		if err := SetParam(key, value); err != nil {
			return err
		}
	}
	return nil
}

func boolParam(b bool) string {
	if b {
		return paramTrue
	}
	return "FALSE"
}
