package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atareao/podmixer/internal/models"
)

const twitterAPIBase = "https://api.twitter.com"

// CredentialStore persists rotated OAuth tokens. Implemented by db.Params.
type CredentialStore interface {
	Set(key, value string) error
}

// Twitter posts the rendered message as a tweet. Its OAuth2 access token is
// short-lived, so credentials are refreshed (and committed to the store)
// before any posting happens.
type Twitter struct {
	cfg     models.TwitterConfig
	client  *http.Client
	apiBase string
	store   CredentialStore
}

func NewTwitter(cfg models.TwitterConfig, store CredentialStore) *Twitter {
	return &Twitter{
		cfg:     cfg,
		client:  &http.Client{Timeout: 30 * time.Second},
		apiBase: twitterAPIBase,
		store:   store,
	}
}

func (t *Twitter) Name() string {
	return "twitter"
}

func (t *Twitter) Active() bool {
	return t.cfg.Active
}

func (t *Twitter) Template() string {
	return t.cfg.Template
}

// EnsureFreshCredentials rotates the access/refresh token pair and persists
// both to the store before returning. The commit is deliberately independent
// of any later post: losing a refreshed token invalidates the channel, a
// failed post just skips one episode.
func (t *Twitter) EnsureFreshCredentials(ctx context.Context) error {
	form := url.Values{
		"refresh_token": {t.cfg.RefreshToken},
		"grant_type":    {"refresh_token"},
		"client_id":     {t.cfg.ClientID},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.apiBase+"/2/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return &ChannelError{Channel: t.Name(), Refresh: true, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(t.cfg.ClientID, t.cfg.ClientSecret)

	resp, err := t.client.Do(req)
	if err != nil {
		return &ChannelError{Channel: t.Name(), Refresh: true, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ChannelError{Channel: t.Name(), Refresh: true, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	var tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return &ChannelError{Channel: t.Name(), Refresh: true, Err: err}
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		return &ChannelError{Channel: t.Name(), Refresh: true, Err: fmt.Errorf("token response missing tokens")}
	}

	t.cfg.AccessToken = tokens.AccessToken
	t.cfg.RefreshToken = tokens.RefreshToken

	if err := t.store.Set("twitter_access_token", tokens.AccessToken); err != nil {
		return &ChannelError{Channel: t.Name(), Refresh: true, Err: fmt.Errorf("persist access token: %w", err)}
	}
	if err := t.store.Set("twitter_refresh_token", tokens.RefreshToken); err != nil {
		return &ChannelError{Channel: t.Name(), Refresh: true, Err: fmt.Errorf("persist refresh token: %w", err)}
	}
	return nil
}

func (t *Twitter) Notify(ctx context.Context, message string, _ models.Episode) error {
	body, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return &ChannelError{Channel: t.Name(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.apiBase+"/2/tweets", bytes.NewReader(body))
	if err != nil {
		return &ChannelError{Channel: t.Name(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.cfg.AccessToken)

	resp, err := t.client.Do(req)
	if err != nil {
		return &ChannelError{Channel: t.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ChannelError{Channel: t.Name(), Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}
	return nil
}
