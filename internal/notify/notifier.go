package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/atareao/podmixer/internal/models"
)

// ChannelError is a delivery failure on one notification channel. Refresh
// distinguishes a credential-refresh failure from the delivery itself.
type ChannelError struct {
	Channel string
	Refresh bool
	Err     error
}

func (e *ChannelError) Error() string {
	if e.Refresh {
		return fmt.Sprintf("%s: refresh credentials: %v", e.Channel, e.Err)
	}
	return fmt.Sprintf("%s: deliver: %v", e.Channel, e.Err)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}

// Channel is one notification target. Notify receives the rendered message
// plus the episode itself, since audio-capable channels also need the
// enclosure.
type Channel interface {
	Name() string
	Active() bool
	Template() string
	Notify(ctx context.Context, message string, episode models.Episode) error
}

// CredentialRefresher is implemented by channels whose credentials are
// short-lived and must be rotated (and persisted) before posting.
type CredentialRefresher interface {
	EnsureFreshCredentials(ctx context.Context) error
}

// Notifier fans new episodes out to every active channel, one episode per
// second, isolating failures per (episode, channel) pair.
type Notifier struct {
	channels []Channel
	limiter  *rate.Limiter
}

func New(channels ...Channel) *Notifier {
	return &Notifier{
		channels: channels,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Notify announces episodes in the order given (callers pass them oldest
// first). No failure on one channel or one episode stops the rest.
func (n *Notifier) Notify(ctx context.Context, episodes []models.Episode) {
	if len(episodes) == 0 {
		return
	}

	var active []Channel
	for _, channel := range n.channels {
		if channel.Active() {
			active = append(active, channel)
		}
	}
	if len(active) == 0 {
		return
	}

	// Rotate short-lived credentials up front. A refresh failure is logged
	// and the channel keeps its current credentials; losing a refreshed
	// token would be worse than a failed post, so the rotation commits
	// inside EnsureFreshCredentials, not here.
	for _, channel := range active {
		refresher, ok := channel.(CredentialRefresher)
		if !ok {
			continue
		}
		if err := refresher.EnsureFreshCredentials(ctx); err != nil {
			logChain(fmt.Sprintf("Could NOT refresh credentials for %s", channel.Name()), err)
		}
	}

	for _, episode := range episodes {
		if err := n.limiter.Wait(ctx); err != nil {
			log.Printf("Notifier stopped: %v", err)
			return
		}

		templateCtx := Context{
			Title:       episode.Title,
			Description: HTMLToText(episode.Description, maxDescriptionLen),
			Link:        episode.Link,
		}

		for _, channel := range active {
			message, err := Render(channel.Name(), channel.Template(), templateCtx)
			if err != nil {
				logChain(fmt.Sprintf("Could NOT populate in %s", channel.Name()), err)
				continue
			}
			if err := channel.Notify(ctx, message, episode); err != nil {
				logChain(fmt.Sprintf("Could NOT populate in %s", channel.Name()), err)
				continue
			}
			log.Printf("Populated in %s: %s", channel.Name(), episode.Title)
		}
	}
}

func logChain(prefix string, err error) {
	log.Printf("%s: %v", prefix, err)
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		log.Printf("caused by: %v", cause)
	}
}
