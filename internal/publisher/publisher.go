package publisher

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/atareao/podmixer/internal/models"
)

const (
	// ShortFeedFile is the windowed feed (episodes within the trailing
	// older_than window), LongFeedFile the full merge of everything known.
	ShortFeedFile = "short.xml"
	LongFeedFile  = "long.xml"
)

// PublishError is a failure writing one of the two generated documents.
type PublishError struct {
	Path string
	Err  error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish %s: %v", e.Path, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// Publisher renders the merged episode lists into the two RSS documents and
// writes them under dir.
type Publisher struct {
	dir string
}

func New(dir string) *Publisher {
	return &Publisher{dir: dir}
}

// Publish writes the windowed and full feeds. The two writes are
// independent: a failure on one does not stop the other, and both failures
// come back joined.
func (p *Publisher) Publish(cfg models.FeedConfig, recent, all []models.Episode) error {
	var errs []error

	if err := p.write(ShortFeedFile, cfg, recent); err != nil {
		log.Printf("Error publishing short feed: %v", err)
		errs = append(errs, err)
	}
	if err := p.write(LongFeedFile, cfg, all); err != nil {
		log.Printf("Error publishing long feed: %v", err)
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// write renders and replaces one document via temp-file-then-rename, so
// readers never observe a truncated feed.
func (p *Publisher) write(name string, cfg models.FeedConfig, episodes []models.Episode) error {
	target := filepath.Join(p.dir, name)

	body, err := renderRSS(cfg, episodes)
	if err != nil {
		return &PublishError{Path: target, Err: err}
	}

	tmp, err := os.CreateTemp(p.dir, "."+name+".*")
	if err != nil {
		return &PublishError{Path: target, Err: err}
	}

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &PublishError{Path: target, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &PublishError{Path: target, Err: err}
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return &PublishError{Path: target, Err: err}
	}
	return nil
}
