package aggregator

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/atareao/podmixer/internal/feed"
	"github.com/atareao/podmixer/internal/models"
)

// Registry is the podcast store the aggregator reads from and writes
// watermarks back to. Implemented by db.Registry in production.
type Registry interface {
	ActivePodcasts() ([]models.Podcast, error)
	AdvanceWatermark(id int64, lastPubDate time.Time) error
}

// Fetcher retrieves one podcast's upstream feed. Implemented by feed.Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*feed.Channel, error)
}

// Report is what one pass produced across every active podcast.
// New is sorted oldest first (announcement order), Recent and All newest
// first (publication order). Generate is set when at least one podcast had
// new episodes, which is what gates notification and feed regeneration.
type Report struct {
	New    []models.Episode
	Recent []models.Episode
	All    []models.Episode

	PodcastsOK     int
	PodcastsFailed int
	Generate       bool
}

type Aggregator struct {
	registry Registry
	fetcher  Fetcher
	now      func() time.Time
}

func New(registry Registry, fetcher Fetcher) *Aggregator {
	return &Aggregator{
		registry: registry,
		fetcher:  fetcher,
		now:      time.Now,
	}
}

// RunPass fetches and diffs every active podcast sequentially. A podcast
// whose fetch fails is logged and skipped for this pass only; watermark
// advances are persisted per podcast, immediately, so podcast A's advance
// survives podcast B failing later in the same pass.
func (a *Aggregator) RunPass(ctx context.Context, windowDays int) (*Report, error) {
	podcasts, err := a.registry.ActivePodcasts()
	if err != nil {
		return nil, err
	}

	now := a.now()
	report := &Report{}

	for _, podcast := range podcasts {
		log.Printf("Get episodes for %s", podcast.Name)

		channel, err := a.fetcher.Fetch(ctx, podcast.URL)
		if err != nil {
			log.Printf("Error fetching podcast %s: %v", podcast.Name, err)
			report.PodcastsFailed++
			continue
		}
		report.PodcastsOK++

		news := channel.New(podcast.LastPubDate)
		log.Printf("Podcast: %s. News: %d", podcast.Name, len(news))
		if len(news) > 0 {
			report.Generate = true
			report.New = append(report.New, news...)

			// The feed lists newest first, so the first new item
			// carries the candidate watermark. Never move it back.
			candidate := news[0].PubDate
			if candidate.After(podcast.LastPubDate) {
				if err := a.registry.AdvanceWatermark(podcast.ID, candidate); err != nil {
					log.Printf("Error advancing watermark for %s: %v", podcast.Name, err)
				}
			}
		}

		report.Recent = append(report.Recent, channel.Recent(now, windowDays)...)
		report.All = append(report.All, channel.All()...)
	}

	// Publication order for the generated feeds, announcement order for
	// the notifier. Stable sorts keep podcast-processing order on ties.
	sort.SliceStable(report.All, func(i, j int) bool {
		return report.All[i].PubDate.After(report.All[j].PubDate)
	})
	sort.SliceStable(report.Recent, func(i, j int) bool {
		return report.Recent[i].PubDate.After(report.Recent[j].PubDate)
	})
	sort.SliceStable(report.New, func(i, j int) bool {
		return report.New[i].PubDate.Before(report.New[j].PubDate)
	})

	return report, nil
}
