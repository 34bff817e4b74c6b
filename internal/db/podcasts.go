package db

import (
	"log"
	"time"

	"github.com/atareao/podmixer/internal/models"
)

func GetPodcasts() ([]models.Podcast, error) {
	var podcasts []models.Podcast
	err := DB.Select(&podcasts, "SELECT * FROM podcasts ORDER BY last_pub_date DESC")
	if err != nil {
		log.Printf("Error getting podcasts: %v", err)
		return nil, err
	}
	return podcasts, nil
}

func GetActivePodcasts() ([]models.Podcast, error) {
	var podcasts []models.Podcast
	err := DB.Select(&podcasts, "SELECT * FROM podcasts WHERE active = TRUE ORDER BY last_pub_date DESC")
	if err != nil {
		log.Printf("Error getting active podcasts: %v", err)
		return nil, err
	}
	return podcasts, nil
}

func GetPodcastByID(id int64) (models.Podcast, error) {
	podcast := models.Podcast{}
	err := DB.Get(&podcast, "SELECT * FROM podcasts WHERE id = $1", id)
	return podcast, err
}

func CreatePodcast(name, url string, active bool, lastPubDate time.Time) (models.Podcast, error) {
	query := `
		INSERT INTO podcasts (name, url, active, last_pub_date)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`
	podcast := models.Podcast{}
	err := DB.Get(&podcast, query, name, url, active, lastPubDate)
	if err != nil {
		log.Printf("Error creating podcast %q: %v", name, err)
		return podcast, err
	}
	return podcast, nil
}

func UpdatePodcast(p *models.Podcast) (models.Podcast, error) {
	query := `
		UPDATE podcasts
		SET name = $1, url = $2, active = $3, last_pub_date = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING *
	`
	podcast := models.Podcast{}
	err := DB.Get(&podcast, query, p.Name, p.URL, p.Active, p.LastPubDate, p.ID)
	if err != nil {
		log.Printf("Error updating podcast %d: %v", p.ID, err)
		return podcast, err
	}
	return podcast, nil
}

// UpdatePodcastWatermark advances last_pub_date only. It is called once per
// podcast as soon as new episodes are detected, so a later failure in the
// same pass cannot lose the advance.
func UpdatePodcastWatermark(id int64, lastPubDate time.Time) error {
	_, err := DB.Exec(
		"UPDATE podcasts SET last_pub_date = $1, updated_at = NOW() WHERE id = $2",
		lastPubDate, id,
	)
	if err != nil {
		log.Printf("Error updating watermark for podcast %d: %v", id, err)
	}
	return err
}

// Registry adapts the podcast queries to the aggregator's registry
// interface so the pipeline can run against a fake in tests.
type Registry struct{}

func (Registry) ActivePodcasts() ([]models.Podcast, error) {
	return GetActivePodcasts()
}

func (Registry) AdvanceWatermark(id int64, lastPubDate time.Time) error {
	return UpdatePodcastWatermark(id, lastPubDate)
}

func DeletePodcast(id int64) error {
	_, err := DB.Exec("DELETE FROM podcasts WHERE id = $1", id)
	if err != nil {
		log.Printf("Error deleting podcast %d: %v", id, err)
	}
	return err
}
