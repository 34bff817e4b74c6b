package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/atareao/podmixer/internal/db"
	"github.com/atareao/podmixer/internal/models"
)

type podcastRequest struct {
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Active      bool      `json:"active"`
	LastPubDate time.Time `json:"last_pub_date"`
}

func (h *Handlers) GetPodcasts(w http.ResponseWriter, r *http.Request) {
	podcasts, err := db.GetPodcasts()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, podcasts)
}

func (h *Handlers) PostPodcast(w http.ResponseWriter, r *http.Request) {
	var req podcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.URL == "" {
		http.Error(w, "Name and URL are required", http.StatusBadRequest)
		return
	}

	podcast, err := db.CreatePodcast(req.Name, req.URL, req.Active, req.LastPubDate)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, podcast)
}

func (h *Handlers) PutPodcast(w http.ResponseWriter, r *http.Request) {
	id, err := podcastID(r)
	if err != nil {
		http.Error(w, "Invalid podcast ID", http.StatusBadRequest)
		return
	}

	var req podcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	podcast := &models.Podcast{
		ID:          id,
		Name:        req.Name,
		URL:         req.URL,
		Active:      req.Active,
		LastPubDate: req.LastPubDate,
	}
	updated, err := db.UpdatePodcast(podcast)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) DeletePodcast(w http.ResponseWriter, r *http.Request) {
	id, err := podcastID(r)
	if err != nil {
		http.Error(w, "Invalid podcast ID", http.StatusBadRequest)
		return
	}

	if err := db.DeletePodcast(id); err != nil {
		log.Printf("Error deleting podcast %d: %v", id, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func podcastID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
