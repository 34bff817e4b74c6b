package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/atareao/podmixer/internal/db"
	"github.com/atareao/podmixer/internal/models"
)

func (h *Handlers) GetFeedConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := db.GetFeedConfig()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *Handlers) PutFeedConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.FeedConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if err := db.SetFeedConfig(cfg); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *Handlers) GetTelegramConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := db.GetTelegramConfig()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *Handlers) PutTelegramConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.TelegramConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if err := db.SetTelegramConfig(cfg); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *Handlers) GetTwitterConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := db.GetTwitterConfig()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *Handlers) PutTwitterConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.TwitterConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if err := db.SetTwitterConfig(cfg); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}
