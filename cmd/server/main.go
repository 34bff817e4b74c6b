package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/atareao/podmixer/internal/config"
	"github.com/atareao/podmixer/internal/db"
	"github.com/atareao/podmixer/internal/handlers"
	"github.com/atareao/podmixer/internal/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	db.InitDB(cfg.DatabaseURL)

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer client.Close()

	h := handlers.New(client)
	rl := middleware.NewRateLimiterMiddleware(5, 10)

	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.TokenAuth(cfg.AdminToken), rl.Middleware)
	api.HandleFunc("/podcasts", h.GetPodcasts).Methods(http.MethodGet)
	api.HandleFunc("/podcasts", h.PostPodcast).Methods(http.MethodPost)
	api.HandleFunc("/podcasts/{id}", h.PutPodcast).Methods(http.MethodPut)
	api.HandleFunc("/podcasts/{id}", h.DeletePodcast).Methods(http.MethodDelete)
	api.HandleFunc("/config/feed", h.GetFeedConfig).Methods(http.MethodGet)
	api.HandleFunc("/config/feed", h.PutFeedConfig).Methods(http.MethodPut)
	api.HandleFunc("/config/telegram", h.GetTelegramConfig).Methods(http.MethodGet)
	api.HandleFunc("/config/telegram", h.PutTelegramConfig).Methods(http.MethodPut)
	api.HandleFunc("/config/twitter", h.GetTwitterConfig).Methods(http.MethodGet)
	api.HandleFunc("/config/twitter", h.PutTwitterConfig).Methods(http.MethodPut)
	api.HandleFunc("/passes", h.TriggerPass).Methods(http.MethodPost)

	// The generated documents are plain files; serve them as-is.
	r.PathPrefix("/rss/").Handler(
		http.StripPrefix("/rss/", http.FileServer(http.Dir(cfg.RSSDir))))

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
