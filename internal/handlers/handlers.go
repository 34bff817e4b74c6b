package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/atareao/podmixer/pkg/tasks"
)

// Handlers is the admin API surface: podcast CRUD, channel/feed
// configuration, and a manual pass trigger. It only consumes the pipeline's
// outputs; the pipeline itself runs in the worker.
type Handlers struct {
	asynqClient tasks.TaskEnqueuer
}

func New(asynqClient tasks.TaskEnqueuer) *Handlers {
	return &Handlers{asynqClient: asynqClient}
}

// TriggerPass enqueues a pipeline pass outside the regular schedule.
func (h *Handlers) TriggerPass(w http.ResponseWriter, r *http.Request) {
	task, err := tasks.NewRunPassTask()
	if err != nil {
		log.Printf("Error creating pass task: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if _, err := h.asynqClient.Enqueue(task); err != nil {
		log.Printf("Error enqueuing pass task: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "enqueued"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
