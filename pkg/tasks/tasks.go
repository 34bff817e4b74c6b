package tasks

import (
	"github.com/hibiken/asynq"
)

const (
	// TypeRunPass is one full pipeline pass: fetch and diff every active
	// podcast, notify new episodes, regenerate the two feeds.
	TypeRunPass = "podcasts:pass"
)

func NewRunPassTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeRunPass, nil), nil
}
