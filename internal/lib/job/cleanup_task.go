package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskImageCleanup removes uploaded images that no listing references
// anymore.
const TaskImageCleanup = "uploads:cleanup"

type ImageCleanupPayload struct {
	URLs []string `json:"urls"`
}

func NewImageCleanupTask(urls []string) (*asynq.Task, error) {
	payload, err := json.Marshal(ImageCleanupPayload{URLs: urls})
	if err != nil {
		return nil, err
	}

	// The delay leaves time for an editor to re-attach an image that was
	// removed by mistake.
	return asynq.NewTask(
		TaskImageCleanup,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue("low"),
		asynq.ProcessIn(10*time.Minute),
		asynq.Timeout(time.Minute),
	), nil
}

func (j *JobService) EnqueueImageCleanup(ctx context.Context, urls []string) error {
	if j == nil || len(urls) == 0 {
		return nil
	}

	task, err := NewImageCleanupTask(urls)
	if err != nil {
		return err
	}
	return j.enqueue(ctx, task)
}
