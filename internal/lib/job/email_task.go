package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskWelcome       = "email:welcome"
	TaskPasswordReset = "email:password_reset"
)

type WelcomeEmailPayload struct {
	To          string `json:"to"`
	FullName    string `json:"full_name"`
	Username    string `json:"username"`
	AccessLevel string `json:"access_level"`
}

func NewWelcomeEmailTask(p WelcomeEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueWelcomeEmail schedules the welcome email for a new user.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, p WelcomeEmailPayload) error {
	if j == nil {
		return nil
	}

	task, err := NewWelcomeEmailTask(p)
	if err != nil {
		return err
	}
	return j.enqueue(ctx, task)
}

type PasswordResetEmailPayload struct {
	To        string `json:"to"`
	FullName  string `json:"full_name"`
	Username  string `json:"username"`
	ResetURL  string `json:"reset_url"`
	ExpiresIn string `json:"expires_in"`
}

// NewPasswordResetEmailTask builds the reset email task. The link is
// short-lived, so it gets fewer retries than the welcome email.
func NewPasswordResetEmailTask(p PasswordResetEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskPasswordReset,
		payload,
		asynq.MaxRetry(2),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}

func (j *JobService) EnqueuePasswordResetEmail(ctx context.Context, p PasswordResetEmailPayload) error {
	if j == nil {
		return nil
	}

	task, err := NewPasswordResetEmailTask(p)
	if err != nil {
		return err
	}
	return j.enqueue(ctx, task)
}
