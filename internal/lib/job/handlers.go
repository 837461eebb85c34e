package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/deppfellow/realty/internal/lib/email"
	"github.com/deppfellow/realty/internal/lib/storage"
	"github.com/hibiken/asynq"
)

// ImageReferenceChecker reports whether any listing still uses an image URL.
type ImageReferenceChecker interface {
	IsImageReferenced(ctx context.Context, url string) (bool, error)
}

// HandlerDeps are the collaborators task handlers need. They are wired
// after the repositories exist, which is later than NewJobService.
type HandlerDeps struct {
	Email    *email.Client
	Storage  *storage.LocalStorage
	Images   ImageReferenceChecker
	LoginURL string
}

func (j *JobService) InitHandlers(deps *HandlerDeps) {
	if j == nil {
		return
	}
	j.deps = deps
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().Str("type", "welcome").Str("to", p.To).Logger()
	log.Info().Msg("processing welcome email task")

	if err := j.deps.Email.SendWelcomeEmail(ctx, p.To, p.FullName, p.Username, p.AccessLevel, j.deps.LoginURL); err != nil {
		log.Error().Err(err).Msg("failed to send welcome email")
		return err
	}

	log.Info().Msg("sent welcome email")
	return nil
}

func (j *JobService) handlePasswordResetEmailTask(ctx context.Context, t *asynq.Task) error {
	var p PasswordResetEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal password reset payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().Str("type", "password_reset").Str("to", p.To).Logger()

	if err := j.deps.Email.SendPasswordResetEmail(ctx, p.To, p.FullName, p.Username, p.ResetURL, p.ExpiresIn); err != nil {
		log.Error().Err(err).Msg("failed to send password reset email")
		return err
	}

	log.Info().Msg("sent password reset email")
	return nil
}

func (j *JobService) handleImageCleanupTask(ctx context.Context, t *asynq.Task) error {
	var p ImageCleanupPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal image cleanup payload: %w: %w", err, asynq.SkipRetry)
	}

	removed, err := CleanupImages(ctx, j.deps.Storage, j.deps.Images, p.URLs)
	j.logger.Info().
		Str("type", "image_cleanup").
		Int("requested", len(p.URLs)).
		Int("removed", removed).
		Msg("processed image cleanup task")
	return err
}

// CleanupImages deletes the stored files behind urls unless a listing
// still references them. It returns how many files were removed.
func CleanupImages(ctx context.Context, store *storage.LocalStorage, refs ImageReferenceChecker, urls []string) (int, error) {
	removed := 0
	var errs []error

	for _, url := range urls {
		filename, ok := store.FilenameFromURL(url)
		if !ok {
			continue
		}

		referenced, err := refs.IsImageReferenced(ctx, url)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if referenced {
			continue
		}

		if err := store.Delete(filename); err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				errs = append(errs, err)
			}
			continue
		}
		removed++
	}

	return removed, errors.Join(errs...)
}
