package job

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/deppfellow/realty/internal/config"
	"github.com/deppfellow/realty/internal/lib/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefs map[string]bool

func (f fakeRefs) IsImageReferenced(_ context.Context, url string) (bool, error) {
	return f[url], nil
}

func TestCleanupImages(t *testing.T) {
	store, err := storage.NewLocalStorage(&config.UploadConfig{
		Dir:          t.TempDir(),
		MaxSizeBytes: 1 << 20,
		PublicPath:   "/uploads",
	})
	require.NoError(t, err)

	png, err := base64.StdEncoding.DecodeString("iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII=")
	require.NoError(t, err)

	kept, err := store.Save("kept.png", bytes.NewReader(png))
	require.NoError(t, err)
	orphan, err := store.Save("orphan.png", bytes.NewReader(png))
	require.NoError(t, err)

	refs := fakeRefs{kept.URL: true}
	removed, err := CleanupImages(context.Background(), store, refs, []string{
		kept.URL,
		orphan.URL,
		"https://cdn.example.com/photo.jpg",
		"/uploads/missing.png",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.True(t, store.Exists(kept.Filename))
	assert.False(t, store.Exists(orphan.Filename))
}

func TestNilJobServiceDropsTasks(t *testing.T) {
	var j *JobService
	assert.NoError(t, j.EnqueueWelcomeEmail(context.Background(), WelcomeEmailPayload{To: "a@b.c"}))
	assert.NoError(t, j.EnqueueImageCleanup(context.Background(), []string{"/uploads/x.png"}))
	assert.NoError(t, j.EnqueuePasswordResetEmail(context.Background(), PasswordResetEmailPayload{To: "a@b.c"}))
	assert.NoError(t, j.Start())
	j.Stop()
}

func TestNewPasswordResetEmailTask(t *testing.T) {
	task, err := NewPasswordResetEmailTask(PasswordResetEmailPayload{
		To:       "maria@example.com",
		Username: "maria",
		ResetURL: "http://localhost:5173/reset-password?token=abc",
	})
	require.NoError(t, err)
	assert.Equal(t, TaskPasswordReset, task.Type())

	var p PasswordResetEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "maria@example.com", p.To)
	assert.Equal(t, "http://localhost:5173/reset-password?token=abc", p.ResetURL)
}
