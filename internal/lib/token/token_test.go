package token

import (
	"testing"
	"time"

	"github.com/deppfellow/realty/internal/config"
	"github.com/deppfellow/realty/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		SecretKey:     "a-test-secret-of-some-length",
		Issuer:        "realty-test",
		TokenTTL:      time.Hour,
		ResetTokenTTL: 30 * time.Minute,
	})
}

func TestIssueAndParse(t *testing.T) {
	m := newTestManager()
	user := &model.User{ID: 7, Username: "maria", AccessLevel: model.AccessEditor}

	raw, expiresAt, err := m.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "maria", claims.Username)
	assert.Equal(t, model.AccessEditor, claims.AccessLevel)
	assert.False(t, claims.IsAdmin())
	assert.Equal(t, "7", claims.Subject)
}

func TestParse_Expired(t *testing.T) {
	m := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	raw, _, err := m.Issue(&model.User{ID: 1, Username: "admin", AccessLevel: model.AccessAdmin})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(raw)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestParse_WrongSecret(t *testing.T) {
	raw, _, err := newTestManager().Issue(&model.User{ID: 1, Username: "admin", AccessLevel: model.AccessAdmin})
	require.NoError(t, err)

	other := NewManager(&config.AuthConfig{SecretKey: "another-secret-entirely", Issuer: "realty-test", TokenTTL: time.Hour})
	_, err = other.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParse_Garbage(t *testing.T) {
	_, err := newTestManager().Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestPasswordReset_RoundTrip(t *testing.T) {
	m := newTestManager()
	user := &model.User{ID: 3, Username: "maria", AccessLevel: model.AccessEditor, PasswordHash: "$2a$10$old"}

	raw, expiresAt, err := m.IssuePasswordReset(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, time.Minute)

	claims, err := m.ParsePasswordReset(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)
	assert.True(t, m.MatchesPassword(claims, "$2a$10$old"))
	assert.False(t, m.MatchesPassword(claims, "$2a$10$new"))
}

func TestPasswordReset_TokensAreNotInterchangeable(t *testing.T) {
	m := newTestManager()
	user := &model.User{ID: 3, Username: "maria", AccessLevel: model.AccessEditor, PasswordHash: "$2a$10$old"}

	access, _, err := m.Issue(user)
	require.NoError(t, err)
	_, err = m.ParsePasswordReset(access)
	assert.ErrorIs(t, err, ErrInvalid)

	reset, _, err := m.IssuePasswordReset(user)
	require.NoError(t, err)
	_, err = m.Parse(reset)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestPasswordReset_Expired(t *testing.T) {
	m := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }

	raw, _, err := m.IssuePasswordReset(&model.User{ID: 3, PasswordHash: "$2a$10$old"})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParsePasswordReset(raw)
	assert.ErrorIs(t, err, ErrExpired)
}
