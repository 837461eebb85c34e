// Package token issues and verifies the HS256 access tokens handed out at
// login.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/deppfellow/realty/internal/config"
	"github.com/deppfellow/realty/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalid = errors.New("invalid token")
	ErrExpired = errors.New("token has expired")
)

// Claims identify the caller of an authenticated request.
type Claims struct {
	UserID      uint              `json:"userId"`
	Username    string            `json:"username"`
	AccessLevel model.AccessLevel `json:"accessLevel"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.AccessLevel == model.AccessAdmin
}

type Manager struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	resetTTL   time.Duration
	now        func() time.Time
}

func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		signingKey: []byte(cfg.SecretKey),
		issuer:     cfg.Issuer,
		ttl:        cfg.TokenTTL,
		resetTTL:   cfg.ResetTokenTTL,
		now:        time.Now,
	}
}

// Issue signs a token for user and returns it with its expiry.
func (m *Manager) Issue(user *model.User) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := &Claims{
		UserID:      user.ID,
		Username:    user.Username,
		AccessLevel: user.AccessLevel,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Parse verifies signature, issuer and expiry. It returns ErrExpired for
// expired tokens and ErrInvalid for everything else.
func (m *Manager) Parse(raw string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.signingKey, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	if !token.Valid || claims.UserID == 0 || !claims.AccessLevel.Valid() {
		return nil, ErrInvalid
	}

	return claims, nil
}

const passwordResetAudience = "password-reset"

// ResetClaims authorise a single password reset. Fingerprint is derived
// from the password hash at issue time, so the token stops working once
// the password changes.
type ResetClaims struct {
	UserID      uint   `json:"userId"`
	Fingerprint string `json:"pwd"`
	jwt.RegisteredClaims
}

// IssuePasswordReset signs a short-lived reset token for user.
func (m *Manager) IssuePasswordReset(user *model.User) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.resetTTL)

	claims := &ResetClaims{
		UserID:      user.ID,
		Fingerprint: m.fingerprint(user.PasswordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{passwordResetAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign reset token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParsePasswordReset verifies a reset token. Access tokens are rejected
// because they carry no reset audience.
func (m *Manager) ParsePasswordReset(raw string) (*ResetClaims, error) {
	claims := &ResetClaims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return m.signingKey, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(passwordResetAudience),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	if !token.Valid || claims.UserID == 0 || claims.Fingerprint == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}

// MatchesPassword reports whether claims were issued for passwordHash.
func (m *Manager) MatchesPassword(claims *ResetClaims, passwordHash string) bool {
	return hmac.Equal([]byte(claims.Fingerprint), []byte(m.fingerprint(passwordHash)))
}

func (m *Manager) fingerprint(passwordHash string) string {
	mac := hmac.New(sha256.New, m.signingKey)
	mac.Write([]byte(passwordHash))
	return hex.EncodeToString(mac.Sum(nil))[:32]
}
