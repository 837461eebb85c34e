package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/deppfellow/realty/internal/errs"
	"github.com/deppfellow/realty/internal/lib/job"
	"github.com/deppfellow/realty/internal/lib/token"
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/repository"
	"github.com/deppfellow/realty/internal/server"
	"github.com/deppfellow/realty/internal/sqlerr"
)

// AuthService handles login and the signed-in user's own account.
type AuthService struct {
	server *server.Server
	repos  *repository.Repositories
	tokens *token.Manager
}

func NewAuthService(s *server.Server, repos *repository.Repositories) *AuthService {
	return &AuthService{
		server: s,
		repos:  repos,
		tokens: s.Tokens,
	}
}

func invalidCredentials() *errs.HTTPError {
	err := errs.NewUnauthorizedError("Invalid username or password", true)
	err.Code = "INVALID_CREDENTIALS"
	return err
}

// Login accepts either the username or the email. Unknown users and wrong
// passwords get the same answer.
func (s *AuthService) Login(ctx context.Context, p *model.LoginPayload) (*model.LoginResult, error) {
	user, err := s.repos.User.GetByLogin(ctx, p.Username)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if !checkPassword(user.PasswordHash, p.Password) {
		s.server.Logger.Warn().Uint("user_id", user.ID).Msg("login rejected: wrong password")
		return nil, invalidCredentials()
	}

	s.server.Logger.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user logged in")
	return s.issue(user)
}

// Refresh issues a new token for the user behind claims, picking up any
// access level change since the old token was signed.
func (s *AuthService) Refresh(ctx context.Context, claims *token.Claims) (*model.LoginResult, error) {
	user, err := s.currentUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Verify(ctx context.Context, claims *token.Claims) (*model.VerifyTokenResult, error) {
	user, err := s.currentUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return &model.VerifyTokenResult{Valid: true, User: user}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	return s.currentUser(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, p *model.UpdateProfilePayload) (*model.User, error) {
	user, err := s.currentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if p.Email != nil && *p.Email != user.Email {
		taken, err := s.repos.User.ExistsByEmail(ctx, *p.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.NewBadRequestError("A user with this email already exists", true,
				errs.Code("USER_ALREADY_EXISTS"), []errs.FieldError{{Field: "email", Message: "is already in use"}}, nil)
		}
		user.Email = *p.Email
	}

	if p.FullName != nil {
		user.FullName = *p.FullName
	}
	if p.Phone != nil {
		user.Phone = p.Phone
	}
	if p.Bio != nil {
		user.Bio = p.Bio
	}
	if p.Avatar != nil {
		user.Avatar = p.Avatar
	}

	if err := s.repos.User.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, p *model.ChangePasswordPayload) error {
	user, err := s.currentUser(ctx, userID)
	if err != nil {
		return err
	}

	if !checkPassword(user.PasswordHash, p.CurrentPassword) {
		return errs.NewBadRequestError("Current password is incorrect", true, errs.Code("INVALID_CURRENT_PASSWORD"),
			[]errs.FieldError{{Field: "currentPassword", Message: "is incorrect"}}, nil)
	}

	hash, err := hashPassword(p.NewPassword)
	if err != nil {
		return err
	}

	if err := s.repos.User.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.server.Logger.Info().Uint("user_id", user.ID).Msg("password changed")
	return nil
}

// ForgotPassword emails a reset link when email belongs to a user. Callers
// get the same answer whether or not it does.
func (s *AuthService) ForgotPassword(ctx context.Context, p *model.ForgotPasswordPayload) error {
	user, err := s.repos.User.GetByEmail(ctx, p.Email)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			s.server.Logger.Info().Msg("password reset requested for unknown email")
			return nil
		}
		return err
	}

	signed, _, err := s.tokens.IssuePasswordReset(user)
	if err != nil {
		return err
	}

	err = s.server.Job.EnqueuePasswordResetEmail(ctx, job.PasswordResetEmailPayload{
		To:        user.Email,
		FullName:  user.FullName,
		Username:  user.Username,
		ResetURL:  s.server.Config.Email.PublicURL + "/reset-password?token=" + url.QueryEscape(signed),
		ExpiresIn: humanizeTTL(s.server.Config.Auth.ResetTokenTTL),
	})
	if err != nil {
		s.server.Logger.Error().Err(err).Uint("user_id", user.ID).Msg("failed to enqueue password reset email")
		return nil
	}

	s.server.Logger.Info().Uint("user_id", user.ID).Msg("password reset requested")
	return nil
}

func invalidResetToken() *errs.HTTPError {
	return errs.NewBadRequestError("Reset link is invalid or has expired", true, errs.Code("INVALID_RESET_TOKEN"),
		[]errs.FieldError{{Field: "token", Message: "is invalid or has expired"}}, nil)
}

// ResetPassword sets a new password from a reset token. A token stops
// working once the password it was issued for has changed.
func (s *AuthService) ResetPassword(ctx context.Context, p *model.ResetPasswordPayload) error {
	claims, err := s.tokens.ParsePasswordReset(p.Token)
	if err != nil {
		return invalidResetToken()
	}

	user, err := s.repos.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return invalidResetToken()
		}
		return err
	}

	if !s.tokens.MatchesPassword(claims, user.PasswordHash) {
		return invalidResetToken()
	}

	hash, err := hashPassword(p.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repos.User.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.server.Logger.Info().Uint("user_id", user.ID).Msg("password reset")
	return nil
}

func humanizeTTL(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		if hours := int(d / time.Hour); hours > 1 {
			return fmt.Sprintf("%d hours", hours)
		}
		return "1 hour"
	}
	return fmt.Sprintf("%d minutes", int(d/time.Minute))
}

// currentUser loads the signed-in user. A token for a deleted account is
// treated as unauthenticated.
func (s *AuthService) currentUser(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return nil, errs.NewUnauthorizedError("User no longer exists", true)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *model.User) (*model.LoginResult, error) {
	signed, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &model.LoginResult{
		Token:     signed,
		ExpiresAt: expiresAt.Unix(),
		User:      user,
	}, nil
}
