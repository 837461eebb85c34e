package service

import (
	"context"

	"github.com/deppfellow/realty/internal/errs"
	"github.com/deppfellow/realty/internal/lib/job"
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/repository"
	"github.com/deppfellow/realty/internal/server"
)

type UserService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewUserService(s *server.Server, repos *repository.Repositories) *UserService {
	return &UserService{server: s, repos: repos}
}

func (s *UserService) List(ctx context.Context, q *model.ListUsersQuery) (*model.UserList, error) {
	q.Normalize()

	users, total, err := s.repos.User.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return &model.UserList{
		Users:      users,
		Pagination: model.NewPagination(total, q.Page, q.Limit),
	}, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User")
	}
	return user, nil
}

// Create stores the user and queues the welcome email. A failure to queue
// is logged and does not fail the request.
func (s *UserService) Create(ctx context.Context, p *model.CreateUserPayload) (*model.User, error) {
	if err := s.ensureUnique(ctx, p.Username, p.Email, 0); err != nil {
		return nil, err
	}

	hash, err := hashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	accessLevel := p.AccessLevel
	if accessLevel == "" {
		accessLevel = model.AccessEditor
	}

	user := &model.User{
		Username:     p.Username,
		Email:        p.Email,
		FullName:     p.FullName,
		AccessLevel:  accessLevel,
		PasswordHash: hash,
		Phone:        p.Phone,
		Bio:          p.Bio,
		Avatar:       p.Avatar,
	}
	if err := s.repos.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.server.Logger.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user created")

	err = s.server.Job.EnqueueWelcomeEmail(ctx, job.WelcomeEmailPayload{
		To:          user.Email,
		FullName:    user.FullName,
		Username:    user.Username,
		AccessLevel: string(user.AccessLevel),
	})
	if err != nil {
		s.server.Logger.Error().Err(err).Uint("user_id", user.ID).Msg("failed to enqueue welcome email")
	}

	return user, nil
}

// Update applies the provided fields. actorID is the caller, who may not
// demote themselves.
func (s *UserService) Update(ctx context.Context, p *model.UpdateUserPayload, actorID uint) (*model.User, error) {
	user, err := s.Get(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if p.AccessLevel != nil && user.ID == actorID && *p.AccessLevel != user.AccessLevel {
		return nil, conflict("You cannot change your own access level", "CANNOT_CHANGE_OWN_ACCESS_LEVEL")
	}

	username := user.Username
	if p.Username != nil {
		username = *p.Username
	}
	email := user.Email
	if p.Email != nil {
		email = *p.Email
	}
	if username != user.Username || email != user.Email {
		if err := s.ensureUnique(ctx, username, email, user.ID); err != nil {
			return nil, err
		}
	}

	user.Username = username
	user.Email = email
	if p.FullName != nil {
		user.FullName = *p.FullName
	}
	if p.AccessLevel != nil {
		user.AccessLevel = *p.AccessLevel
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
	if p.Password != nil {
		hash, err := hashPassword(*p.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.repos.User.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id, actorID uint) error {
	if id == actorID {
		return conflict("You cannot delete your own account", "CANNOT_DELETE_SELF")
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repos.User.Delete(ctx, user.ID); err != nil {
		return err
	}

	s.server.Logger.Info().Uint("user_id", user.ID).Uint("deleted_by", actorID).Msg("user deleted")
	return nil
}

// ensureUnique reports every taken identifier at once. excludeID is the
// user being updated, or 0.
func (s *UserService) ensureUnique(ctx context.Context, username, email string, excludeID uint) error {
	var fieldErrors []errs.FieldError

	taken, err := s.repos.User.ExistsByUsername(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if taken {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: "username", Message: "is already in use"})
	}

	taken, err = s.repos.User.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: "email", Message: "is already in use"})
	}

	if len(fieldErrors) > 0 {
		return errs.NewBadRequestError("A user with this username or email already exists", true,
			errs.Code("USER_ALREADY_EXISTS"), fieldErrors, nil)
	}
	return nil
}
