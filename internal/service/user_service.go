package service

import (
	"context"
	"errors"
	"net/mail"

	"github.com/rs/zerolog"

	"github.com/yafiirfan/backend.movie/internal/apperr"
	"github.com/yafiirfan/backend.movie/internal/auth"
	"github.com/yafiirfan/backend.movie/internal/cache"
	"github.com/yafiirfan/backend.movie/internal/entity"
	"github.com/yafiirfan/backend.movie/internal/events"
	"github.com/yafiirfan/backend.movie/internal/repository"
)

// UserService orchestrates registration, both login flows, and the
// authenticated profile operations. It is stateless across requests; all
// shared state lives in storage, the cache, and the broker.
type UserService struct {
	repo   repository.UserRepository
	tokens *auth.TokenManager
	google auth.GoogleVerifier
	cache  *cache.UserCache
	events *events.Publisher
	logger zerolog.Logger
}

// NewUserService creates a new instance of UserService. cache and events may
// be nil; the corresponding features are then skipped.
func NewUserService(repo repository.UserRepository, tokens *auth.TokenManager, google auth.GoogleVerifier,
	userCache *cache.UserCache, publisher *events.Publisher, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		google: google,
		cache:  userCache,
		events: publisher,
		logger: logger,
	}
}

// Register validates the input, hashes the password, and creates the user.
// Hashing happens here, at the call site, so the raw password never reaches
// storage. The duplicate-email check is the database's unique key.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	if username == "" {
		return nil, apperr.Validation("username", "username is required")
	}
	if email == "" {
		return nil, apperr.Validation("email", "Email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Validation("email", "Invalid email format")
	}
	if password == "" {
		return nil, apperr.Validation("password", "Password is required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.UserRegistered, user)
	return user, nil
}

// Login verifies the email/password pair and issues an access token. An
// unknown email and a wrong password carry distinct internal reasons but
// classify to the same client message, so responses never reveal whether the
// email exists.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" {
		return "", apperr.Validation("email", "Email is required")
	}
	if password == "" {
		return "", apperr.Validation("password", "Password is required")
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", apperr.InvalidCredentials(errors.New("unknown email"))
		}
		return "", err
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return "", apperr.InvalidCredentials(errors.New("password mismatch"))
	}

	return s.tokens.Issue(user.ID)
}

// GoogleLogin verifies the Google ID-token assertion and issues an access
// token, provisioning the user on first login. Provisioned accounts store
// the federated sentinel instead of a password digest, so the password flow
// can never authenticate them.
func (s *UserService) GoogleLogin(ctx context.Context, googleToken string) (string, error) {
	profile, err := s.google.Verify(ctx, googleToken)
	if err != nil {
		return "", err
	}

	user, err := s.repo.GetUserByEmail(ctx, profile.Email)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return "", err
		}
		user, err = s.provisionFederatedUser(ctx, profile)
		if err != nil {
			return "", err
		}
	}

	return s.tokens.Issue(user.ID)
}

func (s *UserService) provisionFederatedUser(ctx context.Context, profile *auth.GoogleProfile) (*entity.User, error) {
	user, err := s.repo.CreateUser(ctx, &entity.User{
		Username:     profile.Name,
		Email:        profile.Email,
		PasswordHash: auth.FederatedPasswordSentinel,
	})
	if err == nil {
		s.publish(ctx, events.UserRegistered, user)
		return user, nil
	}

	// A concurrent first login can win the insert; the unique key makes the
	// loser re-read instead of creating a second account.
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Kind == apperr.KindValidation && appErr.Field == "email" {
		return s.repo.GetUserByEmail(ctx, profile.Email)
	}
	return nil, err
}

// GetUserByID resolves a user, serving from the redis cache when possible.
// Cache failures degrade to a storage read, never to a request failure.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn().Err(err).Int("user_id", id).Msg("user cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.logger.Warn().Err(err).Int("user_id", id).Msg("user cache write failed")
		}
	}
	return user, nil
}

// UpdateUsername persists a new username for the user and returns the fresh
// record.
func (s *UserService) UpdateUsername(ctx context.Context, id int, username string) (*entity.User, error) {
	if username == "" {
		return nil, apperr.Validation("username", "Username is required")
	}

	if err := s.repo.UpdateUsername(ctx, id, username); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)

	return s.repo.GetUserByID(ctx, id)
}

// DeleteUser removes the account permanently and drops the cached entry so
// outstanding tokens stop resolving immediately.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)

	s.publish(ctx, events.UserDeleted, user)
	return nil
}

func (s *UserService) invalidate(ctx context.Context, id int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int("user_id", id).Msg("user cache invalidation failed")
	}
}

// publish emits a lifecycle event. Failures are logged and swallowed; no
// request outcome depends on the broker and nothing is retried.
func (s *UserService) publish(ctx context.Context, eventType string, user *entity.User) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishUserEvent(ctx, eventType, user); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Int("user_id", user.ID).Msg("publishing user event failed")
	}
}
