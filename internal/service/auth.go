package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/samuelhany-cpu/blogging-platform/internal/hash"
	"github.com/samuelhany-cpu/blogging-platform/internal/logging"
	"github.com/samuelhany-cpu/blogging-platform/internal/metrics"
	"github.com/samuelhany-cpu/blogging-platform/internal/models"
	"github.com/samuelhany-cpu/blogging-platform/internal/mykafka"
	"github.com/samuelhany-cpu/blogging-platform/internal/repo"
	"github.com/samuelhany-cpu/blogging-platform/internal/revocation"
	"github.com/samuelhany-cpu/blogging-platform/internal/tokens"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrValidation          = errors.New("validation failed")
)

var (
	usernameRe = regexp.MustCompile(`^\w{3,30}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	letterRe   = regexp.MustCompile(`[A-Za-z]`)
	digitRe    = regexp.MustCompile(`[0-9]`)
)

type AuthService struct {
	Users    *repo.UserRepo
	Tokens   *tokens.Service
	Registry revocation.Registry
	Producer *mykafka.Producer
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	User         models.PublicUser
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.PublicUser, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if err := validateRegistration(username, email, password); err != nil {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register failed", "reason", "cannot hash password", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		Role:         "user",
	}
	if err := s.Users.Create(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrUserExists
		}
		l.Error("register failed", "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	l.Info("user registered", "user_id", user.ID, "username", user.Username)
	s.publishEvent(ctx, user.ID, map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	pub := user.Public()
	return &pub, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Unknown account takes the same bcrypt detour as a wrong
			// password, so the two cases are indistinguishable by timing.
			hash.DummyCompare(password)
			return nil, ErrInvalidCredentials
		}
		l.Error("login failed", "error", err)
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	res, err := s.issueAndPersist(ctx, user)
	if err != nil {
		l.Error("login failed", "error", err)
		return nil, err
	}

	if err := s.Users.TouchLastLogin(ctx, user.ID); err != nil {
		l.Warn("could not record last login", "user_id", user.ID, "error", err)
	}

	l.Info("user logged in", "user_id", user.ID, "username", user.Username)
	metrics.Logins.Inc()
	s.publishEvent(ctx, user.ID, map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return res, nil
}

// Refresh rotates the token pair. The presented token must decode as a
// refresh token and exactly match the single active value stored for the
// subject; a superseded token fails cleanly here, which is what revokes all
// prior sessions after each rotation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := s.Tokens.ParseRefreshClaims(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if claims.TokenType != tokens.RefreshTokenType || claims.UserID == 0 {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.Users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		l.Error("refresh failed", "error", err)
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, ErrInvalidRefreshToken
	}

	res, err := s.issueAndPersist(ctx, user)
	if err != nil {
		l.Error("refresh failed", "error", err)
		return nil, err
	}

	l.Info("tokens refreshed", "user_id", user.ID)
	metrics.TokenRefreshes.Inc()
	return res, nil
}

// Logout revokes the in-flight access token and clears the stored refresh
// token. Both steps are idempotent; repeating a logout is harmless.
func (s *AuthService) Logout(ctx context.Context, userID uint, rawAccessToken string) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout", "user_id", userID)

	if rawAccessToken != "" {
		if err := s.Registry.Revoke(ctx, rawAccessToken); err != nil {
			l.Error("logout failed", "reason", "cannot revoke access token", "error", err)
			return fmt.Errorf("revoke token: %w", err)
		}
	}

	if err := s.Users.UpdateRefreshToken(ctx, userID, ""); err != nil {
		l.Error("logout failed", "reason", "cannot clear refresh token", "error", err)
		return fmt.Errorf("clear refresh token: %w", err)
	}

	l.Info("user logged out")
	return nil
}

func (s *AuthService) issueAndPersist(ctx context.Context, user *models.User) (*LoginResult, error) {
	accessToken, accessExp, err := s.Tokens.IssueAccessToken(tokens.Identity{
		ID:       user.ID,
		Email:    user.Email,
		Role:     user.Role,
		Username: user.Username,
	})
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refreshToken, refreshExp, err := s.Tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	if err := s.Users.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("persist refresh token: %w", err)
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		User:         user.Public(),
	}, nil
}

func (s *AuthService) publishEvent(ctx context.Context, userID uint, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, mykafka.UserEventsTopic, fmt.Sprint(userID), event); err != nil {
		logging.FromContext(ctx).Warn("kafka publish error", "error", err)
	}
}

func validateRegistration(username, email, password string) error {
	switch {
	case !usernameRe.MatchString(username):
		return fmt.Errorf("%w: username must be 3-30 letters, digits or underscores", ErrValidation)
	case !emailRe.MatchString(email):
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	case len(password) < 8:
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	case !letterRe.MatchString(password) || !digitRe.MatchString(password):
		return fmt.Errorf("%w: password must contain at least one letter and one digit", ErrValidation)
	}
	return nil
}
