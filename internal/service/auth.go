package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/protomem/people-registry/internal/auth"
	"github.com/protomem/people-registry/internal/model"
)

//go:generate mockgen -source=auth.go -destination=mocks/auth.go -package=mocks

var ErrInvalidCredentials = errors.New("invalid username or password")

type TokenIssuer interface {
	Issue(user model.User) (auth.Token, error)
}

type AuthServiceArgs struct {
	Logger  *slog.Logger
	Users   UserStore
	Hasher  PasswordHasher
	Issuer  TokenIssuer
	Metrics Recorder
}

type AuthService struct {
	logger  *slog.Logger
	users   UserStore
	hasher  PasswordHasher
	issuer  TokenIssuer
	metrics Recorder
}

func NewAuthService(args AuthServiceArgs) *AuthService {
	s := &AuthService{
		logger:  args.Logger.With("service", "auth"),
		users:   args.Users,
		hasher:  args.Hasher,
		issuer:  args.Issuer,
		metrics: args.Metrics,
	}
	if s.metrics == nil {
		s.metrics = nopRecorder{}
	}
	return s
}

// Login checks the credentials with a single account lookup and returns a
// signed token asserting username and role.
func (s *AuthService) Login(ctx context.Context, username, password string) (auth.Token, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		s.metrics.LoginAttempt(false)
		return auth.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		return auth.Token{}, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return auth.Token{}, err
	}
	if !ok {
		s.metrics.LoginAttempt(false)
		s.logger.Debug("login rejected", "username", username)
		return auth.Token{}, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return auth.Token{}, err
	}

	s.metrics.LoginAttempt(true)

	return token, nil
}
