package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"time"

	"github.com/protomem/people-registry/internal/database"
	"github.com/protomem/people-registry/internal/model"
	"github.com/protomem/people-registry/internal/validator"
)

//go:generate mockgen -source=user.go -destination=mocks/user.go -package=mocks

var (
	_passwordCharsRx  = regexp.MustCompile(`^[A-Za-z0-9]{8,12}$`)
	_passwordLetterRx = regexp.MustCompile(`[A-Za-z]`)
	_passwordDigitRx  = regexp.MustCompile(`[0-9]`)
)

type UserStore interface {
	Find(ctx context.Context, filter database.FindUserFilter, opts database.FindOptions) ([]model.User, error)
	Count(ctx context.Context) (int, error)
	Get(ctx context.Context, id model.ID) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	Insert(ctx context.Context, user model.User) error
	Update(ctx context.Context, user model.User) error
	Delete(ctx context.Context, id model.ID) error
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}

type UserInput struct {
	Username string
	Password string
	Role     model.Role
}

type UserFilter struct {
	Username *string
	Role     *model.Role
}

type UserServiceArgs struct {
	Logger  *slog.Logger
	Store   UserStore
	Hasher  PasswordHasher
	Metrics Recorder
	NowFunc func() time.Time
}

type UserService struct {
	logger  *slog.Logger
	store   UserStore
	hasher  PasswordHasher
	metrics Recorder
	nowFunc func() time.Time
}

func NewUserService(args UserServiceArgs) *UserService {
	s := &UserService{
		logger:  args.Logger.With("service", "user"),
		store:   args.Store,
		hasher:  args.Hasher,
		metrics: args.Metrics,
		nowFunc: args.NowFunc,
	}
	if s.nowFunc == nil {
		s.nowFunc = func() time.Time { return time.Now().UTC() }
	}
	if s.metrics == nil {
		s.metrics = nopRecorder{}
	}
	return s
}

func (s *UserService) Create(ctx context.Context, input UserInput) (model.User, error) {
	if err := s.ensureUsernameFree(ctx, input.Username, nil); err != nil {
		return model.User{}, err
	}

	if err := validateUser(input); err != nil {
		return model.User{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return model.User{}, err
	}

	user := model.NewUser(input.Username, hash, input.Role, s.nowFunc())
	if err := s.store.Insert(ctx, user); err != nil {
		return model.User{}, err
	}

	s.metrics.UserCreated()
	s.logger.Debug("user created", "userId", user.ID, "role", user.Role)

	return user, nil
}

// Update replaces username, password and role of an existing account.
func (s *UserService) Update(ctx context.Context, id model.ID, input UserInput) (model.User, error) {
	user, err := s.store.Get(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	if input.Username != user.Username {
		if err := s.ensureUsernameFree(ctx, input.Username, &id); err != nil {
			return model.User{}, err
		}
	}

	if err := validateUser(input); err != nil {
		return model.User{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return model.User{}, err
	}

	user.Update(input.Username, hash, input.Role, s.nowFunc())
	if err := s.store.Update(ctx, user); err != nil {
		return model.User{}, err
	}

	s.logger.Debug("user updated", "userId", id)

	return user, nil
}

func (s *UserService) Get(ctx context.Context, id model.ID) (model.User, error) {
	return s.store.Get(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id model.ID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Debug("user deleted", "userId", id)

	return nil
}

func (s *UserService) List(ctx context.Context, filter UserFilter, page Page) ([]model.User, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	users, err := s.store.Find(ctx, database.FindUserFilter{
		Username: filter.Username,
		Role:     filter.Role,
	}, page.Options())
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}

	return users, nil
}

// EnsureManager creates a manager account when no account exists yet.
// It reports whether an account was created.
func (s *UserService) EnsureManager(ctx context.Context, username, password string) (bool, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	_, err = s.Create(ctx, UserInput{Username: username, Password: password, Role: model.RoleManager})
	if errors.Is(err, model.ErrExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.logger.Info("bootstrap manager created", "username", username)

	return true, nil
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username string, self *model.ID) error {
	if username == "" {
		return nil
	}

	existing, err := s.store.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, model.ErrNotFound):
		return nil
	case err != nil:
		return err
	case self != nil && existing.ID == *self:
		return nil
	default:
		return model.NewError("user", model.ErrExists)
	}
}

func validateUser(input UserInput) error {
	var v validator.Validator

	v.CheckField(validator.NotBlank(input.Username), "username", "username must not be blank")
	v.CheckField(validator.MinRunes(input.Username, 5), "username", "username must have at least 5 characters")
	v.CheckField(validator.In(input.Role, model.Roles()...), "role", "role must be one of: User, Manager")
	v.CheckField(
		validator.Matches(input.Password, _passwordCharsRx) &&
			validator.Matches(input.Password, _passwordLetterRx) &&
			validator.Matches(input.Password, _passwordDigitRx),
		"password", "password must have between 8 and 12 letters or digits, with at least one letter and one digit",
	)

	return v.Err()
}
