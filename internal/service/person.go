package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/protomem/people-registry/internal/cpf"
	"github.com/protomem/people-registry/internal/database"
	"github.com/protomem/people-registry/internal/model"
	"github.com/protomem/people-registry/internal/validator"
)

//go:generate mockgen -source=person.go -destination=mocks/person.go -package=mocks

// MaxPhotoBytes is the largest normalized photo accepted for a person.
const MaxPhotoBytes = 1 << 20

var (
	_minBirthDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

	// ErrPhoto marks a photo the normalizer could not process.
	ErrPhoto = errors.New("photo could not be processed")
)

// PersonStore persists people and their photo history. Insert, Update and
// Delete are atomic.
type PersonStore interface {
	Find(ctx context.Context, filter database.FindPersonFilter, opts database.FindOptions) ([]model.PersonSummary, error)
	Get(ctx context.Context, id model.ID) (model.Person, error)
	GetByCPF(ctx context.Context, cpf string) (model.Person, error)
	Insert(ctx context.Context, person model.Person) error
	Update(ctx context.Context, person model.Person) error
	Delete(ctx context.Context, id model.ID) error
	ActivePhoto(ctx context.Context, personID model.ID) (model.PhotoHistoryEntry, error)
	PhotoHistory(ctx context.Context, personID model.ID) ([]model.PhotoHistoryEntry, error)
}

// PhotoNormalizer converts raw uploaded bytes into the stored encoding.
type PhotoNormalizer interface {
	Normalize(raw []byte) ([]byte, error)
}

type PersonInput struct {
	FirstName string
	LastName  string
	CPF       string
	BirthDate time.Time
	Sex       model.Sex
	Photo     []byte
}

type PersonFilter struct {
	Name      *string
	CPF       *string
	BirthDate *time.Time
	Sex       *model.Sex
}

type PersonServiceArgs struct {
	Logger     *slog.Logger
	Store      PersonStore
	Normalizer PhotoNormalizer
	Metrics    Recorder
	NowFunc    func() time.Time
}

// PersonService manages people and keeps at most one active photo per
// person.
type PersonService struct {
	logger     *slog.Logger
	store      PersonStore
	normalizer PhotoNormalizer
	metrics    Recorder
	nowFunc    func() time.Time
}

func NewPersonService(args PersonServiceArgs) *PersonService {
	s := &PersonService{
		logger:     args.Logger.With("service", "person"),
		store:      args.Store,
		normalizer: args.Normalizer,
		metrics:    args.Metrics,
		nowFunc:    args.NowFunc,
	}
	if s.nowFunc == nil {
		s.nowFunc = func() time.Time { return time.Now().UTC() }
	}
	if s.metrics == nil {
		s.metrics = nopRecorder{}
	}
	return s
}

func (s *PersonService) Create(ctx context.Context, input PersonInput) (model.Person, error) {
	normalizedCPF := cpf.Normalize(input.CPF)

	if err := s.ensureCPFFree(ctx, normalizedCPF, nil); err != nil {
		return model.Person{}, err
	}

	now := s.nowFunc()
	person := model.NewPerson(input.FirstName, input.LastName, normalizedCPF, input.BirthDate, input.Sex, nil, now)

	if err := validatePerson(person, now); err != nil {
		return model.Person{}, err
	}

	if err := s.attachPhoto(&person, input.Photo, now); err != nil {
		return model.Person{}, err
	}

	if err := s.store.Insert(ctx, person); err != nil {
		return model.Person{}, err
	}

	s.metrics.PersonCreated(person.HasPhoto())
	s.logger.Debug("person created", "personId", person.ID(), "withPhoto", person.HasPhoto())

	return person, nil
}

// Update applies input to the stored person. Nothing is written unless the
// updated state passes validation.
func (s *PersonService) Update(ctx context.Context, id model.ID, input PersonInput) (model.Person, error) {
	person, err := s.store.Get(ctx, id)
	if err != nil {
		return model.Person{}, err
	}

	normalizedCPF := cpf.Normalize(input.CPF)
	if normalizedCPF != person.CPF() {
		if err := s.ensureCPFFree(ctx, normalizedCPF, &id); err != nil {
			return model.Person{}, err
		}
	}

	now := s.nowFunc()
	person.UpdateCore(input.FirstName, input.LastName, normalizedCPF, input.BirthDate, input.Sex, now)

	if err := validatePerson(person, now); err != nil {
		return model.Person{}, err
	}

	if err := s.attachPhoto(&person, input.Photo, now); err != nil {
		return model.Person{}, err
	}

	if err := s.store.Update(ctx, person); err != nil {
		return model.Person{}, err
	}

	_, replaced := person.PendingPhoto()
	s.metrics.PersonUpdated(replaced)
	s.logger.Debug("person updated", "personId", id, "photoReplaced", replaced)

	return person, nil
}

func (s *PersonService) Get(ctx context.Context, id model.ID) (model.Person, error) {
	return s.store.Get(ctx, id)
}

func (s *PersonService) ActivePhoto(ctx context.Context, personID model.ID) (model.PhotoHistoryEntry, error) {
	return s.store.ActivePhoto(ctx, personID)
}

func (s *PersonService) PhotoHistory(ctx context.Context, personID model.ID) ([]model.PhotoHistoryEntry, error) {
	if _, err := s.store.Get(ctx, personID); err != nil {
		return nil, err
	}
	return s.store.PhotoHistory(ctx, personID)
}

func (s *PersonService) Delete(ctx context.Context, id model.ID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.metrics.PersonDeleted()
	s.logger.Debug("person deleted", "personId", id)

	return nil
}

// List returns an empty slice, not an error, when nothing matches.
func (s *PersonService) List(ctx context.Context, filter PersonFilter, page Page) ([]model.PersonSummary, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	dbFilter := database.FindPersonFilter{
		Name:      filter.Name,
		BirthDate: filter.BirthDate,
		Sex:       filter.Sex,
	}
	if filter.CPF != nil {
		normalized := cpf.Normalize(*filter.CPF)
		dbFilter.CPF = &normalized
	}

	people, err := s.store.Find(ctx, dbFilter, page.Options())
	if err != nil {
		return nil, err
	}
	if people == nil {
		people = []model.PersonSummary{}
	}

	return people, nil
}

// ensureCPFFree is a fast path only; the unique index decides races.
func (s *PersonService) ensureCPFFree(ctx context.Context, normalizedCPF string, self *model.ID) error {
	if normalizedCPF == "" {
		return nil
	}

	existing, err := s.store.GetByCPF(ctx, normalizedCPF)
	switch {
	case errors.Is(err, model.ErrNotFound):
		return nil
	case err != nil:
		return err
	case self != nil && existing.ID() == *self:
		return nil
	default:
		return model.NewError("person", model.ErrExists)
	}
}

// attachPhoto normalizes raw and stages it as the new active photo. It runs
// after the core fields have been validated so decoding is skipped for
// requests that are already rejected.
func (s *PersonService) attachPhoto(person *model.Person, raw []byte, now time.Time) error {
	if len(raw) == 0 {
		return nil
	}

	photo, err := s.normalizePhoto(raw)
	if err != nil {
		return err
	}

	person.ReplacePhoto(photo, now)
	return validatePerson(*person, now)
}

func (s *PersonService) normalizePhoto(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	photo, err := s.normalizer.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPhoto, err)
	}

	return photo, nil
}

func validatePerson(p model.Person, now time.Time) error {
	var v validator.Validator

	v.CheckField(validator.RunesBetween(p.FirstName(), 3, 20), "firstName", "first name must have between 3 and 20 characters")
	v.CheckField(validator.RunesBetween(p.LastName(), 3, 100), "lastName", "last name must have between 3 and 100 characters")

	if len(p.CPF()) != cpf.Length {
		v.AddFieldError("cpf", "cpf must have exactly 11 digits")
	} else {
		v.CheckField(cpf.Valid(p.CPF()), "cpf", "cpf is not valid")
	}

	v.CheckField(
		validator.DateBetween(p.BirthDate(), _minBirthDate, now),
		"birthDate", "birth date must be after 1900-01-01 and before today",
	)
	v.CheckField(validator.In(p.Sex(), model.Sexes()...), "sex", "sex must be one of: Male, Female, Other")

	if p.HasPhoto() {
		v.CheckField(validator.MaxBytes(p.Photo(), MaxPhotoBytes), "photo", "photo must not be larger than 1MB")
	}

	return v.Err()
}
