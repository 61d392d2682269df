package model

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

type ID = uuid.UUID

type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
	SexOther  Sex = "Other"
)

func Sexes() []Sex {
	return []Sex{SexMale, SexFemale, SexOther}
}

// Person is only mutated through UpdateCore and ReplacePhoto; the store
// rebuilds persisted records with RestorePerson.
type Person struct {
	id        ID
	firstName string
	lastName  string
	cpf       string
	birthDate time.Time
	sex       Sex
	photo     []byte
	createdAt time.Time
	updatedAt time.Time

	pendingPhoto *PhotoHistoryEntry
}

// PersonFields lists every stored attribute of a person.
type PersonFields struct {
	ID        ID
	FirstName string
	LastName  string
	CPF       string
	BirthDate time.Time
	Sex       Sex
	Photo     []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPerson builds a person with a fresh identifier. cpf must already be
// normalized. When photo is not empty it becomes the active history entry.
func NewPerson(
	firstName, lastName string,
	cpf string, birthDate time.Time, sex Sex,
	photo []byte, now time.Time,
) Person {
	p := Person{
		id:        uuid.New(),
		firstName: firstName,
		lastName:  lastName,
		cpf:       cpf,
		birthDate: dateOnly(birthDate),
		sex:       sex,
		createdAt: now,
		updatedAt: now,
	}

	if len(photo) > 0 {
		p.ReplacePhoto(photo, now)
	}

	return p
}

func RestorePerson(f PersonFields) Person {
	return Person{
		id:        f.ID,
		firstName: f.FirstName,
		lastName:  f.LastName,
		cpf:       f.CPF,
		birthDate: dateOnly(f.BirthDate),
		sex:       f.Sex,
		photo:     f.Photo,
		createdAt: f.CreatedAt,
		updatedAt: f.UpdatedAt,
	}
}

// UpdateCore replaces the identifying attributes. The photo is untouched.
func (p *Person) UpdateCore(firstName, lastName, cpf string, birthDate time.Time, sex Sex, now time.Time) {
	p.firstName = firstName
	p.lastName = lastName
	p.cpf = cpf
	p.birthDate = dateOnly(birthDate)
	p.sex = sex
	p.updatedAt = now
}

// ReplacePhoto sets the current photo and stages a new active history
// entry. The staged entry is written together with the person.
func (p *Person) ReplacePhoto(photo []byte, now time.Time) {
	p.photo = bytes.Clone(photo)
	p.updatedAt = now
	p.pendingPhoto = &PhotoHistoryEntry{
		ID:        uuid.New(),
		PersonID:  p.id,
		Photo:     p.photo,
		ChangedAt: now,
		Active:    true,
	}
}

// PendingPhoto returns the history entry staged by ReplacePhoto, if any.
func (p Person) PendingPhoto() (PhotoHistoryEntry, bool) {
	if p.pendingPhoto == nil {
		return PhotoHistoryEntry{}, false
	}
	return *p.pendingPhoto, true
}

func (p Person) ID() ID               { return p.id }
func (p Person) FirstName() string    { return p.firstName }
func (p Person) LastName() string     { return p.lastName }
func (p Person) CPF() string          { return p.cpf }
func (p Person) BirthDate() time.Time { return p.birthDate }
func (p Person) Sex() Sex             { return p.sex }
func (p Person) Photo() []byte        { return bytes.Clone(p.photo) }
func (p Person) HasPhoto() bool       { return len(p.photo) > 0 }
func (p Person) CreatedAt() time.Time { return p.createdAt }
func (p Person) UpdatedAt() time.Time { return p.updatedAt }

func (p Person) Fields() PersonFields {
	return PersonFields{
		ID:        p.id,
		FirstName: p.firstName,
		LastName:  p.lastName,
		CPF:       p.cpf,
		BirthDate: p.birthDate,
		Sex:       p.sex,
		Photo:     p.photo,
		CreatedAt: p.createdAt,
		UpdatedAt: p.updatedAt,
	}
}

func (p Person) Summary() PersonSummary {
	return PersonSummary{
		ID:        p.id,
		FirstName: p.firstName,
		LastName:  p.lastName,
		CPF:       p.cpf,
		BirthDate: Date(p.birthDate),
		Sex:       p.sex,
		HasPhoto:  p.HasPhoto(),
	}
}

// PersonSummary is the listing view of a person, without photo bytes.
type PersonSummary struct {
	ID        ID     `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CPF       string `json:"cpf"`
	BirthDate Date   `json:"birthDate"`
	Sex       Sex    `json:"sex"`
	HasPhoto  bool   `json:"hasPhoto"`
}

type PhotoHistoryEntry struct {
	ID        ID        `json:"id" db:"id"`
	PersonID  ID        `json:"personId" db:"person_id"`
	Photo     []byte    `json:"photo,omitempty" db:"photo"`
	ChangedAt time.Time `json:"changedAt" db:"changed_at"`
	Active    bool      `json:"active" db:"is_active"`
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
