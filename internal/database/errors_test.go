package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/protomem/people-registry/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPersonWriteError(t *testing.T) {
	unique := func(constraint string) error {
		return fmt.Errorf("exec: %w", &pgconn.PgError{
			Code:           pgerrcode.UniqueViolation,
			ConstraintName: constraint,
		})
	}

	tests := []struct {
		name       string
		err        error
		wantExists bool
		wantMsg    string
	}{
		{name: "cpf taken", err: unique(_peopleCPFKey), wantExists: true, wantMsg: "person: already exists"},
		{name: "second active photo", err: unique(_photoHistoryActive), wantExists: true, wantMsg: "photo: already exists"},
		{name: "other constraint", err: unique("people_pkey"), wantMsg: "update person: exec: "},
		{name: "not found", err: model.NewError("person", model.ErrNotFound), wantMsg: "update person: person: not found"},
		{name: "plain error", err: errors.New("boom"), wantMsg: "update person: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := personWriteError("update person", tt.err)

			assert.Equal(t, tt.wantExists, errors.Is(got, model.ErrExists))
			assert.Contains(t, got.Error(), tt.wantMsg)
		})
	}
}

func TestPersonWriteError_KeepsNotFound(t *testing.T) {
	got := personWriteError("update person", model.NewError("person", model.ErrNotFound))
	assert.ErrorIs(t, got, model.ErrNotFound)
}
