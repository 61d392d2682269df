package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/protomem/people-registry/internal/model"
)

type PersonDAO struct {
	Logger *slog.Logger
	*DB
}

func NewPersonDAO(logger *slog.Logger, db *DB) *PersonDAO {
	return &PersonDAO{
		Logger: logger.With("dao", "person"),
		DB:     db,
	}
}

type personRow struct {
	ID        model.ID  `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	CPF       string    `db:"cpf"`
	BirthDate time.Time `db:"birth_date"`
	Sex       model.Sex `db:"sex"`
	Photo     []byte    `db:"photo"`
}

func (row personRow) toModel() model.Person {
	return model.RestorePerson(model.PersonFields{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		CPF:       row.CPF,
		BirthDate: row.BirthDate,
		Sex:       row.Sex,
		Photo:     row.Photo,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	})
}

type personSummaryRow struct {
	ID        model.ID  `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	CPF       string    `db:"cpf"`
	BirthDate time.Time `db:"birth_date"`
	Sex       model.Sex `db:"sex"`
	HasPhoto  bool      `db:"has_photo"`
}

var _personColumns = []string{
	"id", "created_at", "updated_at",
	"first_name", "last_name", "cpf", "birth_date", "sex", "photo",
}

type FindPersonFilter struct {
	Name      *string
	CPF       *string
	BirthDate *time.Time
	Sex       *model.Sex
}

func (dao *PersonDAO) Find(ctx context.Context, filter FindPersonFilter, opts FindOptions) ([]model.PersonSummary, error) {
	logger := dao.Logger.With("query", "find")

	builder := dao.Builder.
		Select("id", "first_name", "last_name", "cpf", "birth_date", "sex", "photo IS NOT NULL AS has_photo").
		From("people")

	equals := squirrel.Eq{}
	if filter.CPF != nil {
		equals["cpf"] = *filter.CPF
	}
	if filter.BirthDate != nil {
		equals["birth_date"] = filter.BirthDate.Format(time.DateOnly)
	}
	if filter.Sex != nil {
		equals["sex"] = *filter.Sex
	}
	if len(equals) > 0 {
		builder = builder.Where(equals)
	}
	if filter.Name != nil {
		// strpos keeps the match case-sensitive and free of LIKE wildcards.
		builder = builder.Where(squirrel.Expr("strpos(first_name, ?) > 0", *filter.Name))
	}

	query, args, err := builder.
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(opts.Limit)).
		Offset(uint64(opts.Offset)).
		ToSql()
	if err != nil {
		return nil, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	rows := make([]personSummaryRow, 0, opts.Limit)
	if err := dao.SelectContext(ctx, &rows, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return nil, fmt.Errorf("find people: %w", err)
	}

	people := make([]model.PersonSummary, 0, len(rows))
	for _, row := range rows {
		people = append(people, model.PersonSummary{
			ID:        row.ID,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			CPF:       row.CPF,
			BirthDate: model.Date(row.BirthDate),
			Sex:       row.Sex,
			HasPhoto:  row.HasPhoto,
		})
	}

	logger.Debug("success query execute", "countPeople", len(people))

	return people, nil
}

func (dao *PersonDAO) Get(ctx context.Context, id model.ID) (model.Person, error) {
	return dao.getWhere(ctx, dao.DB, squirrel.Eq{"id": id})
}

func (dao *PersonDAO) GetByCPF(ctx context.Context, cpf string) (model.Person, error) {
	return dao.getWhere(ctx, dao.DB, squirrel.Eq{"cpf": cpf})
}

func (dao *PersonDAO) getWhere(ctx context.Context, q Querier, where squirrel.Eq) (model.Person, error) {
	logger := dao.Logger.With("query", "get")

	query, args, err := dao.Builder.
		Select(_personColumns...).
		From("people").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Person{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var row personRow
	if err := q.GetContext(ctx, &row, query, args...); err != nil {
		if IsNoRows(err) {
			return model.Person{}, model.NewError("person", model.ErrNotFound)
		}

		logger.Warn("failed query execute", "error", err)
		return model.Person{}, fmt.Errorf("get person: %w", err)
	}

	return row.toModel(), nil
}

// Insert stores a new person together with its staged photo, if any, in one
// transaction.
func (dao *PersonDAO) Insert(ctx context.Context, person model.Person) error {
	logger := dao.Logger.With("query", "insert")

	f := person.Fields()
	query, args, err := dao.Builder.
		Insert("people").
		Columns(_personColumns...).
		Values(f.ID, f.CreatedAt, f.UpdatedAt, f.FirstName, f.LastName, f.CPF, f.BirthDate.Format(time.DateOnly), f.Sex, nullBytes(f.Photo)).
		ToSql()
	if err != nil {
		return err
	}

	logger.Debug("build query", "sql", query, "args", redactPhotoArgs(args))

	err = dao.InTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}

		if entry, ok := person.PendingPhoto(); ok {
			if err := dao.insertPhoto(ctx, tx, entry); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		logger.Warn("failed query execute", "error", err)
		return personWriteError("insert person", err)
	}

	logger.Debug("success query execute", "insertId", f.ID)

	return nil
}

// Update rewrites the person row. When a photo is staged the previously
// active history entry is deactivated and the staged one inserted, all in
// the same transaction.
func (dao *PersonDAO) Update(ctx context.Context, person model.Person) error {
	logger := dao.Logger.With("query", "update")

	f := person.Fields()
	data := map[string]any{
		"updated_at": f.UpdatedAt,
		"first_name": f.FirstName,
		"last_name":  f.LastName,
		"cpf":        f.CPF,
		"birth_date": f.BirthDate.Format(time.DateOnly),
		"sex":        f.Sex,
	}

	entry, hasPhoto := person.PendingPhoto()
	if hasPhoto {
		data["photo"] = entry.Photo
	}

	query, args, err := dao.Builder.
		Update("people").
		SetMap(data).
		Where(squirrel.Eq{"id": f.ID}).
		ToSql()
	if err != nil {
		return err
	}

	logger.Debug("build query", "sql", query, "args", redactPhotoArgs(args))

	err = dao.InTx(ctx, func(tx *sqlx.Tx) error {
		// Updating the person row first locks it, serializing concurrent
		// photo replacements for the same person.
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return model.NewError("person", model.ErrNotFound)
		}

		if !hasPhoto {
			return nil
		}

		if err := dao.deactivatePhotos(ctx, tx, f.ID, entry.ChangedAt); err != nil {
			return err
		}
		return dao.insertPhoto(ctx, tx, entry)
	})
	if err != nil {
		logger.Warn("failed query execute", "error", err)
		return personWriteError("update person", err)
	}

	logger.Debug("success query execute", "updateId", f.ID, "photoReplaced", hasPhoto)

	return nil
}

// personWriteError maps unique index violations raised by person writes
// to ErrExists. A second active photo for one person can only appear when
// two writers race past the row lock, so it is reported as a conflict too.
func personWriteError(op string, err error) error {
	switch {
	case IsConstraintViolation(err, _peopleCPFKey):
		return model.NewError("person", model.ErrExists)
	case IsConstraintViolation(err, _photoHistoryActive):
		return model.NewError("photo", model.ErrExists)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// Delete removes the person and its whole photo history in one transaction.
func (dao *PersonDAO) Delete(ctx context.Context, id model.ID) error {
	logger := dao.Logger.With("query", "delete")

	photosQuery, photosArgs, err := dao.Builder.
		Delete("photo_history").
		Where(squirrel.Eq{"person_id": id}).
		ToSql()
	if err != nil {
		return err
	}

	personQuery, personArgs, err := dao.Builder.
		Delete("people").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	logger.Debug("build query", "sql", []string{photosQuery, personQuery}, "args", personArgs)

	var deletedPhotos int64
	err = dao.InTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, photosQuery, photosArgs...)
		if err != nil {
			return err
		}
		if deletedPhotos, err = res.RowsAffected(); err != nil {
			return err
		}

		res, err = tx.ExecContext(ctx, personQuery, personArgs...)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return model.NewError("person", model.ErrNotFound)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}

		logger.Warn("failed query execute", "error", err)
		return fmt.Errorf("delete person: %w", err)
	}

	logger.Debug("success query execute", "deleteId", id, "countDeletedPhotos", deletedPhotos)

	return nil
}

func nullBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}

// redactPhotoArgs keeps image bytes out of debug logs.
func redactPhotoArgs(args []any) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		if b, ok := arg.([]byte); ok {
			out[i] = fmt.Sprintf("<%d bytes>", len(b))
			continue
		}
		out[i] = arg
	}
	return out
}
