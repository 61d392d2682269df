package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/protomem/people-registry/internal/model"
)

type UserDAO struct {
	Logger *slog.Logger
	*DB
}

func NewUserDAO(logger *slog.Logger, db *DB) *UserDAO {
	return &UserDAO{
		Logger: logger.With("dao", "user"),
		DB:     db,
	}
}

var _userColumns = []string{"id", "created_at", "updated_at", "username", "password_hash", "role"}

type FindUserFilter struct {
	Username *string
	Role     *model.Role
}

func (dao *UserDAO) Find(ctx context.Context, filter FindUserFilter, opts FindOptions) ([]model.User, error) {
	logger := dao.Logger.With("query", "find")

	builder := dao.Builder.
		Select(_userColumns...).
		From("users")

	if filter.Role != nil {
		builder = builder.Where(squirrel.Eq{"role": *filter.Role})
	}
	if filter.Username != nil {
		builder = builder.Where(squirrel.Expr("strpos(username, ?) > 0", *filter.Username))
	}

	query, args, err := builder.
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(opts.Limit)).
		Offset(uint64(opts.Offset)).
		ToSql()
	if err != nil {
		return []model.User{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	users := make([]model.User, 0, opts.Limit)
	if err := dao.SelectContext(ctx, &users, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)

		return []model.User{}, fmt.Errorf("find users: %w", err)
	}

	logger.Debug("success query execute", "countUsers", len(users))

	return users, nil
}

func (dao *UserDAO) Count(ctx context.Context) (int, error) {
	query, args, err := dao.Builder.
		Select("count(*)").
		From("users").
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := dao.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}

func (dao *UserDAO) Get(ctx context.Context, id model.ID) (model.User, error) {
	return dao.getWhere(ctx, squirrel.Eq{"id": id})
}

func (dao *UserDAO) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return dao.getWhere(ctx, squirrel.Eq{"username": username})
}

func (dao *UserDAO) getWhere(ctx context.Context, where squirrel.Eq) (model.User, error) {
	logger := dao.Logger.With("query", "get")

	query, args, err := dao.Builder.
		Select(_userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var user model.User
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&user); err != nil {
		if IsNoRows(err) {
			return model.User{}, model.NewError("user", model.ErrNotFound)
		}

		logger.Warn("failed query execute", "error", err)
		return model.User{}, fmt.Errorf("get user: %w", err)
	}

	logger.Debug("success query execute", "userId", user.ID)

	return user, nil
}

func (dao *UserDAO) Insert(ctx context.Context, user model.User) error {
	logger := dao.Logger.With("query", "insert")

	query, args, err := dao.Builder.
		Insert("users").
		Columns(_userColumns...).
		Values(user.ID, user.CreatedAt, user.UpdatedAt, user.Username, user.PasswordHash, user.Role).
		ToSql()
	if err != nil {
		return err
	}

	logger.Debug("build query", "sql", query)

	if _, err := dao.ExecContext(ctx, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)

		if IsConstraintViolation(err, _usersUsernameKey) {
			return model.NewError("user", model.ErrExists)
		}

		return fmt.Errorf("insert user: %w", err)
	}

	logger.Debug("success query execute", "insertId", user.ID)

	return nil
}

func (dao *UserDAO) Update(ctx context.Context, user model.User) error {
	logger := dao.Logger.With("query", "update")

	query, args, err := dao.Builder.
		Update("users").
		SetMap(map[string]any{
			"updated_at":    user.UpdatedAt,
			"username":      user.Username,
			"password_hash": user.PasswordHash,
			"role":          user.Role,
		}).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return err
	}

	logger.Debug("build query", "sql", query)

	res, err := dao.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Warn("failed query execute", "error", err)

		if IsConstraintViolation(err, _usersUsernameKey) {
			return model.NewError("user", model.ErrExists)
		}

		return fmt.Errorf("update user: %w", err)
	}

	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("update user: %w", err)
	} else if n == 0 {
		return model.NewError("user", model.ErrNotFound)
	}

	logger.Debug("success query execute", "updateId", user.ID)

	return nil
}

func (dao *UserDAO) Delete(ctx context.Context, id model.ID) error {
	logger := dao.Logger.With("query", "delete")

	query, args, err := dao.Builder.
		Delete("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	logger.Debug("build query", "sql", query, "args", args)

	res, err := dao.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Warn("failed query execute", "error", err)

		return fmt.Errorf("delete user: %w", err)
	}

	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("delete user: %w", err)
	} else if n == 0 {
		return model.NewError("user", model.ErrNotFound)
	}

	logger.Debug("success query execute", "deleteId", id)

	return nil
}
