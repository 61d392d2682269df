package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/protomem/people-registry/internal/model"
)

func (dao *PersonDAO) insertPhoto(ctx context.Context, q Querier, entry model.PhotoHistoryEntry) error {
	query, args, err := dao.Builder.
		Insert("photo_history").
		Columns("id", "person_id", "photo", "changed_at", "is_active").
		Values(entry.ID, entry.PersonID, entry.Photo, entry.ChangedAt, entry.Active).
		ToSql()
	if err != nil {
		return err
	}

	dao.Logger.Debug("build query", "query", "insertPhoto", "sql", query, "args", redactPhotoArgs(args))

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert photo history entry: %w", err)
	}

	return nil
}

func (dao *PersonDAO) deactivatePhotos(ctx context.Context, q Querier, personID model.ID, at time.Time) error {
	query, args, err := dao.Builder.
		Update("photo_history").
		SetMap(map[string]any{
			"is_active":  false,
			"changed_at": at,
		}).
		Where(squirrel.Eq{"person_id": personID, "is_active": true}).
		ToSql()
	if err != nil {
		return err
	}

	dao.Logger.Debug("build query", "query", "deactivatePhotos", "sql", query, "args", args)

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deactivate photo history: %w", err)
	}

	return nil
}

func (dao *PersonDAO) ActivePhoto(ctx context.Context, personID model.ID) (model.PhotoHistoryEntry, error) {
	logger := dao.Logger.With("query", "activePhoto")

	query, args, err := dao.Builder.
		Select("id", "person_id", "photo", "changed_at", "is_active").
		From("photo_history").
		Where(squirrel.Eq{"person_id": personID, "is_active": true}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.PhotoHistoryEntry{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var entry model.PhotoHistoryEntry
	if err := dao.GetContext(ctx, &entry, query, args...); err != nil {
		if IsNoRows(err) {
			return model.PhotoHistoryEntry{}, model.NewError("photo", model.ErrNotFound)
		}

		logger.Warn("failed query execute", "error", err)
		return model.PhotoHistoryEntry{}, fmt.Errorf("get active photo: %w", err)
	}

	return entry, nil
}

// PhotoHistory lists every entry of a person, newest first, without the
// image bytes.
func (dao *PersonDAO) PhotoHistory(ctx context.Context, personID model.ID) ([]model.PhotoHistoryEntry, error) {
	logger := dao.Logger.With("query", "photoHistory")

	query, args, err := dao.Builder.
		Select("id", "person_id", "changed_at", "is_active").
		From("photo_history").
		Where(squirrel.Eq{"person_id": personID}).
		OrderBy("is_active DESC", "changed_at DESC", "id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	entries := []model.PhotoHistoryEntry{}
	if err := dao.SelectContext(ctx, &entries, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return nil, fmt.Errorf("list photo history: %w", err)
	}

	logger.Debug("success query execute", "countEntries", len(entries))

	return entries, nil
}
