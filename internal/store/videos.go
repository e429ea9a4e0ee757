package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/museun/dono-server/internal/constants"
	"github.com/museun/dono-server/internal/domain"
)

// InsertVideo stores v and sets v.ID to the id assigned by the store.
func (db *DB) InsertVideo(ctx context.Context, v *domain.VideoRecord) error {
	query := `INSERT INTO youtube_videos (vid, ts, duration, title)
		VALUES (:vid, :ts, :duration, :title) RETURNING id`

	id, err := db.insertReturningID(ctx, query, v)
	if err != nil {
		return storageErr("insert", constants.YoutubeVideosTable, err)
	}
	v.ID = id
	return nil
}

func (db *DB) GetVideo(ctx context.Context, id int64) (*domain.VideoRecord, error) {
	query := `SELECT id, vid, ts, duration, title FROM youtube_videos WHERE id = ?`

	var v domain.VideoRecord
	if err := db.GetContext(ctx, &v, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storageErr("get", constants.YoutubeVideosTable, ErrNotFound)
		}
		return nil, storageErr("get", constants.YoutubeVideosTable, err)
	}
	return &v, nil
}

func (db *DB) insertReturningID(ctx context.Context, query string, arg interface{}) (int64, error) {
	rows, err := db.NamedQueryContext(ctx, query, arg)
	if err != nil {
		return 0, err
	}
	defer rows.Close() //nolint:errcheck // deferred cleanup

	var id int64
	if rows.Next() {
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to scan id: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating returning rows: %w", err)
	}
	if id == 0 {
		return 0, errors.New("insert returned no id")
	}
	return id, nil
}
