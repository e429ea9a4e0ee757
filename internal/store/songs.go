package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/museun/dono-server/internal/constants"
	"github.com/museun/dono-server/internal/domain"
)

// InsertLocalSong stores s and sets s.ID to the id assigned by the store.
func (db *DB) InsertLocalSong(ctx context.Context, s *domain.LocalSongRecord) error {
	query := `INSERT INTO local_songs (ts, title, artist, album)
		VALUES (:ts, :title, :artist, :album) RETURNING id`

	id, err := db.insertReturningID(ctx, query, s)
	if err != nil {
		return storageErr("insert", constants.LocalSongsTable, err)
	}
	s.ID = id
	return nil
}

func (db *DB) GetLocalSong(ctx context.Context, id int64) (*domain.LocalSongRecord, error) {
	query := `SELECT id, ts, title, artist, album FROM local_songs WHERE id = ?`

	var s domain.LocalSongRecord
	if err := db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storageErr("get", constants.LocalSongsTable, ErrNotFound)
		}
		return nil, storageErr("get", constants.LocalSongsTable, err)
	}
	return &s, nil
}
