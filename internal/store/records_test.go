package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/museun/dono-server/internal/constants"
	"github.com/museun/dono-server/internal/domain"
)

func TestInsertVideo_FreshTable(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	v := &domain.VideoRecord{VID: "abc123", Timestamp: 1700000000, Duration: 212, Title: "Song A"}
	require.NoError(t, db.InsertVideo(ctx, v))
	assert.Equal(t, int64(1), v.ID)

	got, err := db.GetVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, &domain.VideoRecord{
		ID:        1,
		VID:       "abc123",
		Timestamp: 1700000000,
		Duration:  212,
		Title:     "Song A",
	}, got)
}

func TestInsertLocalSong_FreshTable(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	s := &domain.LocalSongRecord{Timestamp: 1700000001, Title: "Song B", Artist: "Artist X", Album: "Album Y"}
	require.NoError(t, db.InsertLocalSong(ctx, s))
	assert.Equal(t, int64(1), s.ID)

	got, err := db.GetLocalSong(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, &domain.LocalSongRecord{
		ID:        1,
		Timestamp: 1700000001,
		Title:     "Song B",
		Artist:    "Artist X",
		Album:     "Album Y",
	}, got)
}

func TestInsertVideo_DuplicatesGetDistinctIDs(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := &domain.VideoRecord{VID: "dup", Timestamp: 10, Duration: 20, Title: "same"}
	second := *first
	require.NoError(t, db.InsertVideo(ctx, first))
	require.NoError(t, db.InsertVideo(ctx, &second))

	assert.Greater(t, second.ID, first.ID)
	assert.Equal(t, 2, countRows(t, db, constants.YoutubeVideosTable))
}

func TestInsertVideo_IDsNeverReused(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, db.InsertVideo(ctx, &domain.VideoRecord{VID: "v", Title: "t"}))
	}
	_, err := db.Exec("DELETE FROM youtube_videos WHERE id = 2")
	require.NoError(t, err)

	v := &domain.VideoRecord{VID: "v", Title: "t"}
	require.NoError(t, db.InsertVideo(ctx, v))
	assert.Equal(t, int64(3), v.ID)
}

func TestEnsureSchema_IDsNeverReusedAfterBootstrap(t *testing.T) {
	db := openRaw(t)
	ctx := context.Background()

	// a pre-existing table without AUTOINCREMENT would let SQLite reuse ids
	_, err := db.Exec(`CREATE TABLE youtube_videos (id INTEGER PRIMARY KEY UNIQUE NOT NULL, vid TEXT NOT NULL, ts INTEGER NOT NULL, duration INTEGER NOT NULL, title TEXT NOT NULL)`)
	require.NoError(t, err)

	err = db.EnsureSchema(ctx)
	require.ErrorIs(t, err, ErrSchemaDrift)
	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, constants.YoutubeVideosTable, se.Table)
}

func TestInsert_OpaqueIntegersAndEmptyText(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// not-null is the only constraint; empty strings and negative values pass through
	v := &domain.VideoRecord{VID: "", Timestamp: -1, Duration: 1 << 40, Title: ""}
	require.NoError(t, db.InsertVideo(ctx, v))

	got, err := db.GetVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestNotNull_YoutubeVideos(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		missing string
		query   string
	}{
		{"vid", `INSERT INTO youtube_videos (ts, duration, title) VALUES (1, 2, 't')`},
		{"ts", `INSERT INTO youtube_videos (vid, duration, title) VALUES ('v', 2, 't')`},
		{"duration", `INSERT INTO youtube_videos (vid, ts, title) VALUES ('v', 1, 't')`},
		{"title", `INSERT INTO youtube_videos (vid, ts, duration) VALUES ('v', 1, 2)`},
		{"explicit null", `INSERT INTO youtube_videos (vid, ts, duration, title) VALUES (NULL, 1, 2, 't')`},
	}

	for _, tt := range tests {
		t.Run(tt.missing, func(t *testing.T) {
			_, err := db.Exec(tt.query)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "NOT NULL")
		})
	}

	assert.Zero(t, countRows(t, db, constants.YoutubeVideosTable))
}

func TestNotNull_LocalSongs(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		missing string
		query   string
	}{
		{"ts", `INSERT INTO local_songs (title, artist, album) VALUES ('t', 'a', 'b')`},
		{"title", `INSERT INTO local_songs (ts, artist, album) VALUES (1, 'a', 'b')`},
		{"artist", `INSERT INTO local_songs (ts, title, album) VALUES (1, 't', 'b')`},
		{"album", `INSERT INTO local_songs (ts, title, artist) VALUES (1, 't', 'a')`},
	}

	for _, tt := range tests {
		t.Run(tt.missing, func(t *testing.T) {
			_, err := db.Exec(tt.query)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "NOT NULL")
		})
	}

	assert.Zero(t, countRows(t, db, constants.LocalSongsTable))
}

func TestTablesAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.InsertLocalSong(ctx, &domain.LocalSongRecord{Timestamp: 1, Title: "t", Artist: "a", Album: "b"}))
	assert.Zero(t, countRows(t, db, constants.YoutubeVideosTable))

	require.NoError(t, db.InsertVideo(ctx, &domain.VideoRecord{VID: "v", Timestamp: 1, Duration: 1, Title: "t"}))
	assert.Equal(t, 1, countRows(t, db, constants.LocalSongsTable))
	assert.Equal(t, 1, countRows(t, db, constants.YoutubeVideosTable))
}

func TestGet_NotFound(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.GetVideo(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, constants.YoutubeVideosTable, se.Table)

	_, err = db.GetLocalSong(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, constants.LocalSongsTable, se.Table)
}

func TestInsert_ClosedStore(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.Close())

	err := db.InsertVideo(ctx, &domain.VideoRecord{VID: "v", Title: "t"})
	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "insert", se.Op)
	assert.Equal(t, constants.YoutubeVideosTable, se.Table)

	err = db.InsertLocalSong(ctx, &domain.LocalSongRecord{Title: "t", Artist: "a", Album: "b"})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, constants.LocalSongsTable, se.Table)

	_, err = db.GetLocalSong(ctx, 1)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "get", se.Op)
}
