// Package domain holds the records persisted by the store.
package domain

// VideoRecord is a row of youtube_videos.
//
// Timestamp and Duration are opaque integers; their unit and epoch are not
// defined by the schema and are passed through untouched.
type VideoRecord struct {
	ID        int64  `db:"id" json:"id"`
	VID       string `db:"vid" json:"vid"`
	Timestamp int64  `db:"ts" json:"ts"`
	Duration  int64  `db:"duration" json:"duration"`
	Title     string `db:"title" json:"title"`
}

// LocalSongRecord is a row of local_songs.
type LocalSongRecord struct {
	ID        int64  `db:"id" json:"id"`
	Timestamp int64  `db:"ts" json:"ts"`
	Title     string `db:"title" json:"title"`
	Artist    string `db:"artist" json:"artist"`
	Album     string `db:"album" json:"album"`
}
