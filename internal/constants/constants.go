// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultAddress         = "localhost"
	DefaultPort            = "50006"
	DefaultDBPath          = "videos.db"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultBusyTimeout     = 30 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// Database
const (
	YoutubeVideosTable = "youtube_videos"
	LocalSongsTable    = "local_songs"
)
