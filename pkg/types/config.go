// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultOutput is the report path used when no destination is given.
const DefaultOutput = "speaker_notes.txt"

// ExtractConfig holds settings for the extract command.
type ExtractConfig struct {
	// Output is the report path used when the command is given no
	// destination argument (default "speaker_notes.txt").
	Output string `json:"output" yaml:"output"`
}

// HistoryConfig holds settings for the run history database.
type HistoryConfig struct {
	// Enabled turns on recording of extraction runs. Off by default so a
	// plain run leaves nothing on disk besides the report.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database file
	// (default ~/.local/state/speaker-notes/history.db).
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default number of runs listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zerolog level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level"`
}

// Config groups all configuration sections.
type Config struct {
	Extract ExtractConfig `json:"extract" yaml:"extract"`
	History HistoryConfig `json:"history" yaml:"history"`
	Log     LogConfig     `json:"log" yaml:"log"`
}
