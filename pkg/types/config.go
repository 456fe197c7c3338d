package types

// ClientConfig holds settings for the RNA search client.
type ClientConfig struct {
	// BaseURL is the full-text search endpoint; the query is appended as a path segment.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// UserAgent is the User-Agent header sent with each request (e.g. "rna/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default warn).
	Level string `json:"level" yaml:"level"`

	// File is the log file path. Empty means stderr.
	File string `json:"file" yaml:"file"`

	// MaxSize is the maximum log file size in MB before rotation (default 10).
	MaxSize int `json:"max_size" yaml:"max_size"`

	// MaxFiles is the number of rotated files to keep (default 5).
	MaxFiles int `json:"max_files" yaml:"max_files"`
}

// ArchiveConfig holds settings for the local association archive.
type ArchiveConfig struct {
	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default number of rows returned by a listing (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
