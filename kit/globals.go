package kit

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var (
	// DefaultAppName is used for the config directory and env prefix
	DefaultAppName    = "lazykit"
	DefaultEnvPrefix  = "LAZYKIT"
	DefaultConfigPath = filepath.Join(getHomeDir(), ".config", DefaultAppName)

	// Crawl defaults
	DefaultIgnoreFile        = ".kitignore"
	DefaultMaxFileSize int64 = 10 << 20

	DefaultOutputFormat = "json"
	DefaultLogLevel     = "warn"

	Version = "0.1.0"
)

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			log.Printf("Unable to get home or working directory, using /tmp: %v", err)
			return "/tmp"
		}
		log.Printf("Unable to get home directory, using current working directory: %v", err)
		return cwd
	}
	return homeDir
}

// GetLogger returns a properly configured zerolog logger instance
func GetLogger(level zerolog.Level) zerolog.Logger {
	return NewLogger(os.Stderr, level)
}

// NewLogger builds a timestamped logger writing to w.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
