package crawler

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Option allows for customization of a Crawler
type Option func(*Crawler)

// WithLogger sets a custom logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// WithFs crawls fs instead of the operating system filesystem.
func WithFs(fs afero.Fs) Option {
	return func(c *Crawler) {
		if fs != nil {
			c.fs = fs
		}
	}
}

// WithIgnoreFile loads gitignore style rules from the named file in the
// crawl root, when it exists.
func WithIgnoreFile(name string) Option {
	return func(c *Crawler) {
		c.ignoreFile = name
	}
}

// WithIgnorePatterns adds gitignore style rules applied to paths relative
// to the crawl root.
func WithIgnorePatterns(patterns ...string) Option {
	return func(c *Crawler) {
		c.ignorePatterns = append(c.ignorePatterns, patterns...)
	}
}

// WithFollowSymlinks controls whether symbolic links are resolved. Links to
// directories that would loop back onto an ancestor are never descended.
func WithFollowSymlinks(follow bool) Option {
	return func(c *Crawler) {
		c.followSymlinks = follow
	}
}

// WithHidden controls whether dot entries are crawled.
func WithHidden(include bool) Option {
	return func(c *Crawler) {
		c.includeHidden = include
	}
}

// WithAttributes augments file metadata with size, mode, modification time
// and type attributes. Annotations keep precedence on key clashes.
func WithAttributes(enabled bool) Option {
	return func(c *Crawler) {
		c.attributes = enabled
	}
}

// WithMaxFileSize skips reading files larger than limit bytes. Zero or a
// negative limit disables the check.
func WithMaxFileSize(limit int64) Option {
	return func(c *Crawler) {
		c.maxFileSize = limit
	}
}
