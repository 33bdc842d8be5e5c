package crawler

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreChecker reports whether a root-relative slash path is excluded.
type IgnoreChecker interface {
	MatchesPath(f string) bool
}

// loadIgnore compiles the configured patterns plus the ignore file found in
// root. It returns nil when there are no rules.
func (c *Crawler) loadIgnore(root string) (IgnoreChecker, error) {
	lines := append([]string(nil), c.ignorePatterns...)

	if c.ignoreFile != "" {
		ignorePath := filepath.Join(root, c.ignoreFile)
		data, err := afero.ReadFile(c.fs, ignorePath)
		switch {
		case err == nil:
			scanner := bufio.NewScanner(bytes.NewReader(data))
			for scanner.Scan() {
				lines = append(lines, scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("error reading %s: %w", ignorePath, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("error reading %s: %w", ignorePath, err)
		}
	}

	if len(lines) == 0 {
		return nil, nil
	}
	return ignore.CompileIgnoreLines(lines...), nil
}

// ignored reports whether rel is excluded. Directories are also tested with
// a trailing slash so that "dir/" rules apply to the directory itself.
func ignored(checker IgnoreChecker, rel string, isDir bool) bool {
	if checker == nil {
		return false
	}
	if checker.MatchesPath(rel) {
		return true
	}
	return isDir && checker.MatchesPath(rel+"/")
}
