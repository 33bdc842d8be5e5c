// Package crawler walks a project directory into a trees.TreeNode snapshot,
// attaching the magic-comment annotations of every file as its metadata.
//
// A crawl is synchronous and depth first. Failures of individual entries
// (undecodable content, missing permissions, links that loop) are recorded
// on the affected node and never stop the rest of the crawl; only problems
// with the root path itself are returned as errors.
package crawler

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ZanzyTHEbar/lazykit/kit/magic"
	"github.com/ZanzyTHEbar/lazykit/kit/trees"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Crawler builds project trees. It holds only configuration, so one value
// may serve any number of crawls.
type Crawler struct {
	fs             afero.Fs
	logger         zerolog.Logger
	ignoreFile     string
	ignorePatterns []string
	followSymlinks bool
	includeHidden  bool
	attributes     bool
	maxFileSize    int64
}

// New creates a crawler over the OS filesystem that follows symbolic links,
// includes hidden entries and records annotations only.
func New(opts ...Option) *Crawler {
	c := &Crawler{
		fs:             afero.NewOsFs(),
		logger:         zerolog.Nop(),
		followSymlinks: true,
		includeHidden:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Crawl walks path with default settings.
func Crawl(path string) (*trees.TreeNode, error) {
	return New().Crawl(path)
}

// Crawl walks the directory at path and returns its tree. The root node is
// named after the base name of path.
func (c *Crawler) Crawl(path string) (*trees.TreeNode, error) {
	snap, err := c.Snapshot(path)
	if err != nil {
		return nil, err
	}
	return snap.Tree, nil
}

// Snapshot walks the directory at path and returns the tree together with
// crawl statistics.
func (c *Crawler) Snapshot(path string) (*trees.Snapshot, error) {
	start := time.Now()

	if strings.TrimSpace(path) == "" {
		return nil, ErrPathEmpty
	}

	info, err := c.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		if errors.Is(err, syscall.ENOTDIR) {
			return nil, fmt.Errorf("%w: %s", ErrNotADirectory, path)
		}
		return nil, fmt.Errorf("failed to access crawl root %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}

	checker, err := c.loadIgnore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load ignore rules for %s: %w", path, err)
	}

	c.logger.Info().
		Str("root", path).
		Str("operation", "crawl").
		Time("timestamp", start).
		Msg("starting crawl")

	w := &walk{
		crawler: c,
		ignore:  checker,
		stats:   trees.NewStats(),
	}
	root := w.directory(path, ".", rootName(path), []os.FileInfo{info}, 0)

	duration := time.Since(start)
	c.logger.Info().
		Str("root", path).
		Int64("directories", w.stats.Directories).
		Int64("files", w.stats.Files).
		Int64("failures", w.stats.TotalFailures()).
		Dur("duration", duration).
		Msg("crawl complete")

	return trees.NewSnapshot(absPath(path), root, w.stats, start, duration), nil
}

// walk carries the state of a single crawl.
type walk struct {
	crawler *Crawler
	ignore  IgnoreChecker
	stats   *trees.Stats
}

// directory builds the node for the directory at full. ancestors holds the
// resolved info of every directory from the root down to and including this
// one, for symlink cycle detection.
func (w *walk) directory(full, rel, name string, ancestors []os.FileInfo, depth int) *trees.TreeNode {
	node := trees.NewDirectoryNode(name)
	defer func() { w.stats.RecordNode(node, depth) }()

	entries, err := afero.ReadDir(w.crawler.fs, full)
	if err != nil {
		node.Err = classifyIOError(err)
		w.logFailure(rel, node.Err)
		return node
	}

	for _, entry := range entries {
		child := w.entry(full, rel, entry, ancestors, depth+1)
		if child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node
}

// entry builds the node for one directory entry, or nil when it is excluded.
func (w *walk) entry(dir, relDir string, entry os.FileInfo, ancestors []os.FileInfo, depth int) *trees.TreeNode {
	c := w.crawler
	name := entry.Name()
	full := filepath.Join(dir, name)
	rel := joinRel(relDir, name)

	if !c.includeHidden && strings.HasPrefix(name, ".") {
		return nil
	}

	if entry.Mode()&os.ModeSymlink != 0 {
		return w.symlink(full, rel, name, ancestors, depth)
	}
	if w.excluded(rel, entry.IsDir()) {
		return nil
	}
	if entry.IsDir() {
		return w.directory(full, rel, name, append(ancestors[:len(ancestors):len(ancestors)], entry), depth)
	}
	return w.file(full, rel, name, entry, depth)
}

// symlink builds the node for a link. Ignore rules apply to the resolved
// kind, so a "dir/" rule also excludes a link to a directory.
func (w *walk) symlink(full, rel, name string, ancestors []os.FileInfo, depth int) *trees.TreeNode {
	c := w.crawler

	target, statErr := c.fs.Stat(full)
	isDir := statErr == nil && target.IsDir()
	if w.excluded(rel, isDir) {
		return nil
	}

	if !c.followSymlinks {
		var node *trees.TreeNode
		if isDir {
			node = trees.NewDirectoryNode(name)
		} else {
			node = trees.NewFileNode(name, nil)
		}
		node.Err = trees.NewEntryError(ErrNotFollowed, nil)
		w.record(rel, node, depth)
		return node
	}

	if statErr != nil {
		node := trees.NewFileNode(name, nil)
		node.Err = classifyIOError(statErr)
		w.record(rel, node, depth)
		return node
	}
	if !isDir {
		return w.file(full, rel, name, target, depth)
	}

	for _, ancestor := range ancestors {
		if os.SameFile(ancestor, target) {
			node := trees.NewDirectoryNode(name)
			node.Err = trees.NewEntryError(ErrSymlinkCycle, fmt.Errorf("%s points back to an ancestor directory", rel))
			w.record(rel, node, depth)
			return node
		}
	}
	return w.directory(full, rel, name, append(ancestors[:len(ancestors):len(ancestors)], target), depth)
}

func (w *walk) excluded(rel string, isDir bool) bool {
	if !ignored(w.ignore, rel, isDir) {
		return false
	}
	w.crawler.logger.Debug().Str("path", rel).Msg("ignored")
	return true
}

// file builds a file node from the annotations in its content.
func (w *walk) file(full, rel, name string, info os.FileInfo, depth int) *trees.TreeNode {
	c := w.crawler
	node := trees.NewFileNode(name, nil)
	defer w.record(rel, node, depth)

	if !info.Mode().IsRegular() {
		node.Err = trees.NewEntryError(ErrNotRegular, fmt.Errorf("mode %s", info.Mode().Type()))
		return node
	}
	if c.maxFileSize > 0 && info.Size() > c.maxFileSize {
		node.Err = trees.NewEntryError(ErrTooLarge, fmt.Errorf("%d bytes, limit %d", info.Size(), c.maxFileSize))
		return node
	}

	text, entryErr := w.readText(full)
	if entryErr != nil {
		node.Err = entryErr
		return node
	}

	node.Metadata = magic.Extract(text)
	w.stats.Annotations += int64(len(node.Metadata))
	c.logger.Debug().
		Str("path", rel).
		Int("annotations", len(node.Metadata)).
		Msg("extracted annotations")

	if c.attributes {
		trees.MergeAttributes(node.Metadata, trees.FileAttributes(info))
	}
	return node
}

// readText reads and decodes a whole file. The handle is released before
// returning whether or not the read succeeded.
func (w *walk) readText(full string) (string, *trees.EntryError) {
	f, err := w.crawler.fs.Open(full)
	if err != nil {
		return "", classifyIOError(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	w.stats.BytesRead += int64(len(data))
	if err != nil {
		return "", classifyIOError(err)
	}

	text, err := decodeText(data)
	if err != nil {
		return "", trees.NewEntryError(ErrDecode, err)
	}
	return text, nil
}

func (w *walk) record(rel string, node *trees.TreeNode, depth int) {
	w.stats.RecordNode(node, depth)
	if node.Err != nil {
		w.logFailure(rel, node.Err)
	}
}

func (w *walk) logFailure(rel string, err *trees.EntryError) {
	w.crawler.logger.Warn().
		Err(err).
		Str("path", rel).
		Str("kind", err.KindName()).
		Msg("entry could not be crawled")
}

func joinRel(dir, name string) string {
	if dir == "." {
		return name
	}
	return dir + "/" + name
}

// rootName is the base name of path, resolving "." and similar through the
// absolute path.
func rootName(path string) string {
	name := filepath.Base(filepath.Clean(path))
	if name == "." || name == string(filepath.Separator) {
		if abs, err := filepath.Abs(path); err == nil && filepath.Base(abs) != string(filepath.Separator) {
			return filepath.Base(abs)
		}
	}
	return name
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
