package crawler

import (
	"errors"
	"io/fs"

	"github.com/ZanzyTHEbar/lazykit/kit/trees"
)

// Crawl root errors. These fail the whole call.
var (
	ErrPathEmpty     = errors.New("path cannot be empty")
	ErrNotFound      = errors.New("crawl root does not exist")
	ErrNotADirectory = errors.New("crawl root is not a directory")
)

// Per-entry errors, recorded on the failing node.
var (
	ErrDecode       = trees.ErrDecode
	ErrPermission   = trees.ErrPermission
	ErrRead         = trees.ErrRead
	ErrTooLarge     = trees.ErrTooLarge
	ErrNotRegular   = trees.ErrNotRegular
	ErrNotFollowed  = trees.ErrNotFollowed
	ErrSymlinkCycle = trees.ErrSymlinkCycle
)

// classifyIOError maps a filesystem error to a per-entry failure.
func classifyIOError(err error) *trees.EntryError {
	if errors.Is(err, fs.ErrPermission) {
		return trees.NewEntryError(ErrPermission, err)
	}
	return trees.NewEntryError(ErrRead, err)
}
