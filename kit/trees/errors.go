package trees

import (
	"errors"
	"fmt"
)

// Per-entry failure kinds. A node carrying one of these was listed but its
// contents could not be used; siblings are unaffected.
var (
	ErrDecode        = errors.New("content is not valid text")
	ErrPermission    = errors.New("permission denied")
	ErrRead          = errors.New("read failed")
	ErrTooLarge      = errors.New("file exceeds size limit")
	ErrNotRegular    = errors.New("not a regular file")
	ErrNotFollowed   = errors.New("symbolic link not followed")
	ErrSymlinkCycle  = errors.New("symbolic link cycle")
	ErrUnknownFailed = errors.New("entry failed")
)

var kindNames = []struct {
	name string
	err  error
}{
	{"decode", ErrDecode},
	{"permission", ErrPermission},
	{"read", ErrRead},
	{"too_large", ErrTooLarge},
	{"not_regular", ErrNotRegular},
	{"not_followed", ErrNotFollowed},
	{"symlink_cycle", ErrSymlinkCycle},
}

// EntryError records why a single node could not be fully crawled.
type EntryError struct {
	Kind error // one of the Err* kinds above
	Err  error // underlying cause, may be nil
}

// NewEntryError wraps cause with a failure kind.
func NewEntryError(kind, cause error) *EntryError {
	return &EntryError{Kind: kind, Err: cause}
}

func (e *EntryError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *EntryError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindName returns the stable short name of the failure kind.
func (e *EntryError) KindName() string {
	for _, k := range kindNames {
		if errors.Is(e.Kind, k.err) {
			return k.name
		}
	}
	return "unknown"
}

// KindFromName maps a short kind name back to its sentinel.
func KindFromName(name string) error {
	for _, k := range kindNames {
		if k.name == name {
			return k.err
		}
	}
	return ErrUnknownFailed
}
