package trees

import (
	"errors"
	"io/fs"
	"maps"
	"slices"
	"strings"
)

// WalkFunc is called for every node visited by Walk. p is the slash
// separated path relative to the walked node, "." for the node itself.
// Returning fs.SkipDir from a directory skips its children.
type WalkFunc func(p string, node *TreeNode) error

// Walk visits n and its descendants depth first, parents before children.
func (n *TreeNode) Walk(fn WalkFunc) error {
	err := n.walk(".", fn)
	if errors.Is(err, fs.SkipDir) {
		return nil
	}
	return err
}

func (n *TreeNode) walk(p string, fn WalkFunc) error {
	if err := fn(p, n); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := child.walk(joinPath(p, child.Name), fn); err != nil {
			if errors.Is(err, fs.SkipDir) && child.IsDirectory() {
				continue
			}
			return err
		}
	}
	return nil
}

// Flatten collects the relative paths of all descendants of n in walk
// order. n itself is not included.
func (n *TreeNode) Flatten() []string {
	var paths []string
	_ = n.Walk(func(p string, _ *TreeNode) error {
		if p != "." {
			paths = append(paths, p)
		}
		return nil
	})
	return paths
}

// Failures returns the nodes carrying a per-entry error keyed by relative
// path.
func (n *TreeNode) Failures() map[string]*EntryError {
	out := make(map[string]*EntryError)
	_ = n.Walk(func(p string, node *TreeNode) error {
		if node.Err != nil {
			out[p] = node.Err
		}
		return nil
	})
	return out
}

// String renders the tree the way the tree(1) command does, with file
// metadata inline.
func (n *TreeNode) String() string {
	var b strings.Builder
	b.WriteString(n.label())
	b.WriteByte('\n')
	n.render(&b, "")
	return b.String()
}

func (n *TreeNode) render(b *strings.Builder, prefix string) {
	for i, child := range n.Children {
		last := i == len(n.Children)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		b.WriteString(prefix)
		b.WriteString(branch)
		b.WriteString(child.label())
		b.WriteByte('\n')
		child.render(b, prefix+indent)
	}
}

func (n *TreeNode) label() string {
	var b strings.Builder
	b.WriteString(n.Name)
	if n.IsDirectory() {
		b.WriteByte('/')
	}
	if len(n.Metadata) > 0 {
		b.WriteString("  {")
		for i, k := range slices.Sorted(maps.Keys(n.Metadata)) {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(n.Metadata[k])
		}
		b.WriteByte('}')
	}
	if n.Err != nil {
		b.WriteString("  [")
		b.WriteString(n.Err.Error())
		b.WriteByte(']')
	}
	return b.String()
}

func joinPath(dir, name string) string {
	if dir == "." || dir == "" {
		return name
	}
	return dir + "/" + name
}
