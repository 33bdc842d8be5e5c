package trees

import (
	"errors"
	"fmt"
	"maps"
	"path"
	"strings"
)

type NodeType int

const (
	Directory NodeType = iota
	File
)

// Convert NodeType to String
func (n NodeType) String() string {
	switch n {
	case Directory:
		return "directory"
	case File:
		return "file"
	default:
		return "unknown"
	}
}

// Map string to NodeType
func StringToNodeType(s string) NodeType {
	switch s {
	case "directory":
		return Directory
	case "file":
		return File
	default:
		return -1
	}
}

func (n NodeType) MarshalText() ([]byte, error) {
	if n != Directory && n != File {
		return nil, fmt.Errorf("invalid node type: %d", int(n))
	}
	return []byte(n.String()), nil
}

func (n *NodeType) UnmarshalText(text []byte) error {
	t := StringToNodeType(string(text))
	if t < 0 {
		return fmt.Errorf("invalid node type: %q", text)
	}
	*n = t
	return nil
}

// TreeNode is one filesystem entry of a crawl snapshot.
//
// Directories carry a non-nil Children slice and nil Metadata; files carry
// a non-nil Metadata map and nil Children. Err is set when the entry was
// listed but could not be fully read.
type TreeNode struct {
	Name     string
	Type     NodeType
	Children []*TreeNode
	Metadata map[string]string
	Err      *EntryError
}

// NewDirectoryNode creates an empty directory node.
func NewDirectoryNode(name string) *TreeNode {
	return &TreeNode{
		Name:     name,
		Type:     Directory,
		Children: []*TreeNode{},
	}
}

// NewFileNode creates a file node owning metadata. A nil map is replaced
// with an empty one.
func NewFileNode(name string, metadata map[string]string) *TreeNode {
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &TreeNode{
		Name:     name,
		Type:     File,
		Metadata: metadata,
	}
}

// IsDirectory reports whether the node is a directory.
func (n *TreeNode) IsDirectory() bool {
	return n.Type == Directory
}

// Failed reports whether the node carries a per-entry error.
func (n *TreeNode) Failed() bool {
	return n.Err != nil
}

// AddChild appends child to a directory node.
func (n *TreeNode) AddChild(child *TreeNode) error {
	if !n.IsDirectory() {
		return fmt.Errorf("cannot add %q to file node %q", child.Name, n.Name)
	}
	n.Children = append(n.Children, child)
	return nil
}

// Child returns the direct child with the given name.
func (n *TreeNode) Child(name string) (*TreeNode, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Find resolves a slash separated path relative to n. "." and "" resolve
// to n itself.
func (n *TreeNode) Find(p string) (*TreeNode, bool) {
	current := n
	for _, segment := range splitPathSegments(p) {
		next, ok := current.Child(segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Validate checks the kind invariants of n and all of its descendants.
func (n *TreeNode) Validate() error {
	var errs []error
	_ = n.Walk(func(p string, node *TreeNode) error {
		if err := node.validateSelf(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
		}
		return nil
	})
	return errors.Join(errs...)
}

func (n *TreeNode) validateSelf() error {
	if n.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	switch n.Type {
	case Directory:
		if n.Children == nil {
			return fmt.Errorf("directory has nil children")
		}
		if n.Metadata != nil {
			return fmt.Errorf("directory has metadata")
		}
	case File:
		if n.Metadata == nil {
			return fmt.Errorf("file has nil metadata")
		}
		if n.Children != nil {
			return fmt.Errorf("file has children")
		}
	default:
		return fmt.Errorf("invalid node type: %s", n.Type)
	}
	return nil
}

// Equal reports whether two trees have the same structure, metadata and
// failure kinds. Error causes are not compared.
func (n *TreeNode) Equal(other *TreeNode) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Name != other.Name || n.Type != other.Type {
		return false
	}
	if (n.Metadata == nil) != (other.Metadata == nil) || !maps.Equal(n.Metadata, other.Metadata) {
		return false
	}
	if (n.Err == nil) != (other.Err == nil) {
		return false
	}
	if n.Err != nil && n.Err.KindName() != other.Err.KindName() {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// splitPathSegments splits a slash path into clean, non-empty segments.
func splitPathSegments(p string) []string {
	cleaned := path.Clean("/" + p)
	parts := strings.Split(cleaned, "/")
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s == "" || s == "." {
			continue
		}
		out = append(out, s)
	}
	return out
}
