package trees

import (
	"fmt"
	"slices"
	"strings"

	"github.com/armon/go-radix"
)

// IndexEntry is a node together with its path relative to the indexed root.
type IndexEntry struct {
	Path string
	Node *TreeNode
}

// PathIndexStats tracks how the path index has been used
type PathIndexStats struct {
	TotalNodes    int64
	PathLookups   int64
	PrefixLookups int64
}

// PathIndex provides O(k) path lookups over a crawled tree using a
// compressed trie, where k is the length of the path. The root is stored
// under ".".
type PathIndex struct {
	tree        *radix.Tree
	annotations map[string][]string // annotation key -> sorted file paths
	stats       PathIndexStats
}

// NewPathIndex indexes every node of root.
func NewPathIndex(root *TreeNode) *PathIndex {
	idx := &PathIndex{
		tree:        radix.New(),
		annotations: make(map[string][]string),
	}
	if root == nil {
		return idx
	}

	_ = root.Walk(func(p string, node *TreeNode) error {
		idx.tree.Insert(p, node)
		idx.stats.TotalNodes++
		for key := range node.Metadata {
			idx.annotations[key] = append(idx.annotations[key], p)
		}
		return nil
	})
	for key := range idx.annotations {
		slices.Sort(idx.annotations[key])
	}
	return idx
}

// Lookup finds a node by its exact relative path.
func (idx *PathIndex) Lookup(p string) (*TreeNode, bool) {
	idx.stats.PathLookups++
	value, found := idx.tree.Get(normalizePath(p))
	if !found {
		return nil, false
	}
	return value.(*TreeNode), true
}

// PrefixLookup returns all entries under the directory prefix, including
// the prefix itself, in lexicographic path order.
func (idx *PathIndex) PrefixLookup(prefix string) []IndexEntry {
	idx.stats.PrefixLookups++
	normalized := normalizePath(prefix)
	if normalized == "." {
		return idx.collect("")
	}

	var results []IndexEntry
	if node, ok := idx.tree.Get(normalized); ok {
		results = append(results, IndexEntry{Path: normalized, Node: node.(*TreeNode)})
	}
	return append(results, idx.collect(normalized+"/")...)
}

// Children returns the direct children of the directory at p.
func (idx *PathIndex) Children(p string) []IndexEntry {
	parent := normalizePath(p)
	walkPrefix := parent + "/"
	if parent == "." {
		walkPrefix = ""
	}

	var children []IndexEntry
	idx.tree.WalkPrefix(walkPrefix, func(key string, value interface{}) bool {
		remaining := strings.TrimPrefix(key, walkPrefix)
		if key != "." && remaining != "" && !strings.Contains(remaining, "/") {
			children = append(children, IndexEntry{Path: key, Node: value.(*TreeNode)})
		}
		return false
	})
	return children
}

// ByAnnotation returns the paths of all files whose metadata carries key.
func (idx *PathIndex) ByAnnotation(key string) []string {
	return slices.Clone(idx.annotations[key])
}

// Len returns the number of indexed nodes.
func (idx *PathIndex) Len() int {
	return idx.tree.Len()
}

// GetStats returns a copy of the current index statistics
func (idx *PathIndex) GetStats() PathIndexStats {
	return idx.stats
}

// Validate checks every indexed path resolves to the node stored for it by
// walking the tree from the root.
func (idx *PathIndex) Validate() []error {
	root, ok := idx.tree.Get(".")
	if !ok {
		if idx.tree.Len() == 0 {
			return nil
		}
		return []error{fmt.Errorf("path index has no root entry")}
	}

	var errs []error
	idx.tree.Walk(func(key string, value interface{}) bool {
		found, ok := root.(*TreeNode).Find(key)
		if !ok || found != value.(*TreeNode) {
			errs = append(errs, fmt.Errorf("indexed path %q does not resolve to its node", key))
		}
		return false
	})
	return errs
}

func (idx *PathIndex) collect(prefix string) []IndexEntry {
	var results []IndexEntry
	idx.tree.WalkPrefix(prefix, func(key string, value interface{}) bool {
		results = append(results, IndexEntry{Path: key, Node: value.(*TreeNode)})
		return false
	})
	return results
}

// normalizePath cleans a relative slash path; the root becomes ".".
func normalizePath(p string) string {
	segments := splitPathSegments(p)
	if len(segments) == 0 {
		return "."
	}
	return strings.Join(segments, "/")
}
