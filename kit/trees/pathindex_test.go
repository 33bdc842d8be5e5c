package trees

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathIndex(t *testing.T) {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{"Lookup", testPathIndexLookup},
		{"PrefixLookup", testPathIndexPrefixLookup},
		{"Children", testPathIndexChildren},
		{"ByAnnotation", testPathIndexByAnnotation},
		{"Statistics", testPathIndexStatistics},
		{"Validation", testPathIndexValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.test)
	}
}

func entryPaths(entries []IndexEntry) []string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	return paths
}

func testPathIndexLookup(t *testing.T) {
	root := sampleTree(t)
	idx := NewPathIndex(root)

	assert.Equal(t, 6, idx.Len())

	for _, p := range root.Flatten() {
		node, ok := idx.Lookup(p)
		require.True(t, ok, "path should be indexed: %s", p)

		expected, _ := root.Find(p)
		assert.Same(t, expected, node)
	}

	node, ok := idx.Lookup("/")
	require.True(t, ok)
	assert.Same(t, root, node)

	node, ok = idx.Lookup("src//main.go")
	require.True(t, ok)
	assert.Equal(t, "main.go", node.Name)

	_, ok = idx.Lookup("src/missing.go")
	assert.False(t, ok)
}

func testPathIndexPrefixLookup(t *testing.T) {
	idx := NewPathIndex(sampleTree(t))

	assert.Equal(t, []string{"src", "src/main.go", "src/util"}, entryPaths(idx.PrefixLookup("src")))
	assert.Len(t, idx.PrefixLookup("."), 6)
	assert.Empty(t, idx.PrefixLookup("sr"), "prefix lookups match whole path segments")
}

func testPathIndexChildren(t *testing.T) {
	idx := NewPathIndex(sampleTree(t))

	assert.Equal(t, []string{"README.md", "bin.dat", "src"}, entryPaths(idx.Children(".")))
	assert.Equal(t, []string{"src/main.go", "src/util"}, entryPaths(idx.Children("src")))
	assert.Empty(t, idx.Children("src/util"))
}

func testPathIndexByAnnotation(t *testing.T) {
	root := sampleTree(t)
	readme, _ := root.Find("README.md")
	readme.Metadata["owner"] = "docs"

	idx := NewPathIndex(root)
	assert.Equal(t, []string{"README.md", "src/main.go"}, idx.ByAnnotation("owner"))
	assert.Equal(t, []string{"README.md"}, idx.ByAnnotation("title"))
	assert.Empty(t, idx.ByAnnotation("missing"))
}

func testPathIndexStatistics(t *testing.T) {
	idx := NewPathIndex(sampleTree(t))
	idx.Lookup("src")
	idx.Lookup("nope")
	idx.PrefixLookup("src")

	stats := idx.GetStats()
	assert.Equal(t, int64(6), stats.TotalNodes)
	assert.Equal(t, int64(2), stats.PathLookups)
	assert.Equal(t, int64(1), stats.PrefixLookups)
}

func testPathIndexValidation(t *testing.T) {
	assert.Empty(t, NewPathIndex(sampleTree(t)).Validate())
	assert.Empty(t, NewPathIndex(nil).Validate())
}
