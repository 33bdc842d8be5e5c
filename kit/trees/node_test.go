package trees

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleTree builds:
//
//	proj/
//	├── README.md   {title=Project}
//	├── bin.dat     [decode]
//	└── src/
//	    ├── main.go {owner=core}
//	    └── util/
func sampleTree(t *testing.T) *TreeNode {
	t.Helper()

	root := NewDirectoryNode("proj")
	src := NewDirectoryNode("src")
	util := NewDirectoryNode("util")

	bin := NewFileNode("bin.dat", nil)
	bin.Err = NewEntryError(ErrDecode, errors.New("invalid UTF-8 at byte 3"))

	require.NoError(t, root.AddChild(NewFileNode("README.md", map[string]string{"title": "Project"})))
	require.NoError(t, root.AddChild(bin))
	require.NoError(t, root.AddChild(src))
	require.NoError(t, src.AddChild(NewFileNode("main.go", map[string]string{"owner": "core"})))
	require.NoError(t, src.AddChild(util))
	return root
}

func TestTreeNode_Constructors(t *testing.T) {
	t.Run("directory has empty children and no metadata", func(t *testing.T) {
		dir := NewDirectoryNode("d")
		assert.True(t, dir.IsDirectory())
		assert.NotNil(t, dir.Children)
		assert.Empty(t, dir.Children)
		assert.Nil(t, dir.Metadata)
	})

	t.Run("file replaces nil metadata", func(t *testing.T) {
		file := NewFileNode("f", nil)
		assert.False(t, file.IsDirectory())
		assert.NotNil(t, file.Metadata)
		assert.Nil(t, file.Children)
	})

	t.Run("cannot add children to files", func(t *testing.T) {
		file := NewFileNode("f", nil)
		assert.Error(t, file.AddChild(NewFileNode("g", nil)))
	})
}

func TestTreeNode_Validate(t *testing.T) {
	root := sampleTree(t)
	require.NoError(t, root.Validate())

	broken := NewDirectoryNode("root")
	broken.Children = append(broken.Children,
		&TreeNode{Name: "f", Type: File},
		&TreeNode{Name: "d", Type: Directory, Metadata: map[string]string{}},
	)
	err := broken.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "f: file has nil metadata")
	assert.Contains(t, err.Error(), "d: directory has nil children")
}

func TestTreeNode_Find(t *testing.T) {
	root := sampleTree(t)

	tests := []struct {
		path  string
		name  string
		found bool
	}{
		{".", "proj", true},
		{"", "proj", true},
		{"src", "src", true},
		{"src/main.go", "main.go", true},
		{"/src/./util/", "util", true},
		{"src/missing", "", false},
		{"README.md/child", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			node, ok := root.Find(tt.path)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.name, node.Name)
			}
		})
	}
}

func TestTreeNode_Walk(t *testing.T) {
	root := sampleTree(t)

	t.Run("visits parents before children", func(t *testing.T) {
		assert.Equal(t, []string{
			"README.md",
			"bin.dat",
			"src",
			"src/main.go",
			"src/util",
		}, root.Flatten())
	})

	t.Run("SkipDir prunes a directory", func(t *testing.T) {
		var visited []string
		err := root.Walk(func(p string, node *TreeNode) error {
			visited = append(visited, p)
			if p == "src" {
				return fs.SkipDir
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{".", "README.md", "bin.dat", "src"}, visited)
	})

	t.Run("other errors stop the walk", func(t *testing.T) {
		stop := errors.New("stop")
		count := 0
		err := root.Walk(func(p string, node *TreeNode) error {
			count++
			if p == "bin.dat" {
				return stop
			}
			return nil
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 3, count)
	})
}

func TestTreeNode_Failures(t *testing.T) {
	failures := sampleTree(t).Failures()
	require.Len(t, failures, 1)

	err := failures["bin.dat"]
	require.NotNil(t, err)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Equal(t, "decode", err.KindName())
	assert.Equal(t, "content is not valid text: invalid UTF-8 at byte 3", err.Error())
}

func TestTreeNode_Equal(t *testing.T) {
	a := sampleTree(t)
	b := sampleTree(t)
	assert.True(t, a.Equal(b))

	main, _ := b.Find("src/main.go")
	main.Metadata["owner"] = "other"
	assert.False(t, a.Equal(b))

	c := sampleTree(t)
	bin, _ := c.Find("bin.dat")
	bin.Err = NewEntryError(ErrPermission, nil)
	assert.False(t, a.Equal(c))

	assert.True(t, (*TreeNode)(nil).Equal(nil))
	assert.False(t, a.Equal(nil))
}

func TestTreeNode_String(t *testing.T) {
	want := "proj/\n" +
		"├── README.md  {title=Project}\n" +
		"├── bin.dat  [content is not valid text: invalid UTF-8 at byte 3]\n" +
		"└── src/\n" +
		"    ├── main.go  {owner=core}\n" +
		"    └── util/\n"
	assert.Equal(t, want, sampleTree(t).String())
}

func TestNodeType(t *testing.T) {
	assert.Equal(t, "directory", Directory.String())
	assert.Equal(t, "file", File.String())
	assert.Equal(t, File, StringToNodeType("file"))
	assert.Equal(t, NodeType(-1), StringToNodeType("socket"))

	var n NodeType
	require.NoError(t, n.UnmarshalText([]byte("file")))
	assert.Equal(t, File, n)
	assert.Error(t, n.UnmarshalText([]byte("bogus")))

	_, err := NodeType(7).MarshalText()
	assert.Error(t, err)
}

func TestEntryError(t *testing.T) {
	cause := errors.New("open x: permission denied")
	err := NewEntryError(ErrPermission, cause)

	assert.ErrorIs(t, err, ErrPermission)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrDecode)
	assert.Equal(t, "permission", err.KindName())

	assert.Equal(t, ErrSymlinkCycle, KindFromName("symlink_cycle"))
	assert.Equal(t, ErrUnknownFailed, KindFromName("nope"))
	assert.Equal(t, "unknown", NewEntryError(ErrUnknownFailed, nil).KindName())
}
