package trees

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is the result of one crawl: the tree plus where and when it was
// taken.
type Snapshot struct {
	ID        uuid.UUID     `json:"id" yaml:"id"`
	Root      string        `json:"root" yaml:"root"`
	CrawledAt time.Time     `json:"crawled_at" yaml:"crawled_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Tree      *TreeNode     `json:"tree" yaml:"tree"`
	Stats     *Stats        `json:"stats" yaml:"stats"`
}

// NewSnapshot wraps a crawled tree with a fresh identifier.
func NewSnapshot(root string, tree *TreeNode, stats *Stats, crawledAt time.Time, duration time.Duration) *Snapshot {
	if stats == nil {
		stats = ComputeStats(tree)
	}
	return &Snapshot{
		ID:        uuid.New(),
		Root:      root,
		CrawledAt: crawledAt,
		Duration:  duration,
		Tree:      tree,
		Stats:     stats,
	}
}

// Index builds a path index over the snapshot's tree.
func (s *Snapshot) Index() *PathIndex {
	return NewPathIndex(s.Tree)
}
