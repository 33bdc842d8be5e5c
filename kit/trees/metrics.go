package trees

// Stats summarizes a crawled tree.
type Stats struct {
	Directories int64            `json:"directories" yaml:"directories"`
	Files       int64            `json:"files" yaml:"files"`
	Annotations int64            `json:"annotations" yaml:"annotations"`
	BytesRead   int64            `json:"bytes_read" yaml:"bytes_read"`
	MaxDepth    int              `json:"max_depth" yaml:"max_depth"`
	Failures    map[string]int64 `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// NewStats returns zeroed stats ready for recording.
func NewStats() *Stats {
	return &Stats{Failures: make(map[string]int64)}
}

// RecordNode counts node at the given depth below the root.
func (s *Stats) RecordNode(node *TreeNode, depth int) {
	if node.IsDirectory() {
		s.Directories++
	} else {
		s.Files++
	}
	s.MaxDepth = max(s.MaxDepth, depth)
	if node.Err != nil {
		s.Failures[node.Err.KindName()]++
	}
}

// TotalFailures is the number of nodes that carry an error.
func (s *Stats) TotalFailures() int64 {
	var total int64
	for _, n := range s.Failures {
		total += n
	}
	return total
}

// ComputeStats derives structural stats from an existing tree. Annotation
// and byte counts are only known during a crawl and stay zero.
func ComputeStats(root *TreeNode) *Stats {
	stats := NewStats()
	computeTreeStats(root, 0, stats)
	return stats
}

func computeTreeStats(node *TreeNode, depth int, stats *Stats) {
	if node == nil {
		return
	}
	stats.RecordNode(node, depth)
	for _, child := range node.Children {
		computeTreeStats(child, depth+1, stats)
	}
}
