package trees

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// nodeRecord is the nested wire form of a TreeNode:
// {name, kind, children?, metadata?, error?}.
type nodeRecord struct {
	Name     string            `json:"name" yaml:"name"`
	Kind     NodeType          `json:"kind" yaml:"kind"`
	Children []*TreeNode       `json:"children,omitempty" yaml:"children,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Error    *errorRecord      `json:"error,omitempty" yaml:"error,omitempty"`
}

type errorRecord struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

func (n *TreeNode) record() nodeRecord {
	rec := nodeRecord{
		Name:     n.Name,
		Kind:     n.Type,
		Children: n.Children,
		Metadata: n.Metadata,
	}
	if n.Err != nil {
		rec.Error = &errorRecord{Kind: n.Err.KindName()}
		if n.Err.Err != nil {
			rec.Error.Message = n.Err.Err.Error()
		}
	}
	return rec
}

// fromRecord restores n from its wire form. Omitted collections are
// recreated empty so decoded trees satisfy the same invariants as crawled
// ones.
func (n *TreeNode) fromRecord(rec nodeRecord) {
	*n = TreeNode{Name: rec.Name, Type: rec.Kind}
	switch rec.Kind {
	case Directory:
		n.Children = rec.Children
		if n.Children == nil {
			n.Children = []*TreeNode{}
		}
	case File:
		n.Metadata = rec.Metadata
		if n.Metadata == nil {
			n.Metadata = map[string]string{}
		}
	}
	if rec.Error != nil {
		var cause error
		if rec.Error.Message != "" {
			cause = errors.New(rec.Error.Message)
		}
		n.Err = NewEntryError(KindFromName(rec.Error.Kind), cause)
	}
}

func (n *TreeNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.record())
}

func (n *TreeNode) UnmarshalJSON(data []byte) error {
	var rec nodeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("failed to decode tree node: %w", err)
	}
	n.fromRecord(rec)
	return nil
}

func (n *TreeNode) MarshalYAML() (interface{}, error) {
	return n.record(), nil
}

func (n *TreeNode) UnmarshalYAML(value *yaml.Node) error {
	var rec nodeRecord
	if err := value.Decode(&rec); err != nil {
		return fmt.Errorf("failed to decode tree node: %w", err)
	}
	n.fromRecord(rec)
	return nil
}
