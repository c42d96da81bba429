package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// VarKind tags the payload a VarNode carries: a scalar (string, number,
// bool, or null), a map, or a list.
type VarKind int

const (
	VarNull VarKind = iota
	VarString
	VarNumber
	VarBool
	VarMap
	VarList
)

// VarNode is a node of the user-supplied `variables:` mapping. Only Map
// nodes are traversed by dot-path lookup, and only scalar leaves (string,
// number, bool, null) stringify; lists and unmatched paths are unresolved.
type VarNode struct {
	Kind VarKind
	Str  string
	Num  float64
	Bool bool
	Map  map[string]*VarNode
	List []*VarNode
}

// UnmarshalYAML builds a VarNode tree from an arbitrary YAML value.
func (n *VarNode) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return n.unmarshalScalar(value)
	case yaml.MappingNode:
		n.Kind = VarMap
		n.Map = make(map[string]*VarNode, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			key := value.Content[i].Value
			child := &VarNode{}
			if err := child.UnmarshalYAML(value.Content[i+1]); err != nil {
				return fmt.Errorf("variables.%s: %w", key, err)
			}
			n.Map[key] = child
		}
		return nil
	case yaml.SequenceNode:
		n.Kind = VarList
		n.List = make([]*VarNode, 0, len(value.Content))
		for _, item := range value.Content {
			child := &VarNode{}
			if err := child.UnmarshalYAML(item); err != nil {
				return err
			}
			n.List = append(n.List, child)
		}
		return nil
	default:
		n.Kind = VarNull
		return nil
	}
}

func (n *VarNode) unmarshalScalar(value *yaml.Node) error {
	if value.Tag == "!!null" || value.Value == "" && value.Tag == "" {
		n.Kind = VarNull
		return nil
	}
	switch value.Tag {
	case "!!bool":
		b, err := strconv.ParseBool(value.Value)
		if err != nil {
			return fmt.Errorf("invalid bool %q: %w", value.Value, err)
		}
		n.Kind = VarBool
		n.Bool = b
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(value.Value, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", value.Value, err)
		}
		n.Kind = VarNumber
		n.Num = f
	case "!!null":
		n.Kind = VarNull
	default:
		n.Kind = VarString
		n.Str = value.Value
	}
	return nil
}

// MarshalYAML round-trips a VarNode back into plain YAML scalars/mappings/
// sequences, so ExportData/Config can be re-serialized after editing.
func (n *VarNode) MarshalYAML() (interface{}, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case VarString:
		return n.Str, nil
	case VarNumber:
		return n.Num, nil
	case VarBool:
		return n.Bool, nil
	case VarMap:
		out := make(map[string]interface{}, len(n.Map))
		for k, v := range n.Map {
			val, err := v.MarshalYAML()
			if err != nil {
				return nil, err
			}
			out[k] = val
		}
		return out, nil
	case VarList:
		out := make([]interface{}, 0, len(n.List))
		for _, v := range n.List {
			val, err := v.MarshalYAML()
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	default:
		return nil, nil
	}
}

// Lookup resolves a dot-notation path (e.g. "user.contact.email") into this
// node's Map tree. Traversal only descends through Map nodes.
func (n *VarNode) Lookup(path string) (*VarNode, bool) {
	if n == nil {
		return nil, false
	}
	current := n
	for _, part := range strings.Split(path, ".") {
		if current == nil || current.Kind != VarMap {
			return nil, false
		}
		next, ok := current.Map[part]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Stringify renders a scalar leaf as its text form, or reports false for
// Map/List nodes.
func (n *VarNode) Stringify() (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Kind {
	case VarNull:
		return "", true
	case VarString:
		return n.Str, true
	case VarBool:
		return strconv.FormatBool(n.Bool), true
	case VarNumber:
		if n.Num == float64(int64(n.Num)) {
			return strconv.FormatInt(int64(n.Num), 10), true
		}
		return strconv.FormatFloat(n.Num, 'f', -1, 64), true
	default:
		return "", false
	}
}
