package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// nodeKind discriminates the variants of a loosely-typed parsed tree.
type nodeKind int

const (
	kindNull nodeKind = iota
	kindScalar
	kindList
	kindMap
)

// tree is a tagged-variant view of a parsed YAML document. Mappings keep
// their key order so the manifest serializes back in the order it was
// written.
type tree struct {
	kind     nodeKind
	scalar   string
	list     []*tree
	keys     []string
	children map[string]*tree
}

// fromYAML converts a decoded yaml.Node into a tree.
func fromYAML(n *yaml.Node) (*tree, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return &tree{kind: kindNull}, nil
		}
		return fromYAML(n.Content[0])

	case yaml.AliasNode:
		return fromYAML(n.Alias)

	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return &tree{kind: kindNull}, nil
		}
		return &tree{kind: kindScalar, scalar: n.Value}, nil

	case yaml.SequenceNode:
		t := &tree{kind: kindList, list: make([]*tree, 0, len(n.Content))}
		for _, c := range n.Content {
			child, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			t.list = append(t.list, child)
		}
		return t, nil

	case yaml.MappingNode:
		t := &tree{kind: kindMap, children: make(map[string]*tree, len(n.Content)/2)}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			child, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			t.keys = append(t.keys, key)
			t.children[key] = child
		}
		return t, nil

	default:
		return nil, fmt.Errorf("%w: unsupported YAML node kind %d", ErrMalformedManifest, n.Kind)
	}
}

// normalized returns the tree with every null replaced by an empty list, so
// downstream interpretation iterates empty collections instead of
// special-casing absence. The walk is structural and knows nothing about the
// manifest schema.
func (t *tree) normalized() *tree {
	switch t.kind {
	case kindNull:
		return &tree{kind: kindList}
	case kindList:
		for i, c := range t.list {
			t.list[i] = c.normalized()
		}
	case kindMap:
		for key, c := range t.children {
			t.children[key] = c.normalized()
		}
	}
	return t
}

// flatten converts the tree to plain Go values (string, []any,
// map[string]any) for schema-directed decoding.
func (t *tree) flatten() any {
	switch t.kind {
	case kindScalar:
		return t.scalar
	case kindList:
		out := make([]any, len(t.list))
		for i, c := range t.list {
			out[i] = c.flatten()
		}
		return out
	case kindMap:
		out := make(map[string]any, len(t.keys))
		for _, key := range t.keys {
			out[key] = t.children[key].flatten()
		}
		return out
	default:
		return nil
	}
}

// stringList interprets a list-of-scalars tree.
func (t *tree) stringList() ([]string, error) {
	if t.kind != kindList {
		return nil, fmt.Errorf("%w: expected a list", ErrMalformedManifest)
	}
	out := make([]string, 0, len(t.list))
	for _, c := range t.list {
		if c.kind != kindScalar {
			return nil, fmt.Errorf("%w: expected a scalar list element", ErrMalformedManifest)
		}
		out = append(out, c.scalar)
	}
	return out, nil
}
