package cmdref

import (
	"fmt"

	"gopkg.in/yaml.v3"

	cnuerrors "github.com/1mrobas/cisco-network-node-utils/pkg/errors"
)

// Spec is one attribute definition tree collapsed from a template
// document. It preserves the document's key order: the merge engine
// processes keys in the order the author wrote them, which a plain Go
// map cannot provide.
//
// Values are scalars (string, bool, int64, float64, nil), []any
// sequences, or nested *Spec mappings.
type Spec struct {
	keys   []string
	values map[string]any
}

// NewSpec returns an empty Spec.
func NewSpec() *Spec {
	return &Spec{values: make(map[string]any)}
}

// Len returns the number of keys in the spec.
func (s *Spec) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns the keys in document order. The returned slice is shared;
// callers must not modify it.
func (s *Spec) Keys() []string {
	if s == nil {
		return nil
	}
	return s.keys
}

// Get returns the value stored under key and whether the key is present.
// A present key may hold an explicit nil value, which is distinct from
// the key being absent.
func (s *Spec) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[key]
	return v, ok
}

// Set stores a value under key. An existing key keeps its position; a
// new key is appended.
func (s *Spec) Set(key string, value any) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Clone returns a deep copy of the spec.
func (s *Spec) Clone() *Spec {
	if s == nil {
		return NewSpec()
	}
	out := &Spec{
		keys:   make([]string, len(s.keys)),
		values: make(map[string]any, len(s.values)),
	}
	copy(out.keys, s.keys)
	for k, v := range s.values {
		out.values[k] = cloneValue(v)
	}
	return out
}

// cloneValue deep-copies a spec value. Scalars are immutable and
// returned as-is.
func cloneValue(v any) any {
	switch t := v.(type) {
	case *Spec:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// specFromNode collapses a YAML mapping node into a Spec. The caller is
// expected to have run structural validation first: duplicate keys are
// resolved last-one-wins here, exactly the behavior validation exists to
// reject up front.
func specFromNode(n *yaml.Node) (*Spec, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.MappingNode {
		return nil, cnuerrors.Newf(cnuerrors.ErrCodeConstruction,
			"expected a mapping at line %d, got %s", n.Line, nodeKindName(n.Kind))
	}
	spec := NewSpec()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		value, err := valueFromNode(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		spec.Set(key, value)
	}
	return spec, nil
}

// valueFromNode converts a YAML node into a spec value.
func valueFromNode(n *yaml.Node) (any, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return specFromNode(n)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := valueFromNode(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, cnuerrors.Wrapf(cnuerrors.ErrCodeLoad, err,
				"bad scalar at line %d", n.Line)
		}
		return normalizeScalar(v), nil
	default:
		return nil, cnuerrors.Newf(cnuerrors.ErrCodeLoad,
			"unsupported YAML node at line %d", n.Line)
	}
}

// normalizeScalar widens integer scalars to int64 so values compare
// consistently regardless of how yaml.v3 decoded them.
func normalizeScalar(v any) any {
	switch t := v.(type) {
	case int:
		return int64(t)
	case uint64:
		return int64(t)
	default:
		return v
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func nodeKindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return fmt.Sprintf("kind(%d)", k)
}
