package cmdref

import (
	"gopkg.in/yaml.v3"

	cnuerrors "github.com/1mrobas/cisco-network-node-utils/pkg/errors"
)

// nestingLabels name the mapping depths in validation diagnostics.
// Depths beyond the list reuse the last label.
var nestingLabels = []string{"feature", "name", "param", "key"}

func nestingLabel(depth int) string {
	if depth > len(nestingLabels) {
		depth = len(nestingLabels)
	}
	if depth < 1 {
		depth = 1
	}
	return nestingLabels[depth-1]
}

// validateDocument structurally checks a parsed template document before
// it is collapsed into Spec mappings. It runs against the raw yaml.v3
// node tree because collapsing silently keeps the last of two duplicate
// keys and would destroy the evidence this check exists to find.
//
// Two properties are enforced:
//   - no two sibling keys at any mapping depth are identical
//   - top-level keys appear in non-decreasing lexicographic order
func validateDocument(doc *yaml.Node, file string) error {
	if doc == nil {
		return cnuerrors.Newf(cnuerrors.ErrCodeLoad, "%s: empty document", file)
	}
	if doc.Kind == yaml.DocumentNode {
		for _, c := range doc.Content {
			if err := validateNode(c, file, 1); err != nil {
				return err
			}
		}
		return nil
	}
	return validateNode(doc, file, 1)
}

// validateNode recursively checks one node. Only mapping nodes carry
// sibling keys; sequences and scalars are just recursed through.
func validateNode(n *yaml.Node, file string, depth int) error {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		seen := make(map[string]bool, len(n.Content)/2)
		prev := ""
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if seen[key] {
				return cnuerrors.Newf(cnuerrors.ErrCodeLoad,
					"%s: duplicate %s %q (line %d)",
					file, nestingLabel(depth), key, n.Content[i].Line)
			}
			seen[key] = true
			if depth == 1 && prev > key {
				return cnuerrors.Newf(cnuerrors.ErrCodeLoad,
					"%s: features out of order: %q must not follow %q",
					file, key, prev)
			}
			prev = key
			if err := validateNode(n.Content[i+1], file, depth+1); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for _, c := range n.Content {
			if err := validateNode(c, file, depth); err != nil {
				return err
			}
		}
	}
	return nil
}
