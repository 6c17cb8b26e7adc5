package eqnset

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromYAML decodes the ordered wire form:
//
//	Aeq: "-k1*A + k2*B"
//	Beq: "k1*A - k2*B"
//
// Declaration order is preserved — the document is decoded through
// yaml.Node rather than a Go map, which would lose it.
func FromYAML(data []byte) (*Set, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadYAML, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, fmt.Errorf("%w: expected a single mapping document", ErrBadYAML)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: root node is not a mapping", ErrBadYAML)
	}

	defs := make([]Def, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode || val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: non-scalar entry at line %d", ErrBadYAML, key.Line)
		}
		defs = append(defs, Def{Name: key.Value, Expr: val.Value})
	}

	return New(defs...)
}

// ToYAML encodes the set back into the ordered wire form.
func (s *Set) ToYAML() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range s.names {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: s.srcs[name]},
		)
	}

	return yaml.Marshal(root)
}
