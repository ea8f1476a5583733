// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"strconv"

	"github.com/vmware-labs/yaml-jsonpath/pkg/yamlpath"
	"gopkg.in/yaml.v3"
)

// Find returns the path of every location whose terminal mapping key equals name,
// in document order (depth first, parents before children).
// Aliases are not followed.
func (d *Document) Find(name string) []Path {
	root := d.root()
	if root == nil {
		return nil
	}

	var paths []Path
	var walk func(n *yaml.Node, at Path)
	walk = func(n *yaml.Node, at Path) {
		switch n.Kind {
		case yaml.MappingNode:
			for i := 0; i+1 < len(n.Content); i += 2 {
				child := at.Child(n.Content[i].Value)
				if n.Content[i].Value == name {
					paths = append(paths, child)
				}
				walk(n.Content[i+1], child)
			}
		case yaml.SequenceNode:
			for i, item := range n.Content {
				walk(item, at.Child(strconv.Itoa(i)))
			}
		}
	}
	walk(root, Path{})

	return paths
}

// Query evaluates a JSONPath expression against the document and returns the matched nodes.
// The nodes belong to the document; writing them through Set mutates the document.
func (d *Document) Query(expr string) ([]*yaml.Node, error) {
	p, err := yamlpath.NewPath(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expr, err)
	}

	nodes, err := p.Find(d.doc)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate query %q: %w", expr, err)
	}

	return nodes, nil
}

// Set replaces the value of a node returned by Query.
func Set(n *yaml.Node, value any) error {
	return replace(n, value)
}
