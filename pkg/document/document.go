// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Document is a mutable YAML tree addressable by Path.
// It keeps the yaml.v3 node representation so that comments, key order and
// scalar styles of the input manifest survive generation.
type Document struct {
	doc *yaml.Node
}

// Parse parses a single YAML document. Empty input yields an empty mapping.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	doc := &yaml.Node{}
	if err := dec.Decode(doc); err != nil {
		if errors.Is(err, io.EOF) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		return nil, fmt.Errorf("multiple YAML documents in one input are not supported")
	}

	return &Document{doc: doc}, nil
}

// New returns an empty mapping document.
func New() *Document {
	return &Document{
		doc: &yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		},
	}
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.doc); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode decodes the document into v.
func (d *Document) Decode(v any) error {
	return d.doc.Decode(v)
}

func (d *Document) root() *yaml.Node {
	if d.doc.Kind == yaml.DocumentNode {
		if len(d.doc.Content) == 0 {
			return nil
		}
		return d.doc.Content[0]
	}
	return d.doc
}

// IsPresent reports whether every intermediate segment of path resolves and
// the terminal segment is present.
func (d *Document) IsPresent(path Path) bool {
	_, ok := d.resolve(path)
	return ok
}

// Read returns the node at path.
func (d *Document) Read(path Path) (*yaml.Node, error) {
	n, ok := d.resolve(path)
	if !ok {
		return nil, fmt.Errorf("path %s not found in document", path)
	}
	return n, nil
}

// Write replaces the value at an existing path. Writes never create structure.
func (d *Document) Write(path Path, value any) error {
	n, ok := d.resolve(path)
	if !ok {
		return fmt.Errorf("path %s not found in document", path)
	}
	if err := replace(n, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (d *Document) resolve(path Path) (*yaml.Node, bool) {
	cur := d.root()
	if cur == nil {
		return nil, false
	}

	for _, seg := range path {
		cur = deref(cur)
		switch cur.Kind {
		case yaml.MappingNode:
			next := valueOf(cur, seg)
			if next == nil {
				return nil, false
			}
			cur = next
		case yaml.SequenceNode:
			i, ok := index(seg, len(cur.Content))
			if !ok {
				return nil, false
			}
			cur = cur.Content[i]
		default:
			return nil, false
		}
	}

	return cur, true
}

func valueOf(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// replace overwrites dst in place with the encoded value, keeping the comments
// attached to the replaced node.
func replace(dst *yaml.Node, value any) error {
	var src yaml.Node
	if n, ok := value.(*yaml.Node); ok {
		src = *n
	} else if err := src.Encode(value); err != nil {
		return err
	}

	head, line, foot := dst.HeadComment, dst.LineComment, dst.FootComment
	*dst = src
	dst.HeadComment, dst.LineComment, dst.FootComment = head, line, foot

	return nil
}
