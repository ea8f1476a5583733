// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"fmt"
	"strings"

	"github.com/awsgitops/awsgitops/pkg/document"
	"gopkg.in/yaml.v3"
)

// location is a writable node of the document and the label it was found by.
type location struct {
	label string
	node  *yaml.Node
}

// applyTargets writes every target into doc in order. It is not transactional:
// when target N fails, targets before it stay written.
func applyTargets(doc *document.Document, targets []Target, data map[string]any, warn func(string)) *Error {
	for _, target := range targets {
		locations, attempted, err := resolve(doc, target)
		if err != nil {
			return err
		}

		if len(attempted) == 0 || len(locations) == 0 {
			return newError("", TargetNotFound,
				fmt.Sprintf("Targets [%s] not found in input yaml", strings.Join(attempted, ", ")), nil)
		}

		if len(locations) > 1 {
			labels := make([]string, 0, len(locations))
			for _, l := range locations {
				labels = append(labels, l.label)
			}
			warn(fmt.Sprintf("Multiple targets found: [%s]", strings.Join(labels, ", ")))
		}

		value, lerr := document.Lookup(data, target.Src)
		if lerr != nil {
			return newError("", SourceFieldMissing,
				fmt.Sprintf("Source %s not found in resource data", target.Src), lerr)
		}

		for _, l := range locations {
			if werr := document.Set(l.node, value); werr != nil {
				return newError("", InvalidConfig, fmt.Sprintf("Failed to write %s", l.label), werr)
			}
		}
	}

	return nil
}

// resolve builds the candidate set of a target and keeps the locations that exist.
// It returns the existing locations in discovery order without duplicates and the
// labels of every attempted candidate.
func resolve(doc *document.Document, target Target) ([]location, []string, *Error) {
	var (
		attempted []string
		locations []location
		seen      = map[*yaml.Node]bool{}
	)

	add := func(label string, n *yaml.Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		locations = append(locations, location{label: label, node: n})
	}

	candidates := append([]document.Path(nil), target.TargetPath...)
	for _, name := range target.TargetName {
		candidates = append(candidates, doc.Find(name)...)
	}

	for _, p := range candidates {
		attempted = append(attempted, p.String())
		if !doc.IsPresent(p) {
			continue
		}
		n, err := doc.Read(p)
		if err != nil {
			continue
		}
		add(p.String(), n)
	}

	for _, expr := range target.TargetQuery {
		attempted = append(attempted, expr)
		nodes, err := doc.Query(expr)
		if err != nil {
			return nil, nil, newError("", InvalidConfig, fmt.Sprintf("Invalid target query %s", expr), err)
		}
		for _, n := range nodes {
			add(expr, n)
		}
	}

	return locations, attempted, nil
}
