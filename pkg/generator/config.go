// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"fmt"
	"regexp"

	"github.com/awsgitops/awsgitops/pkg/document"
)

// Config is the configuration section of one generator.
type Config struct {
	// Category is the resource kind to list, e.g. instance or cluster.
	Category string `yaml:"category"`
	// NamePattern is a regular expression that must match the whole resource identifier.
	NamePattern string `yaml:"namePattern"`
	// RequireOperational enables the readiness check of the resource type.
	RequireOperational bool `yaml:"requireOperational,omitempty"`
	// Targets are applied in order during generation.
	Targets []Target `yaml:"targets"`
}

// Target maps one field of the resource data to locations in the document.
type Target struct {
	// TargetPath lists literal document paths.
	TargetPath []document.Path `yaml:"targetPath,omitempty"`
	// TargetName lists keys searched anywhere in the document.
	TargetName []string `yaml:"targetName,omitempty"`
	// TargetQuery lists JSONPath expressions evaluated against the document.
	TargetQuery []string `yaml:"targetQuery,omitempty"`
	// Src is the path of the value in the resource data.
	Src document.Path `yaml:"src"`
}

// Validate checks the parts of the configuration that do not depend on the resource type.
func (c Config) Validate() error {
	if c.NamePattern == "" {
		return fmt.Errorf("namePattern must be set")
	}
	if _, err := compilePattern(c.NamePattern); err != nil {
		return err
	}
	for i, t := range c.Targets {
		if len(t.Src) == 0 {
			return fmt.Errorf("targets[%d]: src must be set", i)
		}
		for j, p := range t.TargetPath {
			if len(p) == 0 {
				return fmt.Errorf("targets[%d]: targetPath[%d] must not be empty", i, j)
			}
		}
	}
	return nil
}

// compilePattern anchors pattern so that it only matches whole identifiers.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("invalid namePattern %q: %w", pattern, err)
	}
	return re, nil
}
