// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/awsgitops/awsgitops/pkg/env"
	"github.com/awsgitops/awsgitops/pkg/generator"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"gopkg.in/yaml.v3"
)

// Config is the content of the awsgitops configuration file.
type Config struct {
	// Region is the AWS region to query. Empty means the SDK default chain.
	Region string `yaml:"region,omitempty"`
	// Concurrency limits the generators running at the same time. Zero means no limit.
	Concurrency int `yaml:"concurrency,omitempty"`
	// Generators maps a generator name to its configuration section.
	Generators map[string]generator.Config `yaml:"generators"`
}

// Load reads and validates the configuration file at path.
// The region is overridden by the environment when set there.
func Load(fs vfs.FileSystem, path string) (*Config, error) {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	if region := regionFromEnv(); region != "" {
		c.Region = region
	}

	return c, nil
}

// Parse decodes and validates a configuration.
func Parse(data []byte) (*Config, error) {
	c := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks that at least one generator is configured and that every section is valid.
func (c *Config) Validate() error {
	if len(c.Generators) == 0 {
		return fmt.Errorf("no generators configured")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative")
	}
	for name, section := range c.Generators {
		if section.Category == "" {
			return fmt.Errorf("generators.%s: category must be set", name)
		}
		if err := section.Validate(); err != nil {
			return fmt.Errorf("generators.%s: %w", name, err)
		}
	}
	return nil
}

func regionFromEnv() string {
	if region := os.Getenv(env.RegionVar); region != "" {
		return region
	}
	return os.Getenv(env.AWSRegionVar)
}
