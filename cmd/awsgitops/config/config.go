// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/awsgitops/awsgitops/pkg/env"
	"github.com/awsgitops/awsgitops/pkg/printer"
)

// AwsgitopsConfig is the global configuration for the awsgitops CLI.
type AwsgitopsConfig struct {
	// Printer is the printer to use for output.
	Printer *printer.Printer
	// Logger receives generator log events.
	Logger logr.Logger
	// Timeout bounds a whole run, including the AWS API calls.
	Timeout string
	// Verbosity is the log verbosity. 1 logs the status of every stage.
	Verbosity int
	// NoColor disables colored output.
	NoColor bool
}

// AddFlags adds the global flags to the given flag set.
func (m *AwsgitopsConfig) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&m.Timeout, "timeout", "5m", "The timeout to use for operations")
	flags.IntVarP(&m.Verbosity, "verbosity", "v", 0, "The log verbosity, 1 logs the status of every generator stage")
	flags.BoolVar(&m.NoColor, "no-color", false, "Disable colored output, also set by the "+env.NoColorVar+" environment variable")
}

// GenerateConfig is the configuration of the generate command.
type GenerateConfig struct {
	ConfigPath  string
	Input       string
	Output      string
	Region      string
	Concurrency int
	Stdout      bool
}

// AddFlags adds the generate flags to the given flag set.
func (g *GenerateConfig) AddFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&g.ConfigPath, "config", "c", env.DefaultConfigPath, "The path to the generator configuration file")
	flags.StringVarP(&g.Input, "input", "i", ".", "The manifest file or directory of manifests to generate from")
	flags.StringVarP(&g.Output, "output", "o", env.DefaultOutputDir, "The directory to write the generated manifests to")
	flags.StringVar(&g.Region, "region", "", "The AWS region to query. Overrides the configuration file")
	flags.IntVar(&g.Concurrency, "concurrency", 0, "The maximum number of generators running at the same time. Overrides the configuration file")
	flags.BoolVar(&g.Stdout, "stdout", false, "Print the generated manifests to stdout instead of writing them")
}
