// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/awsgitops/awsgitops/cmd/awsgitops/config"
	"github.com/awsgitops/awsgitops/pkg/env"
	"github.com/awsgitops/awsgitops/pkg/printer"
)

var (
	defaultOutput = os.Stderr
)

// New returns a new cobra.Command for awsgitops
func New(args []string) (*cobra.Command, error) {
	cfg := &config.AwsgitopsConfig{}
	cmd := &cobra.Command{
		Use:           "awsgitops",
		Long:          `awsgitops generates GitOps manifests from the live state of AWS resources.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cfg)
		},
	}
	cmd.SetArgs(args)

	cfg.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewGenerate(cfg))
	cmd.AddCommand(NewVersion(cfg))

	cmd.InitDefaultHelpCmd()

	return cmd, nil
}

// setup creates the printer and the logger once the flags are parsed.
func setup(cfg *config.AwsgitopsConfig) error {
	if cfg.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative")
	}
	if cfg.NoColor || os.Getenv(env.NoColorVar) != "" {
		color.NoColor = true
	}

	interactive := term.IsTerminal(int(defaultOutput.Fd()))
	p, err := printer.Newprinter(defaultOutput, interactive && cfg.Verbosity == 0)
	if err != nil {
		return err
	}
	cfg.Printer = p

	cfg.Logger = funcr.New(func(prefix, args string) {
		p.Println(prefix, args)
	}, funcr.Options{
		Verbosity: cfg.Verbosity,
		LogCaller: funcr.None,
	})

	return nil
}
