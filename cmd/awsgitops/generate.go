// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/awsgitops/awsgitops/cmd/awsgitops/config"
	"github.com/awsgitops/awsgitops/cmd/awsgitops/generate"
)

// NewGenerate returns a new cobra.Command to generate manifests
func NewGenerate(cfg *config.AwsgitopsConfig) *cobra.Command {
	c := &config.GenerateConfig{}
	cmd := &cobra.Command{
		Use:   "generate [flags]",
		Short: "Generate manifests from the live state of AWS resources.",
		Long: `Generate manifests from the live state of AWS resources.

Every configured generator matches exactly one live resource by name,
reads its description and writes the configured fields into each manifest.`,
		Example: `  - Generate every manifest of a directory into ./generated
    awsgitops generate --config awsgitops.yaml --input manifests/ --output generated/

    - Generate a single manifest and print it
    awsgitops generate --input values.yaml --stdout
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := generate.NewGenerateCmd(*c)
			g.Out = cmd.OutOrStdout()
			return g.Execute(cmd.Context(), cfg)
		},
	}

	c.AddFlags(cmd.Flags())

	return cmd
}
