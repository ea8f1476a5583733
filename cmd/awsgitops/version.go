// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/awsgitops/awsgitops/cmd/awsgitops/config"
)

// NewVersion returns a new cobra.Command to provide version information.
func NewVersion(cfg *config.AwsgitopsConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "returns the version of the current binary",
		Long:  "returns the version of the current binary",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}

	return cmd
}
