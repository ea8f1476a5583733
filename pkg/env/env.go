// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package env

const (
	DefaultConfigPath = "awsgitops.yaml"
	DefaultOutputDir  = "generated"
)

const (
	RegionVar    = "AWSGITOPS_REGION"
	AWSRegionVar = "AWS_REGION"
	NoColorVar   = "NO_COLOR"
)

var (
	// ManifestExtensions are the file extensions read as input manifests.
	ManifestExtensions = []string{".yaml", ".yml"}
)
