// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	awsrds "github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/awsgitops/awsgitops/pkg/generator"
	"github.com/awsgitops/awsgitops/pkg/generator/ec2"
	"github.com/awsgitops/awsgitops/pkg/generator/rds"
)

// NewAWSRegistry returns a registry of every generator backed by AWS clients
// configured from the default credential chain.
func NewAWSRegistry(ctx context.Context, region string) (*generator.Registry, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	r := generator.NewRegistry()
	if err := r.Register(rds.Name, rds.Factory(awsrds.NewFromConfig(cfg))); err != nil {
		return nil, err
	}
	if err := r.Register(ec2.Name, ec2.Factory(awsec2.NewFromConfig(cfg))); err != nil {
		return nil, err
	}

	return r, nil
}
