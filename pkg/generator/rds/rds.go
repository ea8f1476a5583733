// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package rds

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/awsgitops/awsgitops/pkg/generator"
)

const (
	// Name is the registered name of the generator.
	Name = "rds"
	// Instance selects DB instances.
	Instance = "instance"
	// Cluster selects DB clusters.
	Cluster = "cluster"

	statusAvailable = "available"
)

// API is the part of the RDS client used by the generator.
type API interface {
	rds.DescribeDBInstancesAPIClient
	rds.DescribeDBClustersAPIClient
}

// Generator writes the description of one RDS instance or cluster into a document.
type Generator struct {
	*generator.Base
}

var _ generator.Generator = &Generator{}

// New returns a Generator listing databases with client.
func New(client API, config generator.Config, opts ...generator.Option) (*Generator, error) {
	opts = append([]generator.Option{
		generator.WithCategories(Instance, Cluster),
		generator.WithOperationalCheck(isAvailable),
	}, opts...)

	b, err := generator.NewBase(Name, &Lister{client: client}, config, opts...)
	if err != nil {
		return nil, err
	}

	return &Generator{Base: b}, nil
}

// Factory returns a generator.Factory creating RDS generators backed by client.
func Factory(client API) generator.Factory {
	return func(config generator.Config, opts ...generator.Option) (generator.Generator, error) {
		return New(client, config, opts...)
	}
}

// Lister lists DB instances or DB clusters.
type Lister struct {
	client API
}

// NewLister returns a Lister using client.
func NewLister(client API) *Lister {
	return &Lister{client: client}
}

// List returns every DB instance or DB cluster, depending on category, keyed by its identifier.
func (l *Lister) List(ctx context.Context, category string) ([]generator.Resource, error) {
	switch category {
	case Instance:
		return l.instances(ctx)
	case Cluster:
		return l.clusters(ctx)
	}
	return nil, fmt.Errorf("unsupported category %q", category)
}

func (l *Lister) instances(ctx context.Context) ([]generator.Resource, error) {
	var out []generator.Resource

	p := rds.NewDescribeDBInstancesPaginator(l.client, &rds.DescribeDBInstancesInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe db instances: %w", err)
		}
		for _, db := range page.DBInstances {
			data, err := generator.ToData(db)
			if err != nil {
				return nil, err
			}
			out = append(out, generator.Resource{ID: aws.ToString(db.DBInstanceIdentifier), Data: data})
		}
	}

	return out, nil
}

func (l *Lister) clusters(ctx context.Context) ([]generator.Resource, error) {
	var out []generator.Resource

	p := rds.NewDescribeDBClustersPaginator(l.client, &rds.DescribeDBClustersInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe db clusters: %w", err)
		}
		for _, db := range page.DBClusters {
			data, err := generator.ToData(db)
			if err != nil {
				return nil, err
			}
			out = append(out, generator.Resource{ID: aws.ToString(db.DBClusterIdentifier), Data: data})
		}
	}

	return out, nil
}

// isAvailable checks the status of an instance (DBInstanceStatus) or a cluster (Status).
func isAvailable(_ context.Context, r generator.Resource) error {
	status, ok := r.Data["DBInstanceStatus"]
	if !ok {
		status = r.Data["Status"]
	}
	if status != statusAvailable {
		return fmt.Errorf("status is %v, want %s", status, statusAvailable)
	}
	return nil
}
