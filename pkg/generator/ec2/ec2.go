// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/awsgitops/awsgitops/pkg/generator"
)

const (
	// Name is the registered name of the generator.
	Name = "ec2"
	// Instance selects EC2 instances.
	Instance = "instance"

	nameTag = "Name"
)

// Generator writes the description of one EC2 instance into a document.
// Instances are identified by their Name tag, or their instance id when untagged.
type Generator struct {
	*generator.Base
}

var _ generator.Generator = &Generator{}

// New returns a Generator listing instances with client.
func New(client ec2.DescribeInstancesAPIClient, config generator.Config, opts ...generator.Option) (*Generator, error) {
	opts = append([]generator.Option{
		generator.WithCategories(Instance),
		generator.WithOperationalCheck(isRunning),
	}, opts...)

	b, err := generator.NewBase(Name, &Lister{client: client}, config, opts...)
	if err != nil {
		return nil, err
	}

	return &Generator{Base: b}, nil
}

// Factory returns a generator.Factory creating EC2 generators backed by client.
func Factory(client ec2.DescribeInstancesAPIClient) generator.Factory {
	return func(config generator.Config, opts ...generator.Option) (generator.Generator, error) {
		return New(client, config, opts...)
	}
}

// Lister lists EC2 instances.
type Lister struct {
	client ec2.DescribeInstancesAPIClient
}

// NewLister returns a Lister using client.
func NewLister(client ec2.DescribeInstancesAPIClient) *Lister {
	return &Lister{client: client}
}

// List returns every instance of every reservation.
func (l *Lister) List(ctx context.Context, category string) ([]generator.Resource, error) {
	if category != Instance {
		return nil, fmt.Errorf("unsupported category %q", category)
	}

	var out []generator.Resource

	p := ec2.NewDescribeInstancesPaginator(l.client, &ec2.DescribeInstancesInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe instances: %w", err)
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				data, err := generator.ToData(instance)
				if err != nil {
					return nil, err
				}
				out = append(out, generator.Resource{ID: identifier(instance), Data: data})
			}
		}
	}

	return out, nil
}

func identifier(instance types.Instance) string {
	for _, tag := range instance.Tags {
		if aws.ToString(tag.Key) == nameTag && aws.ToString(tag.Value) != "" {
			return aws.ToString(tag.Value)
		}
	}
	return aws.ToString(instance.InstanceId)
}

func isRunning(_ context.Context, r generator.Resource) error {
	state, _ := r.Data["State"].(map[string]any)
	if name := state["Name"]; name != string(types.InstanceStateNameRunning) {
		return fmt.Errorf("state is %v, want %s", name, types.InstanceStateNameRunning)
	}
	return nil
}
