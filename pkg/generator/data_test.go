// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type endpoint struct {
	Address *string
	Port    *int32
	Weight  float64
}

type description struct {
	Endpoint  endpoint
	Storage   int64
	Endpoints []endpoint
}

func TestToDataNumbers(t *testing.T) {
	addr, port := "x.example.com", int32(5432)
	data, err := ToData(description{
		Endpoint:  endpoint{Address: &addr, Port: &port, Weight: 0.5},
		Storage:   9007199254740993,
		Endpoints: []endpoint{{Port: &port}},
	})
	require.NoError(t, err)

	ep := data["Endpoint"].(map[string]any)
	assert.Equal(t, "x.example.com", ep["Address"])
	assert.Equal(t, int64(5432), ep["Port"])
	assert.Equal(t, 0.5, ep["Weight"])
	assert.Equal(t, int64(9007199254740993), data["Storage"])
	assert.Equal(t, int64(5432), data["Endpoints"].([]any)[0].(map[string]any)["Port"])
}
