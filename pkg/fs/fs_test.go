// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"testing"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var png = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func setup(t *testing.T) vfs.FileSystem {
	t.Helper()
	fs := memoryfs.New()
	require.NoError(t, fs.MkdirAll("/in/apps/api", 0o755))
	require.NoError(t, vfs.WriteFile(fs, "/in/apps/api/deployment.yaml", []byte("kind: Deployment\n"), 0o644))
	require.NoError(t, vfs.WriteFile(fs, "/in/apps/values.yml", []byte("host: null\n"), 0o644))
	require.NoError(t, vfs.WriteFile(fs, "/in/config.json", []byte(`{"a": 1}`), 0o644))
	require.NoError(t, vfs.WriteFile(fs, "/in/README.md", []byte("# readme\n"), 0o644))
	require.NoError(t, vfs.WriteFile(fs, "/in/logo.yaml", png, 0o644))
	return fs
}

func TestCollectDirectory(t *testing.T) {
	fs := setup(t)

	manifests, skipped, err := Collect(fs, "/in")
	require.NoError(t, err)

	paths := make([]string, 0, len(manifests))
	for _, m := range manifests {
		paths = append(paths, m.Path)
	}
	assert.Equal(t, []string{"apps/api/deployment.yaml", "apps/values.yml"}, paths)
	assert.Equal(t, "kind: Deployment\n", string(manifests[0].Data))
	assert.Equal(t, []string{"logo.yaml"}, skipped)
}

func TestCollectExclude(t *testing.T) {
	fs := setup(t)
	require.NoError(t, fs.MkdirAll("/in/generated/apps", 0o755))
	require.NoError(t, vfs.WriteFile(fs, "/in/generated/apps/values.yml", []byte("host: x\n"), 0o644))
	require.NoError(t, vfs.WriteFile(fs, "/in/awsgitops.yaml", []byte("generators: {}\n"), 0o644))
	require.NoError(t, vfs.WriteFile(fs, "/in/zz.yaml", []byte("kind: Service\n"), 0o644))

	manifests, _, err := Collect(fs, "/in", "/in/awsgitops.yaml", "in/generated", "")
	require.NoError(t, err)

	paths := make([]string, 0, len(manifests))
	for _, m := range manifests {
		paths = append(paths, m.Path)
	}
	assert.Equal(t, []string{"apps/api/deployment.yaml", "apps/values.yml", "zz.yaml"}, paths)
}

func TestCollectFile(t *testing.T) {
	fs := setup(t)

	manifests, skipped, err := Collect(fs, "/in/apps/values.yml")
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	assert.Equal(t, "values.yml", manifests[0].Path)
	assert.Empty(t, skipped)

	_, _, err = Collect(fs, "/in/logo.yaml")
	require.Error(t, err)

	_, _, err = Collect(fs, "/missing")
	require.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	fs := memoryfs.New()

	out, err := WriteFile(fs, "/out", "apps/api/deployment.yaml", []byte("kind: Deployment\n"))
	require.NoError(t, err)
	assert.Equal(t, "/out/apps/api/deployment.yaml", out)

	data, err := vfs.ReadFile(fs, out)
	require.NoError(t, err)
	assert.Equal(t, "kind: Deployment\n", string(data))

	out, err = WriteFile(fs, "/out", "../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "/out/etc/passwd", out)
}
