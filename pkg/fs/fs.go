// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/gabriel-vasile/mimetype"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/awsgitops/awsgitops/pkg/env"
)

// Manifest is an input manifest.
type Manifest struct {
	// Path is the path of the manifest relative to the input root.
	Path string
	// Data is the content of the manifest.
	Data []byte
}

// Collect reads the manifests at input. If input is a directory it is walked
// in lexical order and every text file with a manifest extension is returned.
// Files and directories listed in exclude are not collected, e.g. the configuration
// file or the output directory of a previous run.
// It also returns the paths of the files that were skipped because they are not text.
func Collect(fs vfs.FileSystem, input string, exclude ...string) ([]Manifest, []string, error) {
	fi, err := fs.Stat(input)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat input %q: %w", input, err)
	}

	if !fi.IsDir() {
		data, err := vfs.ReadFile(fs, input)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read manifest %q: %w", input, err)
		}
		if !isText(data) {
			return nil, nil, fmt.Errorf("manifest %q is not a text file", input)
		}
		return []Manifest{{Path: filepath.Base(input), Data: data}}, nil, nil
	}

	root, err := absPath(fs, input)
	if err != nil {
		return nil, nil, err
	}
	excluded := make([]string, 0, len(exclude))
	for _, e := range exclude {
		if e == "" {
			continue
		}
		p, err := absPath(fs, e)
		if err != nil {
			return nil, nil, err
		}
		excluded = append(excluded, p)
	}

	var (
		manifests []Manifest
		skipped   []string
	)
	err = vfs.Walk(fs, input, func(file string, fi os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk path %q: %w", file, err)
		}

		// Ignore anything that is not a regular file e.g. symlinks
		if !fi.Mode().IsRegular() || !hasManifestExtension(file) {
			return nil
		}

		rel, err := filepath.Rel(input, file)
		if err != nil {
			return fmt.Errorf("failed to compute relative path of %q: %w", file, err)
		}
		if isExcluded(filepath.Join(root, rel), excluded) {
			return nil
		}

		data, err := vfs.ReadFile(fs, file)
		if err != nil {
			return fmt.Errorf("failed to read manifest %q: %w", file, err)
		}

		if !isText(data) {
			skipped = append(skipped, rel)
			return nil
		}

		manifests = append(manifests, Manifest{Path: rel, Data: data})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return manifests, skipped, nil
}

// WriteFile writes data to path below rootDir. The path cannot escape rootDir.
// It returns the path of the written file.
func WriteFile(fs vfs.FileSystem, rootDir, path string, data []byte) (string, error) {
	output, err := securejoin.SecureJoinVFS(rootDir, path, fs)
	if err != nil {
		return "", fmt.Errorf("failed to join %q and %q: %w", rootDir, path, err)
	}

	if err := fs.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return "", fmt.Errorf("unable to create dir, error: %w", err)
	}

	if err := vfs.WriteFile(fs, output, data, 0o644); err != nil {
		return "", fmt.Errorf("unable to write file, error: %w", err)
	}

	return output, nil
}

// absPath returns the cleaned absolute form of path in fs.
func absPath(fs vfs.FileSystem, path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	wd, err := fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Join(wd, path), nil
}

// isExcluded reports whether file is one of excluded or below one of them.
// vfs.SkipDir is not used as it also ends the walk of the parent directory.
func isExcluded(file string, excluded []string) bool {
	for _, e := range excluded {
		if file == e || strings.HasPrefix(file, e+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// isText reports whether data is detected as text/plain or a subtype of it, e.g. JSON.
func isText(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func hasManifestExtension(file string) bool {
	ext := strings.ToLower(filepath.Ext(file))
	for _, e := range env.ManifestExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
