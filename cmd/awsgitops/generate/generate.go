// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/awsgitops/awsgitops/cmd/awsgitops/config"
	pkgconfig "github.com/awsgitops/awsgitops/pkg/config"
	"github.com/awsgitops/awsgitops/pkg/document"
	"github.com/awsgitops/awsgitops/pkg/fs"
	"github.com/awsgitops/awsgitops/pkg/generator"
	"github.com/awsgitops/awsgitops/pkg/printer"
)

// GenerateCmd defines the command generating manifests.
type GenerateCmd struct {
	config.GenerateConfig

	// FS is the file system to read and write manifests. Defaults to the OS file system.
	FS vfs.FileSystem
	// Registry provides the generators. Defaults to the AWS backed registry.
	Registry *generator.Registry
	// Out receives the manifests when Stdout is set. Defaults to os.Stdout.
	Out io.Writer
}

// NewGenerateCmd returns a new command generating manifests.
func NewGenerateCmd(c config.GenerateConfig) *GenerateCmd {
	return &GenerateCmd{
		GenerateConfig: c,
	}
}

// Execute executes the command and returns an error if one occurred.
// Every manifest is processed; the failures of all manifests are returned joined.
func (g *GenerateCmd) Execute(ctx context.Context, cfg *config.AwsgitopsConfig) error {
	t, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", cfg.Timeout, err)
	}
	ctx, cancel := context.WithTimeout(ctx, t)
	defer cancel()

	g.setDefaults()

	conf, err := pkgconfig.Load(g.FS, g.ConfigPath)
	if err != nil {
		return err
	}
	if g.Region != "" {
		conf.Region = g.Region
	}
	if g.Concurrency > 0 {
		conf.Concurrency = g.Concurrency
	}

	registry := g.Registry
	if registry == nil {
		registry, err = NewAWSRegistry(ctx, conf.Region)
		if err != nil {
			return err
		}
	}

	manifests, skipped, err := fs.Collect(g.FS, g.Input, g.ConfigPath, g.Output)
	if err != nil {
		return err
	}
	for _, s := range skipped {
		cfg.Printer.Printf("Skipping %s: not a text file\n", printer.BoldYellow(s))
	}
	if len(manifests) == 0 {
		return fmt.Errorf("no manifests found in %s", g.Input)
	}

	cfg.Printer.Printf("Running %s on %d manifest(s) ...\n", printer.BoldBlue("awsgitops generate"), len(manifests))

	reporter := printer.NewReporter(cfg.Logger)

	var errs []error
	for _, m := range manifests {
		generators, err := registry.Build(conf.Generators,
			generator.WithReporter(reporter.WithValues("manifest", m.Path)))
		if err != nil {
			return err
		}
		runner := generator.NewRunner(generators, generator.WithMaxParallel(conf.Concurrency))

		if err := g.generate(ctx, cfg.Printer, runner, m); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.Path, err))
		}
	}

	return errors.Join(errs...)
}

func (g *GenerateCmd) generate(ctx context.Context, p *printer.Printer, runner *generator.Runner, m fs.Manifest) (err error) {
	if err := p.PrintSpinner(fmt.Sprintf("Generating %s", printer.BoldBlue(m.Path))); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if er := p.StopFailSpinner(fmt.Sprintf("Generating %s", printer.BoldRed(m.Path))); er != nil {
				err = errors.Join(err, er)
			}
		}
	}()

	doc, err := document.Parse(m.Data)
	if err != nil {
		return err
	}
	h := document.NewHandle(doc)

	if err := runner.Run(ctx, h); err != nil {
		return err
	}

	data, err := h.Bytes()
	if err != nil {
		return err
	}

	if g.Stdout {
		if _, err := fmt.Fprintf(g.Out, "---\n# Source: %s\n%s", m.Path, data); err != nil {
			return fmt.Errorf("failed to print manifest: %w", err)
		}
		return p.StopSpinner(fmt.Sprintf("Generated %s", printer.BoldBlue(m.Path)))
	}

	out, err := fs.WriteFile(g.FS, g.Output, m.Path, data)
	if err != nil {
		return err
	}

	return p.StopSpinner(fmt.Sprintf("Generated %s", printer.BoldBlue(out)))
}

func (g *GenerateCmd) setDefaults() {
	if g.FS == nil {
		g.FS = osfs.New()
	}
	if g.Out == nil {
		g.Out = os.Stdout
	}
}
