// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package printer

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/theckman/yacspin"
)

// Printer is a wrapper around the fmt package to print to a defined output.
type Printer struct {
	mu      sync.Mutex
	output  io.Writer
	spinner *yacspin.Spinner
}

// Newprinter returns a new Printer. The spinner is only enabled when interactive is true.
func Newprinter(output io.Writer, interactive bool) (*Printer, error) {
	p := &Printer{
		output: output,
	}
	if !interactive {
		return p, nil
	}

	cfg := yacspin.Config{
		Writer:            output,
		Frequency:         200 * time.Millisecond,
		CharSet:           yacspin.CharSets[26],
		Prefix:            " ",
		Suffix:            " ",
		SuffixAutoColon:   true,
		StopCharacter:     "✓",
		StopColors:        []string{"fgGreen"},
		StopFailCharacter: "✗",
		StopFailColors:    []string{"fgRed"},
	}
	spinner, err := yacspin.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create spinner: %w", err)
	}
	p.spinner = spinner

	return p, nil
}

// Printf is a convenience method to Printf to the defined output.
func (p *Printer) Printf(format string, i ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out(), format, i...)
}

// Println is a convenience method to Println to the defined output.
func (p *Printer) Println(i ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out(), i...)
}

// out returns the output to use.
func (p *Printer) out() io.Writer {
	if p.output != nil {
		return p.output
	}
	return io.Discard
}

// PrintSpinner starts the spinner with message, or prints message when there is no spinner.
func (p *Printer) PrintSpinner(message string) error {
	if p.spinner == nil {
		p.Printf(" %s ...\n", message)
		return nil
	}

	p.spinner.Message(message)
	if p.spinner.Status() == yacspin.SpinnerStopped {
		if err := p.spinner.Start(); err != nil {
			return fmt.Errorf("failed to start spinner: %w", err)
		}
	}
	return nil
}

// StopSpinner stops the spinner with a success message.
func (p *Printer) StopSpinner(message string) error {
	if p.spinner == nil {
		p.Printf(" %s %s\n", color.GreenString("✓"), message)
		return nil
	}

	p.spinner.StopMessage(message)
	if err := p.spinner.Stop(); err != nil {
		return fmt.Errorf("failed to stop spinner: %w", err)
	}
	return nil
}

// StopFailSpinner stops the spinner with a failure message.
func (p *Printer) StopFailSpinner(message string) error {
	if p.spinner == nil {
		p.Printf(" %s %s\n", color.RedString("✗"), message)
		return nil
	}

	p.spinner.StopFailMessage(message)
	if err := p.spinner.StopFail(); err != nil {
		return fmt.Errorf("failed to stop spinner: %w", err)
	}
	return nil
}

// BoldBlue returns a string formatted with blue and bold.
func BoldBlue(msg interface{}) string {
	return color.New(color.FgBlue).Add(color.Bold).Sprint(msg)
}

// BoldRed returns a string formatted with red and bold.
func BoldRed(msg interface{}) string {
	return color.New(color.FgRed).Add(color.Bold).Sprint(msg)
}

// BoldYellow returns a string formatted with yellow and bold.
func BoldYellow(msg interface{}) string {
	return color.New(color.FgYellow).Add(color.Bold).Sprint(msg)
}
