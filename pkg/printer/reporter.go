// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package printer

import (
	"github.com/go-logr/logr"

	"github.com/awsgitops/awsgitops/pkg/generator"
)

// Reporter forwards generator status updates and log events to a logr.Logger.
// Status updates are logged at verbosity 1, errors and warnings always.
type Reporter struct {
	log logr.Logger
}

var _ generator.Reporter = &Reporter{}

// NewReporter returns a Reporter logging to log.
func NewReporter(log logr.Logger) *Reporter {
	return &Reporter{log: log}
}

// WithValues returns a Reporter adding keysAndValues to every event, e.g. the manifest being processed.
func (r *Reporter) WithValues(keysAndValues ...interface{}) *Reporter {
	return &Reporter{log: r.log.WithValues(keysAndValues...)}
}

func (r *Reporter) SetStatus(name string, stage generator.Stage, state string) {
	r.log.V(1).Info(state, "generator", name, "stage", string(stage))
}

func (r *Reporter) Log(name string, severity generator.Severity, msg string) {
	switch severity {
	case generator.SeverityError:
		r.log.Error(nil, msg, "generator", name)
	default:
		r.log.Info(msg, "generator", name, "severity", string(severity))
	}
}
