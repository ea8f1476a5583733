// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package generator

import "sync"

// Stage identifies a lifecycle stage in status reports.
type Stage string

const (
	StageGetInstance Stage = "GET_INST"
	StageOperational Stage = "OPERATIONAL"
	StageGetData     Stage = "GET_DATA"
	StageGenerate    Stage = "GENERATE"
)

// Severity of a log event.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Reporter receives the status updates and log events of generators.
// Implementations must be safe for concurrent use.
type Reporter interface {
	// SetStatus reports the current stage of a generator and a free-text state.
	SetStatus(generator string, stage Stage, state string)
	// Log emits a log event.
	Log(generator string, severity Severity, msg string)
}

// Event is a status update or log event captured by a Recorder.
// Status updates have an empty Severity.
type Event struct {
	Generator string
	Stage     Stage
	Severity  Severity
	Message   string
}

// Recorder is a Reporter that keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

var _ Reporter = &Recorder{}

func (r *Recorder) SetStatus(generator string, stage Stage, state string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Generator: generator, Stage: stage, Message: state})
}

func (r *Recorder) Log(generator string, severity Severity, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Generator: generator, Severity: severity, Message: msg})
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Logs returns the messages of the recorded log events with the given severity.
func (r *Recorder) Logs(severity Severity) []string {
	var out []string
	for _, e := range r.Events() {
		if e.Severity == severity {
			out = append(out, e.Message)
		}
	}
	return out
}

type discard struct{}

func (discard) SetStatus(string, Stage, string) {}
func (discard) Log(string, Severity, string)    {}

// Discard is a Reporter that drops everything.
var Discard Reporter = discard{}
