// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package generator

import "errors"

// Reason classifies a generator failure.
type Reason string

const (
	InvalidCategory    Reason = "InvalidCategory"
	InvalidConfig      Reason = "InvalidConfig"
	ListFailed         Reason = "ListFailed"
	NoMatch            Reason = "NoMatch"
	AmbiguousMatch     Reason = "AmbiguousMatch"
	NotOperational     Reason = "NotOperational"
	ResourceVanished   Reason = "ResourceVanished"
	TargetNotFound     Reason = "TargetNotFound"
	SourceFieldMissing Reason = "SourceFieldMissing"
	StageOrder         Reason = "StageOrder"
)

// Error is returned by the lifecycle stages of a generator.
// None of the reasons are retryable.
type Error struct {
	Generator string
	Reason    Reason
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if msg == "" {
		msg = string(e.Reason)
	}
	if e.Generator != "" {
		msg = e.Generator + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(generator string, reason Reason, message string, cause error) *Error {
	return &Error{
		Generator: generator,
		Reason:    reason,
		Message:   message,
		Cause:     cause,
	}
}

// IsReason reports whether err, or any error in its tree, is an *Error with the given reason.
func IsReason(err error, reason Reason) bool {
	switch e := err.(type) {
	case nil:
		return false
	case *Error:
		if e != nil && e.Reason == reason {
			return true
		}
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if IsReason(inner, reason) {
				return true
			}
		}
		return false
	}
	return IsReason(errors.Unwrap(err), reason)
}
