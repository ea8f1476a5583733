// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package document

import "sync"

// Handle guards a Document shared by concurrent writers.
type Handle struct {
	// mu is used to synchronize access to doc
	mu  sync.Mutex
	doc *Document
}

// NewHandle returns a Handle around doc.
func NewHandle(doc *Document) *Handle {
	return &Handle{doc: doc}
}

// Apply runs fn with exclusive access to the document.
// The lock is released when fn returns, fails or panics.
func (h *Handle) Apply(fn func(*Document) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return fn(h.doc)
}

// Bytes serializes the guarded document.
func (h *Handle) Bytes() ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.doc.Bytes()
}
