// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package document

import "fmt"

// Lookup reads the value at path from a generic data tree made of
// map[string]any, []any and scalars.
func Lookup(data any, path Path) (any, error) {
	cur := data
	for i, seg := range path {
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[seg]
			if !ok {
				return nil, fmt.Errorf("key %q not found at %s", seg, path[:i+1])
			}
			cur = next
		case []any:
			idx, ok := index(seg, len(v))
			if !ok {
				return nil, fmt.Errorf("index %q out of range at %s", seg, path[:i+1])
			}
			cur = v[idx]
		default:
			return nil, fmt.Errorf("cannot descend into %T at %s", cur, path[:i+1])
		}
	}
	return cur, nil
}
