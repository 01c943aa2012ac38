// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package near

import (
	"fmt"
)

const (
	minAccountIDLength = 2
	maxAccountIDLength = 64
)

// AccountID is the human-readable identifier of an account on the ledger.
type AccountID string

func (a AccountID) String() string {
	return string(a)
}

// Validate checks the account ID against the ledger's naming rules: between
// 2 and 64 characters, made of lowercase alphanumeric parts separated by a
// single '.', '-' or '_'.
func (a AccountID) Validate() error {
	id := string(a)
	if len(id) < minAccountIDLength || len(id) > maxAccountIDLength {
		return fmt.Errorf("invalid account ID length (have: %d, min: %d, max: %d)", len(id), minAccountIDLength, maxAccountIDLength)
	}

	// Start as if we just read a separator, so leading separators fail.
	separator := true
	for i, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			separator = false
		case c == '.' || c == '-' || c == '_':
			if separator {
				return fmt.Errorf("unexpected separator %q at position %d", c, i)
			}
			separator = true
		default:
			return fmt.Errorf("invalid character %q at position %d", c, i)
		}
	}
	if separator {
		return fmt.Errorf("account ID can not end with a separator")
	}

	return nil
}

// IsSubAccountOf returns whether the account is a direct sub-account of the
// given parent, like `app.alice.near` is for `alice.near`.
func (a AccountID) IsSubAccountOf(parent AccountID) bool {
	id := string(a)
	suffix := "." + string(parent)
	if len(id) <= len(suffix) || id[len(id)-len(suffix):] != suffix {
		return false
	}
	prefix := id[:len(id)-len(suffix)]
	for _, c := range prefix {
		if c == '.' {
			return false
		}
	}
	return true
}
