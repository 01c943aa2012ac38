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

	"github.com/mr-tron/base58"
)

// HashLength is the length of a ledger hash in bytes.
const HashLength = 32

// Hash is a SHA-256 digest, such as a block hash or a transaction hash. Its
// textual form is base58.
type Hash [HashLength]byte

// ZeroHash is the empty hash.
var ZeroHash Hash

// HashFromBytes copies the given bytes into a hash.
func HashFromBytes(data []byte) (Hash, error) {
	var h Hash
	if len(data) != HashLength {
		return h, fmt.Errorf("invalid hash length (have: %d, want: %d)", len(data), HashLength)
	}
	copy(h[:], data)
	return h, nil
}

// ParseHash parses a base58 encoded hash.
func ParseHash(s string) (Hash, error) {
	data, err := base58.Decode(s)
	if err != nil {
		return ZeroHash, fmt.Errorf("could not decode base58: %w", err)
	}
	return HashFromBytes(data)
}

func (h Hash) IsZero() bool {
	return h == ZeroHash
}

func (h Hash) String() string {
	return base58.Encode(h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	hash, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = hash
	return nil
}
