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
	"bytes"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// KeyType is the curve of a key or signature.
type KeyType uint8

// Supported key types, using the ledger's discriminants.
const (
	ED25519   KeyType = 0
	SECP256K1 KeyType = 1
)

const (
	ed25519Name   = "ed25519"
	secp256k1Name = "secp256k1"
)

func (k KeyType) String() string {
	switch k {
	case ED25519:
		return ed25519Name
	case SECP256K1:
		return secp256k1Name
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// PublicKeyLength is the length of the raw public key data for the key type.
func (k KeyType) PublicKeyLength() int {
	switch k {
	case ED25519:
		return 32
	case SECP256K1:
		return 64
	default:
		return 0
	}
}

// SignatureLength is the length of the raw signature data for the key type.
func (k KeyType) SignatureLength() int {
	switch k {
	case ED25519:
		return 64
	case SECP256K1:
		return 65
	default:
		return 0
	}
}

// SecretKeyLength is the length of the raw secret key data for the key type.
// Ed25519 secret keys carry the seed followed by the public key.
func (k KeyType) SecretKeyLength() int {
	switch k {
	case ED25519:
		return 64
	case SECP256K1:
		return 32
	default:
		return 0
	}
}

// ParseKeyType parses the textual prefix of a key.
func ParseKeyType(s string) (KeyType, error) {
	switch strings.ToLower(s) {
	case ed25519Name:
		return ED25519, nil
	case secp256k1Name:
		return SECP256K1, nil
	default:
		return 0, fmt.Errorf("unknown key type %q", s)
	}
}

// PublicKey is a typed public key as used by access keys.
type PublicKey struct {
	Type KeyType
	Data []byte
}

// NewPublicKey creates a public key and checks that the data has the right
// length for its type.
func NewPublicKey(typ KeyType, data []byte) (PublicKey, error) {
	key := PublicKey{
		Type: typ,
		Data: append([]byte(nil), data...),
	}
	err := key.Validate()
	if err != nil {
		return PublicKey{}, err
	}
	return key, nil
}

// ParsePublicKey parses a key of the form `ed25519:<base58>`. Keys without a
// prefix are treated as ed25519 keys.
func ParsePublicKey(s string) (PublicKey, error) {
	typ, data, err := parseTyped(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("could not parse public key: %w", err)
	}
	return NewPublicKey(typ, data)
}

func (p PublicKey) Validate() error {
	want := p.Type.PublicKeyLength()
	if want == 0 {
		return fmt.Errorf("unsupported key type %s", p.Type)
	}
	if len(p.Data) != want {
		return fmt.Errorf("invalid %s public key length (have: %d, want: %d)", p.Type, len(p.Data), want)
	}
	return nil
}

func (p PublicKey) IsZero() bool {
	return len(p.Data) == 0
}

func (p PublicKey) Equal(other PublicKey) bool {
	return p.Type == other.Type && bytes.Equal(p.Data, other.Data)
}

func (p PublicKey) String() string {
	return formatTyped(p.Type, p.Data)
}

func (p PublicKey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PublicKey) UnmarshalText(text []byte) error {
	key, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*p = key
	return nil
}

// Signature is a typed signature.
type Signature struct {
	Type KeyType
	Data []byte
}

// NewSignature creates a signature and checks the length of its data.
func NewSignature(typ KeyType, data []byte) (Signature, error) {
	sig := Signature{
		Type: typ,
		Data: append([]byte(nil), data...),
	}
	err := sig.Validate()
	if err != nil {
		return Signature{}, err
	}
	return sig, nil
}

// ParseSignature parses a signature of the form `ed25519:<base58>`.
func ParseSignature(s string) (Signature, error) {
	typ, data, err := parseTyped(s)
	if err != nil {
		return Signature{}, fmt.Errorf("could not parse signature: %w", err)
	}
	return NewSignature(typ, data)
}

func (s Signature) Validate() error {
	want := s.Type.SignatureLength()
	if want == 0 {
		return fmt.Errorf("unsupported signature type %s", s.Type)
	}
	if len(s.Data) != want {
		return fmt.Errorf("invalid %s signature length (have: %d, want: %d)", s.Type, len(s.Data), want)
	}
	return nil
}

func (s Signature) String() string {
	return formatTyped(s.Type, s.Data)
}

func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Signature) UnmarshalText(text []byte) error {
	sig, err := ParseSignature(string(text))
	if err != nil {
		return err
	}
	*s = sig
	return nil
}

// SecretKey is a typed secret key. It is only used to build in-memory signers
// and key stores; it never leaves the process.
type SecretKey struct {
	Type KeyType
	Data []byte
}

// ParseSecretKey parses a secret key of the form `ed25519:<base58>`.
func ParseSecretKey(s string) (SecretKey, error) {
	typ, data, err := parseTyped(s)
	if err != nil {
		return SecretKey{}, fmt.Errorf("could not parse secret key: %w", err)
	}
	want := typ.SecretKeyLength()
	if len(data) != want {
		return SecretKey{}, fmt.Errorf("invalid %s secret key length (have: %d, want: %d)", typ, len(data), want)
	}
	key := SecretKey{
		Type: typ,
		Data: data,
	}
	return key, nil
}

func (s SecretKey) String() string {
	return formatTyped(s.Type, s.Data)
}

func parseTyped(s string) (KeyType, []byte, error) {
	typ := ED25519
	encoded := s
	parts := strings.SplitN(s, ":", 2)
	if len(parts) == 2 {
		var err error
		typ, err = ParseKeyType(parts[0])
		if err != nil {
			return 0, nil, err
		}
		encoded = parts[1]
	}
	if encoded == "" {
		return 0, nil, fmt.Errorf("empty key data")
	}
	data, err := base58.Decode(encoded)
	if err != nil {
		return 0, nil, fmt.Errorf("could not decode base58: %w", err)
	}
	return typ, data, nil
}

func formatTyped(typ KeyType, data []byte) string {
	return typ.String() + ":" + base58.Encode(data)
}
