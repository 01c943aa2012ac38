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

package signer

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/optakt/near-go/models/near"
)

// InMemory signs with an ed25519 secret key held in memory.
type InMemory struct {
	secret ed25519.PrivateKey
	public near.PublicKey
}

// NewInMemory creates a signer from an ed25519 secret key, which contains the
// seed followed by the public key. The public key must be the one derived from
// the seed.
func NewInMemory(secret near.SecretKey) (*InMemory, error) {
	if secret.Type != near.ED25519 {
		return nil, fmt.Errorf("invalid key type for in-memory signer (have: %s, want: %s)", secret.Type, near.ED25519)
	}
	if len(secret.Data) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid secret key length (have: %d, want: %d)", len(secret.Data), ed25519.PrivateKeySize)
	}
	s := fromSeed(secret.Data[:ed25519.SeedSize])
	if !bytes.Equal(s.public.Data, secret.Data[ed25519.SeedSize:]) {
		return nil, fmt.Errorf("secret key does not match its public key")
	}
	return s, nil
}

// FromSeed creates a signer from a 32-byte ed25519 seed.
func FromSeed(seed []byte) (*InMemory, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid seed length (have: %d, want: %d)", len(seed), ed25519.SeedSize)
	}
	return fromSeed(seed), nil
}

// Generate creates a signer with a new random key.
func Generate() (*InMemory, error) {
	seed := make([]byte, ed25519.SeedSize)
	_, err := rand.Read(seed)
	if err != nil {
		return nil, fmt.Errorf("could not read random seed: %w", err)
	}
	return fromSeed(seed), nil
}

func fromSeed(seed []byte) *InMemory {
	secret := ed25519.NewKeyFromSeed(seed)
	public := secret.Public().(ed25519.PublicKey)
	s := InMemory{
		secret: secret,
		public: near.PublicKey{Type: near.ED25519, Data: []byte(public)},
	}
	return &s
}

func (i *InMemory) PublicKey() near.PublicKey {
	return i.public
}

// SecretKey returns the secret key in its transportable form.
func (i *InMemory) SecretKey() near.SecretKey {
	return near.SecretKey{Type: near.ED25519, Data: append([]byte(nil), i.secret...)}
}

func (i *InMemory) Sign(data []byte) (near.Signature, error) {
	sig := ed25519.Sign(i.secret, data)
	return near.Signature{Type: near.ED25519, Data: sig}, nil
}
