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
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/optakt/near-go/models/near"
)

// Secp256k1 signs 32-byte digests with a secp256k1 key. Signatures carry the
// recovery byte after R and S.
type Secp256k1 struct {
	secret *ecdsa.PrivateKey
	public near.PublicKey
}

// NewSecp256k1 creates a signer from a 32-byte secp256k1 secret key.
func NewSecp256k1(secret near.SecretKey) (*Secp256k1, error) {
	if secret.Type != near.SECP256K1 {
		return nil, fmt.Errorf("invalid key type for secp256k1 signer (have: %s, want: %s)", secret.Type, near.SECP256K1)
	}
	key, err := crypto.ToECDSA(secret.Data)
	if err != nil {
		return nil, fmt.Errorf("could not parse secp256k1 key: %w", err)
	}
	return fromECDSA(key), nil
}

// GenerateSecp256k1 creates a signer with a new random secp256k1 key.
func GenerateSecp256k1() (*Secp256k1, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("could not generate secp256k1 key: %w", err)
	}
	return fromECDSA(key), nil
}

func fromECDSA(key *ecdsa.PrivateKey) *Secp256k1 {
	// The uncompressed encoding starts with a 0x04 prefix that the ledger
	// does not store.
	public := crypto.FromECDSAPub(&key.PublicKey)[1:]
	s := Secp256k1{
		secret: key,
		public: near.PublicKey{Type: near.SECP256K1, Data: public},
	}
	return &s
}

func (s *Secp256k1) PublicKey() near.PublicKey {
	return s.public
}

func (s *Secp256k1) SecretKey() near.SecretKey {
	return near.SecretKey{Type: near.SECP256K1, Data: crypto.FromECDSA(s.secret)}
}

// Sign signs a 32-byte digest, such as a transaction hash.
func (s *Secp256k1) Sign(data []byte) (near.Signature, error) {
	sig, err := crypto.Sign(data, s.secret)
	if err != nil {
		return near.Signature{}, fmt.Errorf("could not sign digest: %w", err)
	}
	return near.Signature{Type: near.SECP256K1, Data: sig}, nil
}
