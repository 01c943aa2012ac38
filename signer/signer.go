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
	"crypto/ed25519"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/optakt/near-go/models/near"
)

// Signer is implemented by both signers of this package.
type Signer interface {
	PublicKey() near.PublicKey
	Sign(data []byte) (near.Signature, error)
	SecretKey() near.SecretKey
}

// FromSecretKey creates the signer matching the type of the secret key.
func FromSecretKey(secret near.SecretKey) (Signer, error) {
	switch secret.Type {
	case near.ED25519:
		s, err := NewInMemory(secret)
		if err != nil {
			return nil, err
		}
		return s, nil
	case near.SECP256K1:
		s, err := NewSecp256k1(secret)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported key type %s", secret.Type)
	}
}

// Verify checks that the signature was made over the data by the owner of the
// public key.
func Verify(key near.PublicKey, data []byte, sig near.Signature) error {
	err := key.Validate()
	if err != nil {
		return fmt.Errorf("invalid public key: %w", err)
	}
	err = sig.Validate()
	if err != nil {
		return fmt.Errorf("invalid signature: %w", err)
	}
	if key.Type != sig.Type {
		return fmt.Errorf("mismatching key and signature types (key: %s, signature: %s)", key.Type, sig.Type)
	}

	switch key.Type {
	case near.ED25519:
		if !ed25519.Verify(ed25519.PublicKey(key.Data), data, sig.Data) {
			return fmt.Errorf("ed25519 signature does not match")
		}
	case near.SECP256K1:
		public := append([]byte{0x04}, key.Data...)
		if !crypto.VerifySignature(public, data, sig.Data[:64]) {
			return fmt.Errorf("secp256k1 signature does not match")
		}
	}

	return nil
}
