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

package mocks

import (
	"testing"

	"github.com/optakt/near-go/models/near"
)

type Signer struct {
	PublicKeyFunc func() near.PublicKey
	SignFunc      func(data []byte) (near.Signature, error)
}

func BaselineSigner(t *testing.T) *Signer {
	t.Helper()

	s := Signer{
		PublicKeyFunc: func() near.PublicKey {
			return GenericPublicKey
		},
		SignFunc: func([]byte) (near.Signature, error) {
			return GenericSignature, nil
		},
	}

	return &s
}

func (s *Signer) PublicKey() near.PublicKey {
	return s.PublicKeyFunc()
}

func (s *Signer) Sign(data []byte) (near.Signature, error) {
	return s.SignFunc(data)
}
