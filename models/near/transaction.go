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

// Transaction is an unsigned batch of actions executed by the signer on the
// receiver account. The nonce and the block hash bind it to the signer's
// access key and to a recent block.
type Transaction struct {
	SignerID   AccountID
	PublicKey  PublicKey
	Nonce      uint64
	ReceiverID AccountID
	BlockHash  Hash
	Actions    []Action
}

// SignedTransaction is a transaction together with the signature of its
// hash. It is immutable once created.
type SignedTransaction struct {
	transaction Transaction
	signature   Signature
	hash        Hash
}

// NewSignedTransaction bundles a transaction with its signature and with the
// hash that was signed.
func NewSignedTransaction(tx Transaction, sig Signature, hash Hash) *SignedTransaction {
	tx.Actions = CloneActions(tx.Actions)
	signed := SignedTransaction{
		transaction: tx,
		signature:   sig,
		hash:        hash,
	}
	return &signed
}

// Transaction returns a copy of the signed transaction's content.
func (s *SignedTransaction) Transaction() Transaction {
	tx := s.transaction
	tx.Actions = CloneActions(tx.Actions)
	return tx
}

func (s *SignedTransaction) Signature() Signature {
	return s.signature
}

// Hash returns the hash of the canonical encoding of the transaction.
func (s *SignedTransaction) Hash() Hash {
	return s.hash
}

func (s *SignedTransaction) SignerID() AccountID {
	return s.transaction.SignerID
}
