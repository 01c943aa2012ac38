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

package borsh

import (
	"errors"
	"fmt"

	"github.com/optakt/near-go/models/near"
)

// ErrNestedDelegate is returned when a delegate action contains another
// delegate action.
var ErrNestedDelegate = errors.New("delegate actions can not be nested")

// Access key permission discriminants.
const (
	permissionFunctionCall = 0
	permissionFullAccess   = 1
)

const defaultCapacity = 256

// EncodeTransaction returns the canonical encoding of a transaction, which is
// what gets hashed and signed.
func EncodeTransaction(tx near.Transaction) ([]byte, error) {
	w := NewWriter(defaultCapacity)
	writeTransaction(w, tx)
	return w.Result()
}

// EncodeSignedTransaction returns the encoding of a signed transaction, as
// submitted to the network: the transaction followed by its signature.
func EncodeSignedTransaction(signed *near.SignedTransaction) ([]byte, error) {
	w := NewWriter(defaultCapacity)
	writeTransaction(w, signed.Transaction())
	writeSignature(w, signed.Signature())
	return w.Result()
}

// EncodeAction returns the encoding of a single action.
func EncodeAction(action near.Action) ([]byte, error) {
	w := NewWriter(defaultCapacity)
	writeAction(w, action, true)
	return w.Result()
}

// EncodeDelegateAction returns the encoding of a delegate action. It fails if
// one of its actions is itself a delegate action.
func EncodeDelegateAction(delegate near.DelegateAction) ([]byte, error) {
	w := NewWriter(defaultCapacity)
	writeDelegateAction(w, delegate)
	return w.Result()
}

// EncodeSignedDelegateAction returns the encoding of a signed delegate action.
func EncodeSignedDelegateAction(signed near.SignedDelegateAction) ([]byte, error) {
	w := NewWriter(defaultCapacity)
	writeDelegateAction(w, signed.DelegateAction)
	writeSignature(w, signed.Signature)
	return w.Result()
}

func writeTransaction(w *Writer, tx near.Transaction) {
	w.String(string(tx.SignerID))
	writePublicKey(w, tx.PublicKey)
	w.U64(tx.Nonce)
	w.String(string(tx.ReceiverID))
	w.Fixed(tx.BlockHash[:])
	w.Len(len(tx.Actions))
	for i, action := range tx.Actions {
		if action == nil {
			w.Fail(fmt.Errorf("missing action at index %d", i))
			return
		}
		writeAction(w, action, true)
	}
}

func writeDelegateAction(w *Writer, delegate near.DelegateAction) {
	w.String(string(delegate.SenderID))
	w.String(string(delegate.ReceiverID))
	w.Len(len(delegate.Actions))
	for i, action := range delegate.Actions {
		if action == nil {
			w.Fail(fmt.Errorf("missing action at index %d", i))
			return
		}
		if action.Type() == near.ActionDelegate {
			w.Fail(fmt.Errorf("invalid action at index %d: %w", i, ErrNestedDelegate))
			return
		}
		writeAction(w, action, false)
	}
	w.U64(delegate.Nonce)
	w.U64(delegate.MaxBlockHeight)
	writePublicKey(w, delegate.PublicKey)
}

func writeAction(w *Writer, action near.Action, allowDelegate bool) {
	w.U8(uint8(action.Type()))

	switch a := action.(type) {
	case near.CreateAccount:

	case near.DeployContract:
		w.Bytes(a.Code)

	case near.FunctionCall:
		w.String(a.MethodName)
		w.Bytes(a.Args)
		w.U64(a.Gas)
		writeBalance(w, a.Deposit)

	case near.Transfer:
		writeBalance(w, a.Deposit)

	case near.Stake:
		writeBalance(w, a.Stake)
		writePublicKey(w, a.PublicKey)

	case near.AddKey:
		writePublicKey(w, a.PublicKey)
		writeAccessKey(w, a.AccessKey)

	case near.DeleteKey:
		writePublicKey(w, a.PublicKey)

	case near.DeleteAccount:
		w.String(string(a.BeneficiaryID))

	case near.Delegate:
		if !allowDelegate {
			w.Fail(ErrNestedDelegate)
			return
		}
		writeDelegateAction(w, a.SignedDelegateAction.DelegateAction)
		writeSignature(w, a.SignedDelegateAction.Signature)

	default:
		w.Fail(fmt.Errorf("unsupported action type %T", action))
	}
}

func writeAccessKey(w *Writer, key near.AccessKey) {
	w.U64(key.Nonce)

	perm := key.Permission.FunctionCall
	if perm == nil {
		w.U8(permissionFullAccess)
		return
	}

	w.U8(permissionFunctionCall)
	w.Bool(perm.Allowance != nil)
	if perm.Allowance != nil {
		writeBalance(w, *perm.Allowance)
	}
	w.String(string(perm.ReceiverID))
	w.Len(len(perm.MethodNames))
	for _, method := range perm.MethodNames {
		w.String(method)
	}
}

func writeBalance(w *Writer, balance near.Balance) {
	w.U128(balance.Lo(), balance.Hi())
}

func writePublicKey(w *Writer, key near.PublicKey) {
	err := key.Validate()
	if err != nil {
		w.Fail(fmt.Errorf("invalid public key: %w", err))
		return
	}
	w.U8(uint8(key.Type))
	w.Fixed(key.Data)
}

func writeSignature(w *Writer, sig near.Signature) {
	err := sig.Validate()
	if err != nil {
		w.Fail(fmt.Errorf("invalid signature: %w", err))
		return
	}
	w.U8(uint8(sig.Type))
	w.Fixed(sig.Data)
}
