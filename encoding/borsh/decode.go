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
	"crypto/sha256"
	"fmt"

	"github.com/optakt/near-go/models/near"
)

// DecodeTransaction decodes an unsigned transaction.
func DecodeTransaction(data []byte) (*near.Transaction, error) {
	r := NewReader(data)
	tx := readTransaction(r)
	err := r.Finish()
	if err != nil {
		return nil, fmt.Errorf("could not decode transaction: %w", err)
	}
	return &tx, nil
}

// DecodeSignedTransaction decodes a signed transaction. Its hash is computed
// from the encoded transaction bytes.
func DecodeSignedTransaction(data []byte) (*near.SignedTransaction, error) {
	r := NewReader(data)
	tx := readTransaction(r)
	end := r.Offset()
	sig := readSignature(r)
	err := r.Finish()
	if err != nil {
		return nil, fmt.Errorf("could not decode signed transaction: %w", err)
	}
	hash := near.Hash(sha256.Sum256(data[:end]))
	return near.NewSignedTransaction(tx, sig, hash), nil
}

// DecodeSignedDelegateAction decodes a signed delegate action.
func DecodeSignedDelegateAction(data []byte) (*near.SignedDelegateAction, error) {
	r := NewReader(data)
	signed := readSignedDelegateAction(r)
	err := r.Finish()
	if err != nil {
		return nil, fmt.Errorf("could not decode signed delegate action: %w", err)
	}
	return &signed, nil
}

func readTransaction(r *Reader) near.Transaction {
	var tx near.Transaction
	tx.SignerID = near.AccountID(r.String())
	tx.PublicKey = readPublicKey(r)
	tx.Nonce = r.U64()
	tx.ReceiverID = near.AccountID(r.String())
	copy(tx.BlockHash[:], r.Fixed(near.HashLength))
	tx.Actions = readActions(r, true)
	return tx
}

func readSignedDelegateAction(r *Reader) near.SignedDelegateAction {
	var signed near.SignedDelegateAction
	signed.DelegateAction.SenderID = near.AccountID(r.String())
	signed.DelegateAction.ReceiverID = near.AccountID(r.String())
	signed.DelegateAction.Actions = readActions(r, false)
	signed.DelegateAction.Nonce = r.U64()
	signed.DelegateAction.MaxBlockHeight = r.U64()
	signed.DelegateAction.PublicKey = readPublicKey(r)
	signed.Signature = readSignature(r)
	return signed
}

func readActions(r *Reader, allowDelegate bool) []near.Action {
	count := r.Len()
	actions := make([]near.Action, 0, count)
	for i := 0; i < count && r.Err() == nil; i++ {
		action := readAction(r, allowDelegate)
		if r.Err() != nil {
			break
		}
		actions = append(actions, action)
	}
	return actions
}

func readAction(r *Reader, allowDelegate bool) near.Action {
	typ := near.ActionType(r.U8())
	switch typ {
	case near.ActionCreateAccount:
		return near.CreateAccount{}

	case near.ActionDeployContract:
		return near.DeployContract{Code: r.Bytes()}

	case near.ActionFunctionCall:
		var call near.FunctionCall
		call.MethodName = r.String()
		call.Args = r.Bytes()
		call.Gas = r.U64()
		call.Deposit = readBalance(r)
		return call

	case near.ActionTransfer:
		return near.Transfer{Deposit: readBalance(r)}

	case near.ActionStake:
		var stake near.Stake
		stake.Stake = readBalance(r)
		stake.PublicKey = readPublicKey(r)
		return stake

	case near.ActionAddKey:
		var add near.AddKey
		add.PublicKey = readPublicKey(r)
		add.AccessKey = readAccessKey(r)
		return add

	case near.ActionDeleteKey:
		return near.DeleteKey{PublicKey: readPublicKey(r)}

	case near.ActionDeleteAccount:
		return near.DeleteAccount{BeneficiaryID: near.AccountID(r.String())}

	case near.ActionDelegate:
		if !allowDelegate {
			r.Fail(ErrNestedDelegate)
			return nil
		}
		return near.Delegate{SignedDelegateAction: readSignedDelegateAction(r)}

	default:
		r.Fail(fmt.Errorf("unknown action type %d", uint8(typ)))
		return nil
	}
}

func readAccessKey(r *Reader) near.AccessKey {
	var key near.AccessKey
	key.Nonce = r.U64()

	switch perm := r.U8(); perm {
	case permissionFullAccess:
		return key

	case permissionFunctionCall:
		var call near.FunctionCallPermission
		if r.Bool() {
			allowance := readBalance(r)
			call.Allowance = &allowance
		}
		call.ReceiverID = near.AccountID(r.String())
		count := r.Len()
		methods := make([]string, 0, count)
		for i := 0; i < count && r.Err() == nil; i++ {
			methods = append(methods, r.String())
		}
		call.MethodNames = methods
		key.Permission.FunctionCall = &call
		return key

	default:
		r.Fail(fmt.Errorf("unknown access key permission %d", perm))
		return key
	}
}

func readBalance(r *Reader) near.Balance {
	lo, hi := r.U128()
	return near.BalanceFromParts(lo, hi)
}

func readPublicKey(r *Reader) near.PublicKey {
	typ := near.KeyType(r.U8())
	length := typ.PublicKeyLength()
	if r.Err() == nil && length == 0 {
		r.Fail(fmt.Errorf("unknown key type %d", uint8(typ)))
		return near.PublicKey{}
	}
	return near.PublicKey{Type: typ, Data: r.Fixed(length)}
}

func readSignature(r *Reader) near.Signature {
	typ := near.KeyType(r.U8())
	length := typ.SignatureLength()
	if r.Err() == nil && length == 0 {
		r.Fail(fmt.Errorf("unknown signature type %d", uint8(typ)))
		return near.Signature{}
	}
	return near.Signature{Type: typ, Data: r.Fixed(length)}
}
