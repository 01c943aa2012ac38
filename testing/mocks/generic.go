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
	"bytes"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/optakt/near-go/models/near"
)

// Global variables that can be used for testing. They are non-nil valid values
// for the types commonly needed to test the transaction pipeline.
var (
	NoopLogger = zerolog.New(io.Discard)

	GenericError = errors.New("dummy error")

	GenericHeight = uint64(1000)

	GenericNonce = uint64(42)

	GenericBytes = []byte(`test`)

	GenericAccountID = near.AccountID("alice.near")

	GenericReceiverID = near.AccountID("bob.near")

	GenericRelayerID = near.AccountID("relay.near")

	GenericPublicKey = near.PublicKey{
		Type: near.ED25519,
		Data: bytes.Repeat([]byte{0x01}, 32),
	}

	GenericRelayerKey = near.PublicKey{
		Type: near.ED25519,
		Data: bytes.Repeat([]byte{0x02}, 32),
	}

	GenericSignature = near.Signature{
		Type: near.ED25519,
		Data: bytes.Repeat([]byte{0x03}, 64),
	}

	GenericHash = near.Hash{
		0x6e, 0x65, 0x61, 0x72, 0x2d, 0x67, 0x6f, 0x2d,
		0x74, 0x65, 0x73, 0x74, 0x2d, 0x68, 0x61, 0x73,
		0x68, 0x2d, 0x30, 0x30, 0x30, 0x30, 0x30, 0x30,
		0x30, 0x30, 0x30, 0x30, 0x30, 0x30, 0x30, 0x31,
	}

	GenericBlockHeader = near.BlockHeader{
		Height:    GenericHeight,
		Hash:      GenericHash,
		Timestamp: 1_650_000_000_000_000_000,
	}

	GenericAmount = near.NewBalance(1_000_000)

	GenericActions = []near.Action{
		near.Transfer{Deposit: GenericAmount},
	}

	GenericAccessKeyView = near.AccessKeyView{
		AccessKey:   near.AccessKey{Nonce: GenericNonce},
		BlockHeight: GenericHeight,
		BlockHash:   GenericHash,
	}

	GenericOutcome = near.ExecutionOutcome{
		FinalExecutionStatus: near.ExecutedOptimistic,
		Status: near.ExecutionStatus{
			Kind:         near.StatusSuccessValue,
			SuccessValue: []byte{},
		},
		Transaction: near.TransactionView{
			SignerID:   GenericAccountID,
			PublicKey:  GenericPublicKey,
			Nonce:      GenericNonce + 1,
			ReceiverID: GenericReceiverID,
			Hash:       GenericHash,
		},
	}
)

// GenericSignedTransaction returns a signed transfer from the generic account
// to the generic receiver.
func GenericSignedTransaction() *near.SignedTransaction {
	tx := near.Transaction{
		SignerID:   GenericAccountID,
		PublicKey:  GenericPublicKey,
		Nonce:      GenericNonce + 1,
		ReceiverID: GenericReceiverID,
		BlockHash:  GenericHash,
		Actions:    GenericActions,
	}
	return near.NewSignedTransaction(tx, GenericSignature, GenericHash)
}

// GenericSignedDelegateAction returns a signed delegate action from the
// generic account, valid until a hundred blocks after the generic height.
func GenericSignedDelegateAction() near.SignedDelegateAction {
	return near.SignedDelegateAction{
		DelegateAction: near.DelegateAction{
			SenderID:       GenericAccountID,
			ReceiverID:     "app.near",
			Actions:        []near.Action{near.FunctionCall{MethodName: "set_status", Args: []byte(`{"message":"hello"}`), Gas: 30_000_000_000_000}},
			Nonce:          GenericNonce + 1,
			MaxBlockHeight: GenericHeight + 100,
			PublicKey:      GenericPublicKey,
		},
		Signature: GenericSignature,
	}
}
