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
	"encoding/base64"
	"fmt"

	"github.com/goccy/go-json"
)

// StatusKind is the kind of an execution status.
type StatusKind uint8

// Supported status kinds. The zero value is used when the node reported no
// status, like for transactions submitted without waiting.
const (
	StatusUnknown StatusKind = iota
	StatusNotStarted
	StatusStarted
	StatusSuccessValue
	StatusSuccessReceiptID
	StatusFailure
)

func (s StatusKind) String() string {
	switch s {
	case StatusNotStarted:
		return "NotStarted"
	case StatusStarted:
		return "Started"
	case StatusSuccessValue:
		return "SuccessValue"
	case StatusSuccessReceiptID:
		return "SuccessReceiptId"
	case StatusFailure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// ExecutionStatus is the status of a transaction or of a receipt.
type ExecutionStatus struct {
	Kind             StatusKind
	SuccessValue     []byte
	SuccessReceiptID Hash
	Failure          *TxExecutionError
}

// MarshalJSON encodes the status the way nodes report it.
func (e ExecutionStatus) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case StatusSuccessValue:
		value := base64.StdEncoding.EncodeToString(e.SuccessValue)
		return json.Marshal(map[string]string{"SuccessValue": value})
	case StatusSuccessReceiptID:
		return json.Marshal(map[string]Hash{"SuccessReceiptId": e.SuccessReceiptID})
	case StatusFailure:
		return json.Marshal(map[string]*TxExecutionError{"Failure": e.Failure})
	default:
		return json.Marshal(e.Kind.String())
	}
}

func (e *ExecutionStatus) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var name string
		err := json.Unmarshal(trimmed, &name)
		if err != nil {
			return fmt.Errorf("could not decode status name: %w", err)
		}
		switch name {
		case "Unknown":
			e.Kind = StatusUnknown
		case "NotStarted":
			e.Kind = StatusNotStarted
		case "Started":
			e.Kind = StatusStarted
		default:
			return fmt.Errorf("unknown status %q", name)
		}
		return nil
	}

	var status struct {
		SuccessValue     *string           `json:"SuccessValue"`
		SuccessReceiptID *Hash             `json:"SuccessReceiptId"`
		Failure          *TxExecutionError `json:"Failure"`
	}
	err := json.Unmarshal(trimmed, &status)
	if err != nil {
		return fmt.Errorf("could not decode status: %w", err)
	}

	switch {
	case status.Failure != nil:
		e.Kind = StatusFailure
		e.Failure = status.Failure
	case status.SuccessReceiptID != nil:
		e.Kind = StatusSuccessReceiptID
		e.SuccessReceiptID = *status.SuccessReceiptID
	case status.SuccessValue != nil:
		value, err := base64.StdEncoding.DecodeString(*status.SuccessValue)
		if err != nil {
			return fmt.Errorf("could not decode success value: %w", err)
		}
		e.Kind = StatusSuccessValue
		e.SuccessValue = value
	default:
		e.Kind = StatusUnknown
	}

	return nil
}

// TxExecutionError is the reason a transaction failed. Either an action of
// the transaction failed during execution, or the transaction itself was
// invalid.
type TxExecutionError struct {
	ActionError    *ActionError `json:"ActionError,omitempty"`
	InvalidTxError *Variant     `json:"InvalidTxError,omitempty"`
}

// Kind returns the name of the innermost error variant, such as
// `DelegateActionExpired` or `InvalidNonce`.
func (t TxExecutionError) Kind() string {
	switch {
	case t.ActionError != nil:
		return t.ActionError.Kind.Name
	case t.InvalidTxError != nil:
		return t.InvalidTxError.Name
	default:
		return ""
	}
}

// ActionError is the failure of the action at the given index.
type ActionError struct {
	Index *uint64 `json:"index"`
	Kind  Variant `json:"kind"`
}

// Variant is an externally tagged enum value, encoded either as its bare name
// or as an object with its name as single key.
type Variant struct {
	Name string
	Data json.RawMessage
}

func (v Variant) MarshalJSON() ([]byte, error) {
	if len(v.Data) == 0 {
		return json.Marshal(v.Name)
	}
	return json.Marshal(map[string]json.RawMessage{v.Name: v.Data})
}

func (v *Variant) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &v.Name)
	}

	var fields map[string]json.RawMessage
	err := json.Unmarshal(trimmed, &fields)
	if err != nil {
		return fmt.Errorf("could not decode variant: %w", err)
	}
	if len(fields) != 1 {
		return fmt.Errorf("invalid variant with %d keys", len(fields))
	}
	for name, payload := range fields {
		v.Name = name
		v.Data = payload
	}

	// Nested variants, like `{"InvalidAccessKeyError":{"AccessKeyNotFound":{...}}}`,
	// are reported by their innermost name.
	var inner Variant
	if len(v.Data) > 0 && v.Data[0] == '{' && inner.UnmarshalJSON(v.Data) == nil && isVariantName(inner.Name) {
		v.Name = inner.Name
		v.Data = inner.Data
	}

	return nil
}

func isVariantName(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

// TransactionView is the transaction part of an execution outcome.
type TransactionView struct {
	SignerID   AccountID `json:"signer_id"`
	PublicKey  PublicKey `json:"public_key"`
	Nonce      uint64    `json:"nonce"`
	ReceiverID AccountID `json:"receiver_id"`
	Hash       Hash      `json:"hash"`
}

// Outcome is the result of executing a transaction or a receipt.
type Outcome struct {
	Logs        []string        `json:"logs"`
	ReceiptIDs  []Hash          `json:"receipt_ids"`
	GasBurnt    uint64          `json:"gas_burnt"`
	TokensBurnt Balance         `json:"tokens_burnt"`
	ExecutorID  AccountID       `json:"executor_id"`
	Status      ExecutionStatus `json:"status"`
}

// OutcomeWithID is an outcome with the ID of what was executed.
type OutcomeWithID struct {
	ID        Hash    `json:"id"`
	BlockHash Hash    `json:"block_hash"`
	Outcome   Outcome `json:"outcome"`
}

// ExecutionOutcome is what a node reports for a transaction at a given
// wait-until level. For transactions submitted without waiting, only the
// transaction hash and the reached level are set.
type ExecutionOutcome struct {
	FinalExecutionStatus TxExecutionStatus `json:"final_execution_status"`
	Status               ExecutionStatus   `json:"status"`
	Transaction          TransactionView   `json:"transaction"`
	TransactionOutcome   OutcomeWithID     `json:"transaction_outcome"`
	ReceiptsOutcome      []OutcomeWithID   `json:"receipts_outcome"`
}

// Failed returns whether the transaction failed during execution.
func (e *ExecutionOutcome) Failed() bool {
	return e.Status.Kind == StatusFailure
}

// FailureKind returns the name of the error that made the transaction fail,
// or an empty string if it did not fail.
func (e *ExecutionOutcome) FailureKind() string {
	if e.Status.Failure == nil {
		return ""
	}
	return e.Status.Failure.Kind()
}

// Executors returns the accounts that executed the receipts of the
// transaction, in execution order.
func (e *ExecutionOutcome) Executors() []AccountID {
	executors := make([]AccountID, 0, len(e.ReceiptsOutcome))
	for _, receipt := range e.ReceiptsOutcome {
		executors = append(executors, receipt.Outcome.ExecutorID)
	}
	return executors
}

// Logs returns all logs of the transaction and its receipts.
func (e *ExecutionOutcome) Logs() []string {
	logs := append([]string(nil), e.TransactionOutcome.Outcome.Logs...)
	for _, receipt := range e.ReceiptsOutcome {
		logs = append(logs, receipt.Outcome.Logs...)
	}
	return logs
}
