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

package failure

import (
	"fmt"
)

// SubmissionRejected is returned when the ledger explicitly refused a
// transaction. The transaction was not accepted, so it is safe to fix the
// cause and submit a new transaction with a fresh nonce.
type SubmissionRejected struct {
	Description Description
	Hash        string
	Reason      string
}

func (s SubmissionRejected) Error() string {
	return fmt.Sprintf("transaction rejected (hash: %s, reason: %s): %s", s.Hash, s.Reason, s.Description)
}

// TransportError is returned when the outcome of a call is unknown, such as a
// timeout or a dropped connection. A transaction submitted with this result
// may still have been accepted and must not be resubmitted blindly.
type TransportError struct {
	Description Description
	Hash        string
	Err         error
}

func (t TransportError) Error() string {
	return fmt.Sprintf("transport failure (hash: %s): %s", t.Hash, t.Description)
}

func (t TransportError) Unwrap() error {
	return t.Err
}

// ExecutionFailed is returned along with an execution outcome whose status is
// a failure, such as an expired delegate action.
type ExecutionFailed struct {
	Description Description
	Hash        string
	Kind        string
}

func (e ExecutionFailed) Error() string {
	return fmt.Sprintf("transaction execution failed (hash: %s, kind: %s): %s", e.Hash, e.Kind, e.Description)
}

// AlreadySubmitted is returned when a signed transaction is submitted a
// second time through the same sender.
type AlreadySubmitted struct {
	Description Description
	Hash        string
}

func (a AlreadySubmitted) Error() string {
	return fmt.Sprintf("transaction already submitted (hash: %s): %s", a.Hash, a.Description)
}

// DelegateExpired is returned when a delegate action is known to be expired
// before it is relayed.
type DelegateExpired struct {
	Description    Description
	MaxBlockHeight uint64
	Height         uint64
}

func (d DelegateExpired) Error() string {
	return fmt.Sprintf("delegate action expired (max height: %d, height: %d): %s", d.MaxBlockHeight, d.Height, d.Description)
}

// SenderNotAllowed is returned by the relayer for delegate actions from
// senders it does not pay for.
type SenderNotAllowed struct {
	Description Description
	SenderID    string
}

func (s SenderNotAllowed) Error() string {
	return fmt.Sprintf("sender not allowed (sender: %s): %s", s.SenderID, s.Description)
}
