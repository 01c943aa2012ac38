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
	"fmt"
	"strconv"
)

// TxExecutionStatus is the depth of confirmation of a transaction. The
// levels are totally ordered, from None to Final.
type TxExecutionStatus uint8

// Supported wait-until levels, in increasing order.
const (
	// None means the transaction was accepted into the pool, with no outcome.
	None TxExecutionStatus = iota
	// Included means the transaction was included in a block.
	Included
	// ExecutedOptimistic means the transaction and all of its receipts were
	// executed on a block that may not be final yet.
	ExecutedOptimistic
	// IncludedFinal means the block including the transaction is final.
	IncludedFinal
	// Executed means all receipts were executed and the inclusion is final.
	Executed
	// Final means all blocks with the transaction's receipts are final.
	Final
)

// DefaultWaitUntil is the level used when callers do not pick one.
const DefaultWaitUntil = ExecutedOptimistic

var statusNames = []string{
	"NONE",
	"INCLUDED",
	"EXECUTED_OPTIMISTIC",
	"INCLUDED_FINAL",
	"EXECUTED",
	"FINAL",
}

// ParseTxExecutionStatus parses the wire name of a wait-until level.
func ParseTxExecutionStatus(s string) (TxExecutionStatus, error) {
	for i, name := range statusNames {
		if name == s {
			return TxExecutionStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown execution status %q", s)
}

func (t TxExecutionStatus) Valid() bool {
	return int(t) < len(statusNames)
}

// AtLeast returns whether the level is at least as deep as the other one.
func (t TxExecutionStatus) AtLeast(other TxExecutionStatus) bool {
	return t >= other
}

func (t TxExecutionStatus) String() string {
	if !t.Valid() {
		return "UNKNOWN(" + strconv.Itoa(int(t)) + ")"
	}
	return statusNames[t]
}

func (t TxExecutionStatus) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid execution status %d", uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *TxExecutionStatus) UnmarshalText(text []byte) error {
	status, err := ParseTxExecutionStatus(string(text))
	if err != nil {
		return err
	}
	*t = status
	return nil
}
