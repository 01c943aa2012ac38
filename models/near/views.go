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

	"github.com/goccy/go-json"
)

// Finality selects which block a query is executed against.
type Finality string

// Supported finalities.
const (
	FinalityOptimistic Finality = "optimistic"
	FinalityFinal      Finality = "final"
)

// BlockHeader is the subset of a block header needed to build transactions.
type BlockHeader struct {
	Height    uint64 `json:"height"`
	Hash      Hash   `json:"hash"`
	PrevHash  Hash   `json:"prev_hash"`
	EpochID   Hash   `json:"epoch_id"`
	Timestamp uint64 `json:"timestamp"`
}

// AccountView is the on-chain state of an account.
type AccountView struct {
	Amount        Balance `json:"amount"`
	Locked        Balance `json:"locked"`
	CodeHash      Hash    `json:"code_hash"`
	StorageUsage  uint64  `json:"storage_usage"`
	StoragePaidAt uint64  `json:"storage_paid_at"`
	BlockHeight   uint64  `json:"block_height"`
	BlockHash     Hash    `json:"block_hash"`
}

// AccountBalance splits the tokens of an account by their availability.
type AccountBalance struct {
	Total       Balance `json:"total"`
	StateStaked Balance `json:"state_staked"`
	Staked      Balance `json:"staked"`
	Available   Balance `json:"available"`
}

// ByteArray is raw data encoded in JSON as an array of numbers.
type ByteArray []byte

func (b ByteArray) MarshalJSON() ([]byte, error) {
	values := make([]uint16, 0, len(b))
	for _, v := range b {
		values = append(values, uint16(v))
	}
	return json.Marshal(values)
}

func (b *ByteArray) UnmarshalJSON(data []byte) error {
	var values []uint16
	err := json.Unmarshal(data, &values)
	if err != nil {
		return fmt.Errorf("could not decode byte array: %w", err)
	}
	result := make([]byte, 0, len(values))
	for i, v := range values {
		if v > 0xff {
			return fmt.Errorf("invalid byte value %d at index %d", v, i)
		}
		result = append(result, byte(v))
	}
	*b = result
	return nil
}

// CallResult is the result of calling a view function on a contract.
type CallResult struct {
	Result      ByteArray `json:"result"`
	Logs        []string  `json:"logs"`
	BlockHeight uint64    `json:"block_height"`
	BlockHash   Hash      `json:"block_hash"`
}

// Decode unmarshals the JSON result of the call into the given value.
func (c CallResult) Decode(v interface{}) error {
	return json.Unmarshal([]byte(c.Result), v)
}

// StateItem is one key/value pair of a contract's storage.
type StateItem struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

// ViewStateResult is the storage of a contract under a key prefix.
type ViewStateResult struct {
	Values      []StateItem `json:"values"`
	BlockHeight uint64      `json:"block_height"`
	BlockHash   Hash        `json:"block_hash"`
}

// RuntimeConfig is the part of the protocol configuration about fees.
type RuntimeConfig struct {
	StorageAmountPerByte Balance `json:"storage_amount_per_byte"`
}

// ProtocolConfig is the configuration of the protocol at a given block.
type ProtocolConfig struct {
	ChainID         string        `json:"chain_id"`
	ProtocolVersion uint32        `json:"protocol_version"`
	RuntimeConfig   RuntimeConfig `json:"runtime_config"`
}

// SyncInfo describes how far a node is synced.
type SyncInfo struct {
	LatestBlockHash   Hash   `json:"latest_block_hash"`
	LatestBlockHeight uint64 `json:"latest_block_height"`
	Syncing           bool   `json:"syncing"`
}

// NodeStatus is the status reported by a node.
type NodeStatus struct {
	ChainID  string   `json:"chain_id"`
	SyncInfo SyncInfo `json:"sync_info"`
}
