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
	"fmt"

	"github.com/goccy/go-json"
)

const fullAccess = "FullAccess"

// AccessKey is the on-chain state of a key on an account.
type AccessKey struct {
	Nonce      uint64              `json:"nonce"`
	Permission AccessKeyPermission `json:"permission"`
}

// FullAccessKey returns a fresh access key with full access permission.
func FullAccessKey() AccessKey {
	return AccessKey{}
}

// FunctionCallAccessKey returns a fresh access key limited to calling the
// given methods on the receiver. An empty method list allows all methods and a
// nil allowance is unlimited.
func FunctionCallAccessKey(receiverID AccountID, methods []string, allowance *Balance) AccessKey {
	return AccessKey{
		Permission: AccessKeyPermission{
			FunctionCall: &FunctionCallPermission{
				Allowance:   allowance,
				ReceiverID:  receiverID,
				MethodNames: methods,
			},
		},
	}
}

func (a AccessKey) Clone() AccessKey {
	if a.Permission.FunctionCall == nil {
		return a
	}
	perm := *a.Permission.FunctionCall
	if perm.Allowance != nil {
		allowance := *perm.Allowance
		perm.Allowance = &allowance
	}
	if perm.MethodNames != nil {
		perm.MethodNames = append([]string(nil), perm.MethodNames...)
	}
	a.Permission.FunctionCall = &perm
	return a
}

// AccessKeyPermission is either full access, when FunctionCall is nil, or a
// function call permission.
type AccessKeyPermission struct {
	FunctionCall *FunctionCallPermission
}

func (p AccessKeyPermission) IsFullAccess() bool {
	return p.FunctionCall == nil
}

// FunctionCallPermission limits an access key to calls on one receiver.
type FunctionCallPermission struct {
	Allowance   *Balance  `json:"allowance"`
	ReceiverID  AccountID `json:"receiver_id"`
	MethodNames []string  `json:"method_names"`
}

func (p AccessKeyPermission) MarshalJSON() ([]byte, error) {
	if p.FunctionCall == nil {
		return json.Marshal(fullAccess)
	}
	wrapper := struct {
		FunctionCall *FunctionCallPermission `json:"FunctionCall"`
	}{
		FunctionCall: p.FunctionCall,
	}
	return json.Marshal(wrapper)
}

func (p *AccessKeyPermission) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var name string
		err := json.Unmarshal(trimmed, &name)
		if err != nil {
			return fmt.Errorf("could not decode permission name: %w", err)
		}
		if name != fullAccess {
			return fmt.Errorf("unknown permission %q", name)
		}
		p.FunctionCall = nil
		return nil
	}

	var wrapper struct {
		FunctionCall *FunctionCallPermission `json:"FunctionCall"`
	}
	err := json.Unmarshal(trimmed, &wrapper)
	if err != nil {
		return fmt.Errorf("could not decode permission: %w", err)
	}
	if wrapper.FunctionCall == nil {
		return fmt.Errorf("missing function call permission")
	}
	p.FunctionCall = wrapper.FunctionCall
	return nil
}

// AccessKeyView is the result of querying a single access key.
type AccessKeyView struct {
	AccessKey
	BlockHeight uint64 `json:"block_height"`
	BlockHash   Hash   `json:"block_hash"`
}

// AccessKeyInfo is one entry of an account's access key list.
type AccessKeyInfo struct {
	PublicKey PublicKey `json:"public_key"`
	AccessKey AccessKey `json:"access_key"`
}

// AccessKeyList is the result of listing the access keys of an account.
type AccessKeyList struct {
	Keys        []AccessKeyInfo `json:"keys"`
	BlockHeight uint64          `json:"block_height"`
	BlockHash   Hash            `json:"block_hash"`
}

// Equal compares two access keys by value.
func (a AccessKey) Equal(other AccessKey) bool {
	if a.Nonce != other.Nonce {
		return false
	}
	left, right := a.Permission.FunctionCall, other.Permission.FunctionCall
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	if left.ReceiverID != right.ReceiverID || len(left.MethodNames) != len(right.MethodNames) {
		return false
	}
	for i := range left.MethodNames {
		if left.MethodNames[i] != right.MethodNames[i] {
			return false
		}
	}
	if left.Allowance == nil || right.Allowance == nil {
		return left.Allowance == nil && right.Allowance == nil
	}
	return left.Allowance.Cmp(*right.Allowance) == 0
}
