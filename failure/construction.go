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

// InvalidAction is returned when the payload of an action is structurally
// malformed, for example an empty method name or a key of the wrong length.
type InvalidAction struct {
	Description Description
	Index       int
	Type        string
}

func (i InvalidAction) Error() string {
	return fmt.Sprintf("invalid %s action (index: %d): %s", i.Type, i.Index, i.Description)
}

// NestedDelegate is returned when a delegate action would contain another
// delegate action.
type NestedDelegate struct {
	Description Description
	Index       int
}

func (n NestedDelegate) Error() string {
	return fmt.Sprintf("nested delegate action (index: %d): %s", n.Index, n.Description)
}

// InvalidTransaction is returned when the fields of a transaction or delegate
// action can not be assembled into a valid value.
type InvalidTransaction struct {
	Description Description
}

func (i InvalidTransaction) Error() string {
	return fmt.Sprintf("invalid transaction: %s", i.Description)
}

// InvalidAccount is returned for account identifiers that do not follow the
// ledger's naming rules.
type InvalidAccount struct {
	Description Description
	AccountID   string
}

func (i InvalidAccount) Error() string {
	return fmt.Sprintf("invalid account (account: %s): %s", i.AccountID, i.Description)
}

// InvalidKey is returned when a key is malformed or does not match the key
// it is expected to be.
type InvalidKey struct {
	Description Description
	Key         string
}

func (i InvalidKey) Error() string {
	return fmt.Sprintf("invalid key (key: %s): %s", i.Key, i.Description)
}

// InvalidPayload is returned when an encoded payload can not be decoded.
type InvalidPayload struct {
	Description Description
	Encoding    string
}

func (i InvalidPayload) Error() string {
	return fmt.Sprintf("invalid %s payload: %s", i.Encoding, i.Description)
}

// InvalidStatus is returned for unknown wait-until levels.
type InvalidStatus struct {
	Description Description
	Status      string
}

func (i InvalidStatus) Error() string {
	return fmt.Sprintf("invalid execution status (status: %s): %s", i.Status, i.Description)
}
