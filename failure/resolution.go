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

// AccessKeyNotFound is returned when the nonce of an access key is requested
// for a key that does not exist on the given account, or for an account that
// does not exist.
type AccessKeyNotFound struct {
	Description Description
	AccountID   string
	PublicKey   string
}

func (a AccessKeyNotFound) Error() string {
	return fmt.Sprintf("access key not found (account: %s, key: %s): %s", a.AccountID, a.PublicKey, a.Description)
}

// InvalidNonce is returned when no valid nonce can follow the current one.
type InvalidNonce struct {
	Description Description
	Nonce       uint64
}

func (i InvalidNonce) Error() string {
	return fmt.Sprintf("invalid nonce (nonce: %d): %s", i.Nonce, i.Description)
}

// UnknownAccount is returned by queries against accounts that do not exist.
type UnknownAccount struct {
	Description Description
	AccountID   string
}

func (u UnknownAccount) Error() string {
	return fmt.Sprintf("unknown account (account: %s): %s", u.AccountID, u.Description)
}

// UnknownTransaction is returned by status queries for transactions the
// ledger does not know about.
type UnknownTransaction struct {
	Description Description
	Hash        string
}

func (u UnknownTransaction) Error() string {
	return fmt.Sprintf("unknown transaction (hash: %s): %s", u.Hash, u.Description)
}
