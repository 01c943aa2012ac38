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

package account

import (
	"fmt"

	"github.com/optakt/near-go/delegate"
	"github.com/optakt/near-go/models/near"
)

// Delegate creates and signs a delegate action, to be relayed by another
// account. The delegate action expires ttl blocks after the current height.
func (a *Account) Delegate(receiverID near.AccountID, ttl uint64, actions ...near.Action) (*near.SignedDelegateAction, error) {

	key := a.signer.PublicKey()
	next, header, err := a.reference(key)
	if err != nil {
		return nil, err
	}

	maxHeight := delegate.Window(header.Height, ttl)
	action, err := delegate.Make(a.id, receiverID, actions, next, maxHeight, key)
	if err != nil {
		return nil, fmt.Errorf("could not make delegate action: %w", err)
	}

	signed, err := delegate.Sign(action, a.signer)
	if err != nil {
		return nil, fmt.Errorf("could not sign delegate action: %w", err)
	}

	return signed, nil
}
