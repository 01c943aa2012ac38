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

// DelegateAction is a list of actions signed by an inner sender, to be
// executed by them but submitted and paid for by a relayer. It stays valid
// until the block height MaxBlockHeight included.
type DelegateAction struct {
	SenderID       AccountID
	ReceiverID     AccountID
	Actions        []Action
	Nonce          uint64
	MaxBlockHeight uint64
	PublicKey      PublicKey
}

// Expired returns whether the delegate action can no longer be executed at
// the given block height.
func (d DelegateAction) Expired(height uint64) bool {
	return height > d.MaxBlockHeight
}

func (d DelegateAction) Clone() DelegateAction {
	d.Actions = CloneActions(d.Actions)
	d.PublicKey.Data = cloneBytes(d.PublicKey.Data)
	return d
}

// SignedDelegateAction is a delegate action with the inner sender's signature.
type SignedDelegateAction struct {
	DelegateAction DelegateAction
	Signature      Signature
}

func (s SignedDelegateAction) Clone() SignedDelegateAction {
	s.DelegateAction = s.DelegateAction.Clone()
	s.Signature.Data = cloneBytes(s.Signature.Data)
	return s
}
