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
)

// ActionType is the kind of an action, using the ledger's discriminants.
type ActionType uint8

// Supported action types.
const (
	ActionCreateAccount  ActionType = 0
	ActionDeployContract ActionType = 1
	ActionFunctionCall   ActionType = 2
	ActionTransfer       ActionType = 3
	ActionStake          ActionType = 4
	ActionAddKey         ActionType = 5
	ActionDeleteKey      ActionType = 6
	ActionDeleteAccount  ActionType = 7
	ActionDelegate       ActionType = 8
)

var actionNames = map[ActionType]string{
	ActionCreateAccount:  "CreateAccount",
	ActionDeployContract: "DeployContract",
	ActionFunctionCall:   "FunctionCall",
	ActionTransfer:       "Transfer",
	ActionStake:          "Stake",
	ActionAddKey:         "AddKey",
	ActionDeleteKey:      "DeleteKey",
	ActionDeleteAccount:  "DeleteAccount",
	ActionDelegate:       "Delegate",
}

func (a ActionType) String() string {
	name, ok := actionNames[a]
	if !ok {
		return fmt.Sprintf("Unknown(%d)", uint8(a))
	}
	return name
}

// Action is one operation of a transaction. The set of implementations is
// closed to the types of this package.
type Action interface {
	Type() ActionType
	action()
}

// CreateAccount creates the receiver account of the transaction.
type CreateAccount struct{}

// DeployContract deploys the given WASM code on the receiver account.
type DeployContract struct {
	Code []byte
}

// FunctionCall calls a method of the contract deployed on the receiver.
type FunctionCall struct {
	MethodName string
	Args       []byte
	Gas        uint64
	Deposit    Balance
}

// Transfer sends tokens to the receiver.
type Transfer struct {
	Deposit Balance
}

// Stake locks the given amount of tokens for validation with the given key.
type Stake struct {
	Stake     Balance
	PublicKey PublicKey
}

// AddKey adds an access key to the receiver account.
type AddKey struct {
	PublicKey PublicKey
	AccessKey AccessKey
}

// DeleteKey removes an access key from the receiver account.
type DeleteKey struct {
	PublicKey PublicKey
}

// DeleteAccount deletes the receiver account and sends its remaining balance
// to the beneficiary.
type DeleteAccount struct {
	BeneficiaryID AccountID
}

// Delegate carries a signed meta-transaction to be executed on behalf of its
// sender.
type Delegate struct {
	SignedDelegateAction SignedDelegateAction
}

func (CreateAccount) Type() ActionType  { return ActionCreateAccount }
func (DeployContract) Type() ActionType { return ActionDeployContract }
func (FunctionCall) Type() ActionType   { return ActionFunctionCall }
func (Transfer) Type() ActionType       { return ActionTransfer }
func (Stake) Type() ActionType          { return ActionStake }
func (AddKey) Type() ActionType         { return ActionAddKey }
func (DeleteKey) Type() ActionType      { return ActionDeleteKey }
func (DeleteAccount) Type() ActionType  { return ActionDeleteAccount }
func (Delegate) Type() ActionType       { return ActionDelegate }

func (CreateAccount) action()  {}
func (DeployContract) action() {}
func (FunctionCall) action()   {}
func (Transfer) action()       {}
func (Stake) action()          {}
func (AddKey) action()         {}
func (DeleteKey) action()      {}
func (DeleteAccount) action()  {}
func (Delegate) action()       {}

// CloneAction returns a deep copy of the action, so that mutating the byte
// slices of the copy does not affect the original.
func CloneAction(action Action) Action {
	switch a := action.(type) {
	case DeployContract:
		a.Code = cloneBytes(a.Code)
		return a
	case FunctionCall:
		a.Args = cloneBytes(a.Args)
		return a
	case Stake:
		a.PublicKey.Data = cloneBytes(a.PublicKey.Data)
		return a
	case AddKey:
		a.PublicKey.Data = cloneBytes(a.PublicKey.Data)
		a.AccessKey = a.AccessKey.Clone()
		return a
	case DeleteKey:
		a.PublicKey.Data = cloneBytes(a.PublicKey.Data)
		return a
	case Delegate:
		a.SignedDelegateAction = a.SignedDelegateAction.Clone()
		return a
	default:
		return action
	}
}

// CloneActions deep copies a list of actions.
func CloneActions(actions []Action) []Action {
	if actions == nil {
		return nil
	}
	clones := make([]Action, 0, len(actions))
	for _, action := range actions {
		clones = append(clones, CloneAction(action))
	}
	return clones
}

func cloneBytes(data []byte) []byte {
	if data == nil {
		return nil
	}
	return append([]byte(nil), data...)
}
