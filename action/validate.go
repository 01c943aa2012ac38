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

package action

import (
	"errors"

	"github.com/optakt/near-go/failure"
	"github.com/optakt/near-go/models/near"
)

// Validate checks the structure of each action of the list. It does not
// check anything that depends on the state of the ledger.
func Validate(actions []near.Action) error {
	for index, action := range actions {
		err := validate(index, action, true)
		if err != nil {
			return err
		}
	}
	return nil
}

// ValidateInner checks the actions of a delegate action, which can not
// contain delegate actions themselves.
func ValidateInner(actions []near.Action) error {
	for index, action := range actions {
		err := validate(index, action, false)
		if err != nil {
			return err
		}
	}
	return nil
}

func validate(index int, action near.Action, allowDelegate bool) error {
	if action == nil {
		return failure.InvalidAction{
			Description: failure.NewDescription("action is missing"),
			Index:       index,
			Type:        "nil",
		}
	}

	invalid := func(text string, fields ...failure.FieldFunc) error {
		return failure.InvalidAction{
			Description: failure.NewDescription(text, fields...),
			Index:       index,
			Type:        action.Type().String(),
		}
	}

	switch a := action.(type) {
	case near.CreateAccount, near.Transfer:
		return nil

	case near.DeployContract:
		if len(a.Code) == 0 {
			return invalid("contract code is empty")
		}

	case near.FunctionCall:
		if a.MethodName == "" {
			return invalid("method name is empty")
		}

	case near.Stake:
		err := a.PublicKey.Validate()
		if err != nil {
			return invalid("invalid validator key", failure.WithErr(err))
		}

	case near.AddKey:
		err := a.PublicKey.Validate()
		if err != nil {
			return invalid("invalid public key", failure.WithErr(err))
		}
		perm := a.AccessKey.Permission.FunctionCall
		if perm == nil {
			return nil
		}
		err = perm.ReceiverID.Validate()
		if err != nil {
			return invalid("invalid permission receiver", failure.WithString("receiver", string(perm.ReceiverID)), failure.WithErr(err))
		}
		for _, method := range perm.MethodNames {
			if method == "" {
				return invalid("permission method name is empty")
			}
		}

	case near.DeleteKey:
		err := a.PublicKey.Validate()
		if err != nil {
			return invalid("invalid public key", failure.WithErr(err))
		}

	case near.DeleteAccount:
		err := a.BeneficiaryID.Validate()
		if err != nil {
			return invalid("invalid beneficiary", failure.WithString("beneficiary", string(a.BeneficiaryID)), failure.WithErr(err))
		}

	case near.Delegate:
		if !allowDelegate {
			return failure.NestedDelegate{
				Description: failure.NewDescription("delegate actions can not contain delegate actions"),
				Index:       index,
			}
		}
		return validateDelegate(index, a.SignedDelegateAction, invalid)

	default:
		return invalid("unsupported action type")
	}

	return nil
}

func validateDelegate(index int, signed near.SignedDelegateAction, invalid func(string, ...failure.FieldFunc) error) error {
	delegate := signed.DelegateAction
	err := delegate.SenderID.Validate()
	if err != nil {
		return invalid("invalid delegate sender", failure.WithString("sender", string(delegate.SenderID)), failure.WithErr(err))
	}
	err = delegate.ReceiverID.Validate()
	if err != nil {
		return invalid("invalid delegate receiver", failure.WithString("receiver", string(delegate.ReceiverID)), failure.WithErr(err))
	}
	if len(delegate.Actions) == 0 {
		return invalid("delegate action has no actions")
	}
	err = delegate.PublicKey.Validate()
	if err != nil {
		return invalid("invalid delegate public key", failure.WithErr(err))
	}
	err = signed.Signature.Validate()
	if err != nil {
		return invalid("invalid delegate signature", failure.WithErr(err))
	}
	err = ValidateInner(delegate.Actions)
	var nested failure.NestedDelegate
	if errors.As(err, &nested) {
		return nested
	}
	if err != nil {
		return failure.InvalidAction{
			Description: failure.NewDescription("invalid delegated action", failure.WithErr(err)),
			Index:       index,
			Type:        near.ActionDelegate.String(),
		}
	}
	return nil
}
