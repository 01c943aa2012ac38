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

package relay

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/optakt/near-go/models/near"
)

const (
	hashField      = "hash"
	senderField    = "sender"
	waitUntilField = "wait_until"

	tagHash      = "near_hash"
	tagAccount   = "near_account"
	tagWaitUntil = "near_wait_until"
)

var errInvalidValidation = errors.New("invalid validation target")

func newRequestValidator() *validator.Validate {

	v := validator.New()

	// Only one type per validator, so the struct level can be type-asserted
	// safely.
	v.RegisterStructValidation(statusValidator, StatusRequest{})

	return v
}

func validate(v *validator.Validate, request interface{}) error {

	err := v.Struct(request)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return errInvalidValidation
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	first := errs[0]

	return fmt.Errorf("invalid %s field (%s)", first.Field(), first.Tag())
}

func statusValidator(sl validator.StructLevel) {
	req := sl.Current().Interface().(StatusRequest)
	_, err := near.ParseHash(req.Hash)
	if req.Hash != "" && err != nil {
		sl.ReportError(req.Hash, hashField, hashField, tagHash, "")
	}
	if req.Sender != "" && near.AccountID(req.Sender).Validate() != nil {
		sl.ReportError(req.Sender, senderField, senderField, tagAccount, "")
	}
	if req.WaitUntil != "" {
		_, err = near.ParseTxExecutionStatus(req.WaitUntil)
		if err != nil {
			sl.ReportError(req.WaitUntil, waitUntilField, waitUntilField, tagWaitUntil, "")
		}
	}
}
