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

package provider

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/optakt/near-go/models/near"
)

// Error names and causes reported by nodes.
const (
	errHandler           = "HANDLER_ERROR"
	errRequestValidation = "REQUEST_VALIDATION_ERROR"

	causeUnknownAccessKey   = "UNKNOWN_ACCESS_KEY"
	causeUnknownAccount     = "UNKNOWN_ACCOUNT"
	causeUnknownTransaction = "UNKNOWN_TRANSACTION"
	causeInvalidTransaction = "INVALID_TRANSACTION"
)

// Error is an error returned by a node in a JSON-RPC response.
type Error struct {
	Name    string          `json:"name"`
	Cause   ErrorCause      `json:"cause"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ErrorCause details the cause of a node error.
type ErrorCause struct {
	Name string          `json:"name"`
	Info json.RawMessage `json:"info"`
}

func (e *Error) Error() string {
	if e.Cause.Name != "" {
		return fmt.Sprintf("%s: %s (code: %d, message: %s)", e.Name, e.Cause.Name, e.Code, e.Message)
	}
	return fmt.Sprintf("%s (code: %d, message: %s)", e.Name, e.Code, e.Message)
}

// Reason returns the name of the innermost error variant found in the error
// details, like `InvalidNonce`, or the cause name if there is none.
func (e *Error) Reason() string {
	for _, payload := range []json.RawMessage{e.Cause.Info, e.Data} {
		if len(payload) == 0 || payload[0] != '{' {
			continue
		}
		var variant near.Variant
		err := json.Unmarshal(payload, &variant)
		if err == nil && variant.Name != "" && variant.Name[0] >= 'A' && variant.Name[0] <= 'Z' {
			return variant.Name
		}
	}
	if e.Cause.Name != "" {
		return e.Cause.Name
	}
	return e.Name
}

// rejected returns whether the error proves that a submitted transaction was
// not accepted.
func (e *Error) rejected() bool {
	switch {
	case e.Name == errRequestValidation:
		return true
	case e.Name == errHandler && e.Cause.Name == causeInvalidTransaction:
		return true
	default:
		return false
	}
}
