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
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/optakt/near-go/failure"
)

// Error codes returned in error responses.
const (
	codeInvalidRequest  = "INVALID_REQUEST"
	codeInvalidDelegate = "INVALID_DELEGATE"
	codeForbidden       = "SENDER_NOT_ALLOWED"
	codeExpired         = "DELEGATE_EXPIRED"
	codeRejected        = "TRANSACTION_REJECTED"
	codeUnknown         = "UNKNOWN_TRANSACTION"
	codeTransport       = "TRANSPORT_ERROR"
	codeInternal        = "INTERNAL_ERROR"
)

func apiError(status int, code string, err error, fields failure.Fields) *echo.HTTPError {
	res := ErrorResponse{
		Code:    code,
		Message: err.Error(),
	}
	if len(fields) > 0 {
		res.Details = make(map[string]interface{}, len(fields))
		fields.Iterate(func(key string, val interface{}) {
			res.Details[key] = val
		})
	}
	return echo.NewHTTPError(status, res)
}

func invalidRequest(err error) *echo.HTTPError {
	return apiError(http.StatusBadRequest, codeInvalidRequest, err, nil)
}

func relayError(err error) *echo.HTTPError {
	var (
		forbidden failure.SenderNotAllowed
		expired   failure.DelegateExpired
		rejected  failure.SubmissionRejected
		unknown   failure.UnknownTransaction
		transport failure.TransportError
	)
	switch {
	case errors.As(err, &failure.InvalidAction{}),
		errors.As(err, &failure.NestedDelegate{}),
		errors.As(err, &failure.InvalidSignature{}),
		errors.As(err, &failure.InvalidPayload{}),
		errors.As(err, &failure.InvalidAccount{}),
		errors.As(err, &failure.InvalidKey{}):
		return apiError(http.StatusBadRequest, codeInvalidDelegate, err, nil)
	case errors.As(err, &forbidden):
		return apiError(http.StatusForbidden, codeForbidden, err, forbidden.Description.Fields)
	case errors.As(err, &expired):
		return apiError(http.StatusUnprocessableEntity, codeExpired, err, expired.Description.Fields)
	case errors.As(err, &rejected):
		return apiError(http.StatusUnprocessableEntity, codeRejected, err, rejected.Description.Fields)
	case errors.As(err, &unknown):
		return apiError(http.StatusNotFound, codeUnknown, err, unknown.Description.Fields)
	case errors.As(err, &transport):
		return apiError(http.StatusBadGateway, codeTransport, err, transport.Description.Fields)
	default:
		return apiError(http.StatusInternalServerError, codeInternal, err, nil)
	}
}
