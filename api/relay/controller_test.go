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

package relay_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/near-go/api/relay"
	"github.com/optakt/near-go/encoding/borsh"
	"github.com/optakt/near-go/failure"
	"github.com/optakt/near-go/models/near"
	"github.com/optakt/near-go/testing/mocks"
)

func setupServer(t *testing.T, relayer relay.Relayer) *echo.Echo {
	t.Helper()

	server := echo.New()
	relay.NewController(relayer).Register(server)

	return server
}

func perform(t *testing.T, server *echo.Echo, method string, target string, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	return rec
}

func encodedDelegate(t *testing.T, signed near.SignedDelegateAction) string {
	t.Helper()

	data, err := borsh.EncodeSignedDelegateAction(signed)
	require.NoError(t, err)

	return `{"signed_delegate_action":"` + base64.StdEncoding.EncodeToString(data) + `"}`
}

func TestController_Relay(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		signed := mocks.GenericSignedDelegateAction()
		relayer := mocks.BaselineRelayer(t)
		relayer.RelayFunc = func(got *near.SignedDelegateAction) (*near.ExecutionOutcome, error) {
			assert.Equal(t, signed, *got)
			outcome := mocks.GenericOutcome
			return &outcome, nil
		}

		rec := perform(t, setupServer(t, relayer), http.MethodPost, "/relay", encodedDelegate(t, signed))

		require.Equal(t, http.StatusOK, rec.Code)
		var res relay.RelayResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, mocks.GenericHash, res.Hash)
		assert.Equal(t, near.ExecutedOptimistic, res.Status)
		assert.Empty(t, res.Failure)
	})

	t.Run("reports executors and logs", func(t *testing.T) {
		t.Parallel()

		relayer := mocks.BaselineRelayer(t)
		relayer.RelayFunc = func(*near.SignedDelegateAction) (*near.ExecutionOutcome, error) {
			outcome := mocks.GenericOutcome
			outcome.TransactionOutcome.Outcome.Logs = []string{"wrapped"}
			outcome.ReceiptsOutcome = []near.OutcomeWithID{
				{Outcome: near.Outcome{ExecutorID: mocks.GenericAccountID}},
				{Outcome: near.Outcome{ExecutorID: mocks.GenericReceiverID, Logs: []string{"status set"}}},
			}
			return &outcome, nil
		}

		rec := perform(t, setupServer(t, relayer), http.MethodPost, "/relay", encodedDelegate(t, mocks.GenericSignedDelegateAction()))

		require.Equal(t, http.StatusOK, rec.Code)
		var res relay.RelayResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, []near.AccountID{mocks.GenericAccountID, mocks.GenericReceiverID}, res.Executors)
		assert.Equal(t, []string{"wrapped", "status set"}, res.Logs)
	})

	t.Run("reports failed execution", func(t *testing.T) {
		t.Parallel()

		relayer := mocks.BaselineRelayer(t)
		relayer.RelayFunc = func(*near.SignedDelegateAction) (*near.ExecutionOutcome, error) {
			outcome := mocks.GenericOutcome
			outcome.Status = near.ExecutionStatus{
				Kind:    near.StatusFailure,
				Failure: &near.TxExecutionError{ActionError: &near.ActionError{Kind: near.Variant{Name: "DelegateActionExpired"}}},
			}
			return &outcome, failure.ExecutionFailed{Kind: "DelegateActionExpired"}
		}

		rec := perform(t, setupServer(t, relayer), http.MethodPost, "/relay", encodedDelegate(t, mocks.GenericSignedDelegateAction()))

		require.Equal(t, http.StatusOK, rec.Code)
		var res relay.RelayResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "DelegateActionExpired", res.Failure)
	})

	t.Run("handles missing payload", func(t *testing.T) {
		t.Parallel()

		rec := perform(t, setupServer(t, mocks.BaselineRelayer(t)), http.MethodPost, "/relay", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("handles invalid base64", func(t *testing.T) {
		t.Parallel()

		rec := perform(t, setupServer(t, mocks.BaselineRelayer(t)), http.MethodPost, "/relay", `{"signed_delegate_action":"not base64!"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("handles undecodable delegate without relaying", func(t *testing.T) {
		t.Parallel()

		relayer := mocks.BaselineRelayer(t)
		relayer.RelayFunc = func(*near.SignedDelegateAction) (*near.ExecutionOutcome, error) {
			t.Error("unexpected relay")
			return nil, mocks.GenericError
		}

		body := `{"signed_delegate_action":"` + base64.StdEncoding.EncodeToString([]byte{0x01, 0x02, 0x03}) + `"}`
		rec := perform(t, setupServer(t, relayer), http.MethodPost, "/relay", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("maps relayer errors", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			err    error
			status int
		}{
			{err: failure.NestedDelegate{}, status: http.StatusBadRequest},
			{err: failure.InvalidSignature{}, status: http.StatusBadRequest},
			{err: failure.SenderNotAllowed{}, status: http.StatusForbidden},
			{err: failure.DelegateExpired{}, status: http.StatusUnprocessableEntity},
			{err: failure.SubmissionRejected{}, status: http.StatusUnprocessableEntity},
			{err: failure.TransportError{}, status: http.StatusBadGateway},
			{err: mocks.GenericError, status: http.StatusInternalServerError},
		}

		for _, test := range tests {
			relayer := mocks.BaselineRelayer(t)
			err := test.err
			relayer.RelayFunc = func(*near.SignedDelegateAction) (*near.ExecutionOutcome, error) {
				return nil, err
			}

			rec := perform(t, setupServer(t, relayer), http.MethodPost, "/relay", encodedDelegate(t, mocks.GenericSignedDelegateAction()))

			assert.Equal(t, test.status, rec.Code, "error: %T", test.err)
		}
	})
}

func TestController_RelayErrorDetails(t *testing.T) {
	relayer := mocks.BaselineRelayer(t)
	relayer.RelayFunc = func(*near.SignedDelegateAction) (*near.ExecutionOutcome, error) {
		return nil, failure.DelegateExpired{
			Description: failure.NewDescription("delegate action expired",
				failure.WithUint64("max_block_height", 1100),
				failure.WithUint64("height", 1101),
			),
			MaxBlockHeight: 1100,
			Height:         1101,
		}
	}

	rec := perform(t, setupServer(t, relayer), http.MethodPost, "/relay", encodedDelegate(t, mocks.GenericSignedDelegateAction()))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var res relay.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "DELEGATE_EXPIRED", res.Code)
	assert.Equal(t, map[string]interface{}{"max_block_height": "1100", "height": "1101"}, res.Details)
}

func TestController_Transaction(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		relayer := mocks.BaselineRelayer(t)
		relayer.StatusFunc = func(hash near.Hash, senderID near.AccountID, level near.TxExecutionStatus) (*near.ExecutionOutcome, error) {
			assert.Equal(t, mocks.GenericHash, hash)
			assert.Equal(t, mocks.GenericAccountID, senderID)
			assert.Equal(t, near.Final, level)
			outcome := mocks.GenericOutcome
			outcome.FinalExecutionStatus = level
			return &outcome, nil
		}

		target := "/tx/" + mocks.GenericHash.String() + "?sender=alice.near&wait_until=FINAL"
		rec := perform(t, setupServer(t, relayer), http.MethodGet, target, "")

		require.Equal(t, http.StatusOK, rec.Code)
		var res relay.RelayResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, near.Final, res.Status)
	})

	t.Run("uses defaults", func(t *testing.T) {
		t.Parallel()

		relayer := mocks.BaselineRelayer(t)
		relayer.StatusFunc = func(hash near.Hash, senderID near.AccountID, level near.TxExecutionStatus) (*near.ExecutionOutcome, error) {
			assert.Empty(t, senderID)
			assert.Equal(t, near.DefaultWaitUntil, level)
			outcome := mocks.GenericOutcome
			return &outcome, nil
		}

		rec := perform(t, setupServer(t, relayer), http.MethodGet, "/tx/"+mocks.GenericHash.String(), "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("handles invalid parameters", func(t *testing.T) {
		t.Parallel()

		server := setupServer(t, mocks.BaselineRelayer(t))

		rec := perform(t, server, http.MethodGet, "/tx/not-a-hash", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = perform(t, server, http.MethodGet, "/tx/"+mocks.GenericHash.String()+"?sender=Alice", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = perform(t, server, http.MethodGet, "/tx/"+mocks.GenericHash.String()+"?wait_until=SOON", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("handles unknown transaction", func(t *testing.T) {
		t.Parallel()

		relayer := mocks.BaselineRelayer(t)
		relayer.StatusFunc = func(near.Hash, near.AccountID, near.TxExecutionStatus) (*near.ExecutionOutcome, error) {
			return nil, failure.UnknownTransaction{}
		}

		rec := perform(t, setupServer(t, relayer), http.MethodGet, "/tx/"+mocks.GenericHash.String(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestController_Health(t *testing.T) {
	rec := perform(t, setupServer(t, mocks.BaselineRelayer(t)), http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","relayer":"relay.near"}`, rec.Body.String())
}
