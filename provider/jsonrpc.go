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
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/optakt/near-go/encoding/borsh"
	"github.com/optakt/near-go/failure"
	"github.com/optakt/near-go/models/near"
)

const jsonrpcVersion = "2.0"

// Query request types.
const (
	requestViewAccessKey     = "view_access_key"
	requestViewAccessKeyList = "view_access_key_list"
	requestViewAccount       = "view_account"
	requestCallFunction      = "call_function"
	requestViewState         = "view_state"
)

// JSONRPC is a client for the JSON-RPC API of a node.
type JSONRPC struct {
	log    zerolog.Logger
	client *resty.Client
	nextID uint64
}

type request struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error"`
}

// queryError is the legacy way for nodes to report failed queries, as a
// successful response with an error message in the result.
type queryError struct {
	Error string `json:"error"`
}

// NewJSONRPC creates a client for the node at the given URL.
func NewJSONRPC(url string, options ...func(*Config)) *JSONRPC {

	cfg := configure(options)

	client := resty.New().
		SetBaseURL(url).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeaders(cfg.Headers).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	j := JSONRPC{
		log:    cfg.Log.With().Str("component", "jsonrpc").Logger(),
		client: client,
	}

	return &j
}

// AccessKey returns the access key of the account, as of the final block.
func (j *JSONRPC) AccessKey(account near.AccountID, key near.PublicKey) (*near.AccessKeyView, error) {
	params := map[string]interface{}{
		"request_type": requestViewAccessKey,
		"finality":     near.FinalityFinal,
		"account_id":   account,
		"public_key":   key.String(),
	}
	var view near.AccessKeyView
	err := j.query(params, &view)
	if err != nil {
		return nil, j.queryFailure(err, account, key)
	}
	return &view, nil
}

// AccessKeys returns all access keys of the account.
func (j *JSONRPC) AccessKeys(account near.AccountID) (*near.AccessKeyList, error) {
	params := map[string]interface{}{
		"request_type": requestViewAccessKeyList,
		"finality":     near.FinalityFinal,
		"account_id":   account,
	}
	var list near.AccessKeyList
	err := j.query(params, &list)
	if err != nil {
		return nil, j.queryFailure(err, account, near.PublicKey{})
	}
	return &list, nil
}

// Account returns the state of the account.
func (j *JSONRPC) Account(account near.AccountID) (*near.AccountView, error) {
	params := map[string]interface{}{
		"request_type": requestViewAccount,
		"finality":     near.FinalityFinal,
		"account_id":   account,
	}
	var view near.AccountView
	err := j.query(params, &view)
	if err != nil {
		return nil, j.queryFailure(err, account, near.PublicKey{})
	}
	return &view, nil
}

// CallFunction calls a view method of a contract.
func (j *JSONRPC) CallFunction(contract near.AccountID, method string, args []byte) (*near.CallResult, error) {
	params := map[string]interface{}{
		"request_type": requestCallFunction,
		"finality":     near.FinalityFinal,
		"account_id":   contract,
		"method_name":  method,
		"args_base64":  base64.StdEncoding.EncodeToString(args),
	}
	var result near.CallResult
	err := j.query(params, &result)
	if err != nil {
		return nil, j.queryFailure(err, contract, near.PublicKey{})
	}
	return &result, nil
}

// ViewState returns the storage of a contract under the given key prefix.
func (j *JSONRPC) ViewState(contract near.AccountID, prefix []byte) (*near.ViewStateResult, error) {
	params := map[string]interface{}{
		"request_type":  requestViewState,
		"finality":      near.FinalityFinal,
		"account_id":    contract,
		"prefix_base64": base64.StdEncoding.EncodeToString(prefix),
	}
	var result near.ViewStateResult
	err := j.query(params, &result)
	if err != nil {
		return nil, j.queryFailure(err, contract, near.PublicKey{})
	}
	return &result, nil
}

// Block returns the header of the latest block with the given finality.
func (j *JSONRPC) Block(finality near.Finality) (*near.BlockHeader, error) {
	params := map[string]interface{}{
		"finality": finality,
	}
	var block struct {
		Header near.BlockHeader `json:"header"`
	}
	err := j.call("block", params, &block)
	if err != nil {
		return nil, fmt.Errorf("could not get block: %w", err)
	}
	return &block.Header, nil
}

// ProtocolConfig returns the protocol configuration at the latest block with
// the given finality.
func (j *JSONRPC) ProtocolConfig(finality near.Finality) (*near.ProtocolConfig, error) {
	params := map[string]interface{}{
		"finality": finality,
	}
	var config near.ProtocolConfig
	err := j.call("EXPERIMENTAL_protocol_config", params, &config)
	if err != nil {
		return nil, fmt.Errorf("could not get protocol config: %w", err)
	}
	return &config, nil
}

// Status returns the status of the node.
func (j *JSONRPC) Status() (*near.NodeStatus, error) {
	var status near.NodeStatus
	err := j.call("status", []interface{}{}, &status)
	if err != nil {
		return nil, fmt.Errorf("could not get node status: %w", err)
	}
	return &status, nil
}

// SendTransaction submits the signed transaction and waits until it reaches
// the given level. Errors that prove the transaction was not accepted are
// returned as failure.SubmissionRejected, all others as
// failure.TransportError.
func (j *JSONRPC) SendTransaction(signed *near.SignedTransaction, level near.TxExecutionStatus) (*near.ExecutionOutcome, error) {

	data, err := borsh.EncodeSignedTransaction(signed)
	if err != nil {
		return nil, failure.SubmissionRejected{
			Description: failure.NewDescription("could not encode signed transaction", failure.WithErr(err)),
			Hash:        signed.Hash().String(),
			Reason:      "EncodingFailed",
		}
	}

	params := map[string]interface{}{
		"signed_tx_base64": base64.StdEncoding.EncodeToString(data),
		"wait_until":       level,
	}
	var outcome near.ExecutionOutcome
	err = j.call("send_tx", params, &outcome)
	if err != nil {
		return nil, j.submitFailure(err, signed.Hash())
	}

	return &outcome, nil
}

// TransactionStatus returns the outcome of a transaction once it reaches the
// given level.
func (j *JSONRPC) TransactionStatus(hash near.Hash, sender near.AccountID, level near.TxExecutionStatus) (*near.ExecutionOutcome, error) {

	params := map[string]interface{}{
		"tx_hash":           hash.String(),
		"sender_account_id": sender,
		"wait_until":        level,
	}
	var outcome near.ExecutionOutcome
	err := j.call("tx", params, &outcome)

	var rpcErr *Error
	if errors.As(err, &rpcErr) && rpcErr.Cause.Name == causeUnknownTransaction {
		return nil, failure.UnknownTransaction{
			Description: failure.NewDescription("transaction not found", failure.WithErr(err)),
			Hash:        hash.String(),
		}
	}
	if err != nil {
		return nil, j.submitFailure(err, hash)
	}

	return &outcome, nil
}

func (j *JSONRPC) query(params map[string]interface{}, result interface{}) error {
	var raw json.RawMessage
	err := j.call("query", params, &raw)
	if err != nil {
		return err
	}

	var legacy queryError
	_ = json.Unmarshal(raw, &legacy)
	if legacy.Error != "" {
		return &Error{
			Name:    errHandler,
			Cause:   ErrorCause{Name: legacyCause(legacy.Error)},
			Message: legacy.Error,
		}
	}

	err = json.Unmarshal(raw, result)
	if err != nil {
		return fmt.Errorf("could not decode query result: %w", err)
	}
	return nil
}

func (j *JSONRPC) call(method string, params interface{}, result interface{}) error {

	id := strconv.FormatUint(atomic.AddUint64(&j.nextID, 1), 10)
	req := request{
		JSONRPC: jsonrpcVersion,
		ID:      id,
		Method:  method,
		Params:  params,
	}

	log := j.log.With().Str("method", method).Str("id", id).Logger()
	log.Trace().Msg("sending request")

	res, err := j.client.R().SetBody(req).Post("")
	if err != nil {
		return failure.TransportError{
			Description: failure.NewDescription("request failed",
				failure.WithString("method", method),
				failure.WithErr(err),
			),
			Err: err,
		}
	}

	var envelope response
	err = json.Unmarshal(res.Body(), &envelope)
	if err != nil {
		return failure.TransportError{
			Description: failure.NewDescription("could not decode response",
				failure.WithString("method", method),
				failure.WithInt("status_code", res.StatusCode()),
				failure.WithErr(err),
			),
			Err: err,
		}
	}

	if envelope.Error != nil {
		log.Debug().Str("error", envelope.Error.Name).Str("cause", envelope.Error.Cause.Name).Msg("node returned error")
		return envelope.Error
	}
	if res.IsError() {
		return failure.TransportError{
			Description: failure.NewDescription("unexpected status code",
				failure.WithString("method", method),
				failure.WithInt("status_code", res.StatusCode()),
			),
		}
	}

	err = json.Unmarshal(envelope.Result, result)
	if err != nil {
		return fmt.Errorf("could not decode %s result: %w", method, err)
	}

	return nil
}

func (j *JSONRPC) queryFailure(err error, account near.AccountID, key near.PublicKey) error {
	var rpcErr *Error
	if !errors.As(err, &rpcErr) {
		return err
	}
	switch rpcErr.Cause.Name {
	case causeUnknownAccessKey:
		return failure.AccessKeyNotFound{
			Description: failure.NewDescription("access key does not exist", failure.WithErr(err)),
			AccountID:   string(account),
			PublicKey:   key.String(),
		}
	case causeUnknownAccount:
		return failure.UnknownAccount{
			Description: failure.NewDescription("account does not exist", failure.WithErr(err)),
			AccountID:   string(account),
		}
	default:
		return fmt.Errorf("query failed: %w", err)
	}
}

func (j *JSONRPC) submitFailure(err error, hash near.Hash) error {
	var transport failure.TransportError
	if errors.As(err, &transport) {
		transport.Hash = hash.String()
		return transport
	}

	var rpcErr *Error
	if errors.As(err, &rpcErr) && rpcErr.rejected() {
		return failure.SubmissionRejected{
			Description: failure.NewDescription("node rejected transaction", failure.WithErr(err)),
			Hash:        hash.String(),
			Reason:      rpcErr.Reason(),
		}
	}

	// Timeouts, internal errors and undecodable results do not tell whether
	// the transaction was accepted.
	return failure.TransportError{
		Description: failure.NewDescription("unknown submission outcome", failure.WithErr(err)),
		Hash:        hash.String(),
		Err:         err,
	}
}

func legacyCause(message string) string {
	switch {
	case strings.Contains(message, "access key") && strings.Contains(message, "does not exist"):
		return causeUnknownAccessKey
	case strings.Contains(message, "does not exist"):
		return causeUnknownAccount
	default:
		return ""
	}
}
