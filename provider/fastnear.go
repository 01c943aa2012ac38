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
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/optakt/near-go/failure"
	"github.com/optakt/near-go/models/near"
)

const fastNearFullAccess = "FullAccess"

// FastNear is a read-only client for the REST API of fast-near servers. It
// answers access key, account and view queries from an indexed copy of the
// state, which is faster than querying a node.
type FastNear struct {
	log    zerolog.Logger
	client *resty.Client
}

type fastNearKey struct {
	Nonce       uint64         `json:"nonce"`
	Allowance   *near.Balance  `json:"allowance"`
	ReceiverID  near.AccountID `json:"receiver_id"`
	MethodNames []string       `json:"method_names"`
	PublicKey   near.PublicKey `json:"public_key"`
	Type        string         `json:"type"`
}

// NewFastNear creates a client for the fast-near server at the given URL.
func NewFastNear(url string, options ...func(*Config)) *FastNear {

	cfg := configure(options)

	client := resty.New().
		SetBaseURL(url).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeaders(cfg.Headers).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	f := FastNear{
		log:    cfg.Log.With().Str("component", "fastnear").Logger(),
		client: client,
	}

	return &f
}

// AccessKey returns the access key of the account.
func (f *FastNear) AccessKey(account near.AccountID, key near.PublicKey) (*near.AccessKeyView, error) {

	var info fastNearKey
	path := fmt.Sprintf("/account/%s/key/%s", url.PathEscape(string(account)), url.PathEscape(key.String()))
	status, err := f.get(path, &info)
	if status == http.StatusNotFound {
		return nil, failure.AccessKeyNotFound{
			Description: failure.NewDescription("access key does not exist"),
			AccountID:   string(account),
			PublicKey:   key.String(),
		}
	}
	if err != nil {
		return nil, fmt.Errorf("could not get access key: %w", err)
	}

	view := near.AccessKeyView{
		AccessKey: near.AccessKey{
			Nonce: info.Nonce,
		},
	}
	if info.Type != fastNearFullAccess {
		view.Permission.FunctionCall = &near.FunctionCallPermission{
			Allowance:   info.Allowance,
			ReceiverID:  info.ReceiverID,
			MethodNames: info.MethodNames,
		}
	}

	return &view, nil
}

// Account returns the state of the account.
func (f *FastNear) Account(account near.AccountID) (*near.AccountView, error) {
	var view near.AccountView
	status, err := f.get("/account/"+url.PathEscape(string(account)), &view)
	if status == http.StatusNotFound {
		return nil, failure.UnknownAccount{
			Description: failure.NewDescription("account does not exist"),
			AccountID:   string(account),
		}
	}
	if err != nil {
		return nil, fmt.Errorf("could not get account: %w", err)
	}
	return &view, nil
}

// ContractMethods returns the names of the methods exported by the contract
// deployed on the account.
func (f *FastNear) ContractMethods(account near.AccountID) ([]string, error) {
	var methods []string
	_, err := f.get("/account/"+url.PathEscape(string(account))+"/contract/methods", &methods)
	if err != nil {
		return nil, fmt.Errorf("could not get contract methods: %w", err)
	}
	return methods, nil
}

// CallFunction calls a view method. The arguments have to be a JSON object;
// its fields are passed as query parameters and the raw response body is
// returned as the result.
func (f *FastNear) CallFunction(contract near.AccountID, method string, args []byte) (*near.CallResult, error) {

	query := url.Values{}
	if len(args) > 0 {
		var fields map[string]json.RawMessage
		err := json.Unmarshal(args, &fields)
		if err != nil {
			return nil, fmt.Errorf("could not decode arguments as JSON object: %w", err)
		}
		for key, value := range fields {
			text := string(value)
			if strings.HasPrefix(text, `"`) {
				var s string
				err = json.Unmarshal(value, &s)
				if err == nil {
					text = s
				}
			}
			query.Set(key, text)
		}
	}

	path := fmt.Sprintf("/account/%s/view/%s", url.PathEscape(string(contract)), url.PathEscape(method))
	res, err := f.client.R().SetQueryParamsFromValues(query).Get(path)
	if err != nil {
		return nil, failure.TransportError{
			Description: failure.NewDescription("request failed", failure.WithErr(err)),
			Err:         err,
		}
	}
	if res.IsError() {
		return nil, fmt.Errorf("view call failed (status: %d, body: %s)", res.StatusCode(), res.String())
	}

	result := near.CallResult{
		Result: near.ByteArray(res.Body()),
	}

	return &result, nil
}

func (f *FastNear) get(path string, result interface{}) (int, error) {

	f.log.Trace().Str("path", path).Msg("sending request")

	res, err := f.client.R().Get(path)
	if err != nil {
		return 0, failure.TransportError{
			Description: failure.NewDescription("request failed",
				failure.WithString("path", path),
				failure.WithErr(err),
			),
			Err: err,
		}
	}
	if res.IsError() {
		return res.StatusCode(), fmt.Errorf("unexpected status code %d (body: %s)", res.StatusCode(), res.String())
	}

	err = json.Unmarshal(res.Body(), result)
	if err != nil {
		return res.StatusCode(), fmt.Errorf("could not decode response: %w", err)
	}

	return res.StatusCode(), nil
}
