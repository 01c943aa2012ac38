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
	"github.com/optakt/near-go/models/near"
)

// RelayResponse is returned for relayed delegate actions, including those
// whose outer transaction was executed but failed.
type RelayResponse struct {
	Hash      near.Hash              `json:"hash"`
	Status    near.TxExecutionStatus `json:"status"`
	Failure   string                 `json:"failure,omitempty"`
	Executors []near.AccountID       `json:"executors,omitempty"`
	Logs      []string               `json:"logs,omitempty"`
	Outcome   *near.ExecutionOutcome `json:"outcome"`
}

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Relayer near.AccountID `json:"relayer"`
}

// ErrorResponse describes why a request failed.
// ErrorResponse describes why a request failed. Details holds the contextual
// fields of the failure, such as the height at which a delegate expired.
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
