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

// RelayRequest carries a signed delegate action, encoded with Borsh and then
// with standard base64.
type RelayRequest struct {
	SignedDelegateAction string `json:"signed_delegate_action" validate:"required,base64"`
}

// StatusRequest asks for the outcome of a transaction. The sender defaults to
// the relayer and the level to the default wait-until level.
type StatusRequest struct {
	Hash      string `param:"hash" validate:"required"`
	Sender    string `query:"sender"`
	WaitUntil string `query:"wait_until"`
}
