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

package failure

import (
	"fmt"
)

// SigningFailed wraps the error returned by a signer. The original error is
// kept so callers can inspect it with errors.Is and errors.As.
type SigningFailed struct {
	Description Description
	Err         error
}

func (s SigningFailed) Error() string {
	return fmt.Sprintf("signing failed: %s", s.Description)
}

func (s SigningFailed) Unwrap() error {
	return s.Err
}

// InvalidSignature is returned when a signature does not verify against the
// hash and public key it is attached to.
type InvalidSignature struct {
	Description Description
}

func (i InvalidSignature) Error() string {
	return fmt.Sprintf("invalid signature: %s", i.Description)
}
