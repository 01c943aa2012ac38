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

package failure_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optakt/near-go/failure"
)

func TestDescription_String(t *testing.T) {
	t.Run("without fields", func(t *testing.T) {
		t.Parallel()

		desc := failure.NewDescription("could not sign")

		assert.Equal(t, "could not sign", desc.String())
	})

	t.Run("with fields", func(t *testing.T) {
		t.Parallel()

		desc := failure.NewDescription("access key missing",
			failure.WithString("account", "alice.near"),
			failure.WithUint64("nonce", 42),
			failure.WithInt("index", -1),
			failure.WithErr(errors.New("dummy")),
		)

		assert.Equal(t, "access key missing (account: alice.near, nonce: 42, index: -1, error: dummy)", desc.String())
	})

	t.Run("skips nil error", func(t *testing.T) {
		t.Parallel()

		desc := failure.NewDescription("text", failure.WithErr(nil))

		assert.Empty(t, desc.Fields)
		assert.Equal(t, "text", desc.String())
	})

	t.Run("iterates fields in order", func(t *testing.T) {
		t.Parallel()

		desc := failure.NewDescription("text", failure.WithString("a", "1"), failure.WithString("b", "2"))

		var keys []string
		desc.Fields.Iterate(func(key string, _ interface{}) {
			keys = append(keys, key)
		})

		assert.Equal(t, []string{"a", "b"}, keys)
	})
}

func TestErrors(t *testing.T) {
	cause := errors.New("dummy")

	t.Run("transport error unwraps", func(t *testing.T) {
		t.Parallel()

		err := failure.TransportError{Description: failure.NewDescription("request failed"), Err: cause}

		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "request failed")
	})

	t.Run("signing failure unwraps", func(t *testing.T) {
		t.Parallel()

		err := failure.SigningFailed{Description: failure.NewDescription("signer failed"), Err: cause}

		assert.ErrorIs(t, err, cause)
	})

	t.Run("rejection mentions reason", func(t *testing.T) {
		t.Parallel()

		err := failure.SubmissionRejected{Description: failure.NewDescription("rejected"), Hash: "abc", Reason: "InvalidNonce"}

		assert.Contains(t, err.Error(), "InvalidNonce")
		assert.Contains(t, err.Error(), "abc")
	})
}
