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

package delegate

import (
	"math"
)

// Window returns the maximum block height of a delegate action created at the
// given height that should stay valid for ttl blocks. It saturates instead of
// wrapping around.
func Window(height uint64, ttl uint64) uint64 {
	if height > math.MaxUint64-ttl {
		return math.MaxUint64
	}
	return height + ttl
}
