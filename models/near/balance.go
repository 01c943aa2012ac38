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

package near

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
)

const balanceBits = 128

// Balance is an amount of the ledger's native token in its smallest unit. It
// is an unsigned 128-bit integer.
type Balance struct {
	v uint256.Int
}

// NewBalance creates a balance from a 64-bit value.
func NewBalance(v uint64) Balance {
	var b Balance
	b.v.SetUint64(v)
	return b
}

// BalanceFromParts creates a balance from its low and high 64-bit halves.
func BalanceFromParts(lo uint64, hi uint64) Balance {
	var b Balance
	b.v[0] = lo
	b.v[1] = hi
	return b
}

// ParseBalance parses a decimal amount.
func ParseBalance(s string) (Balance, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Balance{}, fmt.Errorf("could not parse balance %q: %w", s, err)
	}
	return balanceFrom(v)
}

// MustParseBalance parses a decimal amount and panics on failure. It is meant
// for constants.
func MustParseBalance(s string) Balance {
	b, err := ParseBalance(s)
	if err != nil {
		panic(err)
	}
	return b
}

func balanceFrom(v *uint256.Int) (Balance, error) {
	if v.BitLen() > balanceBits {
		return Balance{}, fmt.Errorf("balance overflows 128 bits")
	}
	return Balance{v: *v}, nil
}

// Lo returns the low 64 bits of the balance.
func (b Balance) Lo() uint64 {
	return b.v[0]
}

// Hi returns the high 64 bits of the balance.
func (b Balance) Hi() uint64 {
	return b.v[1]
}

func (b Balance) IsZero() bool {
	return b.v.IsZero()
}

func (b Balance) Cmp(other Balance) int {
	return b.v.Cmp(&other.v)
}

func (b Balance) Add(other Balance) (Balance, error) {
	var sum uint256.Int
	sum.Add(&b.v, &other.v)
	return balanceFrom(&sum)
}

func (b Balance) Sub(other Balance) (Balance, error) {
	if b.v.Lt(&other.v) {
		return Balance{}, fmt.Errorf("balance underflow (%s - %s)", b, other)
	}
	var diff uint256.Int
	diff.Sub(&b.v, &other.v)
	return Balance{v: diff}, nil
}

func (b Balance) MulUint64(n uint64) (Balance, error) {
	var product uint256.Int
	product.Mul(&b.v, uint256.NewInt(n))
	return balanceFrom(&product)
}

func (b Balance) String() string {
	return b.v.Dec()
}

func (b Balance) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(b.String())), nil
}

func (b *Balance) UnmarshalJSON(data []byte) error {
	text := string(bytes.Trim(data, `"`))
	balance, err := ParseBalance(text)
	if err != nil {
		return err
	}
	*b = balance
	return nil
}
