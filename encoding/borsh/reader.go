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

package borsh

import (
	"encoding/binary"
	"fmt"
)

// Reader reads little-endian binary values from a buffer. The first error
// encountered is kept and all later reads return zero values.
type Reader struct {
	data []byte
	pos  int
	err  error
}

func NewReader(data []byte) *Reader {
	r := Reader{
		data: data,
	}
	return &r
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > len(r.data)-r.pos {
		r.err = fmt.Errorf("unexpected end of data (offset: %d, need: %d, have: %d)", r.pos, n, len(r.data)-r.pos)
		return nil
	}
	chunk := r.data[r.pos : r.pos+n]
	r.pos += n
	return chunk
}

func (r *Reader) U8() uint8 {
	chunk := r.take(1)
	if chunk == nil {
		return 0
	}
	return chunk[0]
}

func (r *Reader) U32() uint32 {
	chunk := r.take(4)
	if chunk == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(chunk)
}

func (r *Reader) U64() uint64 {
	chunk := r.take(8)
	if chunk == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(chunk)
}

// U128 reads a 128-bit value as its low and high halves.
func (r *Reader) U128() (uint64, uint64) {
	lo := r.U64()
	hi := r.U64()
	return lo, hi
}

func (r *Reader) Bool() bool {
	v := r.U8()
	if v > 1 {
		r.Fail(fmt.Errorf("invalid boolean value %d", v))
		return false
	}
	return v == 1
}

// Fixed reads n raw bytes. The result is a copy.
func (r *Reader) Fixed(n int) []byte {
	chunk := r.take(n)
	if chunk == nil {
		return nil
	}
	return append([]byte(nil), chunk...)
}

// Bytes reads a length-prefixed byte slice.
func (r *Reader) Bytes() []byte {
	n := r.Len()
	return r.Fixed(n)
}

// String reads a length-prefixed string.
func (r *Reader) String() string {
	n := r.Len()
	chunk := r.take(n)
	if chunk == nil {
		return ""
	}
	return string(chunk)
}

// Len reads the length prefix of a sequence. Lengths larger than the rest of
// the data are rejected, since every element takes at least one byte.
func (r *Reader) Len() int {
	n := r.U32()
	if r.err != nil {
		return 0
	}
	if int64(n) > int64(len(r.data)-r.pos) {
		r.Fail(fmt.Errorf("invalid sequence length %d (remaining: %d)", n, len(r.data)-r.pos))
		return 0
	}
	return int(n)
}

// Offset returns the number of bytes read so far.
func (r *Reader) Offset() int {
	return r.pos
}

func (r *Reader) Fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) Err() error {
	return r.err
}

// Finish returns the first error encountered, or an error if some data was
// left unread.
func (r *Reader) Finish() error {
	if r.err != nil {
		return r.err
	}
	if r.pos != len(r.data) {
		return fmt.Errorf("unexpected trailing data (%d bytes)", len(r.data)-r.pos)
	}
	return nil
}
