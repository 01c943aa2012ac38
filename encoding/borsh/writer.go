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
	"math"
)

// Writer appends little-endian binary values to a buffer. The first error
// encountered is kept and all later writes are ignored.
type Writer struct {
	buf []byte
	err error
}

// NewWriter creates a writer with the given initial capacity.
func NewWriter(capacity int) *Writer {
	w := Writer{
		buf: make([]byte, 0, capacity),
	}
	return &w
}

func (w *Writer) U8(v uint8) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, v)
}

func (w *Writer) U32(v uint32) {
	if w.err != nil {
		return
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) U64(v uint64) {
	if w.err != nil {
		return
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// U128 writes a 128-bit value given as its low and high halves.
func (w *Writer) U128(lo uint64, hi uint64) {
	w.U64(lo)
	w.U64(hi)
}

func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
		return
	}
	w.U8(0)
}

// Fixed writes raw bytes without a length prefix.
func (w *Writer) Fixed(data []byte) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, data...)
}

// Bytes writes a byte slice prefixed with its length.
func (w *Writer) Bytes(data []byte) {
	w.Len(len(data))
	w.Fixed(data)
}

// String writes a string prefixed with its length.
func (w *Writer) String(s string) {
	w.Len(len(s))
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, s...)
}

// Len writes the length prefix of a sequence.
func (w *Writer) Len(n int) {
	if uint64(n) > math.MaxUint32 {
		w.Fail(fmt.Errorf("sequence too long (%d elements)", n))
		return
	}
	w.U32(uint32(n))
}

// Fail records an error, unless one was already recorded.
func (w *Writer) Fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *Writer) Err() error {
	return w.err
}

// Result returns the written bytes, or the first error encountered.
func (w *Writer) Result() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf, nil
}
