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
	"strconv"
	"strings"
)

// Description is the human-readable part of a failure. Its fields carry the
// values involved, such as an account or a block height, so that they can be
// logged or returned to API clients without parsing the text.
type Description struct {
	Text   string
	Fields Fields
}

// NewDescription creates a description with the given text and fields, kept
// in the order they were given.
func NewDescription(text string, fields ...FieldFunc) Description {
	d := Description{
		Text:   text,
		Fields: make(Fields, 0, len(fields)),
	}
	for _, field := range fields {
		field(&d.Fields)
	}
	return d
}

func (d Description) String() string {
	if len(d.Fields) == 0 {
		return d.Text
	}
	return d.Text + " (" + d.Fields.String() + ")"
}

// Field is a single key/value pair of a description.
type Field struct {
	Key string
	Val interface{}
}

// Fields is an ordered list of description fields.
type Fields []Field

// Iterate calls handle for each field, in order.
func (f Fields) Iterate(handle func(key string, val interface{})) {
	for _, field := range f {
		handle(field.Key, field.Val)
	}
}

func (f Fields) String() string {
	var b strings.Builder
	for i, field := range f {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", field.Key, field.Val)
	}
	return b.String()
}

// FieldFunc adds a field to a description.
type FieldFunc func(*Fields)

func with(key string, val interface{}) FieldFunc {
	return func(f *Fields) {
		*f = append(*f, Field{Key: key, Val: val})
	}
}

// WithErr adds the message of an error under the `error` key. A nil error
// adds nothing.
func WithErr(err error) FieldFunc {
	if err == nil {
		return func(*Fields) {}
	}
	return with("error", err.Error())
}

func WithInt(key string, val int) FieldFunc {
	return with(key, strconv.Itoa(val))
}

func WithUint64(key string, val uint64) FieldFunc {
	return with(key, strconv.FormatUint(val, 10))
}

func WithString(key string, val string) FieldFunc {
	return with(key, val)
}

// WithStringer adds the string form of a value, such as a hash or a key.
func WithStringer(key string, val fmt.Stringer) FieldFunc {
	return with(key, val.String())
}
