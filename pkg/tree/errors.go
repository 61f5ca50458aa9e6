// Copyright 2026 Chainguard, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tree

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// The error types below are the whole failure surface of a materialization.
// Every one of them is terminal for the in-flight call: nothing is retried,
// nothing already written is cleaned up. The caller owns presentation.

// AbsolutePathError reports a key that names an absolute path while
// Options.AllowAbsolute is false.
type AbsolutePathError struct {
	Key string
}

func (e AbsolutePathError) Error() string {
	return fmt.Sprintf("key %q is an absolute path", e.Key)
}

func (e AbsolutePathError) Is(target error) bool {
	var t AbsolutePathError
	return errors.As(target, &t)
}

// ParentSegmentError reports a key containing a ".." segment while
// Options.AllowParent is false.
type ParentSegmentError struct {
	Key string
}

func (e ParentSegmentError) Error() string {
	return fmt.Sprintf("key %q contains a parent directory segment", e.Key)
}

func (e ParentSegmentError) Is(target error) bool {
	var t ParentSegmentError
	return errors.As(target, &t)
}

// SeparatorError reports a key spanning more than one path segment while
// Options.AllowSeparators is false.
type SeparatorError struct {
	Key string
}

func (e SeparatorError) Error() string {
	return fmt.Sprintf("key %q contains a path separator", e.Key)
}

func (e SeparatorError) Is(target error) bool {
	var t SeparatorError
	return errors.As(target, &t)
}

// UnconvertibleValueError reports a value whose shape has no filesystem
// meaning. The offending value is retained for diagnostics.
type UnconvertibleValueError struct {
	Value any
}

func (e UnconvertibleValueError) Error() string {
	return fmt.Sprintf("value %v cannot be converted to a filesystem entry", e.Value)
}

func (e UnconvertibleValueError) Is(target error) bool {
	var t UnconvertibleValueError
	return errors.As(target, &t)
}

// SchemaTypeError reports a fixpoint candidate that does not conform to the
// entry schema. The evaluation diagnostics carry the mismatch.
type SchemaTypeError struct {
	Diags hcl.Diagnostics
}

func (e SchemaTypeError) Error() string {
	return fmt.Sprintf("expression does not fit the entry schema: %s", e.Diags.Error())
}

func (e SchemaTypeError) Is(target error) bool {
	var t SchemaTypeError
	return errors.As(target, &t)
}

// StructuralDecodeError reports a fixpoint candidate that evaluated cleanly
// but whose result is not a sequence of entries.
type StructuralDecodeError struct {
	Reason string
}

func (e StructuralDecodeError) Error() string {
	return fmt.Sprintf("expression result is not an entry sequence: %s", e.Reason)
}

func (e StructuralDecodeError) Is(target error) bool {
	var t StructuralDecodeError
	return errors.As(target, &t)
}

// AccountLookupError reports a named user or group that the system account
// database could not resolve.
type AccountLookupError struct {
	Kind string // "user" or "group"
	Name string
	Err  error
}

func (e AccountLookupError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}

func (e AccountLookupError) Is(target error) bool {
	var t AccountLookupError
	return errors.As(target, &t)
}

func (e AccountLookupError) Unwrap() error {
	return e.Err
}
