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
	"github.com/hashicorp/hcl/v2"
)

// Value is a normalized configuration value as handed over by one of the
// frontends (or constructed directly by a library caller). It is a closed
// set of shapes: Materialize dispatches on the concrete type and rejects
// anything outside the set with UnconvertibleValueError. New shapes are
// added here, never by open-ended type inspection at the call sites.
type Value interface {
	isValue()
}

// Record maps names to child values. Iteration order across siblings is
// unspecified; callers must not rely on it.
type Record map[string]Value

// Pair is one element of an ordered Pairs sequence.
type Pair struct {
	Name  string
	Value Value
}

// Pairs is a name/value sequence whose order is significant. An empty
// sequence materializes nothing.
type Pairs []Pair

// Text is a literal file body, written verbatim.
type Text string

// Some wraps a present optional value; None is the absent optional.
type Some struct {
	Value Value
}

// None materializes nothing.
type None struct{}

// Union carries the single payload of a tagged alternative. The tag is kept
// for diagnostics only; materialization unwraps the payload and discards it.
type Union struct {
	Tag   string
	Value Value
}

// Fixpoint is a candidate for the recursive entry encoding: an expression
// that builds its result exclusively through the two capabilities
// "directory" and "file" supplied by the decoder. It stays unevaluated
// until Materialize routes it to DecodeEntries.
type Fixpoint struct {
	Expr hcl.Expression
	// Ctx is the enclosing evaluation scope, if any. The decoder layers the
	// capability functions on top of it.
	Ctx *hcl.EvalContext
}

// Raw holds a frontend value that has no filesystem meaning (numbers,
// booleans, lists that are not name/value pairs, ...). The walker rejects
// it, keeping the original value for the caller's diagnostics.
type Raw struct {
	Value any
}

func (Record) isValue()   {}
func (Pairs) isValue()    {}
func (Text) isValue()     {}
func (Some) isValue()     {}
func (None) isValue()     {}
func (Union) isValue()    {}
func (Fixpoint) isValue() {}
func (Raw) isValue()      {}
