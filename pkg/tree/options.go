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

// Options are the path-safety relaxations for a materialization. The zero
// value is the most restrictive configuration; each flag is an independent
// opt-in. Options travel by value through the whole traversal.
type Options struct {
	// AllowAbsolute permits keys that name absolute paths. Such keys write
	// to the named path directly instead of below the destination root.
	AllowAbsolute bool

	// AllowParent permits ".." segments in keys.
	AllowParent bool

	// AllowSeparators permits keys spanning multiple path segments, and
	// switches directory creation to recursive.
	AllowSeparators bool
}

// Option is an option for a Materializer.
type Option func(*Materializer) error

// WithOptions sets the path-safety relaxations.
func WithOptions(opts Options) Option {
	return func(m *Materializer) error {
		m.opts = opts
		return nil
	}
}

// WithFS substitutes the filesystem the materializer writes through.
// The default writes to the OS filesystem.
func WithFS(fsys WriteFS) Option {
	return func(m *Materializer) error {
		m.fsys = fsys
		return nil
	}
}
