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
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/chainguard-dev/clog"
)

const (
	defaultDirPerm  = 0o755
	defaultFilePerm = 0o644
)

// Materializer writes configuration values to the filesystem.
type Materializer struct {
	opts Options
	fsys WriteFS
}

// New creates a Materializer. With no options it writes to the OS
// filesystem with every path-safety relaxation off.
func New(opts ...Option) (*Materializer, error) {
	m := &Materializer{
		fsys: DirFS(),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Options returns the path-safety relaxations in effect.
func (m *Materializer) Options() Options {
	return m.opts
}

// Materialize writes value at dest, depth first. Records and pair
// sequences become directories, text becomes file content, fixpoint
// candidates are decoded into entry sequences and materialized in order.
// The first error aborts the traversal; anything already written stays.
func (m *Materializer) Materialize(ctx context.Context, dest string, v Value) error {
	log := clog.FromContext(ctx)

	switch val := v.(type) {
	case Record:
		// Sibling order is unspecified; sort only so repeated runs log
		// identically.
		names := make([]string, 0, len(val))
		for name := range val {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := m.materializeField(ctx, dest, name, val[name]); err != nil {
				return err
			}
		}
		return nil

	case Pairs:
		for _, p := range val {
			if err := m.materializeField(ctx, dest, p.Name, p.Value); err != nil {
				return err
			}
		}
		return nil

	case Text:
		log.Debugf("writing %s (%d bytes)", dest, len(val))
		if err := m.fsys.WriteFile(dest, []byte(val), defaultFilePerm); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
		return nil

	case Some:
		return m.Materialize(ctx, dest, val.Value)

	case None:
		return nil

	case Union:
		return m.Materialize(ctx, dest, val.Value)

	case Fixpoint:
		entries, err := DecodeEntries(val)
		if err != nil {
			return err
		}
		return m.materializeEntries(ctx, dest, entries)

	case Raw:
		return UnconvertibleValueError{Value: val.Value}

	default:
		return UnconvertibleValueError{Value: v}
	}
}

// materializeField validates one key, prepares its parent directories and
// recurses into the child at the key's target path.
func (m *Materializer) materializeField(ctx context.Context, dest, name string, child Value) error {
	if err := CheckKey(name, m.opts); err != nil {
		return err
	}

	target := name
	if !filepath.IsAbs(name) {
		target = filepath.Join(dest, name)
	}

	parent := filepath.Dir(target)
	if m.opts.AllowSeparators {
		if err := m.fsys.MkdirAll(parent, defaultDirPerm); err != nil {
			return fmt.Errorf("creating %s: %w", parent, err)
		}
	} else {
		if err := m.fsys.Mkdir(parent, defaultDirPerm); err != nil {
			return fmt.Errorf("creating %s: %w", parent, err)
		}
	}

	return m.Materialize(ctx, target, child)
}
