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

	"github.com/chainguard-dev/clog"
)

// materializeEntries writes a decoded entry sequence below dest, strictly
// in input order: later entries may depend on earlier ones existing.
//
// Per entry the two phases never interleave: content first, metadata only
// after the content (and, for directories, every child) is on disk. A
// directory whose override drops our own write bit would otherwise lock us
// out of the subtree we are still filling.
//
// Entry names are used as-is; they do not go through CheckKey the way
// record and pair keys do.
func (m *Materializer) materializeEntries(ctx context.Context, dest string, entries []FilesystemEntry) error {
	log := clog.FromContext(ctx)

	for _, entry := range entries {
		switch e := entry.(type) {
		case DirectoryEntry:
			path := filepath.Join(dest, e.Name)
			log.Debugf("creating directory %s", path)
			if m.opts.AllowSeparators {
				if err := m.fsys.MkdirAll(path, defaultDirPerm); err != nil {
					return fmt.Errorf("creating %s: %w", path, err)
				}
			} else {
				if err := m.fsys.Mkdir(path, defaultDirPerm); err != nil {
					return fmt.Errorf("creating %s: %w", path, err)
				}
			}
			if err := m.materializeEntries(ctx, path, e.Children); err != nil {
				return err
			}
			if err := m.applyMetadata(ctx, e.Entry, path); err != nil {
				return err
			}

		case FileEntry:
			path := filepath.Join(dest, e.Name)
			log.Debugf("writing %s (%d bytes)", path, len(e.Content))
			if err := m.fsys.WriteFile(path, []byte(e.Content), defaultFilePerm); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			if err := m.applyMetadata(ctx, e.Entry, path); err != nil {
				return err
			}

		default:
			return UnconvertibleValueError{Value: entry}
		}
	}
	return nil
}
