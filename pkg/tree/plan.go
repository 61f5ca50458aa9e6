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
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Plan renders the filesystem actions Materialize would take for value at
// dest, without touching the filesystem. Fixpoint candidates are decoded so
// the plan shows their explicit entries, including metadata overrides.
func Plan(dest string, v Value) (string, error) {
	var b strings.Builder
	if err := planValue(&b, dest, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

func planValue(b *strings.Builder, dest string, v Value) error {
	switch val := v.(type) {
	case Record:
		names := make([]string, 0, len(val))
		for name := range val {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := planValue(b, joinPlanPath(dest, name), val[name]); err != nil {
				return err
			}
		}
		return nil

	case Pairs:
		for _, p := range val {
			if err := planValue(b, joinPlanPath(dest, p.Name), p.Value); err != nil {
				return err
			}
		}
		return nil

	case Text:
		fmt.Fprintf(b, "file %s (%d bytes)\n", dest, len(val))
		return nil

	case Some:
		return planValue(b, dest, val.Value)

	case None:
		return nil

	case Union:
		return planValue(b, dest, val.Value)

	case Fixpoint:
		entries, err := DecodeEntries(val)
		if err != nil {
			return err
		}
		return planEntries(b, dest, entries)

	case Raw:
		return UnconvertibleValueError{Value: val.Value}

	default:
		return UnconvertibleValueError{Value: v}
	}
}

func planEntries(b *strings.Builder, dest string, entries []FilesystemEntry) error {
	for _, entry := range entries {
		switch e := entry.(type) {
		case DirectoryEntry:
			path := filepath.Join(dest, e.Name)
			fmt.Fprintf(b, "dir %s%s\n", path, planMeta(e.Entry))
			if err := planEntries(b, path, e.Children); err != nil {
				return err
			}
		case FileEntry:
			path := filepath.Join(dest, e.Name)
			fmt.Fprintf(b, "file %s (%d bytes)%s\n", path, len(e.Content), planMeta(e.Entry))
		}
	}
	return nil
}

func planMeta(e Entry) string {
	var parts []string
	switch u := e.User.(type) {
	case UID:
		parts = append(parts, fmt.Sprintf("user=%d", int(u)))
	case Username:
		parts = append(parts, fmt.Sprintf("user=%s", string(u)))
	}
	switch g := e.Group.(type) {
	case GID:
		parts = append(parts, fmt.Sprintf("group=%d", int(g)))
	case Groupname:
		parts = append(parts, fmt.Sprintf("group=%s", string(g)))
	}
	if e.Mode != nil {
		parts = append(parts, "mode override")
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

func joinPlanPath(dest, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dest, name)
}
