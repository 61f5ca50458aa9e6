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
	"path/filepath"
	"strings"
)

// CheckKey validates a record or pair key before it is used as a path below
// the destination. Checks run in a fixed order: absolute, then parent
// segment, then separator; the first violation wins. The key is split
// literally, without cleaning, so ".." segments stay visible.
//
// An absolute key that passes the absolute check is exempt from the
// separator check: naming a full path is already an explicit opt-in to
// every segment in it.
func CheckKey(key string, opts Options) error {
	abs := filepath.IsAbs(key)
	if abs && !opts.AllowAbsolute {
		return AbsolutePathError{Key: key}
	}
	segments := splitKey(key)
	if !opts.AllowParent {
		for _, seg := range segments {
			if seg == ".." {
				return ParentSegmentError{Key: key}
			}
		}
	}
	if !abs && len(segments) > 1 && !opts.AllowSeparators {
		return SeparatorError{Key: key}
	}
	return nil
}

// splitKey splits a key into its path segments, dropping empty segments and
// the root. No normalization happens here.
func splitKey(key string) []string {
	parts := strings.Split(filepath.ToSlash(key), "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "." {
			continue
		}
		segments = append(segments, p)
	}
	return segments
}
