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
	"io/fs"
)

// Access is one fully resolved permission class.
type Access struct {
	Read    bool
	Write   bool
	Execute bool
}

// Mode is a fully resolved permission set: all nine slots populated.
type Mode struct {
	User  Access
	Group Access
	Other Access
}

// AccessOverride is a partial permission class: a nil slot inherits the
// current bit.
type AccessOverride struct {
	Read    *bool
	Write   *bool
	Execute *bool
}

// ModeOverride is a partial permission set. It is only ever merged against
// a resolved Mode, never applied on its own.
type ModeOverride struct {
	User  AccessOverride
	Group AccessOverride
	Other AccessOverride
}

// MergeMode merges a partial override into a resolved mode. Each of the
// nine slots is independent: specified slots take the override value,
// unspecified slots keep the current one.
func MergeMode(current Mode, o ModeOverride) Mode {
	return Mode{
		User:  mergeAccess(current.User, o.User),
		Group: mergeAccess(current.Group, o.Group),
		Other: mergeAccess(current.Other, o.Other),
	}
}

func mergeAccess(current Access, o AccessOverride) Access {
	return Access{
		Read:    pick(current.Read, o.Read),
		Write:   pick(current.Write, o.Write),
		Execute: pick(current.Execute, o.Execute),
	}
}

func pick(current bool, override *bool) bool {
	if override != nil {
		return *override
	}
	return current
}

// ModeFromFileMode resolves the nine permission bits of a file mode.
func ModeFromFileMode(m fs.FileMode) Mode {
	perm := m.Perm()
	return Mode{
		User: Access{
			Read:    perm&0o400 != 0,
			Write:   perm&0o200 != 0,
			Execute: perm&0o100 != 0,
		},
		Group: Access{
			Read:    perm&0o040 != 0,
			Write:   perm&0o020 != 0,
			Execute: perm&0o010 != 0,
		},
		Other: Access{
			Read:    perm&0o004 != 0,
			Write:   perm&0o002 != 0,
			Execute: perm&0o001 != 0,
		},
	}
}

// FileMode renders the resolved mode as permission bits.
func (m Mode) FileMode() fs.FileMode {
	var perm fs.FileMode
	if m.User.Read {
		perm |= 0o400
	}
	if m.User.Write {
		perm |= 0o200
	}
	if m.User.Execute {
		perm |= 0o100
	}
	if m.Group.Read {
		perm |= 0o040
	}
	if m.Group.Write {
		perm |= 0o020
	}
	if m.Group.Execute {
		perm |= 0o010
	}
	if m.Other.Read {
		perm |= 0o004
	}
	if m.Other.Write {
		perm |= 0o002
	}
	if m.Other.Execute {
		perm |= 0o001
	}
	return perm
}
