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

// User identifies the desired owner of an entry, either directly by id or
// symbolically by account name. A nil User keeps the current owner.
type User interface {
	isUser()
}

// UID is a numeric user id.
type UID int

// Username is a symbolic account name, resolved against the system account
// database when metadata is applied.
type Username string

func (UID) isUser()      {}
func (Username) isUser() {}

// Group mirrors User for the owning group.
type Group interface {
	isGroup()
}

// GID is a numeric group id.
type GID int

// Groupname is a symbolic group name.
type Groupname string

func (GID) isGroup()       {}
func (Groupname) isGroup() {}

// Entry is the metadata common to files and directories in a decoded entry
// sequence. Absent fields inherit whatever the path already has on disk.
type Entry struct {
	Name  string
	User  User
	Group Group
	Mode  *ModeOverride
}

// FilesystemEntry is one decoded element of a fixpoint entry sequence,
// either a directory with ordered children or a file with literal content.
// Entries are built once by the decoder and consumed once by the walker.
type FilesystemEntry interface {
	isEntry()
}

// DirectoryEntry is a directory and its children, in materialization order.
type DirectoryEntry struct {
	Entry
	Children []FilesystemEntry
}

// FileEntry is a file with its verbatim content.
type FileEntry struct {
	Entry
	Content string
}

func (DirectoryEntry) isEntry() {}
func (FileEntry) isEntry()      {}
