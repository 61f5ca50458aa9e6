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
	"io/fs"
	"os/user"
	"strconv"
	"syscall"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sys/unix"
)

// applyMetadata resolves the desired owner, group and mode for path and
// issues at most one chown and one chmod, each only when the resolved value
// differs from what is already on disk. Callers must have finished writing
// the path's content (and, for directories, all children) first.
func (m *Materializer) applyMetadata(ctx context.Context, e Entry, path string) error {
	log := clog.FromContext(ctx)

	fi, err := m.fsys.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	curUID, curGID := ownerOf(fi)

	uid := curUID
	switch u := e.User.(type) {
	case nil:
	case UID:
		uid = int(u)
	case Username:
		account, err := user.Lookup(string(u))
		if err != nil {
			return AccountLookupError{Kind: "user", Name: string(u), Err: err}
		}
		uid, err = strconv.Atoi(account.Uid)
		if err != nil {
			return AccountLookupError{Kind: "user", Name: string(u), Err: err}
		}
	}

	gid := curGID
	switch g := e.Group.(type) {
	case nil:
	case GID:
		gid = int(g)
	case Groupname:
		group, err := user.LookupGroup(string(g))
		if err != nil {
			return AccountLookupError{Kind: "group", Name: string(g), Err: err}
		}
		gid, err = strconv.Atoi(group.Gid)
		if err != nil {
			return AccountLookupError{Kind: "group", Name: string(g), Err: err}
		}
	}

	if uid != curUID || gid != curGID {
		log.Debugf("chown %s to %d:%d", path, uid, gid)
		if err := m.fsys.Chown(path, uid, gid); err != nil {
			return fmt.Errorf("chown %s: %w", path, err)
		}
	}

	current := ModeFromFileMode(fi.Mode())
	desired := current
	if e.Mode != nil {
		desired = MergeMode(current, *e.Mode)
	}
	if desired != current {
		log.Debugf("chmod %s to %s", path, desired.FileMode())
		if err := m.fsys.Chmod(path, desired.FileMode()); err != nil {
			return fmt.Errorf("chmod %s: %w", path, err)
		}
	}

	return nil
}

// ownerOf extracts uid and gid from a stat result. A filesystem that does
// not surface ownership yields -1 for both, which chown treats as "leave
// unchanged".
func ownerOf(fi fs.FileInfo) (uid, gid int) {
	switch st := fi.Sys().(type) {
	case *syscall.Stat_t:
		return int(st.Uid), int(st.Gid)
	case *unix.Stat_t:
		return int(st.Uid), int(st.Gid)
	}
	return -1, -1
}
