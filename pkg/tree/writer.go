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
	"io/fs"
	"os"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// WriteFS is the slice of filesystem behavior materialization needs. The
// default implementation writes through the OS; tests substitute recording
// fakes so ownership changes can be observed without root.
type WriteFS interface {
	// Mkdir creates a single directory level. An already existing
	// directory is not an error.
	Mkdir(path string, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	// WriteFile creates or overwrites path, truncating it to exactly the
	// given bytes.
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Stat(path string) (fs.FileInfo, error)
	Chmod(path string, mode fs.FileMode) error
	Chown(path string, uid, gid int) error
}

// osFS writes file content through go-billy rooted at the real filesystem
// root, so keys permitted by AllowAbsolute land on their true absolute
// paths rather than below the destination. Ownership and permission calls
// go straight to the OS; billy makes no promises about either.
type osFS struct {
	root billy.Filesystem
}

// DirFS returns the default OS-backed filesystem.
func DirFS() WriteFS {
	return &osFS{root: osfs.New("/")}
}

func (o *osFS) Mkdir(path string, perm fs.FileMode) error {
	err := os.Mkdir(path, perm)
	if err != nil && errors.Is(err, fs.ErrExist) {
		return nil
	}
	return err
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	return o.root.MkdirAll(path, perm)
}

func (o *osFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return util.WriteFile(o.root, path, data, perm)
}

func (o *osFS) Stat(path string) (fs.FileInfo, error) {
	return o.root.Stat(path)
}

func (o *osFS) Chmod(path string, mode fs.FileMode) error {
	return os.Chmod(path, mode)
}

func (o *osFS) Chown(path string, uid, gid int) error {
	return os.Chown(path, uid, gid)
}
