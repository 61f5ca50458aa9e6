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
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFixpoint(t *testing.T, src string) Fixpoint {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.Pos{Line: 1, Column: 1})
	require.False(t, diags.HasErrors(), "parse: %s", diags.Error())
	return Fixpoint{Expr: expr}
}

func TestDecodeEntriesFileAndDirectory(t *testing.T) {
	fx := parseFixpoint(t, `[
		directory({
			name = "etc"
			content = [
				file({ name = "motd", content = "welcome\n" }),
			]
		}),
		file({ name = "top.txt", content = "x" }),
	]`)

	entries, err := DecodeEntries(fx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	dir, ok := entries[0].(DirectoryEntry)
	require.True(t, ok)
	assert.Equal(t, "etc", dir.Name)
	require.Len(t, dir.Children, 1)

	motd, ok := dir.Children[0].(FileEntry)
	require.True(t, ok)
	assert.Equal(t, "motd", motd.Name)
	assert.Equal(t, "welcome\n", motd.Content)

	top, ok := entries[1].(FileEntry)
	require.True(t, ok)
	assert.Equal(t, "top.txt", top.Name)
	assert.Equal(t, "x", top.Content)
}

func TestDecodeEntriesMetadata(t *testing.T) {
	fx := parseFixpoint(t, `[
		file({
			name    = "id_rsa"
			content = "secret"
			user    = 0
			group   = "wheel"
			mode = {
				user  = { read = true, write = true, execute = false }
				other = { read = false }
			}
		}),
	]`)

	entries, err := DecodeEntries(fx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	f, ok := entries[0].(FileEntry)
	require.True(t, ok)
	assert.Equal(t, UID(0), f.User)
	assert.Equal(t, Groupname("wheel"), f.Group)

	require.NotNil(t, f.Mode)
	require.NotNil(t, f.Mode.User.Read)
	assert.True(t, *f.Mode.User.Read)
	require.NotNil(t, f.Mode.User.Execute)
	assert.False(t, *f.Mode.User.Execute)
	assert.Nil(t, f.Mode.Group.Read, "unspecified class stays unspecified")
	require.NotNil(t, f.Mode.Other.Read)
	assert.False(t, *f.Mode.Other.Read)
	assert.Nil(t, f.Mode.Other.Write, "unspecified slot stays unspecified")
}

func TestDecodeEntriesEmptySequence(t *testing.T) {
	entries, err := DecodeEntries(parseFixpoint(t, `[]`))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDecodeEntriesSchemaErrors(t *testing.T) {
	for _, test := range []struct {
		desc string
		src  string
	}{
		{
			desc: "file without content",
			src:  `[file({ name = "x" })]`,
		},
		{
			desc: "directory content must be a sequence",
			src:  `[directory({ name = "d", content = "nope" })]`,
		},
		{
			desc: "user must be id or name",
			src:  `[file({ name = "x", content = "c", user = true })]`,
		},
		{
			desc: "unknown capability",
			src:  `[symlink({ name = "x", content = "c" })]`,
		},
	} {
		t.Run(test.desc, func(t *testing.T) {
			_, err := DecodeEntries(parseFixpoint(t, test.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, SchemaTypeError{})
		})
	}
}

func TestDecodeEntriesStructuralErrors(t *testing.T) {
	for _, test := range []struct {
		desc string
		src  string
	}{
		{
			desc: "result is not a sequence",
			src:  `"hello"`,
		},
		{
			desc: "sequence of non-entries",
			src:  `[1, 2]`,
		},
		{
			desc: "single entry without sequence",
			src:  `file({ name = "x", content = "c" })`,
		},
	} {
		t.Run(test.desc, func(t *testing.T) {
			_, err := DecodeEntries(parseFixpoint(t, test.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, StructuralDecodeError{})
		})
	}
}

func TestDecodeEntriesPreservesOrder(t *testing.T) {
	fx := parseFixpoint(t, `[
		file({ name = "1", content = "a" }),
		file({ name = "2", content = "b" }),
		file({ name = "3", content = "c" }),
	]`)

	entries, err := DecodeEntries(fx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, want := range []string{"1", "2", "3"} {
		f, ok := entries[i].(FileEntry)
		require.True(t, ok)
		assert.Equal(t, want, f.Name)
	}
}
