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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMaterializer(t *testing.T, opts Options) *Materializer {
	t.Helper()
	m, err := New(WithOptions(opts))
	require.NoError(t, err)
	return m
}

func TestMaterializeRecord(t *testing.T) {
	ctx := context.Background()
	dest := filepath.Join(t.TempDir(), "out")

	m := newMaterializer(t, Options{})
	err := m.Materialize(ctx, dest, Record{
		"a": Text("alpha"),
		"b": Text("beta"),
	})
	require.NoError(t, err)

	// Only final state matters; sibling order is unspecified.
	a, err := os.ReadFile(filepath.Join(dest, "a"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(a))

	b, err := os.ReadFile(filepath.Join(dest, "b"))
	require.NoError(t, err)
	assert.Equal(t, "beta", string(b))
}

func TestMaterializeTextRoundTrip(t *testing.T) {
	ctx := context.Background()
	dest := filepath.Join(t.TempDir(), "out")

	m := newMaterializer(t, Options{})
	require.NoError(t, m.Materialize(ctx, dest, Record{"goodbye.txt": Text("Hello\n")}))

	got, err := os.ReadFile(filepath.Join(dest, "goodbye.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Hello\n", string(got), "content must round-trip byte-exact, no added terminator")
}

func TestMaterializeTextOverwritesAndTruncates(t *testing.T) {
	ctx := context.Background()
	dest := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.MkdirAll(dest, 0o755))

	target := filepath.Join(dest, "f")
	require.NoError(t, os.WriteFile(target, []byte("something much longer than the replacement"), 0o644))

	m := newMaterializer(t, Options{})
	require.NoError(t, m.Materialize(ctx, dest, Record{"f": Text("short")}))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "short", string(got))
}

func TestMaterializeEmptyPairsIsNoop(t *testing.T) {
	ctx := context.Background()
	dest := filepath.Join(t.TempDir(), "out")

	m := newMaterializer(t, Options{})
	require.NoError(t, m.Materialize(ctx, dest, Pairs{}))

	_, err := os.Stat(dest)
	assert.True(t, os.IsNotExist(err), "empty sequence must produce zero filesystem changes")
}

func TestMaterializePairsInOrder(t *testing.T) {
	ctx := context.Background()
	dest := filepath.Join(t.TempDir(), "out")

	m := newMaterializer(t, Options{})
	err := m.Materialize(ctx, dest, Pairs{
		{Name: "f", Value: Text("first")},
		{Name: "f", Value: Text("second")},
	})
	require.NoError(t, err)

	// The later pair wins because pairs materialize in input order.
	got, err := os.ReadFile(filepath.Join(dest, "f"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestMaterializeNestedRecords(t *testing.T) {
	ctx := context.Background()
	dest := filepath.Join(t.TempDir(), "out")

	m := newMaterializer(t, Options{})
	err := m.Materialize(ctx, dest, Record{
		"etc": Record{
			"motd": Text("welcome\n"),
		},
	})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dest, "etc", "motd"))
	require.NoError(t, err)
	assert.Equal(t, "welcome\n", string(got))
}

func TestMaterializeOptionals(t *testing.T) {
	ctx := context.Background()
	dest := filepath.Join(t.TempDir(), "out")

	m := newMaterializer(t, Options{})
	err := m.Materialize(ctx, dest, Record{
		"present": Some{Value: Text("x")},
		"absent":  None{},
	})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dest, "present"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))

	_, err = os.Stat(filepath.Join(dest, "absent"))
	assert.True(t, os.IsNotExist(err), "absent optional must produce nothing")
}

func TestMaterializeUnionUnwrapsPayload(t *testing.T) {
	ctx := context.Background()
	dest := filepath.Join(t.TempDir(), "out")

	m := newMaterializer(t, Options{})
	err := m.Materialize(ctx, dest, Record{
		"f": Union{Tag: "Inline", Value: Text("payload")},
	})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dest, "f"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
}

func TestMaterializeRejectsRawValues(t *testing.T) {
	ctx := context.Background()
	dest := filepath.Join(t.TempDir(), "out")

	m := newMaterializer(t, Options{})
	err := m.Materialize(ctx, dest, Record{"n": Raw{Value: 42}})
	assert.ErrorIs(t, err, UnconvertibleValueError{})
}

func TestMaterializePathSafety(t *testing.T) {
	ctx := context.Background()

	t.Run("absolute key rejected", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "out")
		m := newMaterializer(t, Options{})
		err := m.Materialize(ctx, dest, Record{"/etc/x": Text("nope")})
		assert.ErrorIs(t, err, AbsolutePathError{})
	})

	t.Run("absolute key writes to the absolute path", func(t *testing.T) {
		sandbox := t.TempDir()
		dest := filepath.Join(sandbox, "out")
		target := filepath.Join(sandbox, "elsewhere", "x")

		m := newMaterializer(t, Options{AllowAbsolute: true, AllowSeparators: true})
		require.NoError(t, m.Materialize(ctx, dest, Record{target: Text("moved")}))

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "moved", string(got))

		_, err = os.Stat(filepath.Join(dest, target))
		assert.True(t, os.IsNotExist(err), "must not also write below the destination root")
	})

	t.Run("parent key rejected", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "out")
		m := newMaterializer(t, Options{})
		err := m.Materialize(ctx, dest, Record{"..": Record{"x": Text("nope")}})
		assert.ErrorIs(t, err, ParentSegmentError{})
	})

	t.Run("separator key rejected", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "out")
		m := newMaterializer(t, Options{})
		err := m.Materialize(ctx, dest, Record{"a/b": Text("nope")})
		assert.ErrorIs(t, err, SeparatorError{})
	})

	t.Run("separator key creates intermediate directories", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "out")
		m := newMaterializer(t, Options{AllowSeparators: true})
		require.NoError(t, m.Materialize(ctx, dest, Record{"a/b/c": Text("deep")}))

		got, err := os.ReadFile(filepath.Join(dest, "a", "b", "c"))
		require.NoError(t, err)
		assert.Equal(t, "deep", string(got))
	})
}

func TestMaterializeStopsAtFirstError(t *testing.T) {
	ctx := context.Background()
	dest := filepath.Join(t.TempDir(), "out")

	m := newMaterializer(t, Options{})
	err := m.Materialize(ctx, dest, Pairs{
		{Name: "written", Value: Text("kept")},
		{Name: "/bad", Value: Text("never")},
		{Name: "after", Value: Text("never")},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, AbsolutePathError{})

	// No rollback: what was written before the failure stays.
	got, err := os.ReadFile(filepath.Join(dest, "written"))
	require.NoError(t, err)
	assert.Equal(t, "kept", string(got))

	_, err = os.Stat(filepath.Join(dest, "after"))
	assert.True(t, os.IsNotExist(err))
}
