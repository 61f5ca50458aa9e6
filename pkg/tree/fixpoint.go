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
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/gocty"
)

// The decoder gives a fixpoint candidate the two capabilities it is generic
// over: "how to build a directory" and "how to build a file". Both produce
// an opaque representation value (a capsule around FilesystemEntry), and
// the candidate must return a sequence of them. Type checking and value
// extraction are the engine's job: the cty function machinery converts each
// argument to the entry schema, and evaluation diagnostics carry any
// mismatch back out.

// entryCapsule is the opaque representation type the capabilities build.
var entryCapsule = cty.Capsule("filesystem entry", reflect.TypeOf((*FilesystemEntry)(nil)).Elem())

func accessSchema() cty.Type {
	return cty.ObjectWithOptionalAttrs(map[string]cty.Type{
		"read":    cty.Bool,
		"write":   cty.Bool,
		"execute": cty.Bool,
	}, []string{"read", "write", "execute"})
}

func modeSchema() cty.Type {
	access := accessSchema()
	return cty.ObjectWithOptionalAttrs(map[string]cty.Type{
		"user":  access,
		"group": access,
		"other": access,
	}, []string{"user", "group", "other"})
}

// entrySchema is the argument schema shared by both capabilities; only the
// content type differs: a sequence of representations for directories,
// text for files. User and group stay dynamic because each admits both a
// numeric id and a name.
func entrySchema(content cty.Type) cty.Type {
	return cty.ObjectWithOptionalAttrs(map[string]cty.Type{
		"name":    cty.String,
		"content": content,
		"user":    cty.DynamicPseudoType,
		"group":   cty.DynamicPseudoType,
		"mode":    modeSchema(),
	}, []string{"user", "group", "mode"})
}

// DecodeEntries evaluates a fixpoint candidate into its explicit entry
// sequence. Expressions that do not fit the entry schema fail with
// SchemaTypeError; expressions that evaluate cleanly but do not produce a
// sequence of entries fail with StructuralDecodeError.
func DecodeEntries(fx Fixpoint) ([]FilesystemEntry, error) {
	directoryFn := function.New(&function.Spec{
		Params: []function.Parameter{{
			Name: "entry",
			Type: entrySchema(cty.List(entryCapsule)),
		}},
		Type: function.StaticReturnType(entryCapsule),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			meta, err := decodeEntryMeta(args[0])
			if err != nil {
				return cty.NilVal, err
			}
			children, err := decodeChildren(args[0].GetAttr("content"))
			if err != nil {
				return cty.NilVal, err
			}
			var e FilesystemEntry = DirectoryEntry{Entry: meta, Children: children}
			return cty.CapsuleVal(entryCapsule, &e), nil
		},
	})

	fileFn := function.New(&function.Spec{
		Params: []function.Parameter{{
			Name: "entry",
			Type: entrySchema(cty.String),
		}},
		Type: function.StaticReturnType(entryCapsule),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			meta, err := decodeEntryMeta(args[0])
			if err != nil {
				return cty.NilVal, err
			}
			content := args[0].GetAttr("content")
			if content.IsNull() {
				return cty.NilVal, fmt.Errorf("file %q has no content", meta.Name)
			}
			var e FilesystemEntry = FileEntry{Entry: meta, Content: content.AsString()}
			return cty.CapsuleVal(entryCapsule, &e), nil
		},
	})

	evalCtx := fx.Ctx.NewChild()
	evalCtx.Functions = map[string]function.Function{
		"directory": directoryFn,
		"file":      fileFn,
	}

	result, diags := fx.Expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, SchemaTypeError{Diags: diags}
	}
	return extractEntries(result)
}

// extractEntries unpacks the evaluated representation sequence.
func extractEntries(v cty.Value) ([]FilesystemEntry, error) {
	if v.IsNull() {
		return nil, StructuralDecodeError{Reason: "result is null"}
	}
	t := v.Type()
	if !t.IsListType() && !t.IsTupleType() {
		return nil, StructuralDecodeError{Reason: fmt.Sprintf("result is %s, not a sequence", t.FriendlyName())}
	}
	entries := make([]FilesystemEntry, 0, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if !elem.Type().Equals(entryCapsule) {
			return nil, StructuralDecodeError{Reason: fmt.Sprintf("sequence element is %s, not an entry", elem.Type().FriendlyName())}
		}
		entries = append(entries, *elem.EncapsulatedValue().(*FilesystemEntry))
	}
	return entries, nil
}

func decodeChildren(content cty.Value) ([]FilesystemEntry, error) {
	if content.IsNull() {
		return nil, fmt.Errorf("directory has no content")
	}
	children := make([]FilesystemEntry, 0, content.LengthInt())
	for it := content.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		children = append(children, *elem.EncapsulatedValue().(*FilesystemEntry))
	}
	return children, nil
}

// decodeEntryMeta decodes the shared entry attributes: name plus the
// optional ownership and mode overrides.
func decodeEntryMeta(v cty.Value) (Entry, error) {
	name := v.GetAttr("name")
	if name.IsNull() {
		return Entry{}, fmt.Errorf("entry has no name")
	}
	e := Entry{Name: name.AsString()}

	userVal := v.GetAttr("user")
	if !userVal.IsNull() {
		u, err := decodeAccount(userVal)
		if err != nil {
			return Entry{}, fmt.Errorf("entry %q: user: %w", e.Name, err)
		}
		switch a := u.(type) {
		case int:
			e.User = UID(a)
		case string:
			e.User = Username(a)
		}
	}

	groupVal := v.GetAttr("group")
	if !groupVal.IsNull() {
		g, err := decodeAccount(groupVal)
		if err != nil {
			return Entry{}, fmt.Errorf("entry %q: group: %w", e.Name, err)
		}
		switch a := g.(type) {
		case int:
			e.Group = GID(a)
		case string:
			e.Group = Groupname(a)
		}
	}

	modeVal := v.GetAttr("mode")
	if !modeVal.IsNull() {
		mode, err := decodeModeOverride(modeVal)
		if err != nil {
			return Entry{}, fmt.Errorf("entry %q: mode: %w", e.Name, err)
		}
		e.Mode = &mode
	}

	return e, nil
}

// decodeAccount accepts a numeric id or a symbolic name.
func decodeAccount(v cty.Value) (any, error) {
	switch v.Type() {
	case cty.Number:
		var id int
		if err := gocty.FromCtyValue(v, &id); err != nil {
			return nil, err
		}
		return id, nil
	case cty.String:
		return v.AsString(), nil
	default:
		return nil, fmt.Errorf("must be an id or a name, got %s", v.Type().FriendlyName())
	}
}

func decodeModeOverride(v cty.Value) (ModeOverride, error) {
	var mode ModeOverride
	for class, target := range map[string]*AccessOverride{
		"user":  &mode.User,
		"group": &mode.Group,
		"other": &mode.Other,
	} {
		classVal := v.GetAttr(class)
		if classVal.IsNull() {
			continue
		}
		access, err := decodeAccessOverride(classVal)
		if err != nil {
			return ModeOverride{}, fmt.Errorf("%s: %w", class, err)
		}
		*target = access
	}
	return mode, nil
}

func decodeAccessOverride(v cty.Value) (AccessOverride, error) {
	var access AccessOverride
	for bit, target := range map[string]**bool{
		"read":    &access.Read,
		"write":   &access.Write,
		"execute": &access.Execute,
	} {
		bitVal := v.GetAttr(bit)
		if bitVal.IsNull() {
			continue
		}
		b := bitVal.True()
		*target = &b
	}
	return access, nil
}
