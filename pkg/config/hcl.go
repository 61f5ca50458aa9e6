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

package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"chainguard.dev/treemat/pkg/tree"
)

// loadHCL lowers an HCL file to a value tree. Attributes become record
// fields; single-label blocks nest a record under the label. An attribute
// expression that calls the directory/file capabilities is kept
// unevaluated as a fixpoint candidate for the decoder.
func loadHCL(path string) (tree.Value, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", path, diags.Error())
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("parsing %s: unexpected body type", path)
	}
	return lowerBody(body)
}

func lowerBody(body *hclsyntax.Body) (tree.Value, error) {
	rec := tree.Record{}

	for name, attr := range body.Attributes {
		v, err := lowerExpr(attr.Expr)
		if err != nil {
			return nil, err
		}
		rec[name] = v
	}

	for _, block := range body.Blocks {
		key := block.Type
		if len(block.Labels) == 1 {
			key = block.Labels[0]
		} else if len(block.Labels) > 1 {
			return nil, fmt.Errorf("block %q: at most one label is supported", block.Type)
		}
		if _, exists := rec[key]; exists {
			return nil, fmt.Errorf("duplicate key %q", key)
		}
		inner, err := lowerBody(block.Body)
		if err != nil {
			return nil, err
		}
		rec[key] = inner
	}

	return rec, nil
}

func lowerExpr(expr hclsyntax.Expression) (tree.Value, error) {
	if callsCapability(expr) {
		return tree.Fixpoint{Expr: expr}, nil
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("evaluating expression: %s", diags.Error())
	}
	return lowerCty(v), nil
}

// capabilityDetector finds calls to the two fixpoint capabilities anywhere
// in an expression.
type capabilityDetector struct {
	found bool
}

func (d *capabilityDetector) Enter(node hclsyntax.Node) hcl.Diagnostics {
	if call, ok := node.(*hclsyntax.FunctionCallExpr); ok {
		if call.Name == "directory" || call.Name == "file" {
			d.found = true
		}
	}
	return nil
}

func (d *capabilityDetector) Exit(hclsyntax.Node) hcl.Diagnostics {
	return nil
}

func callsCapability(expr hclsyntax.Expression) bool {
	var d capabilityDetector
	hclsyntax.Walk(expr, &d)
	return d.found
}

// lowerCty maps an evaluated value onto the closed shape set. Anything the
// materializer cannot interpret stays raw so the walker can report it.
func lowerCty(v cty.Value) tree.Value {
	if v.IsNull() {
		return tree.None{}
	}
	t := v.Type()
	switch {
	case t == cty.String:
		return tree.Text(v.AsString())
	case t.IsObjectType() || t.IsMapType():
		rec := tree.Record{}
		for it := v.ElementIterator(); it.Next(); {
			k, elem := it.Element()
			rec[k.AsString()] = lowerCty(elem)
		}
		return rec
	case t.IsTupleType() || t.IsListType():
		if pairs, ok := lowerCtyPairs(v); ok {
			return pairs
		}
		return tree.Raw{Value: v}
	default:
		return tree.Raw{Value: v}
	}
}

// lowerCtyPairs recognizes an ordered key/value sequence: every element an
// object with exactly the attributes name and value.
func lowerCtyPairs(v cty.Value) (tree.Pairs, bool) {
	pairs := tree.Pairs{}
	for it := v.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		et := elem.Type()
		if !et.IsObjectType() || len(et.AttributeTypes()) != 2 ||
			!et.HasAttribute("name") || !et.HasAttribute("value") {
			return nil, false
		}
		name := elem.GetAttr("name")
		if name.IsNull() || name.Type() != cty.String {
			return nil, false
		}
		pairs = append(pairs, tree.Pair{
			Name:  name.AsString(),
			Value: lowerCty(elem.GetAttr("value")),
		})
	}
	return pairs, true
}
