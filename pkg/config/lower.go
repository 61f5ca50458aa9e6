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
	"chainguard.dev/treemat/pkg/tree"
)

// lowerAny maps a decoded JSON or YAML document onto the closed shape set.
// Objects become records, strings become file content, null is the absent
// optional, and a list of {name, value} objects is an ordered pair
// sequence. Everything else stays raw for the walker to reject.
func lowerAny(v any) tree.Value {
	switch x := v.(type) {
	case nil:
		return tree.None{}
	case string:
		return tree.Text(x)
	case map[string]any:
		rec := tree.Record{}
		for k, elem := range x {
			rec[k] = lowerAny(elem)
		}
		return rec
	case []any:
		if pairs, ok := lowerAnyPairs(x); ok {
			return pairs
		}
		return tree.Raw{Value: v}
	default:
		return tree.Raw{Value: v}
	}
}

func lowerAnyPairs(elems []any) (tree.Pairs, bool) {
	pairs := tree.Pairs{}
	for _, elem := range elems {
		obj, ok := elem.(map[string]any)
		if !ok || len(obj) != 2 {
			return nil, false
		}
		name, ok := obj["name"].(string)
		if !ok {
			return nil, false
		}
		value, ok := obj["value"]
		if !ok {
			return nil, false
		}
		pairs = append(pairs, tree.Pair{Name: name, Value: lowerAny(value)})
	}
	return pairs, true
}
