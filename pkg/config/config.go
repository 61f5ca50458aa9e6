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

// Package config turns configuration sources into the normalized value
// tree the materializer consumes. HCL is the primary language; JSON and
// YAML documents are accepted for trees that need no fixpoint encoding.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"

	"chainguard.dev/treemat/pkg/tree"
)

// Format selects a frontend.
type Format string

const (
	FormatAuto Format = "auto"
	FormatHCL  Format = "hcl"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatAuto, FormatHCL, FormatJSON, FormatYAML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (want auto, hcl, json or yaml)", s)
}

// Load parses the file at path into a value tree. FormatAuto picks the
// frontend from the file extension, defaulting to HCL.
func Load(path string, format Format) (tree.Value, error) {
	if format == FormatAuto || format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			format = FormatJSON
		case ".yaml", ".yml":
			format = FormatYAML
		default:
			format = FormatHCL
		}
	}

	switch format {
	case FormatHCL:
		return loadHCL(path)
	case FormatJSON:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		doc, err := oj.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return lowerAny(doc), nil
	case FormatYAML:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return lowerAny(doc), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
