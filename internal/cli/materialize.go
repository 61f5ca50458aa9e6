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

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"chainguard.dev/treemat/pkg/config"
	"chainguard.dev/treemat/pkg/tree"
)

func materializeCmd() *cobra.Command {
	var opts tree.Options
	var format string

	cmd := &cobra.Command{
		Use:   "materialize <config> <dest>",
		Short: "Write the configured tree below a destination directory",
		Example: `  treemat materialize tree.hcl ./out
  treemat materialize --allow-separators tree.yaml /srv/www`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.ParseFormat(format)
			if err != nil {
				return err
			}
			return MaterializeCmd(cmd.Context(), args[0], args[1], f, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.AllowAbsolute, "allow-absolute", false, "permit keys that are absolute paths")
	cmd.Flags().BoolVar(&opts.AllowParent, "allow-parent", false, "permit '..' segments in keys")
	cmd.Flags().BoolVar(&opts.AllowSeparators, "allow-separators", false, "permit keys spanning multiple path segments")
	cmd.Flags().StringVar(&format, "format", string(config.FormatAuto), "config format: auto, hcl, json or yaml")

	return cmd
}

// MaterializeCmd loads the config and writes it below dest, creating dest
// if needed. On failure anything already written stays on disk.
func MaterializeCmd(ctx context.Context, configPath, dest string, format config.Format, opts tree.Options) error {
	log := clog.FromContext(ctx)

	value, err := config.Load(configPath, format)
	if err != nil {
		return fmt.Errorf("loading %s: %w", configPath, err)
	}

	dest, err = filepath.Abs(dest)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}

	m, err := tree.New(tree.WithOptions(opts))
	if err != nil {
		return err
	}

	log.Infof("materializing %s into %s", configPath, dest)
	return m.Materialize(ctx, dest, value)
}
