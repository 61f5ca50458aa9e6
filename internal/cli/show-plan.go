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
	"fmt"

	"github.com/spf13/cobra"

	"chainguard.dev/treemat/pkg/config"
	"chainguard.dev/treemat/pkg/tree"
)

func showPlanCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "show-plan <config>",
		Short:   "Show the files and directories a config would produce, without writing",
		Example: `  treemat show-plan tree.hcl`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.ParseFormat(format)
			if err != nil {
				return err
			}
			value, err := config.Load(args[0], f)
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}
			plan, err := tree.Plan(".", value)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), plan)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(config.FormatAuto), "config format: auto, hcl, json or yaml")

	return cmd
}
