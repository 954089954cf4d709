// Copyright 2025 OpenPubkey
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
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"unicode/utf8"

	"github.com/chmodkit/chmodkit/internal/log"
	"github.com/chmodkit/chmodkit/perms"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newBatchCmd(opts *Options) *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Print commands for every row of a file",
		Long: `Each non-empty line of FILE holds a mode and an optional path:

  # mode        path
  drwxrwsr-x    /srv/shared
  0640          /etc/app/config.yml
  -rwxr-xr-x    /opt/my\ tool/bin

The mode is either a 10 character permission string or an octal mode.
Spaces inside a path are escaped with a backslash and '#' starts a
comment. Rows without a path use the configured default path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd, opts); err != nil {
				return err
			}
			content, err := afero.ReadFile(fsOrDefault(), args[0])
			if err != nil {
				return fmt.Errorf("failed to read batch file: %w", err)
			}

			table := NewTable(content)
			results, problems := runBatch(table, opts)
			log.Info("batch %s: %d rows, %d errors", args[0], len(table.GetRows()), len(problems))
			if err := Render(cmd.OutOrStdout(), opts.Output, results...); err != nil {
				return err
			}
			if len(problems) > 0 {
				for _, p := range problems {
					fmt.Fprintln(cmd.ErrOrStderr(), "Error:", p)
				}
				return fmt.Errorf("batch completed with %d errors", len(problems))
			}
			return nil
		},
	}
	batchCmd.Flags().BoolVar(&opts.Strict, "strict", false, "Reject characters ls would not print at that position")
	return batchCmd
}

// runBatch computes a result for every row of table. Rows that fail are
// reported in problems and skipped.
func runBatch(table *Table, opts *Options) ([]Result, []string) {
	var results []Result
	var problems []string

	for _, row := range table.GetRows() {
		if len(row.Fields) > 2 {
			problems = append(problems, fmt.Sprintf("line %d (%s): expected a mode and an optional path, got %d fields", row.Line, row, len(row.Fields)))
			continue
		}

		modeArg := row.Fields[0]
		var mode perms.Mode
		kind := '-'
		var err error
		if utf8.RuneCountInString(modeArg) == perms.PermStringLen {
			mode, err = decode(modeArg, opts.Strict)
			kind = perms.Kind(modeArg)
		} else {
			mode, err = perms.ParseOctal(modeArg)
		}
		if err != nil {
			problems = append(problems, fmt.Sprintf("line %d: %v", row.Line, err))
			continue
		}

		path := opts.DefaultPath
		if len(row.Fields) == 2 {
			path = row.Fields[1]
		}
		log.Debug("batch line %d: mode %s path %q", row.Line, mode, path)
		results = append(results, newResult(mode, kind, path, opts))
	}
	return results, problems
}
