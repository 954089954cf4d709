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
	"github.com/chmodkit/chmodkit/perms"
	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:     "generate MODE [PATH]",
		Short:   "Print the commands for an octal mode",
		Example: `  chmodkit generate 2775 /srv/shared`,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd, opts); err != nil {
				return err
			}
			mode, err := perms.ParseOctal(args[0])
			if err != nil {
				return err
			}
			return Render(cmd.OutOrStdout(), opts.Output, newResult(mode, '-', pathArg(args, 1, opts), opts))
		},
	}
}
