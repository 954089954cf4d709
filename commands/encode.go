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

	"github.com/chmodkit/chmodkit/internal/log"
	"github.com/chmodkit/chmodkit/perms"
	"github.com/spf13/cobra"
)

func newEncodeCmd(opts *Options) *cobra.Command {
	var user, group, other string
	var bits perms.PermissionBits

	encodeCmd := &cobra.Command{
		Use:   "encode [PATH]",
		Short: "Build a mode from permission flags",
		Example: `  chmodkit encode --user rwx --group rx --other rx /srv/app
  chmodkit encode -u rwx -g rwx --setgid /srv/shared`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd, opts); err != nil {
				return err
			}
			var err error
			if bits.User, err = perms.ParseTriple(user); err != nil {
				return fmt.Errorf("--user: %w", err)
			}
			if bits.Group, err = perms.ParseTriple(group); err != nil {
				return fmt.Errorf("--group: %w", err)
			}
			if bits.Other, err = perms.ParseTriple(other); err != nil {
				return fmt.Errorf("--other: %w", err)
			}

			mode := perms.Encode(bits)
			log.Debug("encoded %+v as %s", bits, mode)
			return Render(cmd.OutOrStdout(), opts.Output, newResult(mode, '-', pathArg(args, 0, opts), opts))
		},
	}
	encodeCmd.Flags().StringVarP(&user, "user", "u", "", "User permissions, any of r, w, x")
	encodeCmd.Flags().StringVarP(&group, "group", "g", "", "Group permissions, any of r, w, x")
	encodeCmd.Flags().StringVarP(&other, "other", "o", "", "Other permissions, any of r, w, x")
	encodeCmd.Flags().BoolVar(&bits.Setuid, "setuid", false, "Set user ID on execution")
	encodeCmd.Flags().BoolVar(&bits.Setgid, "setgid", false, "Set group ID on execution")
	encodeCmd.Flags().BoolVar(&bits.Sticky, "sticky", false, "Restricted deletion (sticky bit)")
	return encodeCmd
}
