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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chmodkit/chmodkit/internal/log"
	"github.com/chmodkit/chmodkit/perms"
	"github.com/spf13/cobra"
)

func newDecodeCmd(opts *Options) *cobra.Command {
	decodeCmd := &cobra.Command{
		Use:   "decode [PERMSTRING|-] [PATH]",
		Short: "Build a mode from an ls-style permission string",
		Long: `Decode a 10 character permission string as printed by ls -l, e.g.
drwxr-sr-x. Strings starting with '-' must follow "--" so they are not
read as flags. Without PERMSTRING, or with "-", the string is read from
stdin; an empty line selects the configured default.`,
		Example: `  chmodkit decode drwxrwsr-x /srv/shared
  chmodkit decode -- -rw-r--r-- /etc/app.conf
  ls -ld /srv | cut -c1-10 | chmodkit decode - /srv`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd, opts); err != nil {
				return err
			}

			var permStr string
			if len(args) == 0 || args[0] == "-" {
				var err error
				if permStr, err = readPermString(cmd, opts.DefaultPerm); err != nil {
					return err
				}
			} else {
				permStr = strings.TrimSpace(args[0])
			}

			mode, err := decode(permStr, opts.Strict)
			if err != nil {
				return err
			}
			log.Debug("decoded %q as %s", permStr, mode)
			return Render(cmd.OutOrStdout(), opts.Output, newResult(mode, perms.Kind(permStr), pathArg(args, 1, opts), opts))
		},
	}
	decodeCmd.Flags().BoolVar(&opts.Strict, "strict", false, "Reject characters ls would not print at that position")
	return decodeCmd
}

func decode(permStr string, strict bool) (perms.Mode, error) {
	var mode perms.Mode
	var err error
	if strict {
		mode, err = perms.DecodeStrict(permStr)
	} else {
		mode, err = perms.Decode(permStr)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid permission string %q: %w", permStr, err)
	}
	return mode, nil
}

// readPermString reads one line from stdin, prompting first when stdin is a
// terminal. An empty line selects def.
func readPermString(cmd *cobra.Command, def string) (string, error) {
	if fd, ok := stdinFd(cmd); ok && IsTerminalFunc(fd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Permission string [%s]: ", def)
	}
	r := bufio.NewReader(cmd.InOrStdin())
	s, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read permission string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return s, nil
}
