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
	"os"
	"strings"

	"github.com/chmodkit/chmodkit/chmodcmd"
	"github.com/chmodkit/chmodkit/commands/config"
	"github.com/chmodkit/chmodkit/internal/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag/v2"
	"golang.org/x/term"
)

// DefaultFs can be set by tests to use an in-memory filesystem. If nil,
// the commands will use the real OS filesystem. It is only used to read the
// config file and batch files.
var DefaultFs afero.Fs

// IsTerminalFunc reports whether fd is an interactive terminal. Tests may
// override it.
var IsTerminalFunc = term.IsTerminal

// OutputFormat selects how results are printed.
type OutputFormat enumflag.Flag

const (
	OutputText OutputFormat = iota
	OutputYAML
)

var OutputFormatIds = map[OutputFormat][]string{
	OutputText: {"text"},
	OutputYAML: {"yaml", "yml"},
}

// Options are the settings shared by every subcommand, filled from the
// persistent flags and the config file.
type Options struct {
	ConfigPath string
	Output     OutputFormat
	Quote      chmodcmd.Quoting
	Only       []chmodcmd.Scope
	Verbose    bool

	// Set from the config file, or by subcommand flags.
	Strict      bool
	DefaultPath string
	DefaultPerm string
}

func fsOrDefault() afero.Fs {
	if DefaultFs == nil {
		return afero.NewOsFs()
	}
	return DefaultFs
}

// NewRootCmd returns the chmodkit command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "chmodkit",
		Short: "Turn permission bits or ls-style strings into ready-to-copy chmod commands",
		Long: `chmodkit computes the octal chmod mode for a set of permission bits or
an ls -l permission string (e.g. drwxr-sr-x) and prints find/chmod
commands applying that mode to a path. Nothing is executed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetVerbose(opts.Verbose)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "Config file (default $XDG_CONFIG_HOME/chmodkit/config.yml)")
	flags.Var(
		enumflag.New(&opts.Output, "format", OutputFormatIds, enumflag.EnumCaseInsensitive),
		"output", "Output format: text or yaml")
	flags.Var(
		enumflag.New(&opts.Quote, "quoting", chmodcmd.QuotingNames, enumflag.EnumCaseInsensitive),
		"quote", "Path quoting: single (wrap as is) or shell (escape for a POSIX shell)")
	flags.Var(
		enumflag.NewSlice(&opts.Only, "scope", chmodcmd.ScopeKeys, enumflag.EnumCaseInsensitive),
		"only", "Only print these scopes: files, dirs, dirs-recursive, nested-files, all (repeatable)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(
		newEncodeCmd(opts),
		newDecodeCmd(opts),
		newGenerateCmd(opts),
		newBatchCmd(opts),
	)
	return rootCmd
}

// applyConfig loads the config file and copies its values into opts for
// every setting not given on the command line.
func applyConfig(cmd *cobra.Command, opts *Options) error {
	cfg, err := config.Load(fsOrDefault(), opts.ConfigPath)
	if err != nil {
		return err
	}
	log.Debug("loaded config: %+v", *cfg)

	if !cmd.Flags().Changed("output") && cfg.Output != "" {
		if opts.Output, err = lookupEnum(OutputFormatIds, cfg.Output); err != nil {
			return fmt.Errorf("config output: %w", err)
		}
	}
	if !cmd.Flags().Changed("quote") && cfg.Quote != "" {
		if opts.Quote, err = lookupEnum(chmodcmd.QuotingNames, cfg.Quote); err != nil {
			return fmt.Errorf("config quote: %w", err)
		}
	}
	if !cmd.Flags().Changed("strict") {
		opts.Strict = cfg.Strict
	}
	opts.DefaultPath = cfg.DefaultPath
	opts.DefaultPerm = cfg.DefaultPermissionString
	return nil
}

// lookupEnum finds the enum value named name, ignoring case.
func lookupEnum[E comparable](ids map[E][]string, name string) (E, error) {
	for v, names := range ids {
		for _, n := range names {
			if strings.EqualFold(n, name) {
				return v, nil
			}
		}
	}
	var zero E
	return zero, fmt.Errorf("unknown value %q", name)
}

// pathArg returns the trimmed path argument at index i, or the configured
// default path when it was not given.
func pathArg(args []string, i int, opts *Options) string {
	if len(args) > i {
		return strings.TrimSpace(args[i])
	}
	return opts.DefaultPath
}

func generator(opts *Options) *chmodcmd.Generator {
	return chmodcmd.NewGenerator(chmodcmd.WithQuoting(opts.Quote))
}

func stdinFd(cmd *cobra.Command) (int, bool) {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return 0, false
	}
	return int(f.Fd()), true
}
