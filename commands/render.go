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
	"io"
	"strings"

	"github.com/chmodkit/chmodkit/chmodcmd"
	"github.com/chmodkit/chmodkit/internal/log"
	"github.com/chmodkit/chmodkit/perms"
	"gopkg.in/yaml.v3"
)

// Result is the outcome of one mode computation: the mode, the path it was
// rendered for and the generated commands.
type Result struct {
	Mode perms.Mode
	// Kind is the entry type character shown in the symbolic form.
	Kind     rune
	Path     string
	Commands chmodcmd.CommandSet
}

type yamlCommand struct {
	Scope   string `yaml:"scope"`
	Label   string `yaml:"label"`
	Command string `yaml:"command"`
}

type yamlResult struct {
	Mode     string        `yaml:"mode"`
	Symbolic string        `yaml:"symbolic"`
	Path     string        `yaml:"path"`
	Commands []yamlCommand `yaml:"commands"`
}

func newResult(mode perms.Mode, kind rune, path string, opts *Options) Result {
	if opts.Quote == chmodcmd.QuoteSingle && strings.ContainsRune(path, '\'') {
		log.Warn("path %q contains a single quote and will not survive single quoting, use --quote shell", path)
	}
	return Result{
		Mode:     mode,
		Kind:     kind,
		Path:     path,
		Commands: generator(opts).Generate(path, mode).Filter(opts.Only...),
	}
}

func (r Result) symbolic() string {
	kind := r.Kind
	if kind == 0 {
		kind = '-'
	}
	return r.Mode.Symbolic(kind)
}

// Render writes results to out in the given format. YAML output is one
// document per result.
func Render(out io.Writer, format OutputFormat, results ...Result) error {
	switch format {
	case OutputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		for _, r := range results {
			doc := yamlResult{
				Mode:     r.Mode.String(),
				Symbolic: r.symbolic(),
				Path:     r.Path,
				Commands: []yamlCommand{},
			}
			for _, c := range r.Commands {
				doc.Commands = append(doc.Commands, yamlCommand{
					Scope:   c.Scope.Key(),
					Label:   c.Label,
					Command: c.Text,
				})
			}
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
		}
		return enc.Close()
	default:
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "Mode: %s (%s)\n", r.Mode, r.symbolic())
			fmt.Fprintf(out, "Path: %s\n\n", r.Path)
			fmt.Fprintln(out, "Ready-to-copy chmod commands:")
			for _, c := range r.Commands {
				fmt.Fprintf(out, "%s: %s\n", c.Label, c.Text)
			}
		}
		return nil
	}
}
