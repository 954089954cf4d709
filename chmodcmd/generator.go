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

// Package chmodcmd renders the find/chmod shell commands that apply a mode
// to a path. The commands are text only; nothing here touches the
// filesystem.
package chmodcmd

import (
	"fmt"

	"github.com/chmodkit/chmodkit/perms"
	"github.com/kballard/go-shellquote"
)

// Scope selects which entries below the target path a command applies to.
type Scope int

const (
	FilesInFolder Scope = iota
	FoldersInFolder
	FoldersRecursive
	FilesInSubfolders
	Everything
)

// Scopes lists every scope in the order commands are generated.
var Scopes = []Scope{FilesInFolder, FoldersInFolder, FoldersRecursive, FilesInSubfolders, Everything}

var scopeLabels = map[Scope]string{
	FilesInFolder:     "Files in folder",
	FoldersInFolder:   "Folders in folder",
	FoldersRecursive:  "Folders and subfolders (recursive)",
	FilesInSubfolders: "Files in subfolders",
	Everything:        "Everything recursively",
}

// ScopeKeys maps each scope to the identifiers accepted on the command line.
var ScopeKeys = map[Scope][]string{
	FilesInFolder:     {"files"},
	FoldersInFolder:   {"dirs", "folders"},
	FoldersRecursive:  {"dirs-recursive", "folders-recursive"},
	FilesInSubfolders: {"nested-files"},
	Everything:        {"all", "everything"},
}

// Label returns the human readable name of s.
func (s Scope) Label() string {
	if l, ok := scopeLabels[s]; ok {
		return l
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

// Key returns the primary command line identifier of s.
func (s Scope) Key() string {
	if k, ok := ScopeKeys[s]; ok {
		return k[0]
	}
	return ""
}

// template returns the command for s. path must already be quoted.
func (s Scope) template(path string, mode string) string {
	switch s {
	case FilesInFolder:
		return fmt.Sprintf("find %s -maxdepth 1 -type f -exec chmod %s {} +", path, mode)
	case FoldersInFolder:
		return fmt.Sprintf("find %s -maxdepth 1 -type d -exec chmod %s {} +", path, mode)
	case FoldersRecursive:
		return fmt.Sprintf("find %s -type d -exec chmod %s {} +", path, mode)
	case FilesInSubfolders:
		return fmt.Sprintf("find %s -mindepth 2 -type f -exec chmod %s {} +", path, mode)
	case Everything:
		return fmt.Sprintf("chmod -R %s %s", mode, path)
	}
	return ""
}

// Quoting controls how the target path is written into a command.
type Quoting int

const (
	// QuoteSingle wraps the path in single quotes without escaping anything
	// inside it.
	QuoteSingle Quoting = iota
	// QuoteShell escapes the path so any path, including ones containing
	// single quotes, survives a POSIX shell.
	QuoteShell
)

// QuotingNames maps each quoting style to its command line identifiers.
var QuotingNames = map[Quoting][]string{
	QuoteSingle: {"single"},
	QuoteShell:  {"shell"},
}

func (q Quoting) quote(path string) string {
	if q == QuoteShell {
		return shellquote.Join(path)
	}
	return "'" + path + "'"
}

// Command is one generated shell command.
type Command struct {
	Scope Scope
	Label string
	Text  string
}

// CommandSet is the ordered list of commands for one path and mode.
type CommandSet []Command

// Get returns the command text with the given label.
func (cs CommandSet) Get(label string) (string, bool) {
	for _, c := range cs {
		if c.Label == label {
			return c.Text, true
		}
	}
	return "", false
}

// Labels returns the labels of cs in order.
func (cs CommandSet) Labels() []string {
	labels := make([]string, 0, len(cs))
	for _, c := range cs {
		labels = append(labels, c.Label)
	}
	return labels
}

// Filter returns the commands of cs whose scope is in scopes, keeping the
// order of cs. An empty scopes returns cs unchanged.
func (cs CommandSet) Filter(scopes ...Scope) CommandSet {
	if len(scopes) == 0 {
		return cs
	}
	want := make(map[Scope]bool, len(scopes))
	for _, s := range scopes {
		want[s] = true
	}
	out := CommandSet{}
	for _, c := range cs {
		if want[c.Scope] {
			out = append(out, c)
		}
	}
	return out
}

// Generator renders command sets.
type Generator struct {
	quoting Quoting
}

// Option configures a Generator.
type Option func(*Generator)

// WithQuoting sets how paths are quoted.
func WithQuoting(q Quoting) Option {
	return func(g *Generator) {
		g.quoting = q
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{quoting: QuoteSingle}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns one command per scope applying mode to target. target is
// used as given; it is neither normalised nor checked for existence.
func (g *Generator) Generate(target string, mode perms.Mode) CommandSet {
	quoted := g.quoting.quote(target)
	m := mode.String()

	cs := make(CommandSet, 0, len(Scopes))
	for _, s := range Scopes {
		cs = append(cs, Command{
			Scope: s,
			Label: s.Label(),
			Text:  s.template(quoted, m),
		})
	}
	return cs
}

// Generate renders the commands for target and mode with single quoted
// paths.
func Generate(target string, mode perms.Mode) CommandSet {
	return NewGenerator().Generate(target, mode)
}
