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
	"strings"
	"unicode"
)

// fieldsEscaped splits a string on whitespace boundaries, but preserves
// whitespace that is escaped with a backslash, so paths containing spaces
// can be written in a batch file.
func fieldsEscaped(s string) []string {
	var currentField strings.Builder
	escaped := false
	fields := []string{}

	for _, r := range s {
		if escaped {
			currentField.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if unicode.IsSpace(r) {
			if currentField.Len() > 0 {
				fields = append(fields, currentField.String())
				currentField.Reset()
			}
		} else {
			currentField.WriteRune(r)
		}
	}
	if currentField.Len() > 0 {
		fields = append(fields, currentField.String())
	}
	return fields
}

// writeEscaped joins fields with single spaces, escaping spaces and
// backslashes so fieldsEscaped gives back the same fields.
func writeEscaped(fields []string) string {
	var result strings.Builder
	for i, field := range fields {
		if i > 0 {
			result.WriteRune(' ')
		}
		for _, r := range field {
			if r == '\\' || unicode.IsSpace(r) {
				result.WriteRune('\\')
			}
			result.WriteRune(r)
		}
	}
	return result.String()
}

// Row is one non-empty line of a batch file.
type Row struct {
	// Line is the 1-based line number in the file.
	Line   int
	Fields []string
}

func (r Row) String() string {
	return writeEscaped(r.Fields)
}

// Table is a parsed batch file: one row per line, '#' starts a comment and
// blank lines are skipped.
type Table struct {
	rows []Row
}

func NewTable(content []byte) *Table {
	table := []Row{}
	for i, line := range strings.Split(string(content), "\n") {
		line = cleanRow(line)
		if line == "" {
			continue
		}
		table = append(table, Row{Line: i + 1, Fields: fieldsEscaped(line)})
	}
	return &Table{rows: table}
}

// cleanRow strips a trailing comment and surrounding whitespace. A '#'
// only starts a comment at the start of the line or after unescaped
// whitespace, so "/srv/a#b" and "/srv/a\ #b" are kept whole.
func cleanRow(row string) string {
	escaped := false
	boundary := true
	for i := 0; i < len(row); i++ {
		c := row[i]
		switch {
		case escaped:
			escaped = false
			boundary = false
		case c == '\\':
			escaped = true
			boundary = false
		case c == '#' && boundary:
			return strings.TrimSpace(row[:i])
		default:
			boundary = c == ' ' || c == '\t'
		}
	}
	return strings.TrimSpace(row)
}

func (t Table) GetRows() []Row {
	return t.rows
}
