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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTable(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output []Row
	}{
		{
			name:   "empty",
			input:  "",
			output: []Row{},
		},
		{
			name:   "blank lines",
			input:  "\n     \n\n \n",
			output: []Row{},
		},
		{
			name:   "comment only",
			input:  "# mode path\n",
			output: []Row{},
		},
		{
			name:  "rows keep their line numbers",
			input: "# header\n\ndrwxr-xr-x /srv\n  0640 /etc/app.yml # config\n755",
			output: []Row{
				{Line: 3, Fields: []string{"drwxr-xr-x", "/srv"}},
				{Line: 4, Fields: []string{"0640", "/etc/app.yml"}},
				{Line: 5, Fields: []string{"755"}},
			},
		},
		{
			name:  "hash inside a path",
			input: "700 /tmp/issue#12\n",
			output: []Row{
				{Line: 1, Fields: []string{"700", "/tmp/issue#12"}},
			},
		},
		{
			name:  "hash after an escaped space",
			input: `700 /srv/a\ #b`,
			output: []Row{
				{Line: 1, Fields: []string{"700", "/srv/a #b"}},
			},
		},
		{
			name:  "escaped hash at word start",
			input: `700 \#b # comment`,
			output: []Row{
				{Line: 1, Fields: []string{"700", "#b"}},
			},
		},
		{
			name:  "escaped spaces in path",
			input: `-rwxr-xr-x /opt/my\ tool/bin`,
			output: []Row{
				{Line: 1, Fields: []string{"-rwxr-xr-x", "/opt/my tool/bin"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.output, NewTable([]byte(tt.input)).GetRows())
		})
	}
}

func TestFieldsEscaped(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty string", input: "", expected: []string{}},
		{name: "only spaces", input: "   \t ", expected: []string{}},
		{name: "mode and path", input: "0755 /srv/www", expected: []string{"0755", "/srv/www"}},
		{name: "escaped spaces", input: `644 /home/me/My\ Documents`, expected: []string{"644", "/home/me/My Documents"}},
		{name: "escaped backslash", input: `644 C:\\temp`, expected: []string{"644", `C:\temp`}},
		{name: "tabs and repeated spaces", input: "700\t\t/a    /b", expected: []string{"700", "/a", "/b"}},
		{name: "trailing escape", input: `700 /a\`, expected: []string{"700", "/a"}},
		{name: "multiple escaped spaces", input: `700 /a\ \ \ b`, expected: []string{"700", "/a   b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fieldsEscaped(tt.input))
		})
	}
}

func TestWriteEscapedRoundTrip(t *testing.T) {
	tests := [][]string{
		{},
		{"0755", "/srv/www"},
		{"644", "/home/me/My Documents"},
		{"600", `C:\temp dir\file`},
		{"700", "/srv/a #b"},
	}
	for _, fields := range tests {
		escaped := writeEscaped(fields)
		assert.Equal(t, fields, fieldsEscaped(escaped), escaped)
		if len(fields) > 0 {
			assert.Equal(t, []Row{{Line: 1, Fields: fields}}, NewTable([]byte(escaped)).GetRows(), escaped)
		}
	}

	assert.Equal(t, `644 /home/me/My\ Documents`, Row{Fields: []string{"644", "/home/me/My Documents"}}.String())
}
