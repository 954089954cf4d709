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

package perms

import (
	"fmt"
	"unicode/utf8"
)

// PermStringLen is the length in characters (runes) of an ls-style
// permission string, e.g. "drwxr-xr-x".
const PermStringLen = 10

// LengthError is returned when a permission string is not exactly
// PermStringLen characters long. Actual counts runes, not bytes.
type LengthError struct {
	Expected int
	Actual   int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("permission string must be %d characters long, got %d", e.Expected, e.Actual)
}

// CharError is returned by DecodeStrict when a character is not valid at its
// position.
type CharError struct {
	Index int
	Char  rune
}

func (e *CharError) Error() string {
	return fmt.Sprintf("unexpected character %q at position %d of permission string", e.Char, e.Index)
}

// charValues maps permission characters to the value they add to their
// triple. 's' and 't' imply execute, 'S' and 'T' do not.
var charValues = map[rune]uint8{
	'r': BitRead,
	'w': BitWrite,
	'x': BitExecute,
	'-': 0,
	's': BitExecute,
	'S': 0,
	't': BitExecute,
	'T': 0,
}

// Decode converts an ls-style permission string such as "drwxr-sr-x" into an
// octal mode. The first character (entry type) is ignored. Unknown characters,
// including non-ASCII ones, contribute nothing. The only error is a
// *LengthError when s is not 10 characters long.
//
// A triple whose characters sum past 7 (e.g. "rrr") is clamped to 7 so the
// result is always a valid mode.
func Decode(s string) (Mode, error) {
	r, err := permRunes(s)
	if err != nil {
		return 0, err
	}
	return decodeRunes(r), nil
}

func decodeRunes(s []rune) Mode {
	var entities [3]uint8
	for e := range entities {
		var sum uint8
		for i := 1 + e*3; i < 4+e*3; i++ {
			sum += charValues[s[i]]
		}
		entities[e] = min(sum, 7)
	}

	var special uint8
	if isSetID(s[3]) {
		special += BitSetuid
	}
	if isSetID(s[6]) {
		special += BitSetgid
	}
	if isSticky(s[9]) {
		special += BitSticky
	}

	return digitsToMode(special, entities[0], entities[1], entities[2])
}

// permRunes splits s into runes and checks there are exactly PermStringLen
// of them.
func permRunes(s string) ([]rune, error) {
	if n := utf8.RuneCountInString(s); n != PermStringLen {
		return nil, &LengthError{Expected: PermStringLen, Actual: n}
	}
	return []rune(s), nil
}

// Kind returns the entry type character of a permission string, or '-' when
// s is empty or does not start with valid UTF-8.
func Kind(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return '-'
	}
	return r
}

// DecodeStrict is like Decode but rejects any character that `ls` would not
// print at that position, returning a *CharError for the first one found.
func DecodeStrict(s string) (Mode, error) {
	r, err := permRunes(s)
	if err != nil {
		return 0, err
	}
	for i := 1; i < PermStringLen; i++ {
		if !validAt(i, r[i]) {
			return 0, &CharError{Index: i, Char: r[i]}
		}
	}
	return decodeRunes(r), nil
}

func validAt(i int, c rune) bool {
	if c == '-' {
		return true
	}
	switch (i - 1) % 3 {
	case 0:
		return c == 'r'
	case 1:
		return c == 'w'
	}
	if c == 'x' {
		return true
	}
	if i == 9 {
		return isSticky(c)
	}
	return isSetID(c)
}

func isSetID(c rune) bool  { return c == 's' || c == 'S' }
func isSticky(c rune) bool { return c == 't' || c == 'T' }
