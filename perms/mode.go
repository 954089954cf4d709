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

// Package perms converts between Unix permission flags, ls-style permission
// strings and the octal modes accepted by chmod.
package perms

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"
)

// Bit values of a single octal digit.
const (
	BitRead    = 4
	BitWrite   = 2
	BitExecute = 1
)

// Bit values of the special (leading) octal digit.
const (
	BitSetuid = 4
	BitSetgid = 2
	BitSticky = 1
)

// MaxMode is the largest mode chmod accepts in octal form.
const MaxMode = Mode(0o7777)

// Mode is a chmod octal mode in the range [0, 0o7777]. The four octal digits
// are, from most to least significant: special, user, group, other.
type Mode uint16

// String returns the mode as octal text without a prefix and without zero
// padding, e.g. 0o755 is "755" and 0o2755 is "2755". This is the form
// placed in generated chmod commands.
func (m Mode) String() string {
	return strconv.FormatUint(uint64(m), 8)
}

// Digits returns the special, user, group and other digits of m.
func (m Mode) Digits() [4]uint8 {
	return [4]uint8{
		uint8(m>>9) & 7,
		uint8(m>>6) & 7,
		uint8(m>>3) & 7,
		uint8(m) & 7,
	}
}

// Bits unpacks m back into the individual permission flags.
func (m Mode) Bits() PermissionBits {
	d := m.Digits()
	return PermissionBits{
		User:   tripleFromDigit(d[1]),
		Group:  tripleFromDigit(d[2]),
		Other:  tripleFromDigit(d[3]),
		Setuid: d[0]&BitSetuid != 0,
		Setgid: d[0]&BitSetgid != 0,
		Sticky: d[0]&BitSticky != 0,
	}
}

// Symbolic renders m in the 10 character form printed by `ls -l`, using kind
// as the entry type character (e.g. 'd' or '-'). Setuid and setgid replace
// the user and group execute position with 's' (or 'S' when execute is not
// set) and the sticky bit replaces the other execute position with 't'/'T'.
func (m Mode) Symbolic(kind rune) string {
	b := m.Bits()
	var sb strings.Builder
	sb.Grow(10)
	sb.WriteRune(kind)
	writeTriple(&sb, b.User, b.Setuid, 's')
	writeTriple(&sb, b.Group, b.Setgid, 's')
	writeTriple(&sb, b.Other, b.Sticky, 't')
	return sb.String()
}

func writeTriple(sb *strings.Builder, t Triple, special bool, specialChar byte) {
	sb.WriteByte(flagChar(t.Read, 'r'))
	sb.WriteByte(flagChar(t.Write, 'w'))
	switch {
	case special && t.Execute:
		sb.WriteByte(specialChar)
	case special:
		// Upper case marks a special bit without the execute bit.
		sb.WriteByte(specialChar - 'a' + 'A')
	default:
		sb.WriteByte(flagChar(t.Execute, 'x'))
	}
}

func flagChar(set bool, c byte) byte {
	if set {
		return c
	}
	return '-'
}

// FileMode converts m to the equivalent fs.FileMode, moving the special bits
// to Go's ModeSetuid, ModeSetgid and ModeSticky flags.
func (m Mode) FileMode() fs.FileMode {
	fm := fs.FileMode(m) & fs.ModePerm
	b := m.Bits()
	if b.Setuid {
		fm |= fs.ModeSetuid
	}
	if b.Setgid {
		fm |= fs.ModeSetgid
	}
	if b.Sticky {
		fm |= fs.ModeSticky
	}
	return fm
}

// ParseOctal parses an octal mode such as "755", "0755", "0o2755" or "2755".
// At most four significant digits are accepted.
func ParseOctal(s string) (Mode, error) {
	in := strings.TrimSpace(s)
	in = strings.TrimPrefix(strings.TrimPrefix(in, "0o"), "0O")
	if in == "" {
		return 0, fmt.Errorf("invalid octal mode %q: empty", s)
	}
	v, err := strconv.ParseUint(in, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid octal mode %q: %w", s, err)
	}
	if v > uint64(MaxMode) {
		return 0, fmt.Errorf("invalid octal mode %q: exceeds %s", s, MaxMode)
	}
	return Mode(v), nil
}
