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

import "fmt"

// Triple holds the read, write and execute flags of one entity (user, group
// or other).
type Triple struct {
	Read    bool
	Write   bool
	Execute bool
}

// Digit returns the octal digit of t, read=4 write=2 execute=1.
func (t Triple) Digit() uint8 {
	return b2u(t.Read)<<2 | b2u(t.Write)<<1 | b2u(t.Execute)
}

func (t Triple) String() string {
	return string([]byte{
		flagChar(t.Read, 'r'),
		flagChar(t.Write, 'w'),
		flagChar(t.Execute, 'x'),
	})
}

func tripleFromDigit(d uint8) Triple {
	return Triple{
		Read:    d&BitRead != 0,
		Write:   d&BitWrite != 0,
		Execute: d&BitExecute != 0,
	}
}

// PermissionBits is the full set of flags chmod understands: rwx for user,
// group and other plus the setuid, setgid and sticky bits. Every combination
// is valid.
type PermissionBits struct {
	User   Triple
	Group  Triple
	Other  Triple
	Setuid bool
	Setgid bool
	Sticky bool
}

// Encode packs b into an octal mode. The special digit is
// setuid<<2 | setgid<<1 | sticky and each entity digit is read<<2 | write<<1 |
// execute; the digits are ordered special, user, group, other.
func Encode(b PermissionBits) Mode {
	special := b2u(b.Setuid)<<2 | b2u(b.Setgid)<<1 | b2u(b.Sticky)
	return digitsToMode(special, b.User.Digit(), b.Group.Digit(), b.Other.Digit())
}

// digitsToMode concatenates four octal digits. Callers guarantee each digit
// is in [0, 7].
func digitsToMode(special, user, group, other uint8) Mode {
	return Mode(special)<<9 | Mode(user)<<6 | Mode(group)<<3 | Mode(other)
}

// ParseTriple parses a set of permission letters as accepted on the command
// line: any combination of 'r', 'w' and 'x' in any order. "-" and "" both
// mean no permissions, and '-' placeholders are allowed so "r-x" works too.
func ParseTriple(s string) (Triple, error) {
	var t Triple
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'r':
			t.Read = true
		case 'w':
			t.Write = true
		case 'x':
			t.Execute = true
		case '-':
		default:
			return Triple{}, fmt.Errorf("invalid permission letter %q in %q (expected r, w, x or -)", s[i], s)
		}
	}
	return t, nil
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
