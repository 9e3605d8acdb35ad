// Copyright 2018 The Hashislife Authors. All rights reserved.
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

// Package bigint implements unsigned arbitrary precision integers used for
// cell coordinates and generation counts, which routinely exceed any fixed
// machine word.
//
// Values are immutable: every operation returns a fresh Int and never
// aliases the digit storage of its operands.
package bigint

import (
	"fmt"
	"strings"

	"github.com/cznic/mathutil"
)

const (
	digitBits = 31
	digitMask = 1<<digitBits - 1
)

// Int is an unsigned integer stored as 31-bit digits, least significant
// first. The zero value is the integer zero. The digit vector is canonical:
// its most significant digit, when present, is non-zero. Two digits plus a
// carry always fit in an int64, which keeps the carry arithmetic branch-free.
type Int struct {
	digits []uint32
}

// Zero returns the integer zero.
func Zero() Int { return Int{} }

// FromInt converts a non-negative machine integer.
func FromInt(i int64) Int {
	if i < 0 {
		panic("bigint: FromInt on negative value")
	}
	var digits []uint32
	for ; i > 0; i >>= digitBits {
		digits = append(digits, uint32(i&digitMask))
	}
	return Int{digits: digits}
}

// FromString parses a decimal integer.
func FromString(s string) (Int, error) {
	if s == "" {
		return Int{}, fmt.Errorf("bigint: empty number")
	}
	v := Zero()
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return Int{}, fmt.Errorf("bigint: bad digit %q in %q", c, s)
		}
		two := v.Add(v)
		eight := two.Add(two).Add(two.Add(two))
		v = eight.Add(two).PlusInt(int(c - '0'))
	}
	return v, nil
}

// PowerOf2 returns 2^k.
func PowerOf2(k int) Int {
	digits := make([]uint32, k/digitBits+1)
	digits[k/digitBits] = 1 << uint(k%digitBits)
	return Int{digits: digits}
}

// IsZero reports whether b is zero.
func (b Int) IsZero() bool { return len(b.digits) == 0 }

// Log2 returns the position of the highest set bit, or -1 for zero.
func (b Int) Log2() int {
	if b.IsZero() {
		return -1
	}
	top := b.digits[len(b.digits)-1]
	return (len(b.digits)-1)*digitBits + int(mathutil.Log2Uint32(top))
}

// Bit returns bit k of b.
func (b Int) Bit(k int) uint {
	if k < 0 || k/digitBits >= len(b.digits) {
		return 0
	}
	return uint(b.digits[k/digitBits]>>uint(k%digitBits)) & 1
}

// Add returns a+b.
func (a Int) Add(b Int) Int {
	if len(a.digits) < len(b.digits) {
		a, b = b, a
	}
	digits := make([]uint32, len(a.digits), len(a.digits)+1)
	var carry int64
	for i := range a.digits {
		sum := carry + int64(a.digits[i])
		if i < len(b.digits) {
			sum += int64(b.digits[i])
		}
		digits[i] = uint32(sum & digitMask)
		carry = sum >> digitBits
	}
	if carry != 0 {
		digits = append(digits, uint32(carry))
	}
	return Int{digits: digits}
}

// PlusInt returns b+i for a small non-negative increment.
func (b Int) PlusInt(i int) Int {
	if i < 0 {
		panic("bigint: PlusInt on negative value")
	}
	return b.Add(FromInt(int64(i)))
}

// MinusPow2 returns b-2^e. Bit e of b must be set: removing a power of two
// whose bit is clear would have to borrow across higher digits and could go
// negative, so it panics instead.
func (b Int) MinusPow2(e int) Int {
	if b.Bit(e) == 0 {
		panic(fmt.Sprintf("bigint: MinusPow2(%d) on a clear bit", e))
	}
	digits := make([]uint32, len(b.digits))
	copy(digits, b.digits)
	digits[e/digitBits] -= 1 << uint(e%digitBits)
	return Int{digits: digits}.canonize()
}

func (b Int) canonize() Int {
	n := len(b.digits)
	for n > 0 && b.digits[n-1] == 0 {
		n--
	}
	if n == 0 {
		return Int{}
	}
	return Int{digits: b.digits[:n]}
}

// Int64 truncates b to its low 62 bits. Callers must ensure the value fits.
func (b Int) Int64() int64 {
	var v int64
	for i := mathutil.Min(len(b.digits), 2) - 1; i >= 0; i-- {
		v = v<<digitBits | int64(b.digits[i])
	}
	return v
}

// Cmp compares a and b, returning -1, 0 or +1.
func (a Int) Cmp(b Int) int {
	if len(a.digits) != len(b.digits) {
		if len(a.digits) < len(b.digits) {
			return -1
		}
		return 1
	}
	for i := len(a.digits) - 1; i >= 0; i-- {
		if a.digits[i] != b.digits[i] {
			if a.digits[i] < b.digits[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Equal reports whether a == b.
func (a Int) Equal(b Int) bool { return a.Cmp(b) == 0 }

// String renders b in decimal.
func (b Int) String() string {
	if b.IsZero() {
		return "0"
	}
	digits := make([]uint32, len(b.digits))
	copy(digits, b.digits)
	var sb strings.Builder
	for len(digits) > 0 {
		var rem int64
		for i := len(digits) - 1; i >= 0; i-- {
			cur := rem<<digitBits | int64(digits[i])
			digits[i] = uint32(cur / 10)
			rem = cur % 10
		}
		sb.WriteByte(byte('0' + rem))
		for len(digits) > 0 && digits[len(digits)-1] == 0 {
			digits = digits[:len(digits)-1]
		}
	}
	out := []byte(sb.String())
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}
