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

package bigint

import "fmt"

// SelfTest runs deterministic vectors over the integer laws and returns the
// first violated one. It backs the `hashislife selftest` command.
func SelfTest() error {
	for _, i := range []int64{0, 1, 2, 1 << 10, 1<<31 - 1, 1 << 31, 1<<40 + 12345} {
		if got := FromInt(i).Int64(); got != i {
			return fmt.Errorf("bigint: Int64(FromInt(%d)) = %d", i, got)
		}
	}
	for k := 0; k < 200; k++ {
		if got := PowerOf2(k).Log2(); got != k {
			return fmt.Errorf("bigint: Log2(2^%d) = %d", k, got)
		}
		if PowerOf2(k).Bit(k) != 1 {
			return fmt.Errorf("bigint: bit %d of 2^%d is clear", k, k)
		}
		if !PowerOf2(k).MinusPow2(k).IsZero() {
			return fmt.Errorf("bigint: 2^%d - 2^%d is not zero", k, k)
		}
	}
	vals := []Int{Zero(), FromInt(1), FromInt(909), PowerOf2(31), PowerOf2(100), PowerOf2(64).PlusInt(7)}
	for _, a := range vals {
		for _, b := range vals {
			if !a.Add(b).Equal(b.Add(a)) {
				return fmt.Errorf("bigint: %v+%v is not commutative", a, b)
			}
			for _, c := range vals {
				if !a.Add(b).Add(c).Equal(a.Add(b.Add(c))) {
					return fmt.Errorf("bigint: (%v+%v)+%v is not associative", a, b, c)
				}
			}
		}
	}
	sum := PowerOf2(100).Add(PowerOf2(100))
	if sum.Log2() != 101 {
		return fmt.Errorf("bigint: 2^100+2^100 has Log2 %d", sum.Log2())
	}
	if s := FromInt(1234567890123).String(); s != "1234567890123" {
		return fmt.Errorf("bigint: String = %q", s)
	}
	return nil
}
