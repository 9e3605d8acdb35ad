package bigint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromIntRoundTrip(t *testing.T) {
	for _, i := range []int64{0, 1, 7, 1 << 20, 1<<30 - 1, 1<<31 + 5, 1 << 45} {
		require.Equal(t, i, FromInt(i).Int64(), "value %d", i)
	}
}

func TestLog2(t *testing.T) {
	require.Equal(t, -1, Zero().Log2())
	require.Equal(t, 0, FromInt(1).Log2())
	require.Equal(t, 9, FromInt(1000).Log2())
	for _, k := range []int{0, 1, 30, 31, 32, 62, 100, 310} {
		require.Equal(t, k, PowerOf2(k).Log2(), "2^%d", k)
	}
}

func TestBit(t *testing.T) {
	b := FromInt(0b1011)
	require.Equal(t, uint(1), b.Bit(0))
	require.Equal(t, uint(1), b.Bit(1))
	require.Equal(t, uint(0), b.Bit(2))
	require.Equal(t, uint(1), b.Bit(3))
	require.Equal(t, uint(0), b.Bit(400))
	require.Equal(t, uint(1), PowerOf2(93).Bit(93))
}

func TestAddCarry(t *testing.T) {
	a := FromInt(1<<31 - 1)
	require.Equal(t, int64(1<<31), a.PlusInt(1).Int64())

	big := PowerOf2(62)
	require.True(t, big.Add(big).Equal(PowerOf2(63)))

	require.True(t, Zero().Add(Zero()).IsZero())
	require.Equal(t, int64(910), FromInt(900).PlusInt(10).Int64())
}

func TestMinusPow2(t *testing.T) {
	b := FromInt(0b1100)
	require.Equal(t, int64(0b0100), b.MinusPow2(3).Int64())
	require.True(t, PowerOf2(77).MinusPow2(77).IsZero())

	require.Panics(t, func() { b.MinusPow2(0) })

	// Operands are not mutated.
	require.Equal(t, int64(0b1100), b.Int64())
}

func TestCmp(t *testing.T) {
	require.Equal(t, 0, FromInt(42).Cmp(FromInt(42)))
	require.Equal(t, -1, FromInt(41).Cmp(FromInt(42)))
	require.Equal(t, 1, PowerOf2(100).Cmp(PowerOf2(99)))
	require.Equal(t, -1, Zero().Cmp(FromInt(1)))
}

func TestString(t *testing.T) {
	require.Equal(t, "0", Zero().String())
	require.Equal(t, "910", FromInt(910).String())
	require.Equal(t, "1267650600228229401496703205376", PowerOf2(100).String())
}

func TestSelfTest(t *testing.T) {
	require.NoError(t, SelfTest())
}
