package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKinds = []Kind{KindNumber, KindFloat, KindInt, KindUint}

func TestConvertSameKindIsIdentity(t *testing.T) {
	values := []Variant{Number(-3.75), Float(2.5), Int(-7), Uint(42)}
	for _, v := range values {
		assert.Equal(t, v, v.Convert(v.Kind()), "kind %v", v.Kind())
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		in   Variant
		to   Kind
		want Variant
	}{
		{"number to int truncates", Number(-3.9), KindInt, Int(-3)},
		{"number to uint truncates", Number(3.9), KindUint, Uint(3)},
		{"positive infinity to int", Number(math.Inf(1)), KindInt, Int(math.MaxInt32)},
		{"negative infinity to int", Number(math.Inf(-1)), KindInt, Int(math.MinInt32)},
		{"negative infinity to uint", Float(float32(math.Inf(-1))), KindUint, Uint(0)},
		{"positive infinity to uint", Float(float32(math.Inf(1))), KindUint, Uint(math.MaxUint32)},
		{"nan to int", Number(math.NaN()), KindInt, Int(0)},
		{"nan to uint", Float(float32(math.NaN())), KindUint, Uint(0)},
		{"int to number", Int(-5), KindNumber, Number(-5)},
		{"uint to float", Uint(7), KindFloat, Float(7)},
		{"number narrows to float", Number(0.5), KindFloat, Float(0.5)},
		{"float widens to number", Float(0.25), KindNumber, Number(0.25)},
		{"negative int to uint", Int(-1), KindUint, Uint(0)},
		{"large uint to int", Uint(math.MaxUint32), KindInt, Int(0)},
		{"out of range number to int saturates", Number(4294967296.5), KindInt, Int(math.MaxInt32)},
		{"out of range number to uint saturates", Number(4294967296.5), KindUint, Uint(math.MaxUint32)},
		{"negative number to int saturates", Number(-3e10), KindInt, Int(math.MinInt32)},
		{"negative number to uint", Number(-1.5), KindUint, Uint(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Convert(tt.to))
		})
	}
}

func TestBitFlags(t *testing.T) {
	assert.True(t, Int(6).IncludesBits(Int(2)))
	assert.False(t, Int(4).IncludesBits(Int(2)))
	assert.Equal(t, Int(4), Int(6).EraseBits(Int(2)))
	assert.Equal(t, Int(4), Int(4).EraseBits(Int(2)))
	// only the bits that are set are cleared
	assert.Equal(t, Int(4), Int(6).EraseBits(Int(3)))
	assert.Equal(t, Uint(8), Uint(9).EraseBits(Uint(3)))
	assert.Equal(t, Uint(7), Uint(5).ApplyBits(Uint(2), true))
	assert.Equal(t, Uint(5), Uint(7).ApplyBits(Uint(2), false))
	assert.Equal(t, Number(4), Number(6).EraseBits(Number(2)))

	assert.False(t, Int(5).IsPowerOfTwo())
	assert.True(t, Int(8).IsPowerOfTwo())
	assert.False(t, Int(0).IsPowerOfTwo())
	assert.True(t, Uint(1<<31).IsPowerOfTwo())
	assert.True(t, Number(16).IsPowerOfTwo())
}

func TestBitFlagsRequireSameKind(t *testing.T) {
	require.Panics(t, func() { Int(6).IncludesBits(Uint(2)) })
	require.Panics(t, func() { Int(6).EraseBits(Number(2)) })
}

func TestIntegerArithmeticWraps(t *testing.T) {
	assert.Equal(t, Int(math.MinInt32), Int(math.MaxInt32).Add(Int(1)))
	assert.Equal(t, Uint(math.MaxUint32), Uint(0).Sub(Uint(1)))
	assert.Equal(t, Int(-2), Int(math.MaxInt32).Mul(Int(2)))
	assert.Equal(t, Int(0), Int(5).Div(Int(0)))
	assert.Equal(t, Uint(0), Uint(5).Rem(Uint(0)))
	assert.Equal(t, Int(-2), Int(-7).Div(Int(3)))
	assert.Equal(t, Int(-1), Int(-7).Rem(Int(3)))
}

func TestFloatingArithmetic(t *testing.T) {
	assert.Equal(t, Number(0.5), Number(1).Div(Number(2)))
	assert.True(t, Number(1).Div(Number(0)).IsPositiveInfinity())
	assert.True(t, Number(-1).Div(Number(0)).IsNegativeInfinity())
	assert.True(t, Number(0).Div(Number(0)).IsNaN())
	assert.Equal(t, Float(1.5), Float(3).Rem(Float(1.5)).Add(Float(1.5)))
}

func TestMixedKindsPanic(t *testing.T) {
	require.Panics(t, func() { Int(1).Add(Number(1)) })
	require.Panics(t, func() { Uint(1).Shl(Int(1)) })
}

func TestBitwise(t *testing.T) {
	assert.Equal(t, Int(-1), Int(0).Not())
	assert.Equal(t, Uint(math.MaxUint32), Uint(0).Not())
	assert.Equal(t, Number(math.MaxUint32), Number(0).Not())
	assert.Equal(t, Number(2), Number(6.9).And(Number(3)))
	assert.Equal(t, Number(0), Number(math.NaN()).Or(Number(0)))
	assert.Equal(t, Int(-4), Int(-8).Shr(Int(1)))
	assert.Equal(t, Int(0x7ffffffc), Int(-8).ShiftRightUnsigned(Int(1)))
	assert.Equal(t, Int(2), Int(1).Shl(Int(33)))
	assert.Equal(t, Number(4294967295), Number(-1).Or(Number(0)))
}

func TestCanonicalConstants(t *testing.T) {
	for _, kind := range allKinds {
		assert.True(t, Zero(kind).IsZero(), "%v", kind)
		assert.True(t, One(kind).IsOne(), "%v", kind)
		assert.Equal(t, kind, MinimumValue(kind).Kind())
		assert.Equal(t, kind, MaximumValue(kind).Kind())
	}
	assert.True(t, NaN(KindNumber).IsNaN())
	assert.True(t, NaN(KindFloat).IsNaN())
	require.Panics(t, func() { NaN(KindInt) })
	require.Panics(t, func() { NaN(KindUint) })
	assert.Equal(t, Int(math.MinInt32), MinimumValue(KindInt))
	assert.Equal(t, Uint(math.MaxUint32), MaximumValue(KindUint))
	assert.True(t, MinimumValue(KindNumber).IsNegativeInfinity())
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, Int(10), Int(5).MultiplyPerTwo())
	assert.Equal(t, Float(3), Float(2).IncreaseByOne())
	assert.Equal(t, Uint(0), Uint(math.MaxUint32).IncreaseByOne())
	assert.Equal(t, Int(5), Int(-5).Neg())
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "0.5", Number(0.5).String())

	d, ok := Number(1).AsDouble()
	assert.True(t, ok)
	assert.Equal(t, 1.0, d)
	_, ok = Number(1).AsInt()
	assert.False(t, ok)
}
