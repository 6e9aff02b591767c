package numeric

import (
	"fmt"
	"math"
	"strconv"
)

type Kind uint8

const (
	KindNumber Kind = iota
	KindFloat
	KindInt
	KindUint
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	default:
		panic(fmt.Errorf("unknown numeric kind %d", uint8(k)))
	}
}

// Variant is a compile-time numeric value held in exactly one of the
// language's four numeric representations. Values are immutable.
type Variant struct {
	kind Kind
	f64  float64
	f32  float32
	i32  int32
	u32  uint32
}

func Number(v float64) Variant { return Variant{kind: KindNumber, f64: v} }
func Float(v float32) Variant  { return Variant{kind: KindFloat, f32: v} }
func Int(v int32) Variant      { return Variant{kind: KindInt, i32: v} }
func Uint(v uint32) Variant    { return Variant{kind: KindUint, u32: v} }

func (v Variant) Kind() Kind {
	return v.kind
}

func (v Variant) AsDouble() (float64, bool) {
	return v.f64, v.kind == KindNumber
}

func (v Variant) AsFloat() (float32, bool) {
	return v.f32, v.kind == KindFloat
}

func (v Variant) AsInt() (int32, bool) {
	return v.i32, v.kind == KindInt
}

func (v Variant) AsUint() (uint32, bool) {
	return v.u32, v.kind == KindUint
}

func (v Variant) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	case KindFloat:
		return strconv.FormatFloat(float64(v.f32), 'g', -1, 32)
	case KindInt:
		return strconv.FormatInt(int64(v.i32), 10)
	case KindUint:
		return strconv.FormatUint(uint64(v.u32), 10)
	default:
		panic("unreachable")
	}
}

// sameKind panics when the operands do not share a representation. The
// verifier unifies operand kinds before folding, so a mismatch here is a bug.
func (v Variant) sameKind(rhs Variant) {
	if v.kind != rhs.kind {
		panic(fmt.Errorf("numeric kind mismatch: %v and %v", v.kind, rhs.kind))
	}
}

func Zero(kind Kind) Variant {
	switch kind {
	case KindNumber:
		return Number(0)
	case KindFloat:
		return Float(0)
	case KindInt:
		return Int(0)
	case KindUint:
		return Uint(0)
	default:
		panic(fmt.Errorf("unknown numeric kind %d", uint8(kind)))
	}
}

func One(kind Kind) Variant {
	switch kind {
	case KindNumber:
		return Number(1)
	case KindFloat:
		return Float(1)
	case KindInt:
		return Int(1)
	case KindUint:
		return Uint(1)
	default:
		panic(fmt.Errorf("unknown numeric kind %d", uint8(kind)))
	}
}

func NaN(kind Kind) Variant {
	switch kind {
	case KindNumber:
		return Number(math.NaN())
	case KindFloat:
		return Float(float32(math.NaN()))
	default:
		panic(fmt.Errorf("%v does not support NaN", kind))
	}
}

func MinimumValue(kind Kind) Variant {
	switch kind {
	case KindNumber:
		return Number(math.Inf(-1))
	case KindFloat:
		return Float(float32(math.Inf(-1)))
	case KindInt:
		return Int(math.MinInt32)
	case KindUint:
		return Uint(0)
	default:
		panic(fmt.Errorf("unknown numeric kind %d", uint8(kind)))
	}
}

func MaximumValue(kind Kind) Variant {
	switch kind {
	case KindNumber:
		return Number(math.Inf(1))
	case KindFloat:
		return Float(float32(math.Inf(1)))
	case KindInt:
		return Int(math.MaxInt32)
	case KindUint:
		return Uint(math.MaxUint32)
	default:
		panic(fmt.Errorf("unknown numeric kind %d", uint8(kind)))
	}
}

func (v Variant) IsZero() bool {
	switch v.kind {
	case KindNumber:
		return v.f64 == 0
	case KindFloat:
		return v.f32 == 0
	case KindInt:
		return v.i32 == 0
	default:
		return v.u32 == 0
	}
}

func (v Variant) IsOne() bool {
	switch v.kind {
	case KindNumber:
		return v.f64 == 1
	case KindFloat:
		return v.f32 == 1
	case KindInt:
		return v.i32 == 1
	default:
		return v.u32 == 1
	}
}

func (v Variant) IsNaN() bool {
	switch v.kind {
	case KindNumber:
		return math.IsNaN(v.f64)
	case KindFloat:
		return math.IsNaN(float64(v.f32))
	default:
		return false
	}
}

func (v Variant) IsNegativeInfinity() bool {
	switch v.kind {
	case KindNumber:
		return math.IsInf(v.f64, -1)
	case KindFloat:
		return math.IsInf(float64(v.f32), -1)
	default:
		return false
	}
}

func (v Variant) IsPositiveInfinity() bool {
	switch v.kind {
	case KindNumber:
		return math.IsInf(v.f64, 1)
	case KindFloat:
		return math.IsInf(float64(v.f32), 1)
	default:
		return false
	}
}

func (v Variant) MultiplyPerTwo() Variant {
	return v.Mul(v.sibling(2))
}

func (v Variant) IncreaseByOne() Variant {
	return v.Add(One(v.kind))
}

// sibling builds a small integral constant of the same kind as v.
func (v Variant) sibling(n int32) Variant {
	switch v.kind {
	case KindNumber:
		return Number(float64(n))
	case KindFloat:
		return Float(float32(n))
	case KindInt:
		return Int(n)
	default:
		return Uint(uint32(n))
	}
}

// Convert returns v represented as kind. Converting to the same kind is the
// identity.
func (v Variant) Convert(kind Kind) Variant {
	if v.kind == kind {
		return v
	}
	switch kind {
	case KindNumber:
		switch v.kind {
		case KindFloat:
			return Number(float64(v.f32))
		case KindInt:
			return Number(float64(v.i32))
		default:
			return Number(float64(v.u32))
		}
	case KindFloat:
		switch v.kind {
		case KindNumber:
			return Float(float32(v.f64))
		case KindInt:
			return Float(float32(v.i32))
		default:
			return Float(float32(v.u32))
		}
	case KindInt:
		switch v.kind {
		case KindNumber:
			return Int(floatToInt32(v.f64))
		case KindFloat:
			return Int(floatToInt32(float64(v.f32)))
		default:
			if v.u32 > math.MaxInt32 {
				return Int(0)
			}
			return Int(int32(v.u32))
		}
	case KindUint:
		switch v.kind {
		case KindNumber:
			return Uint(floatToUint32(v.f64))
		case KindFloat:
			return Uint(floatToUint32(float64(v.f32)))
		default:
			if v.i32 < 0 {
				return Uint(0)
			}
			return Uint(uint32(v.i32))
		}
	default:
		panic(fmt.Errorf("unknown numeric kind %d", uint8(kind)))
	}
}

func floatToInt32(f float64) int32 {
	switch {
	case math.IsNaN(f):
		return 0
	case f <= math.MinInt32:
		return math.MinInt32
	case f >= math.MaxInt32:
		return math.MaxInt32
	default:
		return int32(f)
	}
}

func floatToUint32(f float64) uint32 {
	switch {
	case math.IsNaN(f):
		return 0
	case f <= 0:
		return 0
	case f >= math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(f)
	}
}

// toUint32 is the ECMAScript ToUint32 operation.
func toUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	t := math.Trunc(f)
	m := math.Mod(t, 1<<32)
	if m < 0 {
		m += 1 << 32
	}
	return uint32(m)
}
