package numeric

import "math"

// Integer arithmetic wraps modulo 2^32. Integer division and remainder by
// zero produce zero.

func (v Variant) Add(rhs Variant) Variant {
	v.sameKind(rhs)
	switch v.kind {
	case KindNumber:
		return Number(v.f64 + rhs.f64)
	case KindFloat:
		return Float(v.f32 + rhs.f32)
	case KindInt:
		return Int(v.i32 + rhs.i32)
	default:
		return Uint(v.u32 + rhs.u32)
	}
}

func (v Variant) Sub(rhs Variant) Variant {
	v.sameKind(rhs)
	switch v.kind {
	case KindNumber:
		return Number(v.f64 - rhs.f64)
	case KindFloat:
		return Float(v.f32 - rhs.f32)
	case KindInt:
		return Int(v.i32 - rhs.i32)
	default:
		return Uint(v.u32 - rhs.u32)
	}
}

func (v Variant) Mul(rhs Variant) Variant {
	v.sameKind(rhs)
	switch v.kind {
	case KindNumber:
		return Number(v.f64 * rhs.f64)
	case KindFloat:
		return Float(v.f32 * rhs.f32)
	case KindInt:
		return Int(v.i32 * rhs.i32)
	default:
		return Uint(v.u32 * rhs.u32)
	}
}

func (v Variant) Div(rhs Variant) Variant {
	v.sameKind(rhs)
	switch v.kind {
	case KindNumber:
		return Number(v.f64 / rhs.f64)
	case KindFloat:
		return Float(v.f32 / rhs.f32)
	case KindInt:
		if rhs.i32 == 0 {
			return Int(0)
		}
		return Int(v.i32 / rhs.i32)
	default:
		if rhs.u32 == 0 {
			return Uint(0)
		}
		return Uint(v.u32 / rhs.u32)
	}
}

func (v Variant) Rem(rhs Variant) Variant {
	v.sameKind(rhs)
	switch v.kind {
	case KindNumber:
		return Number(math.Mod(v.f64, rhs.f64))
	case KindFloat:
		return Float(float32(math.Mod(float64(v.f32), float64(rhs.f32))))
	case KindInt:
		if rhs.i32 == 0 {
			return Int(0)
		}
		return Int(v.i32 % rhs.i32)
	default:
		if rhs.u32 == 0 {
			return Uint(0)
		}
		return Uint(v.u32 % rhs.u32)
	}
}

func (v Variant) Neg() Variant {
	switch v.kind {
	case KindNumber:
		return Number(-v.f64)
	case KindFloat:
		return Float(-v.f32)
	case KindInt:
		return Int(-v.i32)
	default:
		return Uint(-v.u32)
	}
}

// bits applies op on the 32-bit pattern of both operands. Number and float
// operands go through ToUint32 and the result is converted back.
func (v Variant) bits(rhs Variant, op func(a, b uint32) uint32) Variant {
	v.sameKind(rhs)
	switch v.kind {
	case KindNumber:
		return Number(float64(op(toUint32(v.f64), toUint32(rhs.f64))))
	case KindFloat:
		return Float(float32(op(toUint32(float64(v.f32)), toUint32(float64(rhs.f32)))))
	case KindInt:
		return Int(int32(op(uint32(v.i32), uint32(rhs.i32))))
	default:
		return Uint(op(v.u32, rhs.u32))
	}
}

func (v Variant) And(rhs Variant) Variant {
	return v.bits(rhs, func(a, b uint32) uint32 { return a & b })
}

func (v Variant) Or(rhs Variant) Variant {
	return v.bits(rhs, func(a, b uint32) uint32 { return a | b })
}

func (v Variant) Xor(rhs Variant) Variant {
	return v.bits(rhs, func(a, b uint32) uint32 { return a ^ b })
}

// Shift counts are taken modulo 32.

func (v Variant) Shl(rhs Variant) Variant {
	return v.bits(rhs, func(a, b uint32) uint32 { return a << (b & 31) })
}

func (v Variant) Shr(rhs Variant) Variant {
	if v.kind == KindInt {
		v.sameKind(rhs)
		return Int(v.i32 >> (uint32(rhs.i32) & 31))
	}
	return v.bits(rhs, func(a, b uint32) uint32 { return a >> (b & 31) })
}

func (v Variant) ShiftRightUnsigned(rhs Variant) Variant {
	return v.bits(rhs, func(a, b uint32) uint32 { return a >> (b & 31) })
}

func (v Variant) Not() Variant {
	switch v.kind {
	case KindNumber:
		return Number(float64(^toUint32(v.f64)))
	case KindFloat:
		return Float(float32(^toUint32(float64(v.f32))))
	case KindInt:
		return Int(^v.i32)
	default:
		return Uint(^v.u32)
	}
}

// pattern returns the 32-bit pattern used by the bit-flag helpers.
func (v Variant) pattern() uint32 {
	switch v.kind {
	case KindNumber:
		return toUint32(v.f64)
	case KindFloat:
		return toUint32(float64(v.f32))
	case KindInt:
		return uint32(v.i32)
	default:
		return v.u32
	}
}

func (v Variant) IncludesBits(bits Variant) bool {
	v.sameKind(bits)
	return v.pattern()&bits.pattern() != 0
}

// EraseBits clears bits when they intersect the receiver.
func (v Variant) EraseBits(bits Variant) Variant {
	if v.IncludesBits(bits) {
		return v.bits(bits, func(a, b uint32) uint32 { return a &^ b })
	}
	return v
}

// ApplyBits sets bits when value is true and erases them otherwise.
func (v Variant) ApplyBits(bits Variant, value bool) Variant {
	if value {
		return v.Or(bits)
	}
	return v.EraseBits(bits)
}

func (v Variant) IsPowerOfTwo() bool {
	if v.kind == KindInt {
		return v.i32 > 0 && v.i32&(v.i32-1) == 0
	}
	p := v.pattern()
	return p != 0 && p&(p-1) == 0
}
