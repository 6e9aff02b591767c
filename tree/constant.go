package tree

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumericLiteral keeps the literal text as written. The sign of a preceding
// unary minus is folded in by the Parse methods so that values like
// -2147483648 stay representable.
type NumericLiteral struct {
	ExprBase
	Value string
}

func (e *NumericLiteral) String() string {
	return e.Value
}

func (e *NumericLiteral) digits() (string, int) {
	s := strings.ReplaceAll(e.Value, "_", "")
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		return s[2:], 16
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		return s[2:], 2
	default:
		return s, 10
	}
}

func (e *NumericLiteral) ParseDouble(negative bool) (float64, error) {
	s, base := e.digits()
	var value float64
	if base == 10 {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid numeric literal %q: %w", e.Value, err)
		}
		value = v
	} else {
		v, err := strconv.ParseUint(s, base, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid numeric literal %q: %w", e.Value, err)
		}
		value = float64(v)
	}
	if negative {
		value = -value
	}
	return value, nil
}

func (e *NumericLiteral) ParseFloat(negative bool) (float32, error) {
	s, base := e.digits()
	var value float32
	if base == 10 {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid numeric literal %q: %w", e.Value, err)
		}
		value = float32(v)
	} else {
		v, err := strconv.ParseUint(s, base, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid numeric literal %q: %w", e.Value, err)
		}
		value = float32(v)
	}
	if negative {
		value = -value
	}
	return value, nil
}

func (e *NumericLiteral) ParseInt(negative bool) (int32, error) {
	s, base := e.digits()
	v, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q: %w", e.Value, err)
	}
	if negative {
		if v > -math.MinInt32 {
			return 0, fmt.Errorf("integer literal -%s out of range", e.Value)
		}
		return int32(-int64(v)), nil
	}
	if v > math.MaxInt32 {
		return 0, fmt.Errorf("integer literal %s out of range", e.Value)
	}
	return int32(v), nil
}

func (e *NumericLiteral) ParseUint() (uint32, error) {
	s, base := e.digits()
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid unsigned literal %q: %w", e.Value, err)
	}
	return uint32(v), nil
}
