package semantics

// Conversions implements the implicit conversion rules used for argument
// passing and contextual typing.
type Conversions struct {
	host *Host
}

func (h *Host) Conversions() *Conversions {
	return &Conversions{host: h}
}

// Implicit converts value to target. It returns nil when no implicit
// conversion exists. Numeric constants are converted to the target's
// numeric kind.
func (c *Conversions) Implicit(value Value, target Type) Value {
	h := c.host
	f := h.factory
	from := value.StaticType()

	switch {
	case from == target:
		return value
	case IsUnresolved(from) || IsUnresolved(target):
		return value
	case isInvalid(from) || isInvalid(target):
		return value
	case target == Type(h.anyType):
		return value
	}

	switch v := value.(type) {
	case *NumberConstant:
		if kind, ok := h.NumericKind(target); ok {
			return f.CreateNumberConstant(v.Value.Convert(kind), target)
		}
	case *NullConstant:
		if c.IncludesNull(target) {
			return f.CreateNullConstant(target)
		}
		return nil
	case *UndefinedConstant:
		if c.IncludesNull(target) {
			return f.CreateNullConstant(target)
		}
		return nil
	}

	switch {
	case from == Type(h.anyType):
		return f.CreateValue(target)
	case h.IsNumericType(from) && h.IsNumericType(target):
		return f.CreateValue(target)
	case c.IsSubtype(from, target):
		return f.CreateValue(target)
	}
	return nil
}

func isInvalid(t Type) bool {
	_, ok := t.(*Invalidation)
	return ok
}

// IncludesNull reports whether null is a value of t.
func (c *Conversions) IncludesNull(t Type) bool {
	h := c.host
	switch t := t.(type) {
	case *AnyType, *NullableType:
		return true
	case *NonNullableType, *VoidType:
		return false
	case *Class:
		_, numeric := h.NumericKind(t)
		return !numeric && Type(t) != h.BooleanType()
	case *Enum:
		return false
	default:
		return true
	}
}

// IsSubtype reports whether every value of t is a value of of.
func (c *Conversions) IsSubtype(t, of Type) bool {
	h := c.host
	if t == of {
		return true
	}

	switch of := of.(type) {
	case *AnyType:
		return true
	case *NullableType:
		return c.IsSubtype(stripNullability(t), of.Of)
	case *NonNullableType:
		nn, ok := t.(*NonNullableType)
		return ok && c.IsSubtype(nn.Of, of.Of)
	}

	switch t := t.(type) {
	case *VoidType, *AnyType:
		return false
	case *NullableType:
		return c.IsSubtype(t.Of, of)
	case *NonNullableType:
		return c.IsSubtype(t.Of, of)
	}

	if of == h.ObjectType() {
		return true
	}

	switch t := t.(type) {
	case *Class:
		for cls := Type(t); cls != nil; {
			cl, ok := cls.(*Class)
			if !ok {
				return false
			}
			if Type(cl) == of || c.implements(cl.Implements, of) {
				return true
			}
			cls = cl.Extends
		}
		return false
	case *Interface:
		return c.implements(t.Extends, of)
	case *TypeAfterSubstitution:
		return c.IsSubtype(t.Origin, of)
	case *FunctionType:
		return of == h.FunctionType()
	case *TupleType:
		return of == h.ArrayType()
	default:
		return false
	}
}

func (c *Conversions) implements(ifaces []Type, of Type) bool {
	for _, t := range ifaces {
		if t == of {
			return true
		}
		if iface, ok := t.(*Interface); ok && c.implements(iface.Extends, of) {
			return true
		}
	}
	return false
}

func stripNullability(t Type) Type {
	switch t := t.(type) {
	case *NullableType:
		return t.Of
	case *NonNullableType:
		return t.Of
	default:
		return t
	}
}
