package semantics

import (
	"github.com/fxrazen/fxsema/numeric"
	"go.uber.org/zap"
)

// lookupGlobalType resolves a public top-level type by name. Successful
// resolutions are cached; failures return Unresolved and are retried on the
// next call.
func (h *Host) lookupGlobalType(name string) Type {
	if t, ok := h.wellKnown[name]; ok {
		return t
	}
	qname := h.factory.CreateQName(h.topLevel.PublicNs, name)
	t, ok := Resolve(h.topLevel.Properties.Get(qname)).(Type)
	if !ok || IsUnresolved(t) {
		h.log.Debug("well-known type not declared yet", zap.String("name", name))
		return h.unresolved
	}
	h.wellKnown[name] = t
	return t
}

func (h *Host) ObjectType() Type    { return h.lookupGlobalType("Object") }
func (h *Host) BooleanType() Type   { return h.lookupGlobalType("Boolean") }
func (h *Host) NumberType() Type    { return h.lookupGlobalType("Number") }
func (h *Host) IntType() Type       { return h.lookupGlobalType("int") }
func (h *Host) UintType() Type      { return h.lookupGlobalType("uint") }
func (h *Host) FloatType() Type     { return h.lookupGlobalType("float") }
func (h *Host) StringType() Type    { return h.lookupGlobalType("String") }
func (h *Host) ArrayType() Type     { return h.lookupGlobalType("Array") }
func (h *Host) ClassType() Type     { return h.lookupGlobalType("Class") }
func (h *Host) FunctionType() Type  { return h.lookupGlobalType("Function") }
func (h *Host) NamespaceType() Type { return h.lookupGlobalType("Namespace") }
func (h *Host) RegExpType() Type    { return h.lookupGlobalType("RegExp") }
func (h *Host) XMLType() Type       { return h.lookupGlobalType("XML") }
func (h *Host) XMLListType() Type   { return h.lookupGlobalType("XMLList") }
func (h *Host) PromiseType() Type   { return h.lookupGlobalType("Promise") }
func (h *Host) VectorType() Type    { return h.lookupGlobalType("Vector") }

// NumericKind maps one of the four numeric types to its variant kind.
func (h *Host) NumericKind(t Type) (numeric.Kind, bool) {
	if nn, ok := t.(*NonNullableType); ok {
		t = nn.Of
	}
	switch {
	case IsUnresolved(t):
		return 0, false
	case t == h.NumberType():
		return numeric.KindNumber, true
	case t == h.IntType():
		return numeric.KindInt, true
	case t == h.UintType():
		return numeric.KindUint, true
	case t == h.FloatType():
		return numeric.KindFloat, true
	default:
		return 0, false
	}
}

// NumericType is the inverse of NumericKind.
func (h *Host) NumericType(kind numeric.Kind) Type {
	switch kind {
	case numeric.KindNumber:
		return h.NumberType()
	case numeric.KindFloat:
		return h.FloatType()
	case numeric.KindInt:
		return h.IntType()
	case numeric.KindUint:
		return h.UintType()
	default:
		panic("unreachable")
	}
}

func (h *Host) IsNumericType(t Type) bool {
	_, ok := h.NumericKind(t)
	return ok
}
