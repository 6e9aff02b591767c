package semantics

import (
	"github.com/fxrazen/fxsema/numeric"
)

// VariableSlot is a variable or constant property. Type is Unresolved until
// the declaration's type annotation has been verified. Constant holds the
// compile-time value of a constant with a constant initializer.
type VariableSlot struct {
	Base
	Name     *QName
	Type     Type
	ReadOnly bool
	Static   bool
	Constant Value

	// Activation is set for locals and parameters.
	Activation *Scope
}

func (s *VariableSlot) String() string {
	return s.Name.String()
}

// MethodSlot is a method or a function declaration. Signature is nil until
// it has been resolved.
type MethodSlot struct {
	Base
	Name      *QName
	Signature *FunctionType
	Static    bool
	Abstract  bool
	Native    bool
}

func (s *MethodSlot) String() string {
	return s.Name.String()
}

// VirtualSlot pairs a getter and a setter. Either may be nil.
type VirtualSlot struct {
	Base
	Name   *QName
	Type   Type
	Getter *MethodSlot
	Setter *MethodSlot
	Static bool
}

func (s *VirtualSlot) String() string {
	return s.Name.String()
}

// SlotType returns the static type of a property.
func SlotType(h *Host, slot Thingy) Type {
	switch slot := slot.(type) {
	case *VariableSlot:
		return slot.Type
	case *VirtualSlot:
		return slot.Type
	case *MethodSlot:
		if slot.Signature == nil {
			return h.UnresolvedThingy()
		}
		return slot.Signature
	default:
		return h.AnyType()
	}
}

// ========================

// Value is anything with a static type.
type Value interface {
	Thingy
	StaticType() Type
}

// SimpleValue is the result of an expression that has a type but no
// constant value or reference identity.
type SimpleValue struct {
	Base
	Type Type
}

func (v *SimpleValue) String() string {
	return "value of " + v.Type.String()
}

func (v *SimpleValue) StaticType() Type {
	return v.Type
}

// ========================

type NumberConstant struct {
	Base
	Value numeric.Variant
	Type  Type
}

func (c *NumberConstant) String() string {
	return c.Value.String()
}

func (c *NumberConstant) StaticType() Type {
	return c.Type
}

type StringConstant struct {
	Base
	Value string
	Type  Type
}

func (c *StringConstant) String() string {
	return c.Value
}

func (c *StringConstant) StaticType() Type {
	return c.Type
}

type BooleanConstant struct {
	Base
	Value bool
	Type  Type
}

func (c *BooleanConstant) String() string {
	if c.Value {
		return "true"
	}
	return "false"
}

func (c *BooleanConstant) StaticType() Type {
	return c.Type
}

type NullConstant struct {
	Base
	Type Type
}

func (*NullConstant) String() string {
	return "null"
}

func (c *NullConstant) StaticType() Type {
	return c.Type
}

type UndefinedConstant struct {
	Base
	Type Type
}

func (*UndefinedConstant) String() string {
	return "undefined"
}

func (c *UndefinedConstant) StaticType() Type {
	return c.Type
}

type NamespaceConstant struct {
	Base
	Namespace *Namespace
	Type      Type
}

func (c *NamespaceConstant) String() string {
	return c.Namespace.String()
}

func (c *NamespaceConstant) StaticType() Type {
	return c.Type
}

// EnumConstant is a member of an Enum.
type EnumConstant struct {
	Base
	Enum   *Enum
	Member string
	Value  numeric.Variant
}

func (c *EnumConstant) String() string {
	return c.Enum.String() + "." + c.Member
}

func (c *EnumConstant) StaticType() Type {
	return c.Enum
}

// IsConstant reports whether v is a compile-time constant.
func IsConstant(v Thingy) bool {
	switch v.(type) {
	case *NumberConstant, *StringConstant, *BooleanConstant, *NullConstant,
		*UndefinedConstant, *NamespaceConstant, *EnumConstant:
		return true
	default:
		return false
	}
}

// ========================

// FixtureReference is a resolved property. Object is the base the property
// was found on: a value, a TypeAsReference, a PackageReference or nil for
// scope properties.
type FixtureReference struct {
	Base
	Object   Thingy
	Property Thingy
	Type     Type
}

func (r *FixtureReference) String() string {
	return r.Property.String()
}

func (r *FixtureReference) StaticType() Type {
	return r.Type
}

// DynamicReference is a property of an untyped or dynamic object. Key is
// set when the name is computed.
type DynamicReference struct {
	Base
	Object    Value
	Qualifier *Namespace
	Name      string
	Key       Value
	Type      Type
}

func (r *DynamicReference) String() string {
	if r.Key != nil {
		return "[" + r.Key.String() + "]"
	}
	return r.Name
}

func (r *DynamicReference) StaticType() Type {
	return r.Type
}

// DynamicScopeReference is a name resolved against a filter scope.
type DynamicScopeReference struct {
	Base
	Scope     *Scope
	Qualifier *Namespace
	Name      string
	Key       Value
	Type      Type
}

func (r *DynamicScopeReference) String() string {
	return r.Name
}

func (r *DynamicScopeReference) StaticType() Type {
	return r.Type
}

// TypeAsReference is a type used as a value; its static type is Class.
type TypeAsReference struct {
	Base
	Of   Type
	Type Type
}

func (r *TypeAsReference) String() string {
	return r.Of.String()
}

func (r *TypeAsReference) StaticType() Type {
	return r.Type
}

// PackageReference is a package used as the base of a member chain.
type PackageReference struct {
	Base
	Package *Package
	Type    Type
}

func (r *PackageReference) String() string {
	return r.Package.String()
}

func (r *PackageReference) StaticType() Type {
	return r.Type
}
