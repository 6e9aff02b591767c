package semantics

import (
	"fmt"
	"strings"
)

// Type is the closed family of semantic types. Unresolved and Invalidation
// are also types so that they can stand in for a type that is not known.
type Type interface {
	Thingy
	_Type()
}

type AnyType struct {
	Base
}

func (*AnyType) String() string {
	return "*"
}

type VoidType struct {
	Base
}

func (*VoidType) String() string {
	return "void"
}

type ClassFlags int

const (
	ClassStatic ClassFlags = 1 << iota
	ClassAbstract
	ClassFinal
	ClassDynamic
)

// Class is a class type. Extends is nil for the root class and Unresolved
// until the superclass has been resolved. A nil Constructor means the class
// has the implicit zero-argument constructor.
type Class struct {
	Base
	Name        *QName
	Flags       ClassFlags
	Extends     Type
	Implements  []Type
	TypeParams  []*TypeParameter
	Constructor *MethodSlot

	// static properties
	Properties *Names
	// instance properties
	Prototype *Names

	PrivateNs         *Namespace
	ProtectedNs       *Namespace
	StaticProtectedNs *Namespace
}

func (c *Class) String() string {
	return c.Name.String()
}

func (c *Class) Is(flag ClassFlags) bool {
	return c.Flags&flag != 0
}

// Enum members are static constants of the enum type; String literals
// naming a member resolve to it when the enum is the contextual type.
type Enum struct {
	Base
	Name       *QName
	Members    []*EnumConstant
	Properties *Names
	Prototype  *Names
	PrivateNs  *Namespace
}

func (e *Enum) String() string {
	return e.Name.String()
}

func (e *Enum) Member(name string) *EnumConstant {
	for _, m := range e.Members {
		if m.Member == name {
			return m
		}
	}
	return nil
}

type Interface struct {
	Base
	Name       *QName
	Extends    []Type
	TypeParams []*TypeParameter
	Prototype  *Names
}

func (i *Interface) String() string {
	return i.Name.String()
}

type TypeParameter struct {
	Base
	Name *QName
}

func (t *TypeParameter) String() string {
	return t.Name.Name
}

type ParamKind int

const (
	ParamRequired ParamKind = iota
	ParamOptional
	ParamRest
)

type FunctionParam struct {
	Kind ParamKind
	Type Type
}

// FunctionType is interned by parameter kinds, parameter types and result.
type FunctionType struct {
	Base
	Params []FunctionParam
	Result Type
}

func (f *FunctionType) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		switch p.Kind {
		case ParamOptional:
			parts[i] = fmt.Sprintf("%v=", p.Type)
		case ParamRest:
			parts[i] = fmt.Sprintf("...%v", p.Type)
		default:
			parts[i] = p.Type.String()
		}
	}
	return fmt.Sprintf("function(%s):%v", strings.Join(parts, ", "), f.Result)
}

// MinArgs is the count of required parameters. MaxArgs is -1 with a rest
// parameter.
func (f *FunctionType) MinArgs() int {
	n := 0
	for _, p := range f.Params {
		if p.Kind == ParamRequired {
			n++
		}
	}
	return n
}

func (f *FunctionType) MaxArgs() int {
	for _, p := range f.Params {
		if p.Kind == ParamRest {
			return -1
		}
	}
	return len(f.Params)
}

type TupleType struct {
	Base
	Elements []Type
}

func (t *TupleType) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type NullableType struct {
	Base
	Of Type
}

func (t *NullableType) String() string {
	return fmt.Sprintf("?%v", t.Of)
}

type NonNullableType struct {
	Base
	Of Type
}

func (t *NonNullableType) String() string {
	return fmt.Sprintf("%v!", t.Of)
}

// TypeAfterSubstitution is a generic class or interface applied to
// arguments, such as Vector.<int>.
type TypeAfterSubstitution struct {
	Base
	Origin    Type
	Arguments []Type
}

func (t *TypeAfterSubstitution) String() string {
	parts := make([]string, len(t.Arguments))
	for i, a := range t.Arguments {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%v.<%s>", t.Origin, strings.Join(parts, ", "))
}

func (*AnyType) _Type()               {}
func (*VoidType) _Type()              {}
func (*Class) _Type()                 {}
func (*Enum) _Type()                  {}
func (*Interface) _Type()             {}
func (*TypeParameter) _Type()         {}
func (*FunctionType) _Type()          {}
func (*TupleType) _Type()             {}
func (*NullableType) _Type()          {}
func (*NonNullableType) _Type()       {}
func (*TypeAfterSubstitution) _Type() {}

// TypeParams returns the declared type parameters of a generic origin.
func TypeParams(t Type) []*TypeParameter {
	switch t := t.(type) {
	case *Class:
		return t.TypeParams
	case *Interface:
		return t.TypeParams
	default:
		return nil
	}
}

// IsUnresolved reports whether t is the Unresolved sentinel or a composite
// type containing it.
func IsUnresolved(t Thingy) bool {
	switch t := t.(type) {
	case *Unresolved:
		return true
	case *NullableType:
		return IsUnresolved(t.Of)
	case *NonNullableType:
		return IsUnresolved(t.Of)
	case *TupleType:
		for _, e := range t.Elements {
			if IsUnresolved(e) {
				return true
			}
		}
	case *FunctionType:
		for _, p := range t.Params {
			if IsUnresolved(p.Type) {
				return true
			}
		}
		return IsUnresolved(t.Result)
	case *TypeAfterSubstitution:
		for _, a := range t.Arguments {
			if IsUnresolved(a) {
				return true
			}
		}
	}
	return false
}

// ========================

// Alias names another entity, as produced by `import x = y` style
// declarations.
type Alias struct {
	Base
	Name   *QName
	Target Thingy
}

func (a *Alias) String() string {
	return a.Name.String()
}

// Resolve follows alias chains.
func Resolve(t Thingy) Thingy {
	for {
		alias, ok := t.(*Alias)
		if !ok {
			return t
		}
		t = alias.Target
	}
}
