package tree

import (
	"fmt"

	"github.com/fxrazen/fxsema/source"
)

type BinaryOp int

const (
	BinaryOpAdd BinaryOp = iota
	BinaryOpSub
	BinaryOpMul
	BinaryOpDiv
	BinaryOpRem

	BinaryOpEq
	BinaryOpNeq
	BinaryOpStrictEq
	BinaryOpStrictNeq
	BinaryOpLt
	BinaryOpLte
	BinaryOpGt
	BinaryOpGte

	BinaryOpBitAnd
	BinaryOpBitOr
	BinaryOpBitXor
	BinaryOpShl
	BinaryOpShr
	BinaryOpShrUnsigned

	BinaryOpLAnd
	BinaryOpLOr
	BinaryOpNullCoalescing

	BinaryOpIs
	BinaryOpAs
	BinaryOpIn
	BinaryOpInstanceOf
)

func (op BinaryOp) String() string {
	switch op {
	case BinaryOpAdd:
		return "+"
	case BinaryOpSub:
		return "-"
	case BinaryOpMul:
		return "*"
	case BinaryOpDiv:
		return "/"
	case BinaryOpRem:
		return "%"
	case BinaryOpEq:
		return "=="
	case BinaryOpNeq:
		return "!="
	case BinaryOpStrictEq:
		return "==="
	case BinaryOpStrictNeq:
		return "!=="
	case BinaryOpLt:
		return "<"
	case BinaryOpLte:
		return "<="
	case BinaryOpGt:
		return ">"
	case BinaryOpGte:
		return ">="
	case BinaryOpBitAnd:
		return "&"
	case BinaryOpBitOr:
		return "|"
	case BinaryOpBitXor:
		return "^"
	case BinaryOpShl:
		return "<<"
	case BinaryOpShr:
		return ">>"
	case BinaryOpShrUnsigned:
		return ">>>"
	case BinaryOpLAnd:
		return "&&"
	case BinaryOpLOr:
		return "||"
	case BinaryOpNullCoalescing:
		return "??"
	case BinaryOpIs:
		return "is"
	case BinaryOpAs:
		return "as"
	case BinaryOpIn:
		return "in"
	case BinaryOpInstanceOf:
		return "instanceof"
	default:
		panic("unreachable")
	}
}

type UnaryOp int

const (
	UnaryOpPositive UnaryOp = iota
	UnaryOpNegative
	UnaryOpBitwiseNot
	UnaryOpLogicalNot

	UnaryOpPreIncrement
	UnaryOpPreDecrement
	UnaryOpPostIncrement
	UnaryOpPostDecrement

	UnaryOpNonNull

	UnaryOpDelete
	UnaryOpVoid
	UnaryOpTypeof
	UnaryOpAwait
	UnaryOpYield
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryOpPositive:
		return "+"
	case UnaryOpNegative:
		return "-"
	case UnaryOpBitwiseNot:
		return "~"
	case UnaryOpLogicalNot:
		return "!"
	case UnaryOpPreIncrement, UnaryOpPostIncrement:
		return "++"
	case UnaryOpPreDecrement, UnaryOpPostDecrement:
		return "--"
	case UnaryOpNonNull:
		return "!"
	case UnaryOpDelete:
		return "delete"
	case UnaryOpVoid:
		return "void"
	case UnaryOpTypeof:
		return "typeof"
	case UnaryOpAwait:
		return "await"
	case UnaryOpYield:
		return "yield"
	default:
		panic("unreachable")
	}
}

func (op UnaryOp) IsUpdate() bool {
	switch op {
	case UnaryOpPreIncrement, UnaryOpPreDecrement, UnaryOpPostIncrement, UnaryOpPostDecrement:
		return true
	default:
		return false
	}
}

// ========================

type Node interface {
	Loc() source.Location
}

type NodeBase struct {
	Location source.Location
}

func (n *NodeBase) Loc() source.Location {
	return n.Location
}

// ========================

type Expr interface {
	Node
	_Expr()
}

type ExprBase struct {
	NodeBase
}

func (*ExprBase) _Expr() {}

// QualifiedIdentifier is `name`, `q::name`, `q::[key]` or `@name`. Exactly
// one of Name and Brackets is set.
type QualifiedIdentifier struct {
	ExprBase
	Attribute bool
	Qualifier Expr
	Name      string
	NameLoc   source.Location
	Brackets  Expr
}

// IdentifierName returns the plain name when the identifier has no
// qualifier, no brackets and is not an attribute.
func (e *QualifiedIdentifier) IdentifierName() (string, bool) {
	if e.Attribute || e.Qualifier != nil || e.Brackets != nil {
		return "", false
	}
	return e.Name, true
}

func (e *QualifiedIdentifier) String() string {
	prefix := ""
	if e.Attribute {
		prefix = "@"
	}
	if e.Qualifier != nil {
		prefix += fmt.Sprintf("%v::", e.Qualifier)
	}
	if e.Brackets != nil {
		return fmt.Sprintf("%s[%v]", prefix, e.Brackets)
	}
	return prefix + e.Name
}

type ParenExpr struct {
	ExprBase
	Expr Expr
}

type MemberExpr struct {
	ExprBase
	Base       Expr
	Identifier *QualifiedIdentifier
}

type ComputedMemberExpr struct {
	ExprBase
	Base Expr
	Key  Expr
}

// DescendantsExpr is `base..identifier`.
type DescendantsExpr struct {
	ExprBase
	Base       Expr
	Identifier *QualifiedIdentifier
}

// FilterExpr is `base.(test)`.
type FilterExpr struct {
	ExprBase
	Base Expr
	Test Expr
}

type CallExpr struct {
	ExprBase
	Base      Expr
	Arguments []Expr
}

// NewExpr has nil Arguments when the argument list is omitted.
type NewExpr struct {
	ExprBase
	Base      Expr
	Arguments []Expr
}

// SuperExpr is `super` or `super(objects...)`.
type SuperExpr struct {
	ExprBase
	Object []Expr
}

// ApplyTypesExpr is `base.<T1, T2>`.
type ApplyTypesExpr struct {
	ExprBase
	Base      Expr
	Arguments []Expr
}

type UnaryExpr struct {
	ExprBase
	Op      UnaryOp
	Operand Expr
}

type BinaryExpr struct {
	ExprBase
	Op    BinaryOp
	Left  Expr
	Right Expr
}

type ArrayLiteral struct {
	ExprBase
	Elements []Expr
}

type NullLiteral struct {
	ExprBase
}

type BooleanLiteral struct {
	ExprBase
	Value bool
}

type StringLiteral struct {
	ExprBase
	Value string
}

type ThisLiteral struct {
	ExprBase
}

type RegExpLiteral struct {
	ExprBase
	Body  string
	Flags string
}

// ImportMetaExpr is `import.meta`.
type ImportMetaExpr struct {
	ExprBase
}

type FunctionExpr struct {
	ExprBase
	Name   string
	Common *FunctionCommon
}

type ParamKind int

const (
	ParamRequired ParamKind = iota
	ParamOptional
	ParamRest
)

type Param struct {
	NodeBase
	Kind    ParamKind
	Name    string
	Type    Expr
	Default Expr
}

// FunctionCommon is shared by function expressions and declarations. Body is
// an expression body; block bodies are verified elsewhere.
type FunctionCommon struct {
	Params []*Param
	Result Expr
	Body   Expr
}

// ========================

type XMLExpr struct {
	ExprBase
	Element *XMLElement
}

type XMLListExpr struct {
	ExprBase
	Content []XMLContent
}

type XMLElement struct {
	NodeBase
	Name        string
	NameExpr    Expr
	Attributes  []*XMLAttribute
	AttrExpr    Expr
	Content     []XMLContent
	ClosingExpr Expr
}

type XMLAttribute struct {
	Name  string
	Value string
	Expr  Expr
}

type XMLContent interface {
	_XMLContent()
}

type XMLText struct {
	Text string
}

type XMLElementContent struct {
	Element *XMLElement
}

type XMLExprContent struct {
	Expr Expr
}

func (*XMLText) _XMLContent()           {}
func (*XMLElementContent) _XMLContent() {}
func (*XMLExprContent) _XMLContent()    {}
