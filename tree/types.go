package tree

// Type expressions share the expression node family; identifiers, member
// chains and ApplyTypesExpr also appear in type position.

// AnyTypeExpr is `*`.
type AnyTypeExpr struct {
	ExprBase
}

type VoidTypeExpr struct {
	ExprBase
}

// NullableTypeExpr is `?T` or `T?`.
type NullableTypeExpr struct {
	ExprBase
	Base Expr
}

// NonNullableTypeExpr is `T!`.
type NonNullableTypeExpr struct {
	ExprBase
	Base Expr
}

// TupleTypeExpr is `[T1, T2]`.
type TupleTypeExpr struct {
	ExprBase
	Elements []Expr
}

type FunctionTypeParam struct {
	Kind ParamKind
	Type Expr
}

// FunctionTypeExpr is `function(T1, T2=, ...R): Result`.
type FunctionTypeExpr struct {
	ExprBase
	Params []*FunctionTypeParam
	Result Expr
}
