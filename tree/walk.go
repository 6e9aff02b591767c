package tree

// Inspect traverses expr depth-first, calling f for every expression node.
// Children are skipped when f returns false.
func Inspect(expr Expr, f func(Expr) bool) {
	if expr == nil || !f(expr) {
		return
	}
	each := func(exprs []Expr) {
		for _, e := range exprs {
			Inspect(e, f)
		}
	}

	switch e := expr.(type) {
	case *QualifiedIdentifier:
		Inspect(e.Qualifier, f)
		Inspect(e.Brackets, f)
	case *ParenExpr:
		Inspect(e.Expr, f)
	case *MemberExpr:
		Inspect(e.Base, f)
		Inspect(e.Identifier, f)
	case *ComputedMemberExpr:
		Inspect(e.Base, f)
		Inspect(e.Key, f)
	case *DescendantsExpr:
		Inspect(e.Base, f)
		Inspect(e.Identifier, f)
	case *FilterExpr:
		Inspect(e.Base, f)
		Inspect(e.Test, f)
	case *CallExpr:
		Inspect(e.Base, f)
		each(e.Arguments)
	case *NewExpr:
		Inspect(e.Base, f)
		each(e.Arguments)
	case *SuperExpr:
		each(e.Object)
	case *ApplyTypesExpr:
		Inspect(e.Base, f)
		each(e.Arguments)
	case *UnaryExpr:
		Inspect(e.Operand, f)
	case *BinaryExpr:
		Inspect(e.Left, f)
		Inspect(e.Right, f)
	case *ArrayLiteral:
		each(e.Elements)
	case *FunctionExpr:
		for _, p := range e.Common.Params {
			Inspect(p.Type, f)
			Inspect(p.Default, f)
		}
		Inspect(e.Common.Result, f)
		Inspect(e.Common.Body, f)
	case *XMLExpr:
		inspectXMLElement(e.Element, f)
	case *XMLListExpr:
		inspectXMLContent(e.Content, f)
	case *NullableTypeExpr:
		Inspect(e.Base, f)
	case *NonNullableTypeExpr:
		Inspect(e.Base, f)
	case *TupleTypeExpr:
		each(e.Elements)
	case *FunctionTypeExpr:
		for _, p := range e.Params {
			Inspect(p.Type, f)
		}
		Inspect(e.Result, f)
	}
}

func inspectXMLElement(elem *XMLElement, f func(Expr) bool) {
	Inspect(elem.NameExpr, f)
	for _, attr := range elem.Attributes {
		Inspect(attr.Expr, f)
	}
	Inspect(elem.AttrExpr, f)
	inspectXMLContent(elem.Content, f)
	Inspect(elem.ClosingExpr, f)
}

func inspectXMLContent(content []XMLContent, f func(Expr) bool) {
	for _, c := range content {
		switch c := c.(type) {
		case *XMLElementContent:
			inspectXMLElement(c.Element, f)
		case *XMLExprContent:
			Inspect(c.Expr, f)
		}
	}
}
