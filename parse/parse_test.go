package parse

import (
	"testing"

	"github.com/fxrazen/fxsema/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiterals(t *testing.T) {
	expr := MustParseExpression("42")
	lit, ok := expr.(*tree.NumericLiteral)
	require.True(t, ok)
	assert.Equal(t, "42", lit.Value)
	assert.Equal(t, 1, lit.Loc().Line)
	assert.Equal(t, 1, lit.Loc().Column)

	str := MustParseExpression(`'a\nb'`).(*tree.StringLiteral)
	assert.Equal(t, "a\nb", str.Value)

	assert.IsType(t, &tree.NullLiteral{}, MustParseExpression("null"))
	assert.IsType(t, &tree.ThisLiteral{}, MustParseExpression("this"))
	assert.True(t, MustParseExpression("true").(*tree.BooleanLiteral).Value)

	arr := MustParseExpression("[1, 2, 3]").(*tree.ArrayLiteral)
	assert.Len(t, arr.Elements, 3)
}

func TestParsePrecedence(t *testing.T) {
	expr := MustParseExpression("1 + 2 * 3").(*tree.BinaryExpr)
	assert.Equal(t, tree.BinaryOpAdd, expr.Op)
	right := expr.Right.(*tree.BinaryExpr)
	assert.Equal(t, tree.BinaryOpMul, right.Op)

	expr = MustParseExpression("a || b && c").(*tree.BinaryExpr)
	assert.Equal(t, tree.BinaryOpLOr, expr.Op)

	neg := MustParseExpression("-2147483648").(*tree.UnaryExpr)
	assert.Equal(t, tree.UnaryOpNegative, neg.Op)
	assert.IsType(t, &tree.NumericLiteral{}, neg.Operand)
}

func TestParseQualifiedIdentifiers(t *testing.T) {
	id := MustParseExpression("ns::name").(*tree.QualifiedIdentifier)
	assert.Equal(t, "name", id.Name)
	require.NotNil(t, id.Qualifier)
	_, plain := id.IdentifierName()
	assert.False(t, plain)

	id = MustParseExpression("ns::[key]").(*tree.QualifiedIdentifier)
	assert.NotNil(t, id.Brackets)

	id = MustParseExpression("@attr").(*tree.QualifiedIdentifier)
	assert.True(t, id.Attribute)
	assert.Equal(t, "@attr", id.String())
}

func TestParsePostfix(t *testing.T) {
	call := MustParseExpression("a.b(1, 2)").(*tree.CallExpr)
	assert.Len(t, call.Arguments, 2)
	member := call.Base.(*tree.MemberExpr)
	assert.Equal(t, "b", member.Identifier.Name)

	assert.IsType(t, &tree.DescendantsExpr{}, MustParseExpression("x..item"))
	assert.IsType(t, &tree.FilterExpr{}, MustParseExpression("x.(@id == 1)"))
	assert.IsType(t, &tree.ComputedMemberExpr{}, MustParseExpression("x[0]"))

	nonNull := MustParseExpression("x!").(*tree.UnaryExpr)
	assert.Equal(t, tree.UnaryOpNonNull, nonNull.Op)

	inc := MustParseExpression("x++").(*tree.UnaryExpr)
	assert.Equal(t, tree.UnaryOpPostIncrement, inc.Op)
}

func TestParseApplyTypesSplitsShift(t *testing.T) {
	expr := MustParseExpression("Vector.<Vector.<int>>").(*tree.ApplyTypesExpr)
	require.Len(t, expr.Arguments, 1)
	inner := expr.Arguments[0].(*tree.ApplyTypesExpr)
	require.Len(t, inner.Arguments, 1)
	assert.Equal(t, "int", inner.Arguments[0].(*tree.QualifiedIdentifier).Name)
}

func TestParseNew(t *testing.T) {
	withArgs := MustParseExpression("new C(1)").(*tree.NewExpr)
	assert.Len(t, withArgs.Arguments, 1)

	without := MustParseExpression("new C").(*tree.NewExpr)
	assert.Nil(t, without.Arguments)

	empty := MustParseExpression("new C()").(*tree.NewExpr)
	assert.NotNil(t, empty.Arguments)
	assert.Len(t, empty.Arguments, 0)

	super := MustParseExpression("super(this)").(*tree.SuperExpr)
	assert.Len(t, super.Object, 1)
}

func TestParseImportMeta(t *testing.T) {
	expr := MustParseExpression("import.meta.env.API_KEY").(*tree.MemberExpr)
	assert.Equal(t, "API_KEY", expr.Identifier.Name)
	env := expr.Base.(*tree.MemberExpr)
	assert.Equal(t, "env", env.Identifier.Name)
	assert.IsType(t, &tree.ImportMetaExpr{}, env.Base)
}

func TestParseFunctionExpression(t *testing.T) {
	fn := MustParseExpression("function(a: int, b: Number = 1, ...rest): String { return a }").(*tree.FunctionExpr)
	params := fn.Common.Params
	require.Len(t, params, 3)
	assert.Equal(t, tree.ParamRequired, params[0].Kind)
	assert.Equal(t, tree.ParamOptional, params[1].Kind)
	assert.Equal(t, tree.ParamRest, params[2].Kind)
	assert.NotNil(t, fn.Common.Result)
	assert.IsType(t, &tree.QualifiedIdentifier{}, fn.Common.Body)
}

func TestParseTypeExpressions(t *testing.T) {
	typ, err := ParseTypeExpression("<test>", "?int")
	require.NoError(t, err)
	assert.IsType(t, &tree.NullableTypeExpr{}, typ)

	typ, err = ParseTypeExpression("<test>", "String!")
	require.NoError(t, err)
	assert.IsType(t, &tree.NonNullableTypeExpr{}, typ)

	typ, err = ParseTypeExpression("<test>", "[int, *]")
	require.NoError(t, err)
	tuple := typ.(*tree.TupleTypeExpr)
	require.Len(t, tuple.Elements, 2)
	assert.IsType(t, &tree.AnyTypeExpr{}, tuple.Elements[1])

	typ, err = ParseTypeExpression("<test>", "function(int, Number=, ...Array): void")
	require.NoError(t, err)
	fn := typ.(*tree.FunctionTypeExpr)
	require.Len(t, fn.Params, 3)
	assert.Equal(t, tree.ParamOptional, fn.Params[1].Kind)
	assert.Equal(t, tree.ParamRest, fn.Params[2].Kind)
	assert.IsType(t, &tree.VoidTypeExpr{}, fn.Result)

	cast := MustParseExpression("x as Vector.<int>").(*tree.BinaryExpr)
	assert.Equal(t, tree.BinaryOpAs, cast.Op)
	assert.IsType(t, &tree.ApplyTypesExpr{}, cast.Right)
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{"1 +", "(a", "a b", "'open", "1e", "#"} {
		_, err := ParseExpression("<test>", src)
		assert.Error(t, err, src)
	}

	_, err := ParseExpression("file.as", "\n  )")
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Location.Line)
	assert.Equal(t, 3, perr.Location.Column)
}

func TestParseProgram(t *testing.T) {
	prog, err := ParseProgram("main.as", `
		import flash.utils.ByteArray;
		import flash.events.*;
		var a: int = b + 1;
		const b = 2;
		var c;
		trace(a);
	`)
	require.NoError(t, err)
	require.Len(t, prog.Directives, 6)

	imp := prog.Directives[0].(*tree.ImportDirective)
	assert.Equal(t, []string{"flash", "utils"}, imp.Package)
	assert.Equal(t, "ByteArray", imp.Name)
	assert.False(t, imp.Wildcard)

	wildcard := prog.Directives[1].(*tree.ImportDirective)
	assert.Equal(t, []string{"flash", "events"}, wildcard.Package)
	assert.True(t, wildcard.Wildcard)

	a := prog.Directives[2].(*tree.VarDirective)
	assert.Equal(t, "a", a.Name)
	assert.False(t, a.Const)
	assert.IsType(t, &tree.QualifiedIdentifier{}, a.Type)
	assert.IsType(t, &tree.BinaryExpr{}, a.Init)
	assert.Equal(t, 4, a.NameLoc.Line)

	b := prog.Directives[3].(*tree.VarDirective)
	assert.True(t, b.Const)
	assert.Nil(t, b.Type)

	c := prog.Directives[4].(*tree.VarDirective)
	assert.Nil(t, c.Init)

	assert.IsType(t, &tree.CallExpr{}, prog.Directives[5].(*tree.ExprDirective).Expr)
}

func TestParseProgramImportMetaStatement(t *testing.T) {
	prog, err := ParseProgram("<test>", "import.meta.env.KEY")
	require.NoError(t, err)
	assert.IsType(t, &tree.MemberExpr{}, prog.Directives[0].(*tree.ExprDirective).Expr)
}

func TestParseProgramErrors(t *testing.T) {
	for _, src := range []string{"const k", "var 1", "import a", "a b", "import a.*.b"} {
		_, err := ParseProgram("<test>", src)
		assert.Error(t, err, src)
	}
}
