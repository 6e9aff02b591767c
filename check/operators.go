package check

import (
	"github.com/fxrazen/fxsema/diagnostics"
	"github.com/fxrazen/fxsema/numeric"
	"github.com/fxrazen/fxsema/semantics"
	"github.com/fxrazen/fxsema/tree"
)

func (v *Verifier) verifyUnaryExpression(expr *tree.UnaryExpr, ctx Context) (semantics.Thingy, error) {
	if expr.Op == tree.UnaryOpAwait {
		return v.verifyAwait(expr)
	}

	// Only a literal operand absorbs the sign; anything else is negated below.
	_, literal := expr.Operand.(*tree.NumericLiteral)
	operandCtx := Context{PrecededByNegative: expr.Op == tree.UnaryOpNegative && literal}
	switch {
	case expr.Op == tree.UnaryOpDelete:
		operandCtx.Mode = ModeDelete
	case expr.Op.IsUpdate():
		operandCtx.Mode = ModeWrite
	}
	if expr.Op == tree.UnaryOpNegative || expr.Op == tree.UnaryOpPositive || expr.Op == tree.UnaryOpBitwiseNot {
		if ctx.ExpectedType != nil && v.host.IsNumericType(withoutNullability(ctx.ExpectedType)) {
			operandCtx.ExpectedType = withoutNullability(ctx.ExpectedType)
		}
	}

	val, err := v.VerifyExpression(expr.Operand, operandCtx)
	if val == nil || err != nil {
		return nil, err
	}
	st := v.staticType(val)
	if _, err := v.require(st); err != nil {
		return nil, err
	}
	operandLoc := expr.Operand.Loc()

	switch expr.Op {
	case tree.UnaryOpPreIncrement, tree.UnaryOpPreDecrement, tree.UnaryOpPostIncrement, tree.UnaryOpPostDecrement:
		if !v.host.IsNumericType(withoutNonNullable(st)) {
			v.addError(operandLoc, diagnostics.OperandMustBeNumber)
			return nil, nil
		}
		if isWriteOnly(val) {
			v.addError(operandLoc, diagnostics.EntityIsWriteOnly, val)
		}
		return v.factory.CreateValue(st), nil

	case tree.UnaryOpNonNull:
		if !v.conv.IncludesNull(st) {
			v.addWarning(operandLoc, diagnostics.ReferenceIsAlreadyNonNullable)
			return v.factory.CreateValue(st), nil
		}
		return v.factory.CreateValue(v.factory.CreateNonNullableType(withoutNullability(st))), nil

	case tree.UnaryOpDelete:
		t, err := v.require(v.host.BooleanType())
		if err != nil {
			return nil, err
		}
		return v.factory.CreateValue(t), nil

	case tree.UnaryOpVoid:
		return v.factory.CreateUndefinedConstant(v.host.AnyType()), nil

	case tree.UnaryOpTypeof:
		t, err := v.require(v.host.StringType())
		if err != nil {
			return nil, err
		}
		return v.factory.CreateValue(t), nil

	case tree.UnaryOpYield:
		v.addError(expr.Loc(), diagnostics.YieldIsNotSupported)
		return nil, nil

	case tree.UnaryOpLogicalNot:
		t, err := v.require(v.host.BooleanType())
		if err != nil {
			return nil, err
		}
		if b, ok := val.(*semantics.BooleanConstant); ok {
			return v.factory.CreateBooleanConstant(!b.Value, t), nil
		}
		return v.factory.CreateValue(t), nil

	case tree.UnaryOpPositive, tree.UnaryOpNegative, tree.UnaryOpBitwiseNot:
		ok, err := v.isNumericOrUntyped(st)
		if err != nil {
			return nil, err
		}
		if !ok {
			v.addError(operandLoc, diagnostics.OperandMustBeNumber)
			return nil, nil
		}
		n, ok := val.(*semantics.NumberConstant)
		if !ok {
			return v.factory.CreateValue(st), nil
		}
		switch expr.Op {
		case tree.UnaryOpNegative:
			if literal {
				return n, nil
			}
			return v.factory.CreateNumberConstant(n.Value.Neg(), st), nil
		case tree.UnaryOpBitwiseNot:
			return v.factory.CreateNumberConstant(n.Value.Not(), st), nil
		default:
			return n, nil
		}

	default:
		panic("unreachable")
	}
}

func (v *Verifier) verifyAwait(expr *tree.UnaryExpr) (semantics.Thingy, error) {
	val, err := v.VerifyExpression(expr.Operand, Context{})
	if val == nil || err != nil {
		return nil, err
	}
	st := withoutNonNullable(v.staticType(val))
	promise, err := v.require(v.host.PromiseType())
	if err != nil {
		return nil, err
	}
	switch t := st.(type) {
	case *semantics.Unresolved:
		return v.deferAt(expr.Loc(), "awaited type")
	case *semantics.AnyType:
		return v.factory.CreateValue(t), nil
	case *semantics.TypeAfterSubstitution:
		if t.Origin == promise {
			return v.factory.CreateValue(t.Arguments[0]), nil
		}
	}
	v.addError(expr.Loc(), diagnostics.AwaitOperandMustBeAPromise, st)
	return nil, nil
}

func isWriteOnly(t semantics.Thingy) bool {
	ref, ok := t.(*semantics.FixtureReference)
	if !ok {
		return false
	}
	slot, ok := ref.Property.(*semantics.VirtualSlot)
	return ok && slot.Getter == nil
}

// isNumericOrUntyped accepts the numeric types, * and Object.
func (v *Verifier) isNumericOrUntyped(t semantics.Type) (bool, error) {
	if v.host.IsNumericType(t) {
		return true, nil
	}
	return v.isOneOf(withoutNonNullable(t), v.host.AnyType(), v.host.ObjectType())
}

// ========================

func (v *Verifier) verifyBinaryExpression(expr *tree.BinaryExpr, ctx Context) (semantics.Thingy, error) {
	switch expr.Op {
	case tree.BinaryOpLAnd, tree.BinaryOpLOr:
		return v.verifyLogical(expr, ctx)
	case tree.BinaryOpNullCoalescing:
		return v.verifyNullCoalescing(expr, ctx)
	case tree.BinaryOpIs, tree.BinaryOpAs:
		return v.verifyTypeTest(expr)
	case tree.BinaryOpIn, tree.BinaryOpInstanceOf,
		tree.BinaryOpEq, tree.BinaryOpNeq, tree.BinaryOpStrictEq, tree.BinaryOpStrictNeq,
		tree.BinaryOpLt, tree.BinaryOpLte, tree.BinaryOpGt, tree.BinaryOpGte:
		return v.verifyComparison(expr)
	default:
		return v.verifyArithmetic(expr, ctx)
	}
}

func (v *Verifier) verifyLogical(expr *tree.BinaryExpr, ctx Context) (semantics.Thingy, error) {
	left, err := v.VerifyExpression(expr.Left, Context{ExpectedType: ctx.ExpectedType})
	if err != nil {
		return nil, err
	}
	right, err := v.VerifyExpression(expr.Right, Context{ExpectedType: ctx.ExpectedType})
	if left == nil || right == nil || err != nil {
		return nil, err
	}

	lt, rt := v.staticType(left), v.staticType(right)
	if lt != rt {
		return v.factory.CreateValue(v.host.AnyType()), nil
	}
	if l, ok := left.(*semantics.BooleanConstant); ok {
		if r, ok := right.(*semantics.BooleanConstant); ok {
			if expr.Op == tree.BinaryOpLAnd {
				return v.factory.CreateBooleanConstant(l.Value && r.Value, lt), nil
			}
			return v.factory.CreateBooleanConstant(l.Value || r.Value, lt), nil
		}
	}
	return v.factory.CreateValue(lt), nil
}

func (v *Verifier) verifyNullCoalescing(expr *tree.BinaryExpr, ctx Context) (semantics.Thingy, error) {
	left, err := v.VerifyExpression(expr.Left, Context{ExpectedType: ctx.ExpectedType})
	if err != nil {
		return nil, err
	}
	if left == nil {
		return nil, v.verifyAll([]tree.Expr{expr.Right})
	}
	result := withoutNullability(v.staticType(left))
	if _, err := v.ImplicitCoerceExpression(expr.Right, result); err != nil {
		return nil, err
	}
	return v.factory.CreateValue(result), nil
}

// verifyTypeTest handles `is` and `as`, whose right operand is a type.
func (v *Verifier) verifyTypeTest(expr *tree.BinaryExpr) (semantics.Thingy, error) {
	left, err := v.VerifyExpression(expr.Left, Context{})
	if err != nil {
		return nil, err
	}
	t, err := v.VerifyTypeExpression(expr.Right)
	if left == nil || t == nil || err != nil {
		return nil, err
	}
	if expr.Op == tree.BinaryOpAs {
		return v.factory.CreateValue(t), nil
	}
	boolean, err := v.require(v.host.BooleanType())
	if err != nil {
		return nil, err
	}
	return v.factory.CreateValue(boolean), nil
}

func (v *Verifier) verifyComparison(expr *tree.BinaryExpr) (semantics.Thingy, error) {
	left, err := v.VerifyExpression(expr.Left, Context{})
	if err != nil {
		return nil, err
	}
	rightCtx := Context{}
	if left != nil && v.host.IsNumericType(v.staticType(left)) {
		rightCtx.ExpectedType = v.staticType(left)
	}
	right, err := v.VerifyExpression(expr.Right, rightCtx)
	if left == nil || right == nil || err != nil {
		return nil, err
	}
	boolean, err := v.require(v.host.BooleanType())
	if err != nil {
		return nil, err
	}
	return v.factory.CreateValue(boolean), nil
}

// verifyArithmetic covers + - * / % & | ^ << >> >>>. Operands of the
// same numeric kind keep it, and constant operands are folded.
func (v *Verifier) verifyArithmetic(expr *tree.BinaryExpr, ctx Context) (semantics.Thingy, error) {
	leftCtx := Context{}
	if t := ctx.ExpectedType; t != nil && v.host.IsNumericType(withoutNullability(t)) {
		leftCtx.ExpectedType = withoutNullability(t)
	}
	left, err := v.VerifyExpression(expr.Left, leftCtx)
	if err != nil {
		return nil, err
	}
	rightCtx := Context{}
	if left != nil && v.host.IsNumericType(v.staticType(left)) {
		rightCtx.ExpectedType = withoutNonNullable(v.staticType(left))
	}
	right, err := v.VerifyExpression(expr.Right, rightCtx)
	if left == nil || right == nil || err != nil {
		return nil, err
	}

	lt, rt := v.staticType(left), v.staticType(right)
	if _, err := v.require(lt); err != nil {
		return nil, err
	}
	if _, err := v.require(rt); err != nil {
		return nil, err
	}

	if expr.Op == tree.BinaryOpAdd {
		str, err := v.require(v.host.StringType())
		if err != nil {
			return nil, err
		}
		if withoutNonNullable(lt) == str || withoutNonNullable(rt) == str {
			l, lok := left.(*semantics.StringConstant)
			r, rok := right.(*semantics.StringConstant)
			if lok && rok {
				return v.factory.CreateStringConstant(l.Value+r.Value, str), nil
			}
			return v.factory.CreateValue(str), nil
		}
	}

	lk, lnum := v.host.NumericKind(lt)
	rk, rnum := v.host.NumericKind(rt)
	if !lnum {
		if ok, err := v.isOneOf(withoutNonNullable(lt), v.host.AnyType(), v.host.ObjectType()); err != nil || !ok {
			if err == nil {
				v.addError(expr.Left.Loc(), diagnostics.OperandMustBeNumber)
			}
			return nil, err
		}
	}
	if !rnum {
		if ok, err := v.isOneOf(withoutNonNullable(rt), v.host.AnyType(), v.host.ObjectType()); err != nil || !ok {
			if err == nil {
				v.addError(expr.Right.Loc(), diagnostics.OperandMustBeNumber)
			}
			return nil, err
		}
	}

	switch {
	case lnum && rnum && lk == rk:
		t := v.host.NumericType(lk)
		l, lok := left.(*semantics.NumberConstant)
		r, rok := right.(*semantics.NumberConstant)
		if lok && rok {
			return v.factory.CreateNumberConstant(fold(expr.Op, l.Value, r.Value), t), nil
		}
		return v.factory.CreateValue(t), nil
	case expr.Op == tree.BinaryOpAdd && (!lnum || !rnum):
		return v.factory.CreateValue(v.host.AnyType()), nil
	case isBitwise(expr.Op):
		t, err := v.require(v.host.IntType())
		if err != nil {
			return nil, err
		}
		return v.factory.CreateValue(t), nil
	default:
		t, err := v.require(v.host.NumberType())
		if err != nil {
			return nil, err
		}
		return v.factory.CreateValue(t), nil
	}
}

func isBitwise(op tree.BinaryOp) bool {
	switch op {
	case tree.BinaryOpBitAnd, tree.BinaryOpBitOr, tree.BinaryOpBitXor,
		tree.BinaryOpShl, tree.BinaryOpShr, tree.BinaryOpShrUnsigned:
		return true
	default:
		return false
	}
}

func fold(op tree.BinaryOp, l, r numeric.Variant) numeric.Variant {
	switch op {
	case tree.BinaryOpAdd:
		return l.Add(r)
	case tree.BinaryOpSub:
		return l.Sub(r)
	case tree.BinaryOpMul:
		return l.Mul(r)
	case tree.BinaryOpDiv:
		return l.Div(r)
	case tree.BinaryOpRem:
		return l.Rem(r)
	case tree.BinaryOpBitAnd:
		return l.And(r)
	case tree.BinaryOpBitOr:
		return l.Or(r)
	case tree.BinaryOpBitXor:
		return l.Xor(r)
	case tree.BinaryOpShl:
		return l.Shl(r)
	case tree.BinaryOpShr:
		return l.Shr(r)
	case tree.BinaryOpShrUnsigned:
		return l.ShiftRightUnsigned(r)
	default:
		panic("unreachable")
	}
}
