package check

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/fxrazen/fxsema/diagnostics"
	"github.com/fxrazen/fxsema/semantics"
	"github.com/fxrazen/fxsema/source"
	"github.com/fxrazen/fxsema/tree"
	"go.uber.org/zap"
)

// Verifier type-checks expressions against a scope chain.
//
// Every Verify method returns (value, nil) on success, (nil, nil) when a
// diagnostic has been reported and (nil, semantics.ErrDefer) when the
// expression depends on something that is not declared yet. Deferred
// expressions are retried by the pass driver; reporting is idempotent, so
// retries never duplicate diagnostics in a diagnostics.List.
type Verifier struct {
	host    *semantics.Host
	factory *semantics.Factory
	lookup  *semantics.PropertyLookup
	conv    *semantics.Conversions
	sink    diagnostics.Sink
	log     *zap.Logger

	scope    *semantics.Scope
	partials map[*tree.FunctionExpr]*FunctionPartials

	// Incomplete is set while later passes may still declare names. An
	// undefined name then defers instead of being reported.
	Incomplete bool
}

func NewVerifier(host *semantics.Host, sink diagnostics.Sink, scope *semantics.Scope) *Verifier {
	return &Verifier{
		host:     host,
		factory:  host.Factory(),
		lookup:   host.Lookup(),
		conv:     host.Conversions(),
		sink:     sink,
		log:      host.Logger().Named("check"),
		scope:    scope,
		partials: map[*tree.FunctionExpr]*FunctionPartials{},
	}
}

func (v *Verifier) WithLogger(log *zap.Logger) *Verifier {
	v.log = log.Named("check")
	return v
}

func (v *Verifier) Host() *semantics.Host {
	return v.host
}

func (v *Verifier) Scope() *semantics.Scope {
	return v.scope
}

func (v *Verifier) SetScope(scope *semantics.Scope) {
	v.scope = scope
}

// EnterScope makes scope, whose parent must be the current scope, the
// current scope.
func (v *Verifier) EnterScope(scope *semantics.Scope) {
	if scope.Parent != v.scope {
		panic(fmt.Errorf("entering %v whose parent is not the current scope", scope))
	}
	v.scope = scope
}

func (v *Verifier) ExitScope() {
	v.scope = v.scope.Parent
}

func (v *Verifier) addError(loc source.Location, kind diagnostics.Kind, args ...interface{}) {
	v.sink.AddVerifyError(loc, kind, args...)
}

func (v *Verifier) addWarning(loc source.Location, kind diagnostics.Kind, args ...interface{}) {
	v.sink.AddWarning(loc, kind, args...)
}

// deferAt reports a deferral. The reason is only logged.
func (v *Verifier) deferAt(loc source.Location, reason string) (semantics.Thingy, error) {
	v.log.Debug("defer", zap.Stringer("at", loc), zap.String("reason", reason))
	return nil, semantics.ErrDefer
}

// require returns ErrDefer when t is not resolved yet.
func (v *Verifier) require(t semantics.Type) (semantics.Type, error) {
	if semantics.IsUnresolved(t) {
		return nil, semantics.ErrDefer
	}
	return t, nil
}

// VerifyExpression dispatches on the expression kind.
func (v *Verifier) VerifyExpression(expr tree.Expr, ctx Context) (semantics.Thingy, error) {
	switch expr := expr.(type) {
	case *tree.QualifiedIdentifier:
		return v.verifyQualifiedIdentifierAsExpression(expr, ctx)
	case *tree.ParenExpr:
		inner := ctx
		inner.PrecededByNegative = false
		return v.VerifyExpression(expr.Expr, inner)
	case *tree.MemberExpr:
		return v.verifyMemberExpression(expr, ctx)
	case *tree.ComputedMemberExpr:
		return v.verifyComputedMemberExpression(expr, ctx)
	case *tree.DescendantsExpr:
		return v.verifyDescendantsExpression(expr)
	case *tree.FilterExpr:
		return v.verifyFilterExpression(expr)
	case *tree.CallExpr:
		return v.verifyCallExpression(expr)
	case *tree.NewExpr:
		return v.verifyNewExpression(expr)
	case *tree.SuperExpr:
		return v.verifySuperExpression(expr)
	case *tree.ApplyTypesExpr:
		return v.verifyApplyTypesExpression(expr)
	case *tree.UnaryExpr:
		return v.verifyUnaryExpression(expr, ctx)
	case *tree.BinaryExpr:
		return v.verifyBinaryExpression(expr, ctx)
	case *tree.NullLiteral:
		return v.verifyNullLiteral(expr, ctx)
	case *tree.BooleanLiteral:
		return v.verifyBooleanLiteral(expr, ctx)
	case *tree.NumericLiteral:
		return v.verifyNumericLiteral(expr, ctx)
	case *tree.StringLiteral:
		return v.verifyStringLiteral(expr, ctx)
	case *tree.ThisLiteral:
		return v.verifyThisLiteral(expr)
	case *tree.RegExpLiteral:
		return v.verifyRegExpLiteral(expr, ctx)
	case *tree.ArrayLiteral:
		return v.verifyArrayLiteral(expr, ctx)
	case *tree.XMLExpr:
		return v.verifyXMLExpression(expr, ctx)
	case *tree.XMLListExpr:
		return v.verifyXMLListExpression(expr, ctx)
	case *tree.ImportMetaExpr:
		return v.factory.CreateValue(v.host.AnyType()), nil
	case *tree.FunctionExpr:
		return v.verifyFunctionExpression(expr)
	case *tree.AnyTypeExpr, *tree.VoidTypeExpr, *tree.NullableTypeExpr, *tree.NonNullableTypeExpr,
		*tree.TupleTypeExpr, *tree.FunctionTypeExpr:
		t, err := v.VerifyTypeExpression(expr)
		if t == nil || err != nil {
			return nil, err
		}
		return v.factory.CreateTypeAsReference(t), nil
	default:
		panic(fmt.Errorf("unexpected expression\n%s", spew.Sdump(expr)))
	}
}

// ImplicitCoerceExpression verifies expr with target as the contextual type
// and converts the result to target.
func (v *Verifier) ImplicitCoerceExpression(expr tree.Expr, target semantics.Type) (semantics.Value, error) {
	result, err := v.VerifyExpression(expr, Context{ExpectedType: target})
	if result == nil || err != nil {
		return nil, err
	}
	value, ok := result.(semantics.Value)
	if !ok {
		return nil, nil
	}
	if _, err := v.require(target); err != nil {
		return nil, err
	}
	if _, err := v.require(value.StaticType()); err != nil {
		return nil, err
	}
	converted := v.conv.Implicit(value, target)
	if converted == nil {
		v.addError(expr.Loc(), diagnostics.ImplicitCoercionToUnrelatedType, value.StaticType(), target)
		return nil, nil
	}
	return converted, nil
}

// handleLookupError turns a lookup failure into a diagnostic or a deferral.
func (v *Verifier) handleLookupError(err error, loc source.Location) (semantics.Thingy, error) {
	lerr, ok := err.(*semantics.LookupError)
	if !ok {
		panic(fmt.Errorf("unexpected lookup error: %w", err))
	}
	switch lerr.Kind {
	case semantics.LookupAmbiguous:
		v.addError(loc, diagnostics.AmbiguousReference, lerr.Name)
		return nil, nil
	case semantics.LookupDefer:
		return v.deferAt(loc, "lookup")
	case semantics.LookupVoidBase:
		v.addError(loc, diagnostics.AccessOfVoid)
		return nil, nil
	case semantics.LookupNullableObject:
		v.addError(loc, diagnostics.AccessOfNullable)
		return nil, nil
	default:
		panic("unreachable")
	}
}

// referencePostProcessing applies access-mode checks and replaces
// references to constants by their value.
func (v *Verifier) referencePostProcessing(r semantics.Thingy, loc source.Location, ctx Context) (semantics.Thingy, error) {
	switch r := r.(type) {
	case *semantics.Invalidation:
		return nil, nil
	case *semantics.FixtureReference:
		if semantics.IsUnresolved(r.Type) {
			return v.deferAt(loc, "property type")
		}
		switch p := r.Property.(type) {
		case *semantics.VariableSlot:
			if ctx.Mode != ModeRead && p.ReadOnly {
				v.addError(loc, diagnostics.EntityIsReadOnly, p.Name)
				return nil, nil
			}
			if ctx.Mode == ModeRead && p.Constant != nil {
				return p.Constant, nil
			}
		case *semantics.VirtualSlot:
			if ctx.Mode == ModeRead && p.Getter == nil {
				v.addError(loc, diagnostics.EntityIsWriteOnly, p.Name)
				return nil, nil
			}
			if ctx.Mode == ModeWrite && p.Setter == nil {
				v.addError(loc, diagnostics.EntityIsReadOnly, p.Name)
				return nil, nil
			}
		case *semantics.MethodSlot:
			if ctx.Mode == ModeWrite {
				v.addError(loc, diagnostics.EntityIsReadOnly, p.Name)
				return nil, nil
			}
		}
	case *semantics.TypeAsReference:
		if ctx.Mode == ModeWrite {
			v.addError(loc, diagnostics.EntityIsReadOnly, r.Of)
			return nil, nil
		}
	}
	return r, nil
}

// detectLocalCapture marks locals of an enclosing activation that are read
// from a nested function.
func (v *Verifier) detectLocalCapture(r semantics.Thingy) {
	ref, ok := r.(*semantics.FixtureReference)
	if !ok || ref.Object != nil {
		return
	}
	slot, ok := ref.Property.(*semantics.VariableSlot)
	if !ok || slot.Activation == nil {
		return
	}
	if current := v.scope.Activation(); current != slot.Activation {
		slot.Activation.Captured.Add(slot)
		v.log.Debug("local captured", zap.Stringer("slot", slot))
	}
}

// staticType returns the static type of a verified entity.
func (v *Verifier) staticType(t semantics.Thingy) semantics.Type {
	if value, ok := t.(semantics.Value); ok {
		return value.StaticType()
	}
	return v.host.AnyType()
}

// asType returns the type denoted by a verified entity, if any.
func asType(t semantics.Thingy) (semantics.Type, bool) {
	ref, ok := t.(*semantics.TypeAsReference)
	if !ok {
		return nil, false
	}
	return ref.Of, true
}

func withoutNonNullable(t semantics.Type) semantics.Type {
	if nn, ok := t.(*semantics.NonNullableType); ok {
		return nn.Of
	}
	return t
}

func withoutNullability(t semantics.Type) semantics.Type {
	switch tt := t.(type) {
	case *semantics.NullableType:
		return tt.Of
	case *semantics.NonNullableType:
		return tt.Of
	default:
		return t
	}
}

// isOneOf compares t with well-known types, deferring while any of them is
// unresolved.
func (v *Verifier) isOneOf(t semantics.Type, candidates ...semantics.Type) (bool, error) {
	for _, c := range candidates {
		if semantics.IsUnresolved(c) {
			return false, semantics.ErrDefer
		}
		if t == c {
			return true, nil
		}
	}
	return false, nil
}

// verifyAll verifies expressions whose results are not needed, as is done
// for the remaining operands once an error has been reported.
func (v *Verifier) verifyAll(exprs []tree.Expr) error {
	for _, e := range exprs {
		if _, err := v.VerifyExpression(e, Context{}); err != nil {
			return err
		}
	}
	return nil
}
