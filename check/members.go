package check

import (
	"strings"

	"github.com/fxrazen/fxsema/diagnostics"
	"github.com/fxrazen/fxsema/numeric"
	"github.com/fxrazen/fxsema/semantics"
	"github.com/fxrazen/fxsema/source"
	"github.com/fxrazen/fxsema/tree"
	"github.com/pkg/errors"
)

func (v *Verifier) verifyMemberExpression(expr *tree.MemberExpr, ctx Context) (semantics.Thingy, error) {
	if name, ok := importMetaEnvName(expr); ok {
		return v.verifyImportMetaEnv(expr, name)
	}

	if r, found, err := v.verifyPackageShadowing(expr); found || err != nil {
		if r == nil || err != nil {
			return nil, err
		}
		return v.referencePostProcessing(r, expr.Identifier.Loc(), ctx)
	}

	id := expr.Identifier

	base, err := v.VerifyExpression(expr.Base, Context{})
	if err != nil {
		return nil, err
	}
	if base == nil {
		_, _, err := v.verifyQualifiedIdentifier(id)
		return nil, err
	}

	key, ok, err := v.verifyQualifiedIdentifier(id)
	if !ok || err != nil {
		return nil, err
	}

	if id.Attribute || key.isDynamic() {
		object, ok := base.(semantics.Value)
		if !ok {
			return nil, nil
		}
		return v.factory.CreateDynamicReference(object, key.qualifier, key.name, key.key), nil
	}

	r, err := v.lookup.LookupInObject(v.scope, base, key.qualifier, key.name)
	if err != nil {
		return v.handleLookupError(err, id.Loc())
	}
	if r == nil {
		if v.Incomplete {
			return v.deferAt(id.Loc(), "undefined "+key.name)
		}
		v.addError(id.Loc(), diagnostics.UndefinedPropertyWithStaticType, key.name, v.staticType(base))
		return nil, nil
	}

	return v.referencePostProcessing(r, id.Loc(), ctx)
}

// importMetaEnvName matches `import.meta.env.NAME`.
func importMetaEnvName(expr *tree.MemberExpr) (string, bool) {
	env, ok := expr.Base.(*tree.MemberExpr)
	if !ok {
		return "", false
	}
	if _, ok := env.Base.(*tree.ImportMetaExpr); !ok {
		return "", false
	}
	if name, ok := env.Identifier.IdentifierName(); !ok || name != "env" {
		return "", false
	}
	return expr.Identifier.IdentifierName()
}

func (v *Verifier) verifyImportMetaEnv(expr *tree.MemberExpr, name string) (semantics.Thingy, error) {
	value, ok := v.host.Env()[name]
	if !ok {
		v.addError(expr.Identifier.Loc(), diagnostics.UndefinedProperty, name)
		return nil, nil
	}
	t, err := v.require(v.host.StringType())
	if err != nil {
		return nil, err
	}
	return v.factory.CreateStringConstant(value, t), nil
}

// verifyPackageShadowing resolves `a.b.c` through imports of package a.b
// before `a` is looked up as a value. found reports whether an import
// matched; a nil result with found set means a diagnostic was reported.
func (v *Verifier) verifyPackageShadowing(expr *tree.MemberExpr) (r semantics.Thingy, found bool, err error) {
	seq, ok := dotSequence(expr)
	if !ok {
		return nil, false, nil
	}
	pkgName := strings.Join(seq[:len(seq)-1], ".")
	name := seq[len(seq)-1]
	loc := expr.Identifier.Loc()

	for scope := v.scope; scope != nil; scope = scope.Parent {
		var match semantics.Thingy
		for _, imp := range scope.Imports {
			r, err := v.importShadowingPackageName(pkgName, name, imp)
			if err != nil {
				var lerr *semantics.LookupError
				if errors.As(err, &lerr) && lerr.Kind == semantics.LookupAmbiguous {
					v.addError(loc, diagnostics.AmbiguousReference, name)
					return nil, true, nil
				}
				return nil, true, err
			}
			if r == nil {
				continue
			}
			if match != nil && !sameReferent(match, r) {
				v.addError(loc, diagnostics.AmbiguousReference, name)
				return nil, true, nil
			}
			match = r
		}
		if match != nil {
			return match, true, nil
		}
	}
	return nil, false, nil
}

func (v *Verifier) importShadowingPackageName(pkgName, name string, imp semantics.Thingy) (semantics.Thingy, error) {
	switch imp := imp.(type) {
	case *semantics.PackageWildcardImport:
		if imp.Package.FullyQualifiedName() != pkgName {
			return nil, nil
		}
		r, err := v.lookup.LookupInObject(v.scope, v.factory.CreatePackageReference(imp.Package), nil, name)
		return r, lookupErrorAsDefer(err)
	case *semantics.PackageRecursiveImport:
		if imp.Package.FullyQualifiedName() != pkgName {
			return nil, nil
		}
		r, err := v.lookup.LookupInPackageRecursive(imp.Package, nil, name)
		return r, lookupErrorAsDefer(err)
	case *semantics.PackagePropertyImport:
		if imp.Package.FullyQualifiedName() != pkgName || imp.Name.Name != name {
			return nil, nil
		}
		r := v.factory.CreateReference(nil, imp.Property)
		if _, ok := r.(*semantics.Unresolved); ok {
			return nil, semantics.ErrDefer
		}
		return r, nil
	default:
		panic("unreachable")
	}
}

// lookupErrorAsDefer keeps ambiguity errors and maps deferral to ErrDefer.
// Package lookups never fail on base types.
func lookupErrorAsDefer(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, semantics.ErrDefer):
		return semantics.ErrDefer
	default:
		var lerr *semantics.LookupError
		if errors.As(err, &lerr) && lerr.Kind == semantics.LookupAmbiguous {
			return err
		}
		panic(err)
	}
}

// sameReferent compares two references by the entity they denote.
func sameReferent(a, b semantics.Thingy) bool {
	return referent(a) == referent(b)
}

func referent(t semantics.Thingy) semantics.Thingy {
	switch t := t.(type) {
	case *semantics.FixtureReference:
		return t.Property
	case *semantics.TypeAsReference:
		return t.Of
	case *semantics.PackageReference:
		return t.Package
	case *semantics.NamespaceConstant:
		return t.Namespace
	default:
		return t
	}
}

// dotSequence returns the identifiers of a chain such as a.b.c, which must
// have at least two elements.
func dotSequence(expr *tree.MemberExpr) ([]string, bool) {
	var seq []string
	var e tree.Expr = expr
	for {
		switch m := e.(type) {
		case *tree.MemberExpr:
			name, ok := m.Identifier.IdentifierName()
			if !ok {
				return nil, false
			}
			seq = append(seq, name)
			e = m.Base
			continue
		case *tree.QualifiedIdentifier:
			name, ok := m.IdentifierName()
			if !ok {
				return nil, false
			}
			seq = append(seq, name)
		default:
			return nil, false
		}
		break
	}
	for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
		seq[i], seq[j] = seq[j], seq[i]
	}
	return seq, true
}

// ========================

func (v *Verifier) verifyComputedMemberExpression(expr *tree.ComputedMemberExpr, ctx Context) (semantics.Thingy, error) {
	base, err := v.VerifyExpression(expr.Base, Context{})
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, v.verifyAll([]tree.Expr{expr.Key})
	}

	key, err := v.VerifyExpression(expr.Key, Context{})
	if key == nil || err != nil {
		return nil, err
	}

	if k, ok := key.(*semantics.StringConstant); ok {
		r, err := v.lookup.LookupInObject(v.scope, base, nil, k.Value)
		if err != nil {
			return v.handleLookupError(err, expr.Key.Loc())
		}
		if r != nil {
			return v.referencePostProcessing(r, expr.Key.Loc(), ctx)
		}
	}

	object, ok := base.(semantics.Value)
	if !ok {
		return nil, nil
	}
	baseType := object.StaticType()
	switch baseType.(type) {
	case *semantics.Unresolved:
		return v.deferAt(expr.Loc(), "base type")
	case *semantics.VoidType:
		v.addError(expr.Key.Loc(), diagnostics.AccessOfVoid)
		return nil, nil
	case *semantics.NullableType:
		v.addError(expr.Key.Loc(), diagnostics.AccessOfNullable)
		return nil, nil
	}

	keyValue, _ := key.(semantics.Value)
	r := v.factory.CreateDynamicReference(object, nil, "", keyValue)
	if element := v.elementType(withoutNonNullable(baseType), keyValue); element != nil {
		r.Type = element
	}
	return v.referencePostProcessing(r, expr.Key.Loc(), ctx)
}

// elementType returns the static type of base[key] for vectors and
// tuples indexed by a constant.
func (v *Verifier) elementType(base semantics.Type, key semantics.Value) semantics.Type {
	switch t := base.(type) {
	case *semantics.TypeAfterSubstitution:
		if t.Origin == v.host.VectorType() {
			return t.Arguments[0]
		}
	case *semantics.TupleType:
		n, ok := key.(*semantics.NumberConstant)
		if !ok {
			return nil
		}
		index, _ := n.Value.Convert(numeric.KindInt).AsInt()
		i := int(index)
		if i >= 0 && i < len(t.Elements) {
			return t.Elements[i]
		}
	}
	return nil
}

func (v *Verifier) verifyDescendantsExpression(expr *tree.DescendantsExpr) (semantics.Thingy, error) {
	base, err := v.VerifyExpression(expr.Base, Context{})
	if err != nil {
		return nil, err
	}
	if _, _, err := v.verifyQualifiedIdentifier(expr.Identifier); err != nil || base == nil {
		return nil, err
	}
	return v.xmlQueryResult(base, expr.Identifier.Loc(), diagnostics.InapplicableDescendants)
}

func (v *Verifier) verifyFilterExpression(expr *tree.FilterExpr) (semantics.Thingy, error) {
	base, err := v.VerifyExpression(expr.Base, Context{})
	if err != nil {
		return nil, err
	}

	object, _ := base.(semantics.Value)
	v.EnterScope(v.factory.CreateFilterScope(object, v.scope))
	_, err = v.VerifyExpression(expr.Test, Context{})
	v.ExitScope()
	if base == nil || err != nil {
		return nil, err
	}

	return v.xmlQueryResult(base, expr.Test.Loc(), diagnostics.InapplicableFilter)
}

// xmlQueryResult types `..` and `.()` over base: XMLList for XML bases, *
// for untyped bases.
func (v *Verifier) xmlQueryResult(base semantics.Thingy, loc source.Location, kind diagnostics.Kind) (semantics.Thingy, error) {
	st := v.staticType(base)
	baseType := withoutNonNullable(st)

	untyped, err := v.isOneOf(baseType, v.host.AnyType(), v.host.ObjectType())
	if err != nil {
		return nil, err
	}
	if untyped {
		return v.factory.CreateValue(v.host.AnyType()), nil
	}
	xml, err := v.isOneOf(baseType, v.host.XMLType(), v.host.XMLListType())
	if err != nil {
		return nil, err
	}
	if !xml {
		v.addError(loc, kind, st)
		return nil, nil
	}
	return v.factory.CreateValue(v.host.XMLListType()), nil
}
