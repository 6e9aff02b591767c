package compile

import (
	"strings"

	"github.com/fxrazen/fxsema/check"
	"github.com/fxrazen/fxsema/common"
	"github.com/fxrazen/fxsema/semantics"
	"github.com/fxrazen/fxsema/source"
	"github.com/fxrazen/fxsema/tree"
	"go.uber.org/zap"
)

// task is one unit of deferred work. run returns semantics.ErrDefer to be
// retried in the next pass; it must be safe to call again after that.
type task struct {
	name     string
	loc      source.Location
	declares string
	refs     common.Set[string]
	verifier *check.Verifier
	run      func() error
}

// references collects the unqualified names an expression reads. Member
// names are not references.
func references(exprs ...tree.Expr) common.Set[string] {
	refs := common.NewSet[string]()
	var visit func(tree.Expr) bool
	visit = func(e tree.Expr) bool {
		switch e := e.(type) {
		case *tree.QualifiedIdentifier:
			if name, ok := e.IdentifierName(); ok {
				refs.Add(name)
			}
		case *tree.MemberExpr:
			tree.Inspect(e.Base, visit)
			return false
		case *tree.DescendantsExpr:
			tree.Inspect(e.Base, visit)
			return false
		}
		return true
	}
	for _, e := range exprs {
		tree.Inspect(e, visit)
	}
	return refs
}

// ========================

// varTask declares the variable right away, typed Unresolved until its
// annotation, or for constants its initializer, has been verified. Readers
// defer on it in the meantime.
func (u *Unit) varTask(v *check.Verifier, d *tree.VarDirective) *task {
	f := u.host.Factory()
	top := u.host.TopLevelPackage()
	name := f.CreateQName(top.PublicNs, d.Name)

	var slot *semantics.VariableSlot
	if existing, ok := top.Properties.Get(name).(*semantics.VariableSlot); ok && !d.Const && !existing.ReadOnly {
		slot = existing
	} else {
		slot = f.CreateVariableSlot(name, u.host.UnresolvedThingy(), d.Const)
		top.Properties.Set(name, slot)
	}
	if d.Type == nil && !d.Const {
		slot.Type = u.host.AnyType()
	}

	var annotated semantics.Type
	return &task{
		name:     d.Name,
		loc:      d.NameLoc,
		declares: d.Name,
		refs:     references(d.Type, d.Init),
		verifier: v,
		run: func() error {
			if d.Type != nil && annotated == nil {
				t, err := v.VerifyTypeExpression(d.Type)
				if err != nil {
					return err
				}
				if t == nil {
					t = u.host.AnyType()
				}
				annotated = t
				if !d.Const {
					slot.Type = t
				}
			}

			if d.Init == nil {
				return nil
			}
			var result semantics.Thingy
			var err error
			if annotated != nil {
				result, err = v.ImplicitCoerceExpression(d.Init, annotated)
			} else {
				result, err = v.VerifyExpression(d.Init, check.Context{})
			}
			if err != nil {
				return err
			}

			if d.Const {
				value, _ := result.(semantics.Value)
				switch {
				case annotated != nil:
					slot.Type = annotated
				case value != nil:
					slot.Type = value.StaticType()
				default:
					slot.Type = u.host.AnyType()
				}
				if semantics.IsConstant(result) {
					slot.Constant = value
				}
				u.log.Debug("constant declared", zap.String("name", d.Name), zap.Stringer("type", slot.Type))
			}
			return nil
		},
	}
}

func (u *Unit) importTask(v *check.Verifier, d *tree.ImportDirective) *task {
	f := u.host.Factory()
	name := strings.Join(d.Package, ".")
	if !d.Wildcard {
		name += "." + d.Name
	}

	return &task{
		name:     name,
		loc:      d.Loc(),
		refs:     common.NewSet[string](),
		verifier: v,
		run: func() error {
			pkg := f.CreatePackage(d.Package...)
			if d.Wildcard {
				v.Scope().AddImport(f.CreateWildcardImport(pkg))
				return nil
			}
			qname := f.CreateQName(pkg.PublicNs, d.Name)
			prop := pkg.Properties.Get(qname)
			if prop == nil {
				return semantics.ErrDefer
			}
			v.Scope().AddImport(f.CreatePropertyImport(pkg, qname, prop))
			return nil
		},
	}
}

func (u *Unit) exprTask(v *check.Verifier, d *tree.ExprDirective, r *Result) *task {
	return &task{
		name:     r.Text,
		loc:      d.Loc(),
		refs:     references(d.Expr),
		verifier: v,
		run: func() error {
			result, err := v.VerifyExpression(d.Expr, check.Context{})
			if err != nil {
				return err
			}
			r.Value, _ = result.(semantics.Value)
			return nil
		},
	}
}
