package tree

import "github.com/fxrazen/fxsema/source"

// Program is a parsed source file: a list of top-level directives.
type Program struct {
	Path       string
	Text       string
	Directives []Directive
}

// Source returns the text spanned by loc.
func (p *Program) Source(loc source.Location) string {
	if loc.Start < 0 || loc.End > len(p.Text) || loc.Start > loc.End {
		return ""
	}
	return p.Text[loc.Start:loc.End]
}

type Directive interface {
	Node
	_Directive()
}

type DirectiveBase struct {
	NodeBase
}

func (*DirectiveBase) _Directive() {}

// VarDirective is `var name: T = init` or `const name: T = init`. Type and
// Init are optional for var.
type VarDirective struct {
	DirectiveBase
	Const   bool
	Name    string
	NameLoc source.Location
	Type    Expr
	Init    Expr
}

// ImportDirective is `import a.b.C` or `import a.b.*`.
type ImportDirective struct {
	DirectiveBase
	Package  []string
	Name     string
	Wildcard bool
}

// ExprDirective is an expression statement.
type ExprDirective struct {
	DirectiveBase
	Expr Expr
}
