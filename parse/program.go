package parse

import (
	"github.com/fxrazen/fxsema/source"
	"github.com/fxrazen/fxsema/tree"
)

// ParseProgram parses a list of directives separated by `;`: var and
// const declarations, imports and expression statements.
func ParseProgram(path, text string) (*tree.Program, error) {
	p, err := newParser(source.NewFile(path, text))
	if err != nil {
		return nil, err
	}
	prog := &tree.Program{Path: path, Text: text}
	for p.tok.kind != tokenEOF {
		if ok, err := p.consume(";"); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		d, err := p.parseDirective()
		if err != nil {
			return nil, err
		}
		prog.Directives = append(prog.Directives, d)
		if p.tok.kind != tokenEOF {
			if err := p.expect(";"); err != nil {
				return nil, err
			}
		}
	}
	return prog, nil
}

func (p *parser) peek() (token, error) {
	saved := *p.lex
	tok, err := p.lex.next()
	*p.lex = saved
	return tok, err
}

func (p *parser) parseDirective() (tree.Directive, error) {
	start := p.tok.start
	switch {
	case p.isKeyword("var"), p.isKeyword("const"):
		return p.parseVarDirective()
	case p.isKeyword("import"):
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		if next.kind == tokenIdentifier {
			return p.parseImportDirective()
		}
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	d := &tree.ExprDirective{Expr: expr}
	d.Location = p.loc(start)
	return d, nil
}

func (p *parser) parseVarDirective() (tree.Directive, error) {
	start := p.tok.start
	d := &tree.VarDirective{Const: p.tok.value == "const"}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind != tokenIdentifier {
		return nil, p.errorf("expected a name, found %v", p.tok)
	}
	d.Name = p.tok.value
	d.NameLoc = p.file.Location(p.tok.start, p.tok.end)
	if err := p.advance(); err != nil {
		return nil, err
	}
	if ok, err := p.consume(":"); err != nil {
		return nil, err
	} else if ok {
		if d.Type, err = p.parseTypeExpression(); err != nil {
			return nil, err
		}
	}
	if ok, err := p.consume("="); err != nil {
		return nil, err
	} else if ok {
		if d.Init, err = p.parseExpression(); err != nil {
			return nil, err
		}
	} else if d.Const {
		return nil, p.errorf("const %s has no initializer", d.Name)
	}
	d.Location = p.loc(start)
	return d, nil
}

func (p *parser) parseImportDirective() (tree.Directive, error) {
	start := p.tok.start
	if err := p.advance(); err != nil {
		return nil, err
	}
	d := &tree.ImportDirective{}
	var segments []string
	for {
		switch {
		case p.tok.kind == tokenIdentifier:
			segments = append(segments, p.tok.value)
		case p.is("*") && len(segments) > 0:
			d.Wildcard = true
		default:
			return nil, p.errorf("expected a name, found %v", p.tok)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if d.Wildcard || !p.is(".") {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if d.Wildcard {
		d.Package = segments
	} else {
		if len(segments) < 2 {
			return nil, p.errorf("import of %s names no package", segments[0])
		}
		d.Package = segments[:len(segments)-1]
		d.Name = segments[len(segments)-1]
	}
	d.Location = p.loc(start)
	return d, nil
}
