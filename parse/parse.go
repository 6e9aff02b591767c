package parse

import (
	"fmt"

	"github.com/fxrazen/fxsema/source"
	"github.com/fxrazen/fxsema/tree"
)

// Error is a syntax error at a source location.
type Error struct {
	Location source.Location
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Location, e.Message)
}

// ParseExpression parses a single expression from text. It covers the
// expression grammar consumed by the verifier; statements are not parsed.
func ParseExpression(path, text string) (tree.Expr, error) {
	p, err := newParser(source.NewFile(path, text))
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenEOF {
		return nil, p.errorf("unexpected %v", p.tok)
	}
	return expr, nil
}

// ParseTypeExpression parses a single type expression from text.
func ParseTypeExpression(path, text string) (tree.Expr, error) {
	p, err := newParser(source.NewFile(path, text))
	if err != nil {
		return nil, err
	}
	expr, err := p.parseTypeExpression()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenEOF {
		return nil, p.errorf("unexpected %v", p.tok)
	}
	return expr, nil
}

// MustParseExpression panics on syntax errors.
func MustParseExpression(text string) tree.Expr {
	expr, err := ParseExpression("<input>", text)
	if err != nil {
		panic(err)
	}
	return expr
}

type parser struct {
	file *source.File
	lex  *lexer
	tok  token
	prev token
}

func newParser(file *source.File) (*parser, error) {
	p := &parser{file: file, lex: &lexer{text: file.Text}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return &Error{Location: p.file.Location(p.lex.pos, p.lex.pos), Message: err.Error()}
	}
	p.prev = p.tok
	p.tok = tok
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &Error{Location: p.file.Location(p.tok.start, p.tok.end), Message: fmt.Sprintf(format, args...)}
}

func (p *parser) is(punct string) bool {
	return p.tok.kind == tokenPunct && p.tok.value == punct
}

func (p *parser) isKeyword(name string) bool {
	return p.tok.kind == tokenIdentifier && p.tok.value == name
}

func (p *parser) consume(punct string) (bool, error) {
	if !p.is(punct) {
		return false, nil
	}
	return true, p.advance()
}

func (p *parser) expect(punct string) error {
	if !p.is(punct) {
		return p.errorf("expected %q, found %v", punct, p.tok)
	}
	return p.advance()
}

// expectCloseAngle accepts `>` and splits `>>`/`>>>` closing nested type
// argument lists.
func (p *parser) expectCloseAngle() error {
	switch {
	case p.is(">"):
		return p.advance()
	case p.is(">>"), p.is(">>>"):
		p.tok.value = p.tok.value[1:]
		p.tok.start++
		return nil
	default:
		return p.errorf("expected \">\", found %v", p.tok)
	}
}

func (p *parser) loc(start int) source.Location {
	return p.file.Location(start, p.prev.end)
}

type binaryLevel struct {
	ops map[string]tree.BinaryOp
}

var binaryLevels = []binaryLevel{
	{map[string]tree.BinaryOp{"??": tree.BinaryOpNullCoalescing}},
	{map[string]tree.BinaryOp{"||": tree.BinaryOpLOr}},
	{map[string]tree.BinaryOp{"&&": tree.BinaryOpLAnd}},
	{map[string]tree.BinaryOp{"|": tree.BinaryOpBitOr}},
	{map[string]tree.BinaryOp{"^": tree.BinaryOpBitXor}},
	{map[string]tree.BinaryOp{"&": tree.BinaryOpBitAnd}},
	{map[string]tree.BinaryOp{"==": tree.BinaryOpEq, "!=": tree.BinaryOpNeq, "===": tree.BinaryOpStrictEq, "!==": tree.BinaryOpStrictNeq}},
	{map[string]tree.BinaryOp{"<": tree.BinaryOpLt, "<=": tree.BinaryOpLte, ">": tree.BinaryOpGt, ">=": tree.BinaryOpGte,
		"is": tree.BinaryOpIs, "as": tree.BinaryOpAs, "in": tree.BinaryOpIn, "instanceof": tree.BinaryOpInstanceOf}},
	{map[string]tree.BinaryOp{"<<": tree.BinaryOpShl, ">>": tree.BinaryOpShr, ">>>": tree.BinaryOpShrUnsigned}},
	{map[string]tree.BinaryOp{"+": tree.BinaryOpAdd, "-": tree.BinaryOpSub}},
	{map[string]tree.BinaryOp{"*": tree.BinaryOpMul, "/": tree.BinaryOpDiv, "%": tree.BinaryOpRem}},
}

func (p *parser) parseExpression() (tree.Expr, error) {
	return p.parseBinary(0)
}

func (p *parser) parseBinary(level int) (tree.Expr, error) {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}
	start := p.tok.start
	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		if p.tok.kind != tokenPunct && p.tok.kind != tokenIdentifier {
			return left, nil
		}
		op, ok := binaryLevels[level].ops[p.tok.value]
		if !ok {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		var right tree.Expr
		if op == tree.BinaryOpIs || op == tree.BinaryOpAs {
			right, err = p.parseTypeExpression()
		} else {
			right, err = p.parseBinary(level + 1)
		}
		if err != nil {
			return nil, err
		}
		expr := &tree.BinaryExpr{Op: op, Left: left, Right: right}
		expr.Location = p.loc(start)
		left = expr
	}
}

var prefixOps = map[string]tree.UnaryOp{
	"+":      tree.UnaryOpPositive,
	"-":      tree.UnaryOpNegative,
	"~":      tree.UnaryOpBitwiseNot,
	"!":      tree.UnaryOpLogicalNot,
	"++":     tree.UnaryOpPreIncrement,
	"--":     tree.UnaryOpPreDecrement,
	"delete": tree.UnaryOpDelete,
	"void":   tree.UnaryOpVoid,
	"typeof": tree.UnaryOpTypeof,
	"await":  tree.UnaryOpAwait,
	"yield":  tree.UnaryOpYield,
}

func (p *parser) parseUnary() (tree.Expr, error) {
	start := p.tok.start
	if p.tok.kind == tokenPunct || p.tok.kind == tokenIdentifier {
		if op, ok := prefixOps[p.tok.value]; ok {
			if err := p.advance(); err != nil {
				return nil, err
			}
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			expr := &tree.UnaryExpr{Op: op, Operand: operand}
			expr.Location = p.loc(start)
			return expr, nil
		}
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (tree.Expr, error) {
	start := p.tok.start
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	expr, err = p.parseSubexpressions(start, expr, true)
	if err != nil {
		return nil, err
	}
	for {
		var op tree.UnaryOp
		switch {
		case p.is("++"):
			op = tree.UnaryOpPostIncrement
		case p.is("--"):
			op = tree.UnaryOpPostDecrement
		case p.is("!"):
			op = tree.UnaryOpNonNull
		default:
			return expr, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		unary := &tree.UnaryExpr{Op: op, Operand: expr}
		unary.Location = p.loc(start)
		expr = unary
	}
}

func (p *parser) parseSubexpressions(start int, base tree.Expr, allowCall bool) (tree.Expr, error) {
	for {
		switch {
		case p.is("."):
			if err := p.advance(); err != nil {
				return nil, err
			}
			if ok, err := p.consume("("); err != nil {
				return nil, err
			} else if ok {
				test, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				if err := p.expect(")"); err != nil {
					return nil, err
				}
				expr := &tree.FilterExpr{Base: base, Test: test}
				expr.Location = p.loc(start)
				base = expr
				continue
			}
			id, err := p.parseQualifiedIdentifier()
			if err != nil {
				return nil, err
			}
			expr := &tree.MemberExpr{Base: base, Identifier: id}
			expr.Location = p.loc(start)
			base = expr
		case p.is(".."):
			if err := p.advance(); err != nil {
				return nil, err
			}
			id, err := p.parseQualifiedIdentifier()
			if err != nil {
				return nil, err
			}
			expr := &tree.DescendantsExpr{Base: base, Identifier: id}
			expr.Location = p.loc(start)
			base = expr
		case p.is(".<"):
			if err := p.advance(); err != nil {
				return nil, err
			}
			var args []tree.Expr
			for {
				arg, err := p.parseTypeExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if ok, err := p.consume(","); err != nil {
					return nil, err
				} else if !ok {
					break
				}
			}
			if err := p.expectCloseAngle(); err != nil {
				return nil, err
			}
			expr := &tree.ApplyTypesExpr{Base: base, Arguments: args}
			expr.Location = p.loc(start)
			base = expr
		case p.is("["):
			if err := p.advance(); err != nil {
				return nil, err
			}
			key, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			expr := &tree.ComputedMemberExpr{Base: base, Key: key}
			expr.Location = p.loc(start)
			base = expr
		case allowCall && p.is("("):
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr := &tree.CallExpr{Base: base, Arguments: args}
			expr.Location = p.loc(start)
			base = expr
		default:
			return base, nil
		}
	}
}

func (p *parser) parseArguments() ([]tree.Expr, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	args := []tree.Expr{}
	for !p.is(")") {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if ok, err := p.consume(","); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}
	return args, p.expect(")")
}

func (p *parser) parseQualifiedIdentifier() (*tree.QualifiedIdentifier, error) {
	start := p.tok.start
	id := &tree.QualifiedIdentifier{}
	if ok, err := p.consume("@"); err != nil {
		return nil, err
	} else if ok {
		id.Attribute = true
	}
	if p.is("[") && id.Attribute {
		if err := p.parseBrackets(id); err != nil {
			return nil, err
		}
		id.Location = p.loc(start)
		return id, nil
	}
	if p.tok.kind != tokenIdentifier && !p.is("*") {
		return nil, p.errorf("expected identifier, found %v", p.tok)
	}
	name := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.is("::") {
		qual := &tree.QualifiedIdentifier{Name: name.value}
		qual.Location = p.file.Location(name.start, name.end)
		qual.NameLoc = qual.Location
		id.Qualifier = qual
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.is("[") {
			if err := p.parseBrackets(id); err != nil {
				return nil, err
			}
			id.Location = p.loc(start)
			return id, nil
		}
		if p.tok.kind != tokenIdentifier && !p.is("*") {
			return nil, p.errorf("expected identifier, found %v", p.tok)
		}
		name = p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	id.Name = name.value
	id.NameLoc = p.file.Location(name.start, name.end)
	id.Location = p.loc(start)
	return id, nil
}

func (p *parser) parseBrackets(id *tree.QualifiedIdentifier) error {
	if err := p.expect("["); err != nil {
		return err
	}
	key, err := p.parseExpression()
	if err != nil {
		return err
	}
	id.Brackets = key
	return p.expect("]")
}

func (p *parser) parsePrimary() (tree.Expr, error) {
	start := p.tok.start
	tok := p.tok
	switch tok.kind {
	case tokenNumber:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr := &tree.NumericLiteral{Value: tok.value}
		expr.Location = p.loc(start)
		return expr, nil
	case tokenString:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr := &tree.StringLiteral{Value: tok.value}
		expr.Location = p.loc(start)
		return expr, nil
	case tokenIdentifier:
		return p.parseIdentifierPrimary()
	case tokenPunct:
		switch tok.value {
		case "(":
			if err := p.advance(); err != nil {
				return nil, err
			}
			inner, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			expr := &tree.ParenExpr{Expr: inner}
			expr.Location = p.loc(start)
			return expr, nil
		case "[":
			if err := p.advance(); err != nil {
				return nil, err
			}
			expr := &tree.ArrayLiteral{}
			for !p.is("]") {
				elem, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				expr.Elements = append(expr.Elements, elem)
				if ok, err := p.consume(","); err != nil {
					return nil, err
				} else if !ok {
					break
				}
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			expr.Location = p.loc(start)
			return expr, nil
		case "@", "*":
			return p.parseQualifiedIdentifier()
		}
	}
	return nil, p.errorf("unexpected %v", tok)
}

func (p *parser) parseIdentifierPrimary() (tree.Expr, error) {
	start := p.tok.start
	// keyword literals are a single token
	single := func() (source.Location, error) {
		if err := p.advance(); err != nil {
			return source.Location{}, err
		}
		return p.loc(start), nil
	}
	switch p.tok.value {
	case "null":
		loc, err := single()
		expr := &tree.NullLiteral{}
		expr.Location = loc
		return expr, err
	case "true", "false":
		value := p.tok.value == "true"
		loc, err := single()
		expr := &tree.BooleanLiteral{Value: value}
		expr.Location = loc
		return expr, err
	case "this":
		loc, err := single()
		expr := &tree.ThisLiteral{}
		expr.Location = loc
		return expr, err
	case "super":
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr := &tree.SuperExpr{}
		if p.is("(") {
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr.Object = args
		}
		expr.Location = p.loc(start)
		return expr, nil
	case "new":
		if err := p.advance(); err != nil {
			return nil, err
		}
		baseStart := p.tok.start
		base, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		base, err = p.parseSubexpressions(baseStart, base, false)
		if err != nil {
			return nil, err
		}
		expr := &tree.NewExpr{Base: base}
		if p.is("(") {
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr.Arguments = args
		}
		expr.Location = p.loc(start)
		return expr, nil
	case "import":
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect("."); err != nil {
			return nil, err
		}
		if !p.isKeyword("meta") {
			return nil, p.errorf("expected \"meta\", found %v", p.tok)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr := &tree.ImportMetaExpr{}
		expr.Location = p.loc(start)
		return expr, nil
	case "function":
		return p.parseFunctionExpression()
	}
	return p.parseQualifiedIdentifier()
}

func (p *parser) parseFunctionExpression() (tree.Expr, error) {
	start := p.tok.start
	if err := p.advance(); err != nil {
		return nil, err
	}
	expr := &tree.FunctionExpr{Common: &tree.FunctionCommon{}}
	if p.tok.kind == tokenIdentifier {
		expr.Name = p.tok.value
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	for !p.is(")") {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		expr.Common.Params = append(expr.Common.Params, param)
		if ok, err := p.consume(","); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if ok, err := p.consume(":"); err != nil {
		return nil, err
	} else if ok {
		result, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		expr.Common.Result = result
	}
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if p.isKeyword("return") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		body, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		expr.Common.Body = body
		if _, err := p.consume(";"); err != nil {
			return nil, err
		}
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	expr.Location = p.loc(start)
	return expr, nil
}

func (p *parser) parseParam() (*tree.Param, error) {
	start := p.tok.start
	param := &tree.Param{Kind: tree.ParamRequired}
	if ok, err := p.consume("..."); err != nil {
		return nil, err
	} else if ok {
		param.Kind = tree.ParamRest
	}
	if p.tok.kind != tokenIdentifier {
		return nil, p.errorf("expected parameter name, found %v", p.tok)
	}
	param.Name = p.tok.value
	if err := p.advance(); err != nil {
		return nil, err
	}
	if ok, err := p.consume(":"); err != nil {
		return nil, err
	} else if ok {
		t, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		param.Type = t
	}
	if param.Kind != tree.ParamRest {
		if ok, err := p.consume("="); err != nil {
			return nil, err
		} else if ok {
			def, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			param.Kind = tree.ParamOptional
			param.Default = def
		}
	}
	param.Location = p.loc(start)
	return param, nil
}
