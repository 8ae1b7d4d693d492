package parser

import (
	"lumen/internal/diagnostics"
	"lumen/internal/frontend/ast"
	"lumen/internal/source"
	"lumen/internal/tokens"
)

// Parser builds an AST from a token stream. Expressions use Pratt parsing;
// statements use recursive descent. Definitions have no leading keyword, so
// the parser first reads an expression and treats it as a declared type when
// an identifier follows (`int x`, `void main() {}`, `A? a = null`).
type Parser struct {
	tokens  []tokens.Token
	current int
	file    string
	log     *diagnostics.Log
}

// Parse builds the module AST for one file.
func Parse(toks []tokens.Token, file string, log *diagnostics.Log) *ast.Module {
	p := &Parser{tokens: toks, file: file, log: log}
	return p.parseModule()
}

// Operator precedence, loosest to tightest. Postfix operators bind above
// everything here.
const (
	precNone = iota
	precAssign
	precNullDefault
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precCompare
	precShift
	precAdd
	precMul
	precCast
	precUnary
)

var infixPrec = map[tokens.TOKEN]int{
	tokens.ASSIGN_TOKEN:        precAssign,
	tokens.NULL_DEFAULT_TOKEN:  precNullDefault,
	tokens.OR_TOKEN:            precOr,
	tokens.AND_TOKEN:           precAnd,
	tokens.BIT_OR_TOKEN:        precBitOr,
	tokens.BIT_XOR_TOKEN:       precBitXor,
	tokens.BIT_AND_TOKEN:       precBitAnd,
	tokens.EQUAL_TOKEN:         precEquality,
	tokens.NOT_EQUAL_TOKEN:     precEquality,
	tokens.LESS_TOKEN:          precCompare,
	tokens.LESS_EQUAL_TOKEN:    precCompare,
	tokens.GREATER_TOKEN:       precCompare,
	tokens.GREATER_EQUAL_TOKEN: precCompare,
	tokens.SHIFT_LEFT_TOKEN:    precShift,
	tokens.SHIFT_RIGHT_TOKEN:   precShift,
	tokens.PLUS_TOKEN:          precAdd,
	tokens.MINUS_TOKEN:         precAdd,
	tokens.MUL_TOKEN:           precMul,
	tokens.DIV_TOKEN:           precMul,
	tokens.AS_TOKEN:            precCast,
}

func (p *Parser) peek() *tokens.Token {
	return &p.tokens[p.current]
}

func (p *Parser) next() *tokens.Token {
	tok := &p.tokens[p.current]
	if tok.Kind != tokens.EOF_TOKEN {
		p.current++
	}
	return tok
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == tokens.EOF_TOKEN
}

// prev returns the most recently consumed token.
func (p *Parser) prev() *tokens.Token {
	if p.current == 0 {
		return &p.tokens[0]
	}
	return &p.tokens[p.current-1]
}

// isTypeShape reports whether an expression can syntactically be a declared
// type: a built-in type name, an identifier, a dotted path, a parameterised
// type, or a nullable form of one of those.
func isTypeShape(e ast.Expression) bool {
	switch v := e.(type) {
	case *ast.TypeExpr, *ast.IdentExpr, *ast.ParamExpr:
		return true
	case *ast.MemberExpr:
		return !v.IsSafe && isTypeShape(v.Value)
	case *ast.NullableExpr:
		return isTypeShape(v.Value)
	default:
		return false
	}
}

func (p *Parser) match(kind tokens.TOKEN) bool {
	if p.peek().Kind == kind {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(kind tokens.TOKEN) *tokens.Token {
	if p.peek().Kind == kind {
		return p.next()
	}
	p.log.AddError(p.peek().Location, diagnostics.ExpectedToken(string(kind), p.peek().String()))
	return p.peek()
}

func (p *Parser) parseModule() *ast.Module {
	var loc source.Location
	if len(p.tokens) > 0 {
		loc = p.tokens[0].Location
	}
	body := &ast.Block{Location: loc}
	for !p.atEnd() {
		before := p.current
		if stmt := p.parseStmt(); stmt != nil {
			body.Stmts = append(body.Stmts, stmt)
		}
		if p.current == before {
			// no progress; skip the offending token
			p.log.AddError(p.peek().Location, diagnostics.UnexpectedToken(p.peek().String()))
			p.next()
		}
	}
	return &ast.Module{Path: p.file, Body: body, Location: loc}
}

func (p *Parser) parseStmt() ast.Statement {
	tok := p.peek()
	switch tok.Kind {
	case tokens.EXTERNAL_TOKEN:
		p.next()
		return &ast.ExternalStmt{Body: p.parseBlock(), Location: tok.Location}
	case tokens.STATIC_TOKEN:
		p.next()
		return p.parseStaticStmt(tok.Location)
	case tokens.CLASS_TOKEN:
		return p.parseClassDef(false)
	case tokens.VAR_TOKEN:
		return p.parseInferredVarDef(false)
	case tokens.IF_TOKEN:
		return p.parseIfStmt()
	case tokens.WHILE_TOKEN:
		p.next()
		test := p.parseExpr(precAssign)
		return &ast.WhileStmt{Test: test, Body: p.parseBlock(), Location: tok.Location}
	case tokens.RETURN_TOKEN:
		p.next()
		stmt := &ast.ReturnStmt{Location: tok.Location}
		if p.returnHasValue(tok) {
			stmt.Value = p.parseExpr(precAssign)
		}
		return stmt
	default:
		return p.parseExprOrDef(false)
	}
}

// parseStaticStmt parses the definition following a static keyword.
func (p *Parser) parseStaticStmt(loc source.Location) ast.Statement {
	switch p.peek().Kind {
	case tokens.CLASS_TOKEN:
		return p.parseClassDef(true)
	case tokens.VAR_TOKEN:
		return p.parseInferredVarDef(true)
	default:
		return p.parseExprOrDef(true)
	}
}

func (p *Parser) parseClassDef(isStatic bool) ast.Statement {
	tok := p.next() // class keyword
	name := p.expect(tokens.IDENTIFIER_TOKEN)
	return &ast.ClassDef{
		Name:     name.Value,
		Body:     p.parseBlock(),
		IsStatic: isStatic,
		Location: tok.Location,
	}
}

func (p *Parser) parseInferredVarDef(isStatic bool) ast.Statement {
	tok := p.next() // var keyword
	name := p.expect(tokens.IDENTIFIER_TOKEN)
	p.expect(tokens.ASSIGN_TOKEN)
	return &ast.VarDef{
		Name:     name.Value,
		Value:    p.parseExpr(precAssign),
		IsStatic: isStatic,
		Location: tok.Location,
	}
}

func (p *Parser) parseIfStmt() ast.Statement {
	tok := p.next() // if keyword
	stmt := &ast.IfStmt{Test: p.parseExpr(precAssign), Location: tok.Location}
	stmt.Then = p.parseBlock()
	if p.match(tokens.ELSE_TOKEN) {
		if p.peek().Kind == tokens.IF_TOKEN {
			stmt.Else = p.parseIfStmt()
		} else {
			stmt.Else = p.parseBlock()
		}
	}
	return stmt
}

// parseExprOrDef reads an expression, then decides: an identifier right after
// it means the expression was a declared type and a variable or function
// definition follows; anything else makes it an expression statement. Only
// expressions shaped like types qualify, and the name must sit on the same
// line, so `print(1)` followed by another call stays two statements.
func (p *Parser) parseExprOrDef(isStatic bool) ast.Statement {
	loc := p.peek().Location
	expr := p.parseExpr(precAssign)
	if p.peek().Kind != tokens.IDENTIFIER_TOKEN || !isTypeShape(expr) ||
		p.peek().Location.Line != p.prev().Location.Line {
		return &ast.ExprStmt{Value: expr, Location: loc}
	}
	name := p.next()
	if p.peek().Kind == tokens.OPEN_PAREN {
		return p.parseFuncDef(expr, name.Value, isStatic, loc)
	}
	def := &ast.VarDef{
		DeclaredType: expr,
		Name:         name.Value,
		IsStatic:     isStatic,
		Location:     loc,
	}
	if p.match(tokens.ASSIGN_TOKEN) {
		def.Value = p.parseExpr(precAssign)
	}
	return def
}

func (p *Parser) parseFuncDef(returnType ast.Expression, name string, isStatic bool, loc source.Location) ast.Statement {
	def := &ast.FuncDef{
		ReturnType: returnType,
		Name:       name,
		IsStatic:   isStatic,
		Location:   loc,
	}
	p.expect(tokens.OPEN_PAREN)
	for p.peek().Kind != tokens.CLOSE_PAREN && !p.atEnd() {
		argLoc := p.peek().Location
		argType := p.parseExpr(precAssign)
		argName := p.expect(tokens.IDENTIFIER_TOKEN)
		arg := &ast.VarDef{
			DeclaredType: argType,
			Name:         argName.Value,
			IsArg:        true,
			Location:     argLoc,
		}
		if p.match(tokens.ASSIGN_TOKEN) {
			// default values are rejected by the structural check; parse
			// them so the error lands there with a good location
			arg.Value = p.parseExpr(precAssign)
		}
		def.Args = append(def.Args, arg)
		if !p.match(tokens.COMMA_TOKEN) {
			break
		}
	}
	p.expect(tokens.CLOSE_PAREN)
	if p.peek().Kind == tokens.OPEN_CURLY {
		def.Body = p.parseBlock()
	}
	return def
}

func (p *Parser) parseBlock() *ast.Block {
	open := p.expect(tokens.OPEN_CURLY)
	block := &ast.Block{Location: open.Location}
	for p.peek().Kind != tokens.CLOSE_CURLY && !p.atEnd() {
		before := p.current
		if stmt := p.parseStmt(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if p.current == before {
			p.log.AddError(p.peek().Location, diagnostics.UnexpectedToken(p.peek().String()))
			p.next()
		}
	}
	p.expect(tokens.CLOSE_CURLY)
	return block
}

// returnHasValue decides whether a return statement has a value: the next
// token must sit on the same line and be able to start an expression. The
// language has no statement terminators, so the line break is the signal.
func (p *Parser) returnHasValue(ret *tokens.Token) bool {
	tok := p.peek()
	if tok.Location.Line != ret.Location.Line {
		return false
	}
	switch tok.Kind {
	case tokens.IDENTIFIER_TOKEN, tokens.INT_TOKEN, tokens.FLOAT_TOKEN,
		tokens.STRING_TOKEN, tokens.CHAR_TOKEN, tokens.TRUE_TOKEN,
		tokens.FALSE_TOKEN, tokens.NULL_TOKEN, tokens.THIS_TOKEN,
		tokens.OPEN_PAREN, tokens.OPEN_BRACKET, tokens.MINUS_TOKEN,
		tokens.NOT_TOKEN:
		return true
	}
	return false
}
