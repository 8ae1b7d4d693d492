package parser

import (
	"strconv"

	"lumen/internal/diagnostics"
	"lumen/internal/frontend/ast"
	"lumen/internal/tokens"
)

// parseExpr parses an expression whose operators bind at least as tightly as
// minPrec. Assignment is right-associative; everything else associates left.
func (p *Parser) parseExpr(minPrec int) ast.Expression {
	left := p.parseUnary()
	for {
		tok := p.peek()
		prec, ok := infixPrec[tok.Kind]
		if !ok || prec < minPrec {
			return left
		}
		p.next()
		if tok.Kind == tokens.AS_TOKEN {
			left = &ast.CastExpr{Value: left, Target: p.parseUnary(), Location: tok.Location}
			continue
		}
		nextMin := prec + 1
		if prec == precAssign {
			nextMin = prec
		}
		right := p.parseExpr(nextMin)
		left = &ast.BinaryExpr{Op: tok.Kind, Left: left, Right: right, Location: tok.Location}
	}
}

func (p *Parser) parseUnary() ast.Expression {
	tok := p.peek()
	if tok.Kind == tokens.MINUS_TOKEN || tok.Kind == tokens.NOT_TOKEN {
		p.next()
		return &ast.UnaryExpr{Op: tok.Kind, Value: p.parseUnary(), Location: tok.Location}
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) parsePostfix(expr ast.Expression) ast.Expression {
	for {
		tok := p.peek()
		switch tok.Kind {
		case tokens.OPEN_PAREN:
			p.next()
			call := &ast.CallExpr{Fn: expr, Location: tok.Location}
			for p.peek().Kind != tokens.CLOSE_PAREN && !p.atEnd() {
				call.Args = append(call.Args, p.parseExpr(precAssign))
				if !p.match(tokens.COMMA_TOKEN) {
					break
				}
			}
			p.expect(tokens.CLOSE_PAREN)
			expr = call
		case tokens.OPEN_BRACKET:
			p.next()
			index := p.parseExpr(precAssign)
			p.expect(tokens.CLOSE_BRACKET)
			expr = &ast.IndexExpr{Value: expr, Index: index, Location: tok.Location}
		case tokens.DOT_TOKEN, tokens.SAFE_DOT_TOKEN:
			p.next()
			name := p.expect(tokens.IDENTIFIER_TOKEN)
			expr = &ast.MemberExpr{
				Value:    expr,
				Name:     name.Value,
				IsSafe:   tok.Kind == tokens.SAFE_DOT_TOKEN,
				Location: tok.Location,
			}
		case tokens.QUESTION_TOKEN:
			p.next()
			expr = &ast.NullableExpr{Value: expr, Location: tok.Location}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()
	switch tok.Kind {
	case tokens.INT_TOKEN:
		p.next()
		value, err := strconv.Atoi(tok.Value)
		if err != nil {
			p.log.AddError(tok.Location, diagnostics.UnexpectedToken(tok.String()))
		}
		return &ast.IntExpr{Value: value, Location: tok.Location}
	case tokens.FLOAT_TOKEN:
		p.next()
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			p.log.AddError(tok.Location, diagnostics.UnexpectedToken(tok.String()))
		}
		return &ast.FloatExpr{Value: value, Location: tok.Location}
	case tokens.STRING_TOKEN:
		p.next()
		return &ast.StringExpr{Value: tok.Value, Location: tok.Location}
	case tokens.CHAR_TOKEN:
		p.next()
		var value rune
		for _, r := range tok.Value {
			value = r
			break
		}
		return &ast.CharExpr{Value: value, Location: tok.Location}
	case tokens.TRUE_TOKEN, tokens.FALSE_TOKEN:
		p.next()
		return &ast.BoolExpr{Value: tok.Kind == tokens.TRUE_TOKEN, Location: tok.Location}
	case tokens.NULL_TOKEN:
		p.next()
		return &ast.NullExpr{Location: tok.Location}
	case tokens.THIS_TOKEN:
		p.next()
		return &ast.ThisExpr{Location: tok.Location}
	case tokens.IDENTIFIER_TOKEN:
		p.next()
		if ast.TypeExprNames[tok.Value] {
			base := &ast.TypeExpr{Name: tok.Value, Location: tok.Location}
			if (tok.Value == "list" || tok.Value == "function") && p.peek().Kind == tokens.LESS_TOKEN {
				return p.parseParamExpr(base)
			}
			return base
		}
		return &ast.IdentExpr{Name: tok.Value, Location: tok.Location}
	case tokens.OPEN_PAREN:
		p.next()
		expr := p.parseExpr(precAssign)
		p.expect(tokens.CLOSE_PAREN)
		return expr
	case tokens.OPEN_BRACKET:
		p.next()
		list := &ast.ListExpr{Location: tok.Location}
		for p.peek().Kind != tokens.CLOSE_BRACKET && !p.atEnd() {
			list.Items = append(list.Items, p.parseExpr(precAssign))
			if !p.match(tokens.COMMA_TOKEN) {
				break
			}
		}
		p.expect(tokens.CLOSE_BRACKET)
		return list
	default:
		p.log.AddError(tok.Location, diagnostics.UnexpectedToken(tok.String()))
		p.next()
		return &ast.NullExpr{Location: tok.Location}
	}
}

// parseParamExpr parses the type-parameter list of list<...> or
// function<...>. Type parameters bind above comparison, so a closing > is
// never taken as an operator; a >> closing two nested lists is split in
// place.
func (p *Parser) parseParamExpr(base *ast.TypeExpr) ast.Expression {
	open := p.expect(tokens.LESS_TOKEN)
	param := &ast.ParamExpr{Base: base, Location: open.Location}
	for {
		param.Params = append(param.Params, p.parseExpr(precAdd))
		if !p.match(tokens.COMMA_TOKEN) {
			break
		}
	}
	p.expectCloseAngle()
	return p.parsePostfix(param)
}

// expectCloseAngle consumes one closing angle bracket, splitting a >> token
// into two when nested parameter lists close together.
func (p *Parser) expectCloseAngle() {
	tok := p.peek()
	switch tok.Kind {
	case tokens.GREATER_TOKEN:
		p.next()
	case tokens.SHIFT_RIGHT_TOKEN:
		p.tokens[p.current].Kind = tokens.GREATER_TOKEN
		p.tokens[p.current].Value = ">"
		p.tokens[p.current].Location.Column++
	default:
		p.log.AddError(tok.Location, diagnostics.ExpectedToken(">", tok.String()))
	}
}
