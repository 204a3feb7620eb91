package parser

import (
	"github.com/nicvazquezdev/hispano-lang/internal/ast"
	"github.com/nicvazquezdev/hispano-lang/internal/herrors"
	"github.com/nicvazquezdev/hispano-lang/internal/token"
)

// Precedence levels, lowest to highest, mirroring the ladder in
// Assignment is handled as a special case at the top of
// parseExpression rather than as a generic infix level, since it needs
// to validate its left-hand side is an lvalue.
const (
	precLowest = iota
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
)

func (p *Parser) parseExpression(minPrec int) (ast.Expression, *herrors.HispanoError) {
	if minPrec == precLowest {
		return p.parseAssignment()
	}
	return p.parseBinaryChain(minPrec)
}

// parseAssignment implements the right-associative `assignment` rule:
// compound-lvalue '=' | '+=' | ... Anything of lower syntactic weight
// falls through to the logical-or chain.
func (p *Parser) parseAssignment() (ast.Expression, *herrors.HispanoError) {
	left, err := p.parseBinaryChain(precOr)
	if err != nil {
		return nil, err
	}

	if op, isCompound, ok := assignOpFor(p.cur().Kind); ok {
		line := p.advance().Line
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return p.buildAssignment(line, left, op, isCompound, value)
	}

	return left, nil
}

func assignOpFor(k token.Kind) (op ast.CompoundOp, isCompound bool, ok bool) {
	switch k {
	case token.ASSIGN:
		return 0, false, true
	case token.PLUS_EQ:
		return ast.CompoundAdd, true, true
	case token.MINUS_EQ:
		return ast.CompoundSub, true, true
	case token.STAR_EQ:
		return ast.CompoundMul, true, true
	case token.SLASH_EQ:
		return ast.CompoundDiv, true, true
	case token.PERCENT_EQ:
		return ast.CompoundMod, true, true
	default:
		return 0, false, false
	}
}

// buildAssignment validates that left syntactically reduces to
// Variable, ArrayAccess, or PropertyAccess (the LValue
// rules) and constructs the appropriate Assign/CompoundAssign variant.
func (p *Parser) buildAssignment(line int, left ast.Expression, op ast.CompoundOp, isCompound bool, value ast.Expression) (ast.Expression, *herrors.HispanoError) {
	switch lhs := left.(type) {
	case *ast.Variable:
		if isCompound {
			return ast.NewCompoundAssign(line, lhs.Name, op, value), nil
		}
		return ast.NewAssign(line, lhs.Name, value), nil
	case *ast.ArrayAccess:
		if isCompound {
			return ast.NewCompoundArrayAssign(line, lhs.Array, lhs.Index, op, value), nil
		}
		return ast.NewArrayAssign(line, lhs.Array, lhs.Index, value), nil
	case *ast.PropertyAccess:
		if isCompound {
			return ast.NewCompoundPropertyAssign(line, lhs.Object, lhs.Name, op, value), nil
		}
		return ast.NewPropertyAssign(line, lhs.Object, lhs.Name, value), nil
	case *ast.ThisPropertyAccess:
		if isCompound {
			return ast.NewCompoundPropertyAssign(line, ast.NewThis(line), lhs.Name, op, value), nil
		}
		return ast.NewThisPropertyAssign(line, lhs.Name, value), nil
	default:
		return nil, p.errorf("destino de asignación inválido")
	}
}

// parseBinaryChain implements the logical-or / logical-and / equality /
// comparison / term / factor levels uniformly: parse one operand at the
// next-higher precedence, then fold in same-or-higher-precedence infix
// operators left-associatively.
func (p *Parser) parseBinaryChain(minPrec int) (ast.Expression, *herrors.HispanoError) {
	if minPrec >= precUnary {
		return p.parseUnary()
	}

	left, err := p.parseBinaryChain(minPrec + 1)
	if err != nil {
		return nil, err
	}

	for {
		prec, logicalOp, binaryOp, isLogical, isBinary := infixInfo(p.cur().Kind)
		if !isLogical && !isBinary || prec != minPrec {
			return left, nil
		}
		line := p.advance().Line
		right, err := p.parseBinaryChain(minPrec + 1)
		if err != nil {
			return nil, err
		}
		if isLogical {
			left = ast.NewLogical(line, logicalOp, left, right)
		} else {
			left = ast.NewBinary(line, binaryOp, left, right)
		}
	}
}

func infixInfo(k token.Kind) (prec int, logicalOp ast.LogicalOp, binaryOp ast.BinaryOp, isLogical, isBinary bool) {
	switch k {
	case token.O:
		return precOr, ast.LogicalOr, 0, true, false
	case token.Y:
		return precAnd, ast.LogicalAnd, 0, true, false
	case token.EQ:
		return precEquality, 0, ast.OpEq, false, true
	case token.NOT_EQ:
		return precEquality, 0, ast.OpNotEq, false, true
	case token.LT:
		return precComparison, 0, ast.OpLt, false, true
	case token.LT_EQ:
		return precComparison, 0, ast.OpLtEq, false, true
	case token.GT:
		return precComparison, 0, ast.OpGt, false, true
	case token.GT_EQ:
		return precComparison, 0, ast.OpGtEq, false, true
	case token.PLUS:
		return precTerm, 0, ast.OpAdd, false, true
	case token.MINUS:
		return precTerm, 0, ast.OpSub, false, true
	case token.STAR:
		return precFactor, 0, ast.OpMul, false, true
	case token.SLASH:
		return precFactor, 0, ast.OpDiv, false, true
	case token.PERCENT:
		return precFactor, 0, ast.OpMod, false, true
	default:
		return -1, 0, 0, false, false
	}
}

func (p *Parser) parseUnary() (ast.Expression, *herrors.HispanoError) {
	switch p.cur().Kind {
	case token.BANG:
		line := p.advance().Line
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(line, ast.UnaryNot, operand), nil
	case token.MINUS:
		line := p.advance().Line
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(line, ast.UnaryNeg, operand), nil
	case token.INCREMENT, token.DECREMENT:
		increment := p.cur().Kind == token.INCREMENT
		line := p.advance().Line
		target, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return p.buildPrefix(line, increment, target)
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) buildPrefix(line int, increment bool, target ast.Expression) (ast.Expression, *herrors.HispanoError) {
	pre := &ast.Prefix{Increment: increment}
	switch t := target.(type) {
	case *ast.Variable:
		pre.Target = ast.TargetVariable
		pre.Variable = t.Name
	case *ast.ArrayAccess:
		pre.Target = ast.TargetArrayElement
		pre.Array, pre.Index = t.Array, t.Index
	case *ast.PropertyAccess:
		pre.Target = ast.TargetProperty
		pre.Object, pre.Property = t.Object, t.Name
	case *ast.ThisPropertyAccess:
		pre.Target = ast.TargetProperty
		pre.Object, pre.Property = ast.NewThis(line), t.Name
	default:
		return nil, p.errorf("el operando de '++'/'--' debe ser una variable, un elemento de arreglo o una propiedad")
	}
	return pre, nil
}

func (p *Parser) parsePostfix() (ast.Expression, *herrors.HispanoError) {
	expr, err := p.parseCallChain()
	if err != nil {
		return nil, err
	}
	if p.curIs(token.INCREMENT, token.DECREMENT) {
		increment := p.cur().Kind == token.INCREMENT
		line := p.advance().Line
		post := &ast.Postfix{Increment: increment}
		switch t := expr.(type) {
		case *ast.Variable:
			post.Target = ast.TargetVariable
			post.Variable = t.Name
		case *ast.ArrayAccess:
			post.Target = ast.TargetArrayElement
			post.Array, post.Index = t.Array, t.Index
		case *ast.PropertyAccess:
			post.Target = ast.TargetProperty
			post.Object, post.Property = t.Object, t.Name
		case *ast.ThisPropertyAccess:
			post.Target = ast.TargetProperty
			post.Object, post.Property = ast.NewThis(line), t.Name
		default:
			return nil, p.errorf("el operando de '++'/'--' debe ser una variable, un elemento de arreglo o una propiedad")
		}
		return post, nil
	}
	return expr, nil
}

// parseCallChain implements `call → primary ( '[' expr ']' | '.' IDENT
// ('(' args? ')')? | '(' args? ')' )*`. The method-vs-property decision
// at `.name` is made purely from whether '(' immediately follows, never
// from a hard-coded method name table.
func (p *Parser) parseCallChain() (ast.Expression, *herrors.HispanoError) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.cur().Kind {
		case token.LBRACKET:
			line := p.advance().Line
			idx, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}
			expr = ast.NewArrayAccess(line, expr, idx)

		case token.DOT:
			line := p.advance().Line
			name, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			if p.curIs(token.LPAREN) {
				args, err := p.parseArgumentList()
				if err != nil {
					return nil, err
				}
				if _, isThis := expr.(*ast.This); isThis {
					expr = ast.NewThisMethodCall(line, name.Lexeme, args)
				} else {
					expr = ast.NewMethodCall(line, expr, name.Lexeme, args)
				}
			} else {
				if _, isThis := expr.(*ast.This); isThis {
					expr = ast.NewThisPropertyAccess(line, name.Lexeme)
				} else {
					expr = ast.NewPropertyAccess(line, expr, name.Lexeme)
				}
			}

		case token.LPAREN:
			line := p.cur().Line
			args, err := p.parseArgumentList()
			if err != nil {
				return nil, err
			}
			expr = ast.NewCall(line, expr, args)

		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgumentList() ([]ast.Expression, *herrors.HispanoError) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expression
	for !p.curIs(token.RPAREN) {
		arg, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expression, *herrors.HispanoError) {
	tok := p.cur()

	switch tok.Kind {
	case token.NUMBER:
		p.advance()
		return ast.NewLiteral(tok.Line, tok.Literal.(float64)), nil
	case token.STRING:
		p.advance()
		return ast.NewLiteral(tok.Line, tok.Literal.(string)), nil
	case token.VERDADERO:
		p.advance()
		return ast.NewLiteral(tok.Line, true), nil
	case token.FALSO:
		p.advance()
		return ast.NewLiteral(tok.Line, false), nil
	case token.NULO:
		p.advance()
		return ast.NewLiteral(tok.Line, nil), nil
	case token.INDEFINIDO:
		p.advance()
		return ast.NewUndefined(tok.Line), nil
	case token.TEMPLATE_STRING:
		p.advance()
		return p.buildTemplateString(tok)
	case token.ESTE:
		p.advance()
		return ast.NewThis(tok.Line), nil
	case token.SUPER:
		p.advance()
		args, err := p.parseArgumentList()
		if err != nil {
			return nil, err
		}
		return ast.NewSuperCall(tok.Line, args), nil
	case token.NUEVO:
		return p.parseNewExpression()
	case token.IDENT:
		p.advance()
		return ast.NewVariable(tok.Line, tok.Lexeme), nil
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.FUNCION:
		return p.parseAnonymousFunction()
	case token.LPAREN:
		return p.parseParenOrArrow()
	default:
		return nil, p.errorf("expresión inesperada: %q", tok.Lexeme)
	}
}

func (p *Parser) buildTemplateString(tok token.Token) (ast.Expression, *herrors.HispanoError) {
	payload := tok.Literal.(*token.TemplatePayload)
	exprs := make([]ast.Expression, len(payload.Expressions))
	for i, src := range payload.Expressions {
		expr, err := parseStandaloneExpression(src)
		if err != nil {
			return nil, err
		}
		exprs[i] = expr
	}
	return ast.NewTemplateString(tok.Line, payload.Parts, exprs), nil
}

func (p *Parser) parseNewExpression() (ast.Expression, *herrors.HispanoError) {
	line := p.advance().Line // consume 'nuevo'
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	args, err := p.parseArgumentList()
	if err != nil {
		return nil, err
	}
	return ast.NewNew(line, name.Lexeme, args), nil
}

func (p *Parser) parseArrayLiteral() (ast.Expression, *herrors.HispanoError) {
	line := p.advance().Line // consume '['
	var elements []ast.Expression
	for !p.curIs(token.RBRACKET) {
		el, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return ast.NewArrayLiteral(line, elements), nil
}

func (p *Parser) parseObjectLiteral() (ast.Expression, *herrors.HispanoError) {
	line := p.advance().Line // consume '{'
	var keys []string
	var values []ast.Expression
	for !p.curIs(token.RBRACE) {
		var key string
		switch p.cur().Kind {
		case token.IDENT:
			key = p.advance().Lexeme
		case token.STRING:
			key = p.advance().Literal.(string)
		default:
			return nil, p.errorf("se esperaba una clave de objeto")
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		values = append(values, value)
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return ast.NewObjectLiteral(line, keys, values), nil
}

func (p *Parser) parseAnonymousFunction() (ast.Expression, *herrors.HispanoError) {
	line := p.advance().Line // consume 'funcion'
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewAnonymousFunction(line, params, body), nil
}

// parseParenOrArrow disambiguates a parenthesized grouping expression
// from an arrow-function parameter list by tentatively scanning ahead
// for `( IDENT (',' IDENT)* ) =>` and backtracking if that shape isn't
// found.
func (p *Parser) parseParenOrArrow() (ast.Expression, *herrors.HispanoError) {
	start := p.pos
	if params, ok := p.tryScanArrowParams(); ok {
		line := p.tokens[start].Line
		if p.curIs(token.LBRACE) {
			body, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			return ast.NewArrowBlockFunction(line, params, body), nil
		}
		body, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return ast.NewArrowExpressionFunction(line, params, body), nil
	}

	p.pos = start
	p.advance() // consume '('
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

// tryScanArrowParams attempts to consume `( IDENT (',' IDENT)* ) =>`
// from the current position. On success it leaves the parser positioned
// just after `=>` and returns the parameter names; on failure the
// parser position is unspecified and the caller must reset it.
func (p *Parser) tryScanArrowParams() ([]string, bool) {
	if !p.curIs(token.LPAREN) {
		return nil, false
	}
	p.advance()

	var params []string
	for !p.curIs(token.RPAREN) {
		if !p.curIs(token.IDENT) {
			return nil, false
		}
		params = append(params, p.advance().Lexeme)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.curIs(token.RPAREN) {
		return nil, false
	}
	p.advance() // consume ')'

	if !p.isArrow() {
		return nil, false
	}
	p.advanceArrow()
	return params, true
}

// isArrow/advanceArrow treat `=` immediately followed by `>` as the
// two-character `=>` arrow token; the lexer does not emit a dedicated
// ARROW kind since HispanoLang's grammar only needs it in this one spot.
func (p *Parser) isArrow() bool {
	return p.curIs(token.ASSIGN) && p.peek().Kind == token.GT
}

func (p *Parser) advanceArrow() {
	p.advance() // '='
	p.advance() // '>'
}
