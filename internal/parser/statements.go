package parser

import (
	"github.com/nicvazquezdev/hispano-lang/internal/ast"
	"github.com/nicvazquezdev/hispano-lang/internal/herrors"
	"github.com/nicvazquezdev/hispano-lang/internal/token"
)

func (p *Parser) parseStatement() (ast.Statement, *herrors.HispanoError) {
	switch p.cur().Kind {
	case token.VARIABLE:
		return p.parseVariableDecl()
	case token.CONSTANTE:
		return p.parseConstantDecl()
	case token.FUNCION:
		return p.parseFunctionDecl()
	case token.CLASE:
		return p.parseClassDecl()
	case token.MOSTRAR:
		return p.parsePrint()
	case token.LEER:
		return p.parseRead()
	case token.SI:
		return p.parseIf()
	case token.MIENTRAS:
		return p.parseWhile()
	case token.PARA:
		return p.parseForOrForEach()
	case token.HACER:
		return p.parseDoWhile()
	case token.ELEGIR:
		return p.parseSwitch()
	case token.INTENTAR:
		return p.parseTryCatch()
	case token.RETORNAR:
		return p.parseReturn()
	case token.ROMPER:
		line := p.advance().Line
		p.consumeOptionalSemicolon()
		return ast.NewBreak(line), nil
	case token.CONTINUAR:
		line := p.advance().Line
		p.consumeOptionalSemicolon()
		return ast.NewContinue(line), nil
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExpressionStatement()
	}
}

// consumeOptionalSemicolon swallows a trailing `;` if present. HispanoLang
// programs are newline-separated, not semicolon-terminated, but a
// semicolon is accepted wherever a statement ends.
func (p *Parser) consumeOptionalSemicolon() {
	if p.curIs(token.SEMICOLON) {
		p.advance()
	}
}

func (p *Parser) parseVariableDecl() (ast.Statement, *herrors.HispanoError) {
	line := p.advance().Line // consume 'variable'
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	var init ast.Expression
	if p.curIs(token.ASSIGN) {
		p.advance()
		init, err = p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
	}
	p.consumeOptionalSemicolon()
	return ast.NewVariableDecl(line, name.Lexeme, init), nil
}

func (p *Parser) parseConstantDecl() (ast.Statement, *herrors.HispanoError) {
	line := p.advance().Line // consume 'constante'
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, p.errorf("una constante debe inicializarse: %s", name.Lexeme)
	}
	init, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	p.consumeOptionalSemicolon()
	return ast.NewConstantDecl(line, name.Lexeme, init), nil
}

func (p *Parser) parseParameterList() ([]string, *herrors.HispanoError) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []string
	for !p.curIs(token.RPAREN) {
		ident, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		params = append(params, ident.Lexeme)
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseFunctionDecl() (ast.Statement, *herrors.HispanoError) {
	line := p.advance().Line // consume 'funcion'
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDecl(line, name.Lexeme, params, body), nil
}

func (p *Parser) parseClassDecl() (ast.Statement, *herrors.HispanoError) {
	line := p.advance().Line // consume 'clase'
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}

	super := ""
	if p.curIs(token.EXTIENDE) {
		p.advance()
		superTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		super = superTok.Lexeme
	}

	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	var ctor *ast.MethodDecl
	var methods []*ast.MethodDecl

	for !p.curIs(token.RBRACE, token.EOF) {
		methodLine := p.cur().Line
		var methodName string
		if p.curIs(token.CONSTRUCTOR) {
			p.advance()
			methodName = "constructor"
		} else {
			ident, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			if ident.Lexeme == "metodo" && p.curIs(token.IDENT) {
				ident = p.advance() // optional `metodo` prefix
			}
			methodName = ident.Lexeme
		}
		params, err := p.parseParameterList()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		decl := ast.NewMethodDecl(methodLine, methodName, params, body)
		if methodName == "constructor" {
			ctor = decl
		} else {
			methods = append(methods, decl)
		}
	}

	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return ast.NewClassDecl(line, name.Lexeme, super, ctor, methods), nil
}

func (p *Parser) parsePrint() (ast.Statement, *herrors.HispanoError) {
	line := p.advance().Line // consume 'mostrar'
	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	p.consumeOptionalSemicolon()
	return ast.NewPrint(line, value), nil
}

func (p *Parser) parseRead() (ast.Statement, *herrors.HispanoError) {
	line := p.advance().Line // consume 'leer'
	target, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	p.consumeOptionalSemicolon()
	return ast.NewRead(line, target.Lexeme), nil
}

func (p *Parser) parseIf() (ast.Statement, *herrors.HispanoError) {
	line := p.advance().Line // consume 'si'
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	cons, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var alt ast.Statement
	if p.curIs(token.SINO) {
		p.advance()
		if p.curIs(token.SI) {
			alt, err = p.parseIf()
		} else {
			alt, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
	}

	return ast.NewIf(line, cond, cons, alt), nil
}

func (p *Parser) parseWhile() (ast.Statement, *herrors.HispanoError) {
	line := p.advance().Line // consume 'mientras'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(line, cond, body), nil
}

func (p *Parser) parseForOrForEach() (ast.Statement, *herrors.HispanoError) {
	line := p.advance().Line // consume 'para'
	if p.curIs(token.CADA) {
		return p.parseForEachTail(line)
	}
	return p.parseForTail(line)
}

func (p *Parser) parseForEachTail(line int) (ast.Statement, *herrors.HispanoError) {
	p.advance() // consume 'cada'
	iterator, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EN); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewForEach(line, iterator.Lexeme, iterable, body), nil
}

func (p *Parser) parseForTail(line int) (ast.Statement, *herrors.HispanoError) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var init ast.Statement
	var err *herrors.HispanoError
	if !p.curIs(token.SEMICOLON) {
		init, err = p.parseSimpleStatementNoTerminator()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	var cond ast.Expression
	if !p.curIs(token.SEMICOLON) {
		cond, err = p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	var step ast.Statement
	if !p.curIs(token.RPAREN) {
		step, err = p.parseSimpleStatementNoTerminator()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.NewFor(line, init, cond, step, body), nil
}

// parseSimpleStatementNoTerminator parses a `para` header clause (init
// or step): either a variable declaration or an expression statement,
// without consuming the `;`/`)` that delimits it.
func (p *Parser) parseSimpleStatementNoTerminator() (ast.Statement, *herrors.HispanoError) {
	if p.curIs(token.VARIABLE) {
		line := p.advance().Line
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		var init ast.Expression
		if p.curIs(token.ASSIGN) {
			p.advance()
			init, err = p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
		}
		return ast.NewVariableDecl(line, name.Lexeme, init), nil
	}
	line := p.cur().Line
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(line, expr), nil
}

func (p *Parser) parseDoWhile() (ast.Statement, *herrors.HispanoError) {
	line := p.advance().Line // consume 'hacer'
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.MIENTRAS); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	p.consumeOptionalSemicolon()
	return ast.NewDoWhile(line, body, cond), nil
}

func (p *Parser) parseSwitch() (ast.Statement, *herrors.HispanoError) {
	line := p.advance().Line // consume 'elegir'
	disc, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	var cases []*ast.SwitchCase
	var def *ast.SwitchCase

	for !p.curIs(token.RBRACE, token.EOF) {
		switch p.cur().Kind {
		case token.CASO:
			p.advance()
			test, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			stmts, err := p.parseCaseStatements()
			if err != nil {
				return nil, err
			}
			cases = append(cases, &ast.SwitchCase{Test: test, Statements: stmts})
		case token.PORDEFECTO:
			p.advance()
			if _, err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			stmts, err := p.parseCaseStatements()
			if err != nil {
				return nil, err
			}
			def = &ast.SwitchCase{Statements: stmts}
		default:
			return nil, p.errorf("se esperaba 'caso' o 'pordefecto' dentro de 'elegir'")
		}
	}

	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return ast.NewSwitch(line, disc, cases, def), nil
}

// parseCaseStatements reads statements until the next `caso`,
// `pordefecto`, or the closing brace; there is no fall-through marker
// to look for.
func (p *Parser) parseCaseStatements() ([]ast.Statement, *herrors.HispanoError) {
	var stmts []ast.Statement
	for !p.curIs(token.CASO, token.PORDEFECTO, token.RBRACE, token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) parseTryCatch() (ast.Statement, *herrors.HispanoError) {
	line := p.advance().Line // consume 'intentar'
	tryBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.CAPTURAR); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	catchBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewTryCatch(line, tryBlock, name.Lexeme, catchBlock), nil
}

func (p *Parser) parseReturn() (ast.Statement, *herrors.HispanoError) {
	line := p.advance().Line // consume 'retornar'
	if p.curIs(token.SEMICOLON, token.RBRACE, token.EOF) {
		return ast.NewReturn(line, nil), nil
	}
	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	p.consumeOptionalSemicolon()
	return ast.NewReturn(line, value), nil
}

func (p *Parser) parseBlock() (*ast.Block, *herrors.HispanoError) {
	line := p.cur().Line
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for !p.curIs(token.RBRACE, token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return ast.NewBlock(line, stmts), nil
}

func (p *Parser) parseExpressionStatement() (ast.Statement, *herrors.HispanoError) {
	line := p.cur().Line
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	p.consumeOptionalSemicolon()
	return ast.NewExpressionStatement(line, expr), nil
}
