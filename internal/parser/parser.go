// Package parser builds a HispanoLang abstract syntax tree from a token
// stream using recursive descent with Pratt-style precedence climbing
// for expressions.
package parser

import (
	"github.com/nicvazquezdev/hispano-lang/internal/ast"
	"github.com/nicvazquezdev/hispano-lang/internal/herrors"
	"github.com/nicvazquezdev/hispano-lang/internal/lexer"
	"github.com/nicvazquezdev/hispano-lang/internal/token"
)

// Parser consumes a pre-tokenized source and produces an *ast.Program.
// The token stream is fully buffered (HispanoLang programs are small
// scripts, not compilation units) so that arrow-function lookahead and
// template-string re-parsing can freely save and restore position.
type Parser struct {
	tokens []token.Token
	pos    int

	source string // retained so parse errors can show the offending line
}

// New tokenizes source in full and returns a ready-to-use Parser. A lex
// error (unterminated string/template, unexpected character) aborts
// immediately, matching the LexError taxonomy entry.
func New(source string) (*Parser, *herrors.HispanoError) {
	tokens, err := tokenize(source)
	if err != nil {
		return nil, err
	}
	return &Parser{tokens: tokens, source: source}, nil
}

func tokenize(source string) ([]token.Token, *herrors.HispanoError) {
	lx := lexer.New(source)
	var tokens []token.Token
	for {
		tok, err := lx.NextToken()
		if err != nil {
			return nil, err.WithSource(source)
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, nil
}

func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1] // EOF
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) curIs(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.cur().Kind == k {
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind token.Kind) (token.Token, *herrors.HispanoError) {
	if p.cur().Kind != kind {
		return token.Token{}, p.errorf("se esperaba %q pero se encontró %q", kind, p.cur().Kind)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...any) *herrors.HispanoError {
	return herrors.New(herrors.ParseError, p.cur().Line, format, args...).WithSource(p.source)
}

// Parse builds the full program, collecting statements until EOF. On a
// parse error inside one statement, it synchronizes to the next
// statement-starting keyword and continues, but only the first error
// encountered is ultimately returned to the caller.
func (p *Parser) Parse() (*ast.Program, *herrors.HispanoError) {
	prog := &ast.Program{}
	var firstErr *herrors.HispanoError

	for !p.curIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			p.synchronize()
			continue
		}
		prog.Statements = append(prog.Statements, stmt)
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return prog, nil
}

// synchronize advances tokens until one that can start a new statement,
// so that a single parse error doesn't cascade into spurious ones.
func (p *Parser) synchronize() {
	for !p.curIs(token.EOF) {
		switch p.cur().Kind {
		case token.VARIABLE, token.CONSTANTE, token.MOSTRAR, token.LEER, token.SI,
			token.MIENTRAS, token.PARA, token.HACER, token.ELEGIR, token.FUNCION,
			token.RETORNAR, token.ROMPER, token.CONTINUAR, token.INTENTAR, token.CLASE:
			return
		}
		p.advance()
	}
}

// parseStandaloneExpression re-lexes and parses a raw snippet captured
// by the lexer for a template-string `${...}` interpolation.
func parseStandaloneExpression(source string) (ast.Expression, *herrors.HispanoError) {
	sub, err := New(source)
	if err != nil {
		return nil, err
	}
	return sub.parseExpression(precLowest)
}
