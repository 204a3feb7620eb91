package lexer

import (
	"testing"

	"github.com/nicvazquezdev/hispano-lang/internal/token"
)

func allTokens(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func TestLexerKeywords(t *testing.T) {
	keywords := []struct {
		word string
		kind token.Kind
	}{
		{"variable", token.VARIABLE},
		{"constante", token.CONSTANTE},
		{"mostrar", token.MOSTRAR},
		{"leer", token.LEER},
		{"si", token.SI},
		{"sino", token.SINO},
		{"mientras", token.MIENTRAS},
		{"para", token.PARA},
		{"cada", token.CADA},
		{"en", token.EN},
		{"hacer", token.HACER},
		{"elegir", token.ELEGIR},
		{"caso", token.CASO},
		{"pordefecto", token.PORDEFECTO},
		{"funcion", token.FUNCION},
		{"retornar", token.RETORNAR},
		{"romper", token.ROMPER},
		{"continuar", token.CONTINUAR},
		{"intentar", token.INTENTAR},
		{"capturar", token.CAPTURAR},
		{"clase", token.CLASE},
		{"constructor", token.CONSTRUCTOR},
		{"este", token.ESTE},
		{"nuevo", token.NUEVO},
		{"extiende", token.EXTIENDE},
		{"super", token.SUPER},
		{"verdadero", token.VERDADERO},
		{"falso", token.FALSO},
		{"nulo", token.NULO},
		{"indefinido", token.INDEFINIDO},
		{"o", token.O},
	}

	for _, kw := range keywords {
		t.Run(kw.word, func(t *testing.T) {
			tokens := allTokens(t, kw.word)
			if len(tokens) != 2 {
				t.Fatalf("expected 2 tokens (keyword, EOF), got %d", len(tokens))
			}
			if tokens[0].Kind != kw.kind {
				t.Fatalf("expected kind %s, got %s", kw.kind, tokens[0].Kind)
			}
		})
	}
}

func TestLexerIdentifierIsNotKeyword(t *testing.T) {
	tokens := allTokens(t, "variableImportante")
	if tokens[0].Kind != token.IDENT {
		t.Fatalf("expected IDENT, got %s", tokens[0].Kind)
	}
}

func TestLexerNumbers(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"10", 10},
		{"3.5", 3.5},
		{"0", 0},
	}
	for _, c := range cases {
		tokens := allTokens(t, c.input)
		if tokens[0].Kind != token.NUMBER {
			t.Fatalf("input %q: expected NUMBER, got %s", c.input, tokens[0].Kind)
		}
		n, ok := tokens[0].Literal.(float64)
		if !ok || n != c.want {
			t.Fatalf("input %q: expected literal %v, got %v", c.input, c.want, tokens[0].Literal)
		}
	}
}

func TestLexerStrings(t *testing.T) {
	tokens := allTokens(t, `"hola"`)
	if tokens[0].Kind != token.STRING {
		t.Fatalf("expected STRING, got %s", tokens[0].Kind)
	}
	if tokens[0].Literal.(string) != "hola" {
		t.Fatalf("expected literal 'hola', got %v", tokens[0].Literal)
	}
}

func TestLexerUnterminatedStringIsLexError(t *testing.T) {
	l := New(`"sin cerrar`)
	_, err := l.NextToken()
	if err == nil {
		t.Fatalf("expected a lex error for an unterminated string")
	}
}

func TestLexerTemplateString(t *testing.T) {
	tokens := allTokens(t, "`Hola ${nombre}, tenes ${edad} anios`")
	if tokens[0].Kind != token.TEMPLATE_STRING {
		t.Fatalf("expected TEMPLATE_STRING, got %s", tokens[0].Kind)
	}
	payload, ok := tokens[0].Literal.(*token.TemplatePayload)
	if !ok {
		t.Fatalf("expected *token.TemplatePayload literal, got %T", tokens[0].Literal)
	}
	if len(payload.Parts) != len(payload.Expressions)+1 {
		t.Fatalf("expected parts.length == expressions.length + 1, got %d parts and %d expressions",
			len(payload.Parts), len(payload.Expressions))
	}
	if len(payload.Expressions) != 2 {
		t.Fatalf("expected 2 interpolations, got %d", len(payload.Expressions))
	}
}

func TestLexerOperators(t *testing.T) {
	cases := []struct {
		input string
		kind  token.Kind
	}{
		{"==", token.EQ},
		{"!=", token.NOT_EQ},
		{"!", token.BANG},
		{"<=", token.LT_EQ},
		{">=", token.GT_EQ},
		{"<", token.LT},
		{">", token.GT},
		{"++", token.INCREMENT},
		{"--", token.DECREMENT},
		{"+=", token.PLUS_EQ},
		{"-=", token.MINUS_EQ},
		{"*=", token.STAR_EQ},
		{"/=", token.SLASH_EQ},
		{"%=", token.PERCENT_EQ},
		{"=", token.ASSIGN},
	}
	for _, c := range cases {
		tokens := allTokens(t, c.input)
		if tokens[0].Kind != c.kind {
			t.Fatalf("input %q: expected %s, got %s", c.input, c.kind, tokens[0].Kind)
		}
	}
}

// TestLexerContextualY verifies the disambiguation rule: `y`
// is the logical-AND operator only right after a value-producing token
// and when followed by whitespace, ')', '}', ';' or end of input;
// otherwise it lexes as a plain identifier.
func TestLexerContextualY(t *testing.T) {
	tokens := allTokens(t, "verdadero y falso")
	if tokens[1].Kind != token.Y {
		t.Fatalf("expected Y between two boolean literals, got %s", tokens[1].Kind)
	}

	tokens = allTokens(t, "variable y = 5")
	if tokens[1].Kind != token.IDENT {
		t.Fatalf("expected IDENT for 'y' right after 'variable', got %s", tokens[1].Kind)
	}
}

func TestLexerIllegalCharacter(t *testing.T) {
	l := New("variable a = 5 @ 3")
	var lastErr error
	for i := 0; i < 10; i++ {
		tok, err := l.NextToken()
		if err != nil {
			lastErr = err
			break
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	if lastErr == nil {
		t.Fatalf("expected a lex error for '@'")
	}
}
