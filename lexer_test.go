package calccore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tokenKinds(t *testing.T, formula string) []TokenKind {
	t.Helper()
	toks, err := NewLexer(formula).Tokenize()
	assert.NoError(t, err)
	kinds := make([]TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestLexerSkipsLeadingEquals(t *testing.T) {
	toks, err := NewLexer("=A1+1").Tokenize()
	assert.NoError(t, err)
	assert.Equal(t, TokenCellRef, toks[0].Kind)
}

func TestLexerNumbers(t *testing.T) {
	toks, err := NewLexer("3.14").Tokenize()
	assert.NoError(t, err)
	assert.Equal(t, "3.14", toks[0].Lexeme)

	toks, err = NewLexer(".5").Tokenize()
	assert.NoError(t, err)
	assert.Equal(t, ".5", toks[0].Lexeme)
}

func TestLexerString(t *testing.T) {
	toks, err := NewLexer(`"hello"`).Tokenize()
	assert.NoError(t, err)
	assert.Equal(t, TokenString, toks[0].Kind)
	assert.Equal(t, "hello", toks[0].Lexeme)
}

func TestLexerUnterminatedString(t *testing.T) {
	_, err := NewLexer(`"hello`).Tokenize()
	assert.Error(t, err)
}

func TestLexerBoolean(t *testing.T) {
	toks, err := NewLexer("TRUE").Tokenize()
	assert.NoError(t, err)
	assert.Equal(t, TokenBoolean, toks[0].Kind)
	assert.Equal(t, "TRUE", toks[0].Lexeme)

	toks, err = NewLexer("false").Tokenize()
	assert.NoError(t, err)
	assert.Equal(t, "FALSE", toks[0].Lexeme)
}

func TestLexerCellRefVsFunction(t *testing.T) {
	kinds := tokenKinds(t, "SUM(A1)")
	assert.Equal(t, TokenFunction, kinds[0])
	assert.Equal(t, TokenLeftParen, kinds[1])
	assert.Equal(t, TokenCellRef, kinds[2])

	kinds = tokenKinds(t, "A1")
	assert.Equal(t, TokenCellRef, kinds[0])
}

func TestLexerAbsoluteRef(t *testing.T) {
	toks, err := NewLexer("$A$1").Tokenize()
	assert.NoError(t, err)
	assert.Equal(t, TokenCellRef, toks[0].Kind)
	assert.Equal(t, "$A$1", toks[0].Lexeme)
}

func TestLexerErrorLiteral(t *testing.T) {
	toks, err := NewLexer("#DIV/0!").Tokenize()
	assert.NoError(t, err)
	assert.Equal(t, TokenError, toks[0].Kind)
	assert.Equal(t, "#DIV/0!", toks[0].Lexeme)
}

func TestLexerQuotedSheetName(t *testing.T) {
	toks, err := NewLexer("'My Sheet'!A1").Tokenize()
	assert.NoError(t, err)
	assert.Equal(t, "'My Sheet'", toks[0].Lexeme)
	assert.Equal(t, TokenSheetSep, toks[1].Kind)
}

func TestLexerOperators(t *testing.T) {
	kinds := tokenKinds(t, "A1<=B1<>C1")
	assert.Equal(t, []TokenKind{TokenCellRef, TokenLe, TokenCellRef, TokenNeq, TokenCellRef, TokenEnd}, kinds)
}

func TestLexerUnexpectedCharacter(t *testing.T) {
	_, err := NewLexer("A1 @ B1").Tokenize()
	assert.Error(t, err)
}
