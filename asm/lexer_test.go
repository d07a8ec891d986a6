package asm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLex(t *testing.T) {
	assert := assert.New(t)

	tokens, err := Lex("N0: clr RY\n\n\t  RX<-RY\r\n   RX jmp0 N0")
	assert.NoError(err)

	expected := []Token{
		{Kind: TOKEN_LABEL, Text: "N0", Pos: Pos{1, 1}},
		{Kind: TOKEN_KEYWORD, Keyword: KW_CLR, Text: "clr", Pos: Pos{1, 5}},
		{Kind: TOKEN_IDENT, Text: "RY", Pos: Pos{1, 9}},
		{Kind: TOKEN_IDENT, Text: "RX", Pos: Pos{3, 4}},
		{Kind: TOKEN_ASSIGN, Text: "<-", Pos: Pos{3, 6}},
		{Kind: TOKEN_IDENT, Text: "RY", Pos: Pos{3, 8}},
		{Kind: TOKEN_IDENT, Text: "RX", Pos: Pos{4, 4}},
		{Kind: TOKEN_KEYWORD, Keyword: KW_JMP0, Text: "jmp0", Pos: Pos{4, 7}},
		{Kind: TOKEN_IDENT, Text: "N0", Pos: Pos{4, 12}},
	}

	assert.Equal(expected, tokens)
}

func TestLexKeywords(t *testing.T) {
	assert := assert.New(t)

	for word, kw := range keywordMap {
		tokens, err := Lex(word)
		assert.NoError(err, word)
		if assert.Len(tokens, 1, word) {
			assert.Equal(TOKEN_KEYWORD, tokens[0].Kind, word)
			assert.Equal(kw, tokens[0].Keyword, word)
			assert.Equal(word, tokens[0].Keyword.String())
		}
	}

	// Keywords are case sensitive.
	tokens, err := Lex("CLR Jmp")
	assert.NoError(err)
	assert.Equal(TOKEN_IDENT, tokens[0].Kind)
	assert.Equal(TOKEN_IDENT, tokens[1].Kind)
}

func TestLexEmpty(t *testing.T) {
	assert := assert.New(t)

	tokens, err := Lex("\n   \n\t\n")
	assert.NoError(err)
	assert.Empty(tokens)
}

func TestLexError(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		pos    Pos
		text   string
	}){
		{"clr R$", Pos{1, 6}, "$"},
		{"N0:\n  a < b", Pos{2, 5}, "<"},
		{"jmp:", Pos{1, 1}, "jmp:"},
		{"  continue: clr RX", Pos{1, 3}, "continue:"},
		{"N0: add0 RÜ", Pos{1, 11}, "Ü"},
		{"N0: RX -> RY", Pos{1, 8}, "->"},
	}

	for _, entry := range table {
		_, err := Lex(entry.source)
		var lex_err *ErrLex
		if !assert.True(errors.As(err, &lex_err), entry.source) {
			continue
		}
		assert.Equal(entry.pos, lex_err.Position(), entry.source)
		assert.Equal(entry.text, lex_err.Text, entry.source)
		assert.Contains(lex_err.Error(), entry.text)
	}
}

func TestTokenEnd(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Pos{1, 4}, Token{Kind: TOKEN_LABEL, Text: "N0", Pos: Pos{1, 1}}.End())
	assert.Equal(Pos{2, 7}, Token{Kind: TOKEN_IDENT, Text: "RX", Pos: Pos{2, 5}}.End())
	assert.Equal("label 'N0:'", Token{Kind: TOKEN_LABEL, Text: "N0"}.String())
	assert.Equal("identifier 'RX'", Token{Kind: TOKEN_IDENT, Text: "RX"}.String())
	assert.Equal("'<-'", Token{Kind: TOKEN_ASSIGN, Text: "<-"}.String())
}

func TestIsIdentifier(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsIdentifier("RX"))
	assert.True(IsIdentifier("r_0"))
	assert.True(IsIdentifier("0"))
	assert.False(IsIdentifier(""))
	assert.False(IsIdentifier("del"))
	assert.False(IsIdentifier("R X"))
	assert.False(IsIdentifier("R:"))
}
