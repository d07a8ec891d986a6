package asm

import (
	"fmt"
	"unicode/utf8"
)

// Pos is a 1-based line and column in the source text.
type Pos struct {
	Line int
	Col  int
}

func (pos Pos) String() string {
	return fmt.Sprintf("%d:%d", pos.Line, pos.Col)
}

// TokenKind is the lexical class of a token.
type TokenKind int

//go:generate go tool stringer -linecomment -type=TokenKind
const (
	TOKEN_LABEL   = TokenKind(0) // label
	TOKEN_IDENT   = TokenKind(1) // identifier
	TOKEN_KEYWORD = TokenKind(2) // keyword
	TOKEN_ASSIGN  = TokenKind(3) // <-
)

// Keyword is an instruction mnemonic.
type Keyword int

//go:generate go tool stringer -linecomment -type=Keyword
const (
	KW_CLR      = Keyword(0) // clr
	KW_ADD0     = Keyword(1) // add0
	KW_ADD1     = Keyword(2) // add1
	KW_DEL      = Keyword(3) // del
	KW_JMP      = Keyword(4) // jmp
	KW_JMP0     = Keyword(5) // jmp0
	KW_JMP1     = Keyword(6) // jmp1
	KW_CONTINUE = Keyword(7) // continue
)

// keywordMap maps mnemonics to keywords.
var keywordMap = map[string]Keyword{
	"clr":      KW_CLR,
	"add0":     KW_ADD0,
	"add1":     KW_ADD1,
	"del":      KW_DEL,
	"jmp":      KW_JMP,
	"jmp0":     KW_JMP0,
	"jmp1":     KW_JMP1,
	"continue": KW_CONTINUE,
}

// Token is a single lexical element of the source.
type Token struct {
	Kind    TokenKind
	Keyword Keyword // Valid for TOKEN_KEYWORD.
	Text    string  // Label name (without ':'), identifier or keyword text.
	Pos     Pos
}

// End returns the position just past the token.
func (tok Token) End() Pos {
	width := utf8.RuneCountInString(tok.Text)
	if tok.Kind == TOKEN_LABEL {
		width++
	}
	return Pos{Line: tok.Pos.Line, Col: tok.Pos.Col + width}
}

func (tok Token) String() string {
	switch tok.Kind {
	case TOKEN_LABEL:
		return f("label '%v:'", tok.Text)
	case TOKEN_ASSIGN:
		return "'<-'"
	default:
		return f("%v '%v'", tok.Kind.String(), tok.Text)
	}
}

// IsIdentifier returns true if name can be used as a register or label.
func IsIdentifier(name string) bool {
	if len(name) == 0 {
		return false
	}
	for _, r := range name {
		if !isWordRune(r) {
			return false
		}
	}
	_, is_kw := keywordMap[name]
	return !is_kw
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
	case r >= 'A' && r <= 'Z':
	case r >= '0' && r <= '9':
	case r == '_':
	default:
		return false
	}
	return true
}
