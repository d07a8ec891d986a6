package asm

import (
	"strings"
	"unicode"
)

// Lex splits source text into tokens. Whitespace and blank lines are
// skipped; the grammar of each line is left to the parser.
func Lex(source string) (tokens []Token, err error) {
	for n, line := range strings.Split(source, "\n") {
		var line_tokens []Token
		line_tokens, err = lexLine([]rune(line), n+1)
		if err != nil {
			return
		}
		tokens = append(tokens, line_tokens...)
	}

	return
}

// lexLine tokenizes a single line.
func lexLine(runes []rune, lineno int) (tokens []Token, err error) {
	col := 0
	for col < len(runes) {
		r := runes[col]
		pos := Pos{Line: lineno, Col: col + 1}

		switch {
		case unicode.IsSpace(r):
			col++
		case r == '<' && col+1 < len(runes) && runes[col+1] == '-':
			tokens = append(tokens, Token{Kind: TOKEN_ASSIGN, Text: "<-", Pos: pos})
			col += 2
		case isWordRune(r):
			start := col
			for col < len(runes) && isWordRune(runes[col]) {
				col++
			}
			word := string(runes[start:col])
			kw, is_kw := keywordMap[word]

			if col < len(runes) && runes[col] == ':' {
				col++
				if is_kw {
					err = &ErrLex{Pos: pos, Text: word + ":"}
					return
				}
				tokens = append(tokens, Token{Kind: TOKEN_LABEL, Text: word, Pos: pos})
				continue
			}

			if is_kw {
				tokens = append(tokens, Token{Kind: TOKEN_KEYWORD, Keyword: kw, Text: word, Pos: pos})
			} else {
				tokens = append(tokens, Token{Kind: TOKEN_IDENT, Text: word, Pos: pos})
			}
		default:
			// Report the whole offending word.
			end := col
			for end < len(runes) && !unicode.IsSpace(runes[end]) {
				end++
			}
			err = &ErrLex{Pos: pos, Text: string(runes[col:end])}
			return
		}
	}

	return
}
