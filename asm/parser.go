// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"io"
	"iter"
	"log"
	"strings"
)

// Assembler parses source text into a Program.
type Assembler struct {
	Verbose bool           // If set, verbosely logs the parsed lines.
	Label   map[string]int // Map of labels to block indexes.

	blocks []Block
}

// ParseString parses source text into a Program.
func ParseString(source string) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.ParseString(source)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	return asm.ParseString(string(data))
}

// ParseString parses source text into a Program. The first error found
// is returned; there is no recovery.
func (asm *Assembler) ParseString(source string) (prog *Program, err error) {
	asm.blocks = nil
	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)

	tokens, err := Lex(source)
	if err != nil {
		return
	}

	for line := range splitLines(tokens) {
		if asm.Verbose {
			log.Printf("%v: %v\n", line[0].Pos.Line, joinTokens(line))
		}

		err = asm.parseLine(line)
		if err != nil {
			return
		}
	}

	if len(asm.blocks) == 0 {
		err = &ErrSyntax{
			Pos:      Pos{Line: 1, Col: 1},
			Expected: f("label"),
			Found:    f("end of input"),
			Err:      ErrProgramEmpty,
		}
		return
	}

	// Final linking of jump labels.
	linked := NewProgram(asm.blocks...)
	err = linked.Link()
	if err != nil {
		return
	}

	prog = linked

	return
}

// splitLines groups tokens by source line.
func splitLines(tokens []Token) iter.Seq[[]Token] {
	return func(yield func([]Token) bool) {
		for len(tokens) > 0 {
			n := 1
			for n < len(tokens) && tokens[n].Pos.Line == tokens[0].Pos.Line {
				n++
			}
			if !yield(tokens[:n]) {
				return
			}
			tokens = tokens[n:]
		}
	}
}

func joinTokens(line []Token) string {
	words := make([]string, len(line))
	for n, tok := range line {
		words[n] = tok.Text
		if tok.Kind == TOKEN_LABEL {
			words[n] += ":"
		}
	}
	return strings.Join(words, " ")
}

// parseLine handles an optional leading label and the instruction after it.
func (asm *Assembler) parseLine(line []Token) (err error) {
	if line[0].Kind == TOKEN_LABEL {
		label := line[0]
		if first, ok := asm.Label[label.Text]; ok {
			err = &ErrLabelDuplicate{Label: label.Text, Pos: label.Pos, First: asm.blocks[first].Pos}
			return
		}
		asm.Label[label.Text] = len(asm.blocks)
		asm.blocks = append(asm.blocks, Block{Label: label.Text, Pos: label.Pos})

		line = line[1:]
		if len(line) == 0 {
			return
		}
	}

	if len(asm.blocks) == 0 {
		err = &ErrSyntax{Pos: line[0].Pos, Expected: f("label"), Found: line[0].String()}
		return
	}

	instr, err := parseInstruction(line)
	if err != nil {
		return
	}

	blk := &asm.blocks[len(asm.blocks)-1]
	blk.Instructions = append(blk.Instructions, instr)

	return
}

// parseInstruction matches a line of tokens against the instruction shapes.
func parseInstruction(line []Token) (instr Instruction, err error) {
	first := line[0]
	pos := first.Pos

	switch first.Kind {
	case TOKEN_KEYWORD:
		switch first.Keyword {
		case KW_CLR, KW_ADD0, KW_ADD1, KW_DEL:
			var reg Token
			reg, err = expectIdent(line, 1, f("register"))
			if err != nil {
				return
			}
			err = expectEnd(line, 2)
			if err != nil {
				return
			}
			switch first.Keyword {
			case KW_CLR:
				instr = Clear{Pos: pos, Register: reg.Text}
			case KW_ADD0:
				instr = Append{Pos: pos, Register: reg.Text, Bit: BIT_0}
			case KW_ADD1:
				instr = Append{Pos: pos, Register: reg.Text, Bit: BIT_1}
			case KW_DEL:
				instr = Delete{Pos: pos, Register: reg.Text}
			}
		case KW_JMP:
			var target Token
			target, err = expectIdent(line, 1, f("label"))
			if err != nil {
				return
			}
			err = expectEnd(line, 2)
			if err != nil {
				return
			}
			instr = Jump{Pos: pos, Target: target.Text}
		case KW_CONTINUE:
			err = expectEnd(line, 1)
			if err != nil {
				return
			}
			instr = Halt{Pos: pos}
		default:
			// jmp0 and jmp1 need a register in front of them.
			err = &ErrSyntax{Pos: pos, Expected: f("instruction"), Found: first.String()}
		}
	case TOKEN_IDENT:
		if len(line) < 2 {
			err = &ErrSyntax{Pos: first.End(), Expected: f("'<-', 'jmp0' or 'jmp1'"), Found: f("end of line")}
			return
		}
		second := line[1]
		switch {
		case second.Kind == TOKEN_ASSIGN:
			var src Token
			src, err = expectIdent(line, 2, f("register"))
			if err != nil {
				return
			}
			err = expectEnd(line, 3)
			if err != nil {
				return
			}
			instr = Copy{Pos: pos, Dst: first.Text, Src: src.Text}
		case second.Kind == TOKEN_KEYWORD && (second.Keyword == KW_JMP0 || second.Keyword == KW_JMP1):
			var target Token
			target, err = expectIdent(line, 2, f("label"))
			if err != nil {
				return
			}
			err = expectEnd(line, 3)
			if err != nil {
				return
			}
			bit := BIT_0
			if second.Keyword == KW_JMP1 {
				bit = BIT_1
			}
			instr = CondJump{Pos: pos, Register: first.Text, Bit: bit, Target: target.Text}
		default:
			err = &ErrSyntax{Pos: second.Pos, Expected: f("'<-', 'jmp0' or 'jmp1'"), Found: second.String()}
		}
	default:
		err = &ErrSyntax{Pos: pos, Expected: f("instruction"), Found: first.String()}
	}

	return
}

// expectIdent requires an identifier at line[n].
func expectIdent(line []Token, n int, expected string) (tok Token, err error) {
	if n >= len(line) {
		err = &ErrSyntax{Pos: line[len(line)-1].End(), Expected: expected, Found: f("end of line")}
		return
	}
	tok = line[n]
	if tok.Kind != TOKEN_IDENT {
		err = &ErrSyntax{Pos: tok.Pos, Expected: expected, Found: tok.String()}
	}
	return
}

// expectEnd requires that the line has exactly n tokens.
func expectEnd(line []Token, n int) (err error) {
	if len(line) > n {
		err = &ErrSyntax{Pos: line[n].Pos, Expected: f("end of line"), Found: line[n].String()}
	}
	return
}
