package asm

import (
	"github.com/ezrec/ram/translate"
)

var f = translate.From

var (
	// Parser errors
	ErrProgramEmpty error = translate.Error("empty program")
)

// ErrLex is an unrecognized run of characters in the source.
type ErrLex struct {
	Pos  Pos
	Text string
}

func (err *ErrLex) Error() string {
	return f("line %v unrecognized '%v'", err.Pos, err.Text)
}

// Position of the offending text.
func (err *ErrLex) Position() Pos {
	return err.Pos
}

// ErrSyntax is a token sequence that does not form an instruction.
type ErrSyntax struct {
	Pos      Pos
	Expected string
	Found    string
	Err      error
}

func (err *ErrSyntax) Error() string {
	if err.Err != nil {
		return f("line %v %v: expected %v, found %v", err.Pos, err.Err, err.Expected, err.Found)
	}
	return f("line %v expected %v, found %v", err.Pos, err.Expected, err.Found)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// Position of the unexpected token.
func (err *ErrSyntax) Position() Pos {
	return err.Pos
}

// ErrLabelUndefined is a jump to a label that no block declares.
type ErrLabelUndefined struct {
	Label string
	Pos   Pos // Location of the referencing instruction.
}

func (err *ErrLabelUndefined) Error() string {
	return f("line %v label %v missing", err.Pos, err.Label)
}

// Position of the referencing instruction.
func (err *ErrLabelUndefined) Position() Pos {
	return err.Pos
}

// ErrLabelDuplicate is a label declared by more than one block.
type ErrLabelDuplicate struct {
	Label string
	Pos   Pos // Location of the second declaration.
	First Pos // Location of the first declaration.
}

func (err *ErrLabelDuplicate) Error() string {
	return f("line %v label %v duplicated, first declared at line %v", err.Pos, err.Label, err.First)
}

// Position of the second declaration.
func (err *ErrLabelDuplicate) Position() Pos {
	return err.Pos
}
