package asm

import (
	"github.com/ezrec/ram/translate"
)

// Bit is a single register symbol, '0' or '1'.
type Bit byte

const (
	BIT_0 = Bit('0')
	BIT_1 = Bit('1')
)

var ErrBitInvalid error = translate.Error("bit invalid")

// ParseBit converts a '0' or '1' rune to a Bit.
func ParseBit(r rune) (bit Bit, err error) {
	switch r {
	case '0':
		bit = BIT_0
	case '1':
		bit = BIT_1
	default:
		err = ErrBitInvalid
	}
	return
}

func (bit Bit) String() string {
	return string(rune(bit))
}

// Instruction is one of Clear, Append, Delete, Copy, CondJump, Jump or Halt.
// The set is closed; engines switch on the concrete type.
type Instruction interface {
	// Position of the first token of the instruction.
	Position() Pos
	// Registers referenced by the instruction, destination first.
	Registers() []string
	// String is the canonical source text.
	String() string

	instruction()
}

// Brancher is implemented by instructions that can transfer control to a block.
type Brancher interface {
	Instruction
	Destination() string
}

// Clear empties a register.
type Clear struct {
	Pos      Pos
	Register string
}

// Append adds a bit at the end of a register.
type Append struct {
	Pos      Pos
	Register string
	Bit      Bit
}

// Delete removes the tested bit of a register.
type Delete struct {
	Pos      Pos
	Register string
}

// Copy replaces Dst with the contents of Src.
type Copy struct {
	Pos Pos
	Dst string
	Src string
}

// CondJump jumps to Target when the tested bit of Register equals Bit.
type CondJump struct {
	Pos      Pos
	Register string
	Bit      Bit
	Target   string
}

// Jump unconditionally jumps to Target.
type Jump struct {
	Pos    Pos
	Target string
}

// Halt stops the machine.
type Halt struct {
	Pos Pos
}

func (Clear) instruction()    {}
func (Append) instruction()   {}
func (Delete) instruction()   {}
func (Copy) instruction()     {}
func (CondJump) instruction() {}
func (Jump) instruction()     {}
func (Halt) instruction()     {}

func (in Clear) Position() Pos    { return in.Pos }
func (in Append) Position() Pos   { return in.Pos }
func (in Delete) Position() Pos   { return in.Pos }
func (in Copy) Position() Pos     { return in.Pos }
func (in CondJump) Position() Pos { return in.Pos }
func (in Jump) Position() Pos     { return in.Pos }
func (in Halt) Position() Pos     { return in.Pos }

func (in Clear) Registers() []string    { return []string{in.Register} }
func (in Append) Registers() []string   { return []string{in.Register} }
func (in Delete) Registers() []string   { return []string{in.Register} }
func (in Copy) Registers() []string     { return []string{in.Dst, in.Src} }
func (in CondJump) Registers() []string { return []string{in.Register} }
func (in Jump) Registers() []string     { return nil }
func (in Halt) Registers() []string     { return nil }

func (in CondJump) Destination() string { return in.Target }
func (in Jump) Destination() string     { return in.Target }

func (in Clear) String() string {
	return KW_CLR.String() + " " + in.Register
}

func (in Append) String() string {
	kw := KW_ADD0
	if in.Bit == BIT_1 {
		kw = KW_ADD1
	}
	return kw.String() + " " + in.Register
}

func (in Delete) String() string {
	return KW_DEL.String() + " " + in.Register
}

func (in Copy) String() string {
	return in.Dst + " <- " + in.Src
}

func (in CondJump) String() string {
	kw := KW_JMP0
	if in.Bit == BIT_1 {
		kw = KW_JMP1
	}
	return in.Register + " " + kw.String() + " " + in.Target
}

func (in Jump) String() string {
	return KW_JMP.String() + " " + in.Target
}

func (in Halt) String() string {
	return KW_CONTINUE.String()
}
