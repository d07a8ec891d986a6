package machine

import (
	"errors"

	"github.com/ezrec/ram/asm"
	"github.com/ezrec/ram/translate"
)

var f = translate.From

var (
	// Runtime faults
	ErrUnderflow          error = translate.Error("empty register underflow")
	ErrStepLimit          error = translate.Error("step limit exceeded")
	ErrFallOff            error = translate.Error("fell off end of block")
	ErrInstructionInvalid error = translate.Error("instruction invalid")
)

// ErrRuntime indicates the location and machine state of a runtime fault.
type ErrRuntime struct {
	Pos       asm.Pos    // Source position of the faulting instruction.
	Block     string     // Label of the executing block.
	Index     int        // Instruction index within the block.
	Register  string     // Register involved, if any.
	Steps     int        // Instructions executed before the fault.
	Registers *Registers // Register state at the fault.
	Err       error
}

func (err *ErrRuntime) Error() string {
	switch {
	case len(err.Register) != 0:
		return f("line %v block %v: %v: register %v", err.Pos, err.Block, err.Err, err.Register)
	case errors.Is(err.Err, ErrStepLimit):
		return f("line %v block %v: %v after %d steps", err.Pos, err.Block, err.Err, err.Steps)
	default:
		return f("line %v block %v: %v", err.Pos, err.Block, err.Err)
	}
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrRegisterName is an initial register whose name is not an identifier.
type ErrRegisterName string

func (err ErrRegisterName) Error() string {
	return f("register name '%v' invalid", string(err))
}

// ErrRegisterValue is an initial register value holding a symbol other
// than '0' or '1'.
type ErrRegisterValue struct {
	Register string
	Value    string
	Index    int // Byte offset of the invalid symbol.
}

func (err *ErrRegisterValue) Error() string {
	return f("register %v value '%v' invalid at offset %d", err.Register, err.Value, err.Index)
}

func (err *ErrRegisterValue) Unwrap() error {
	return asm.ErrBitInvalid
}
