// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"log"

	"github.com/ezrec/ram/asm"
)

// Machine state. Program + registers + program counter.
type Machine struct {
	Verbose    bool         // If set, logs every executed instruction.
	Program    *asm.Program // Program to execute. Not modified.
	Registers  *Registers   // Register state.
	MaxSteps   int          // Bound on executed instructions; DEFAULT_MAX_STEPS if zero.
	Discipline Discipline   // Register end tested by jmp0/jmp1 and removed by del.
	FallOff    FallOff      // Behavior at the end of a block; FALLOFF_NEXT if zero.

	loc   asm.Location
	steps int
	done  bool
}

// NewMachine creates a new machine for a program.
func NewMachine(prog *asm.Program) (m *Machine) {
	m = &Machine{
		Program:   prog,
		Registers: NewRegisters(),
	}

	return
}

// Reset the machine state.
// - Loads the initial register values.
// - Creates every register the program references.
// - Moves to the first instruction of the entry block.
func (m *Machine) Reset(initial map[string]string) (err error) {
	if m.Program.Entry() == nil {
		err = asm.ErrProgramEmpty
		return
	}

	regs := NewRegisters()
	err = regs.Load(initial)
	if err != nil {
		return
	}

	for _, name := range m.Program.Registers() {
		regs.Get(name)
	}

	m.Registers = regs
	m.loc = asm.Location{}
	m.steps = 0
	m.done = false

	if m.Verbose {
		log.Printf("machine: reset, %d registers, entry %v", regs.Len(), m.Program.Entry().Label)
	}

	return
}

// Steps returns the number of instructions executed since a reset.
func (m *Machine) Steps() int {
	return m.steps
}

// Location returns the location of the next instruction.
func (m *Machine) Location() asm.Location {
	return m.loc
}

// Done returns true once the machine has halted.
func (m *Machine) Done() bool {
	return m.done
}

// maxSteps returns the effective step bound.
func (m *Machine) maxSteps() int {
	if m.MaxSteps <= 0 {
		return DEFAULT_MAX_STEPS
	}
	return m.MaxSteps
}

// fault builds a runtime error at the current location.
func (m *Machine) fault(err error, pos asm.Pos, register string) error {
	return &ErrRuntime{
		Pos:       pos,
		Block:     m.Program.Blocks[m.loc.Block].Label,
		Index:     m.loc.Index,
		Register:  register,
		Steps:     m.steps,
		Registers: m.Registers.Clone(),
		Err:       err,
	}
}

// blockEnd applies the fall off policy until the location holds an
// instruction or the machine stops.
func (m *Machine) blockEnd() (done bool, err error) {
	for {
		blk := &m.Program.Blocks[m.loc.Block]
		if m.loc.Index < len(blk.Instructions) {
			return
		}

		// Position of the last instruction, or the label of an empty block.
		pos := blk.Pos
		if len(blk.Instructions) > 0 {
			pos = blk.Instructions[len(blk.Instructions)-1].Position()
		}

		switch m.FallOff {
		case FALLOFF_HALT:
			if m.Verbose {
				log.Printf("machine: %v: end of block %v, halt", pos, blk.Label)
			}
			m.done = true
			done = true
		case FALLOFF_FAULT:
			err = m.fault(ErrFallOff, pos, "")
		default:
			if m.loc.Block+1 < len(m.Program.Blocks) {
				m.loc = asm.Location{Block: m.loc.Block + 1}
				continue
			}
			// Past the last block there is nowhere to go.
			err = m.fault(ErrFallOff, pos, "")
		}
		return
	}
}

// jump returns the location of the first instruction of a block.
func (m *Machine) jump(instr asm.Brancher) (loc asm.Location, err error) {
	index, ok := m.Program.Lookup(instr.Destination())
	if !ok {
		err = m.fault(&asm.ErrLabelUndefined{Label: instr.Destination(), Pos: instr.Position()}, instr.Position(), "")
		return
	}
	loc = asm.Location{Block: index}
	return
}

// Tick executes a single instruction.
func (m *Machine) Tick() (done bool, err error) {
	if m.done {
		done = true
		return
	}

	done, err = m.blockEnd()
	if done || err != nil {
		return
	}

	blk := &m.Program.Blocks[m.loc.Block]
	instr := blk.Instructions[m.loc.Index]

	if m.steps >= m.maxSteps() {
		err = m.fault(ErrStepLimit, instr.Position(), "")
		return
	}
	m.steps++

	if m.Verbose {
		log.Printf("machine: %v %v.%d: %v", instr.Position(), blk.Label, m.loc.Index, instr)
	}

	next := asm.Location{Block: m.loc.Block, Index: m.loc.Index + 1}

	switch in := instr.(type) {
	case asm.Clear:
		m.Registers.Get(in.Register).Clear()
	case asm.Append:
		m.Registers.Get(in.Register).Append(in.Bit)
	case asm.Delete:
		_, ok := m.Registers.Get(in.Register).Remove(m.Discipline)
		if !ok {
			err = m.fault(ErrUnderflow, in.Pos, in.Register)
			return
		}
	case asm.Copy:
		m.Registers.Get(in.Dst).Set(m.Registers.Get(in.Src))
	case asm.CondJump:
		bit, ok := m.Registers.Get(in.Register).Test(m.Discipline)
		if ok && bit == in.Bit {
			next, err = m.jump(in)
			if err != nil {
				return
			}
		}
	case asm.Jump:
		next, err = m.jump(in)
		if err != nil {
			return
		}
	case asm.Halt:
		m.done = true
		done = true
		return
	default:
		err = m.fault(ErrInstructionInvalid, instr.Position(), "")
		return
	}

	m.loc = next

	return
}

// Run resets the machine with the initial registers, and executes until
// it halts or faults.
func (m *Machine) Run(initial map[string]string) (regs *Registers, err error) {
	err = m.Reset(initial)
	if err != nil {
		return
	}

	for done, err := m.Tick(); !done; done, err = m.Tick() {
		if err != nil {
			return nil, err
		}
	}

	regs = m.Registers

	return
}
