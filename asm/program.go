package asm

import (
	"iter"
	"slices"

	"github.com/ezrec/ram/internal"
)

// Block is a labeled sequence of instructions.
type Block struct {
	Label        string
	Pos          Pos // Location of the label.
	Instructions []Instruction
}

// Location of an instruction within a program.
type Location struct {
	Block int // Index into Program.Blocks.
	Index int // Index into Block.Instructions.
}

// Program is a parsed, linked list of blocks. The first block is the entry.
// A Program is not modified after parsing, and may be shared between
// machines.
type Program struct {
	Blocks []Block
	Index  map[string]int // Map of labels to block indexes.
}

// NewProgram builds a program from blocks, indexing the labels.
// Jump targets are not checked; use Link for that.
func NewProgram(blocks ...Block) (prog *Program) {
	prog = &Program{
		Blocks: blocks,
		Index:  make(map[string]int, len(blocks)),
	}
	for n, blk := range blocks {
		if _, ok := prog.Index[blk.Label]; !ok {
			prog.Index[blk.Label] = n
		}
	}
	return
}

// Link checks that every jump target names a block.
func (prog *Program) Link() (err error) {
	for instr := range prog.Instructions() {
		br, ok := instr.(Brancher)
		if !ok {
			continue
		}
		if _, ok = prog.Index[br.Destination()]; !ok {
			err = &ErrLabelUndefined{Label: br.Destination(), Pos: br.Position()}
			return
		}
	}
	return
}

// Entry returns the entry block, or nil for an empty program.
func (prog *Program) Entry() *Block {
	if len(prog.Blocks) == 0 {
		return nil
	}
	return &prog.Blocks[0]
}

// Lookup returns the block index of a label.
func (prog *Program) Lookup(label string) (index int, ok bool) {
	index, ok = prog.Index[label]
	return
}

// At returns the instruction at a location.
func (prog *Program) At(loc Location) (instr Instruction, ok bool) {
	if loc.Block < 0 || loc.Block >= len(prog.Blocks) {
		return
	}
	blk := &prog.Blocks[loc.Block]
	if loc.Index < 0 || loc.Index >= len(blk.Instructions) {
		return
	}
	return blk.Instructions[loc.Index], true
}

// All iterates over every instruction and its location, in source order.
func (prog *Program) All() iter.Seq2[Location, Instruction] {
	seqs := make([]iter.Seq2[Location, Instruction], len(prog.Blocks))
	for n := range prog.Blocks {
		seqs[n] = func(yield func(Location, Instruction) bool) {
			for index, instr := range prog.Blocks[n].Instructions {
				if !yield(Location{Block: n, Index: index}, instr) {
					return
				}
			}
		}
	}
	return internal.IterSeq2Concat(seqs...)
}

// Instructions iterates over every instruction, in source order.
func (prog *Program) Instructions() iter.Seq[Instruction] {
	return func(yield func(Instruction) bool) {
		for _, instr := range prog.All() {
			if !yield(instr) {
				return
			}
		}
	}
}

// Registers returns the sorted names of all registers the program references.
func (prog *Program) Registers() []string {
	seqs := make([]iter.Seq[string], 0, len(prog.Blocks))
	for instr := range prog.Instructions() {
		seqs = append(seqs, slices.Values(instr.Registers()))
	}
	return internal.SortedUnique(internal.IterSeqConcat(seqs...))
}

// Labels returns the block labels in source order.
func (prog *Program) Labels() (labels []string) {
	for _, blk := range prog.Blocks {
		labels = append(labels, blk.Label)
	}
	return
}

// Equal returns true if both programs have the same blocks holding the
// same instructions in the same order. Source positions are ignored.
func (prog *Program) Equal(other *Program) bool {
	if len(prog.Blocks) != len(other.Blocks) {
		return false
	}
	for n := range prog.Blocks {
		a, b := &prog.Blocks[n], &other.Blocks[n]
		if a.Label != b.Label || len(a.Instructions) != len(b.Instructions) {
			return false
		}
		for i := range a.Instructions {
			if a.Instructions[i].String() != b.Instructions[i].String() {
				return false
			}
		}
	}
	return true
}
