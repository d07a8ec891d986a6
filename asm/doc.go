// Package asm implements the lexer, parser and formatter for the ram
// register machine assembly language.
//
// A program is a list of labeled blocks. Each block holds one instruction
// per line, operating on registers that contain strings of '0' and '1'
// bits. This program moves every bit of RX onto the end of RY:
//
//	N0: RX jmp0 N1
//	    RX jmp1 N2
//	    continue
//	N1: add0 RY
//	    del RX
//	    jmp N0
//	N2: add1 RY
//	    del RX
//	    jmp N0
//
// The instructions are clr, add0, add1, del, copy (RY <- RX), the
// conditional jumps jmp0 and jmp1, the unconditional jmp, and continue,
// which halts the machine.
//
// The first block is the entry point. Jump targets are resolved once the
// whole program has been read, so forward references are permitted.
package asm
