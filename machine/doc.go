// Package machine executes ram programs.
//
// A Machine holds a set of named registers, each a string of bits, and
// steps through the blocks of an asm.Program until a continue
// instruction halts it, a fault occurs, or the step limit is reached.
package machine
