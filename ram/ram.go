// Package ram provides the two operations a front end needs: formatting
// source text, and running it against a set of initial registers.
package ram

import (
	"log"

	"github.com/ezrec/ram/asm"
	"github.com/ezrec/ram/config"
	"github.com/ezrec/ram/machine"
)

// Reverse is the default example program. It reverses the bits of RX,
// using RY and RZ as scratch registers.
const Reverse = `N0: clr RY
    clr RZ

N1: RX jmp0 N2
    RX jmp1 N3
    jmp NEND

N2: add0 RY
    del RX
    jmp N4

N3: add1 RY
    del RX
    jmp N4

N4: RZ jmp0 N5
    RZ jmp1 N6
    RZ <- RY
    clr RY
    jmp N1

N5: del RZ
    add0 RY
    jmp N4

N6: del RZ
    add1 RY
    jmp N4

NEND: RX <- RZ
      clr RY
      clr RZ
      continue
`

// ReverseRegisters is the register seeded alongside Reverse.
var ReverseRegisters = map[string]string{"RX": "010111"}

// Host formats and runs programs with a configuration.
// A Host holds no per-run state, and may be used concurrently.
type Host struct {
	Verbose bool // If set, logs parsing and execution.
	Config  *config.Config
}

// NewHost creates a host. A nil configuration selects config.Default().
func NewHost(cfg *config.Config) *Host {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Host{Config: cfg}
}

// Parse parses source text.
func (h *Host) Parse(source string) (*asm.Program, error) {
	assembler := &asm.Assembler{Verbose: h.Verbose}
	return assembler.ParseString(source)
}

// Format returns the canonical form of source text.
func (h *Host) Format(source string) (text string, err error) {
	prog, err := h.Parse(source)
	if err != nil {
		return
	}

	text = h.Config.Formatter().Format(prog)

	return
}

// Execute parses and runs source text, returning the final registers.
// Rows with an empty name and an empty value are ignored.
func (h *Host) Execute(source string, initial map[string]string) (regs *machine.Registers, err error) {
	prog, err := h.Parse(source)
	if err != nil {
		return
	}

	rows := make(map[string]string, len(initial))
	for name, value := range initial {
		if len(name) == 0 && len(value) == 0 {
			continue
		}
		rows[name] = value
	}

	m := h.Config.NewMachine(prog)
	m.Verbose = h.Verbose

	regs, err = m.Run(rows)
	if err != nil {
		return
	}

	if h.Verbose {
		log.Printf("ram: halted after %d steps", m.Steps())
	}

	return
}

// Run parses and runs source text, returning the register listing:
// one 'NAME: bits' line per register, sorted by name.
func (h *Host) Run(source string, initial map[string]string) (text string, err error) {
	regs, err := h.Execute(source, initial)
	if err != nil {
		return
	}

	text = regs.Format(h.Config.Output.HideEmpty)

	return
}

// Format returns the canonical form of source text, with the default
// configuration.
func Format(source string) (string, error) {
	return NewHost(nil).Format(source)
}

// Run parses and runs source text with the default configuration.
func Run(source string, initial map[string]string) (string, error) {
	return NewHost(nil).Run(source, initial)
}
