package machine

import (
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/ram/asm"
)

// Register is a string of bits. Bits are always appended at the end;
// which end is tested and removed depends on the Discipline.
type Register struct {
	bits []asm.Bit
}

// NewRegister parses a string of '0' and '1' runes.
func NewRegister(value string) (reg *Register, err error) {
	reg = &Register{}
	for _, r := range value {
		var bit asm.Bit
		bit, err = asm.ParseBit(r)
		if err != nil {
			reg = nil
			return
		}
		reg.bits = append(reg.bits, bit)
	}
	return
}

func (reg *Register) String() string {
	var sb strings.Builder
	for _, bit := range reg.bits {
		sb.WriteByte(byte(bit))
	}
	return sb.String()
}

// Len returns the number of bits held.
func (reg *Register) Len() int {
	return len(reg.bits)
}

// Empty returns true if the register holds no bits.
func (reg *Register) Empty() bool {
	return len(reg.bits) == 0
}

// Clear empties the register.
func (reg *Register) Clear() {
	reg.bits = reg.bits[:0]
}

// Append adds a bit at the end.
func (reg *Register) Append(bit asm.Bit) {
	reg.bits = append(reg.bits, bit)
}

// Set replaces the register contents with a copy of src.
func (reg *Register) Set(src *Register) {
	if reg == src {
		return
	}
	reg.bits = append(reg.bits[:0], src.bits...)
}

// Test returns the bit the discipline would remove next.
func (reg *Register) Test(discipline Discipline) (bit asm.Bit, ok bool) {
	if reg.Empty() {
		return
	}

	if discipline == DISCIPLINE_STACK {
		return reg.bits[len(reg.bits)-1], true
	}

	return reg.bits[0], true
}

// Remove takes away the bit returned by Test.
func (reg *Register) Remove(discipline Discipline) (bit asm.Bit, ok bool) {
	bit, ok = reg.Test(discipline)
	if !ok {
		return
	}

	if discipline == DISCIPLINE_STACK {
		reg.bits = reg.bits[:len(reg.bits)-1]
	} else {
		reg.bits = reg.bits[1:]
	}

	return
}

// Registers maps names to registers. Looking up a missing name creates
// an empty register.
type Registers struct {
	regs map[string]*Register
}

// NewRegisters creates an empty register set.
func NewRegisters() *Registers {
	return &Registers{regs: map[string]*Register{}}
}

// Load validates and adds initial register values.
func (r *Registers) Load(initial map[string]string) (err error) {
	for _, name := range slices.Sorted(maps.Keys(initial)) {
		value := initial[name]
		if !asm.IsIdentifier(name) {
			err = ErrRegisterName(name)
			return
		}
		var reg *Register
		reg, err = NewRegister(value)
		if err != nil {
			index := strings.IndexFunc(value, func(r rune) bool { return r != '0' && r != '1' })
			err = &ErrRegisterValue{Register: name, Value: value, Index: index}
			return
		}
		r.regs[name] = reg
	}
	return
}

// Get returns the named register, creating it if needed.
func (r *Registers) Get(name string) *Register {
	reg, ok := r.regs[name]
	if !ok {
		reg = &Register{}
		r.regs[name] = reg
	}
	return reg
}

// Lookup returns the named register, without creating it.
func (r *Registers) Lookup(name string) (reg *Register, ok bool) {
	reg, ok = r.regs[name]
	return
}

// Len returns the number of registers.
func (r *Registers) Len() int {
	return len(r.regs)
}

// Names returns the register names in sorted order.
func (r *Registers) Names() []string {
	return slices.Sorted(maps.Keys(r.regs))
}

// Map returns the register values as strings.
func (r *Registers) Map() map[string]string {
	values := make(map[string]string, len(r.regs))
	for name, reg := range r.regs {
		values[name] = reg.String()
	}
	return values
}

// Clone returns an independent copy of the registers.
func (r *Registers) Clone() *Registers {
	clone := NewRegisters()
	for name, reg := range r.regs {
		clone.regs[name] = &Register{bits: slices.Clone(reg.bits)}
	}
	return clone
}

// Format renders one 'NAME: bits' line per register, sorted by name.
// Empty registers are rendered as 'NAME:', or left out if hideEmpty is set.
func (r *Registers) Format(hideEmpty bool) string {
	var sb strings.Builder
	for _, name := range r.Names() {
		reg := r.regs[name]
		if reg.Empty() {
			if hideEmpty {
				continue
			}
			sb.WriteString(name + ":\n")
			continue
		}
		sb.WriteString(name + ": " + reg.String() + "\n")
	}
	return sb.String()
}

func (r *Registers) String() string {
	return r.Format(false)
}
