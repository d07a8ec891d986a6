package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ram/asm"
)

func FuzzPushPop(f *testing.F) {
	f.Add("", false)
	f.Add("0", true)
	f.Add("0110", false)

	prog := asm.NewProgram(asm.Block{Label: "N0", Instructions: []asm.Instruction{
		asm.Append{Register: "R", Bit: asm.BIT_0},
		asm.Delete{Register: "R"},
		asm.Append{Register: "R", Bit: asm.BIT_1},
		asm.Delete{Register: "R"},
		asm.Halt{},
	}})

	f.Fuzz(func(t *testing.T, value string, queue bool) {
		assert := assert.New(t)

		if _, err := NewRegister(value); err != nil {
			t.Skip()
		}

		m := NewMachine(prog)
		m.Discipline = DISCIPLINE_STACK
		regs, err := m.Run(map[string]string{"R": value})
		assert.NoError(err)
		assert.Equal(value, regs.Get("R").String())

		if queue {
			// The queue rotates the oldest bits out instead.
			m.Discipline = DISCIPLINE_QUEUE
			regs, err = m.Run(map[string]string{"R": value})
			assert.NoError(err)
			assert.Equal(len(value), regs.Get("R").Len())
		}
	})
}
