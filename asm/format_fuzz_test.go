package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzFormat(f *testing.F) {
	f.Add(revRam, false)
	f.Add(revRamAligned, true)
	f.Add("A:\nB: jmp A", false)
	f.Add("L: R<-S\n  R jmp1 L\n  continue", true)
	f.Add("X: add0 X\n  del X\n  X jmp0 X", false)

	f.Fuzz(func(t *testing.T, source string, aligned bool) {
		assert := assert.New(t)

		prog, err := ParseString(source)
		if err != nil {
			t.Skip()
		}

		fm := &Formatter{}
		if aligned {
			fm.Style = STYLE_ALIGNED
		}

		once := fm.Format(prog)
		reparsed, err := ParseString(once)
		assert.NoError(err)
		if err != nil {
			t.Fatalf("%q -> %q: %v", source, once, err)
		}
		assert.True(prog.Equal(reparsed))

		twice := fm.Format(reparsed)
		assert.Equal(once, twice)
	})
}
