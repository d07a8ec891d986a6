package repl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ram/asm"
	"github.com/ezrec/ram/ram"
)

func TestSessionRun(t *testing.T) {
	assert := assert.New(t)

	s := NewSession(ram.NewHost(nil))

	for _, line := range []string{"A: RX jmp1 B", "   continue", "", "B: add0 RX", "   del RX", "   continue"} {
		out, err := s.Eval(line)
		assert.NoError(err)
		assert.Equal("", out)
	}
	assert.Len(s.Lines, 5)

	out, err := s.Eval(":run RX=10")
	assert.NoError(err)
	assert.Equal("RX: 00\n", out)

	out, err = s.Eval(":run RX=01")
	assert.NoError(err)
	assert.Equal("RX: 01\n", out)
}

func TestSessionFormat(t *testing.T) {
	assert := assert.New(t)

	s := NewSession(ram.NewHost(nil))
	_, _ = s.Eval("A: clr   R")
	_, _ = s.Eval("  continue")

	out, err := s.Eval(":format")
	assert.NoError(err)
	assert.Equal("A:\n    clr R\n    continue\n", out)
	assert.Equal([]string{"A:", "    clr R", "    continue"}, s.Lines)

	out, err = s.Eval(":list")
	assert.NoError(err)
	assert.Equal("  1  A:\n  2      clr R\n  3      continue\n", out)

	_, err = s.Eval(":clear")
	assert.NoError(err)
	assert.Len(s.Lines, 0)

	_, err = s.Eval(":format")
	assert.True(errors.Is(err, asm.ErrProgramEmpty))
}

func TestSessionExample(t *testing.T) {
	assert := assert.New(t)

	s := NewSession(ram.NewHost(nil))

	out, err := s.Eval(":example")
	assert.NoError(err)
	assert.Equal("try :run RX=010111\n", out)
	assert.Equal(ram.Reverse, s.Source())

	out, err = s.Eval(":run RX=010111")
	assert.NoError(err)
	assert.Equal("RX: 111010\nRY:\nRZ:\n", out)
}

func TestSessionLoad(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "prog.ram")
	assert.NoError(os.WriteFile(path, []byte("A: add1 R\n   continue\n"), 0o644))

	s := NewSession(ram.NewHost(nil))
	out, err := s.Eval(":load " + path)
	assert.NoError(err)
	assert.Equal("2 lines\n", out)

	out, err = s.Eval(":run")
	assert.NoError(err)
	assert.Equal("R: 1\n", out)

	_, err = s.Eval(":load")
	var cerr *ErrCommand
	assert.True(errors.As(err, &cerr))
	assert.Equal(":load path", cerr.Usage)
}

func TestSessionErrors(t *testing.T) {
	assert := assert.New(t)

	s := NewSession(ram.NewHost(nil))

	_, err := s.Eval(":quit")
	assert.True(errors.Is(err, ErrQuit))

	_, err = s.Eval(":bogus")
	var cerr *ErrCommand
	assert.True(errors.As(err, &cerr))
	assert.Equal(":bogus", cerr.Command)

	_, err = s.Eval(":run RX")
	assert.True(errors.As(err, &cerr))
	assert.Equal(":run [REG=bits ...]", cerr.Usage)

	out, err := s.Eval(":help")
	assert.NoError(err)
	assert.Contains(out, ":load path\n")
}

func TestSessionComplete(t *testing.T) {
	assert := assert.New(t)

	s := NewSession(ram.NewHost(nil))
	_, _ = s.Eval("LOOP: del RX")
	_, _ = s.Eval("      RX jmp1 LOOP")

	table := [](struct {
		line   string
		expect []string
	}){
		{"", nil},
		{":l", []string{":list", ":load"}},
		{"   jm", []string{"   jmp", "   jmp0", "   jmp1"}},
		{"RX jmp1 LO", []string{"RX jmp1 LOOP"}},
		{"add1 R", []string{"add1 RX"}},
		{"zz", nil},
	}

	for _, entry := range table {
		assert.Equal(entry.expect, s.Complete(entry.line), entry.line)
	}
}
