package ram

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ram/asm"
	"github.com/ezrec/ram/config"
	"github.com/ezrec/ram/machine"
)

func TestReverse(t *testing.T) {
	assert := assert.New(t)

	text, err := Run(Reverse, ReverseRegisters)
	assert.NoError(err)
	assert.Equal("RX: 111010\nRY:\nRZ:\n", text)
}

func TestReverseFormatted(t *testing.T) {
	assert := assert.New(t)

	// The example is already in the aligned style.
	cfg := config.Default()
	cfg.Format.Style = asm.STYLE_ALIGNED
	text, err := NewHost(cfg).Format(Reverse)
	assert.NoError(err)
	assert.Equal(Reverse, text)
}

func TestHaltOnly(t *testing.T) {
	assert := assert.New(t)

	text, err := Run("N0: continue", map[string]string{})
	assert.NoError(err)
	assert.Equal("", text)
}

func TestHideEmpty(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	cfg.Output.HideEmpty = true
	text, err := NewHost(cfg).Run(Reverse, ReverseRegisters)
	assert.NoError(err)
	assert.Equal("RX: 111010\n", text)
}

func TestBlankRows(t *testing.T) {
	assert := assert.New(t)

	text, err := Run("N0: add1 A\n    continue", map[string]string{"": "", "B": "0"})
	assert.NoError(err)
	assert.Equal("A: 1\nB: 0\n", text)

	_, err = Run("N0: continue", map[string]string{"": "1"})
	assert.Equal(machine.ErrRegisterName(""), err)

	_, err = Run("N0: continue", map[string]string{"RX": "2"})
	var value_err *machine.ErrRegisterValue
	assert.True(errors.As(err, &value_err))
}

func TestUndefinedLabel(t *testing.T) {
	assert := assert.New(t)

	source := "N0: RX jmp0 N1\n    jmp N9\nN1: continue"

	_, err := Format(source)
	var undef *asm.ErrLabelUndefined
	assert.True(errors.As(err, &undef))
	assert.Equal("N9", undef.Label)

	text, err := Run(source, nil)
	assert.Empty(text)
	assert.True(errors.As(err, &undef))
	assert.Equal("N9", undef.Label)
}

func TestRuntimeFaults(t *testing.T) {
	assert := assert.New(t)

	text, err := Run("N0: del RX\n    continue", nil)
	assert.Empty(text)
	assert.ErrorIs(err, machine.ErrUnderflow)

	cfg := config.Default()
	cfg.Machine.MaxSteps = 10_000
	_, err = NewHost(cfg).Run("N0: jmp N0", nil)
	assert.ErrorIs(err, machine.ErrStepLimit)

	cfg.Machine.FallOff = machine.FALLOFF_FAULT
	_, err = NewHost(cfg).Run("N0: add1 RX", nil)
	assert.ErrorIs(err, machine.ErrFallOff)
}

func TestFormatIdempotent(t *testing.T) {
	assert := assert.New(t)

	host := NewHost(nil)
	host.Verbose = true

	once, err := host.Format(Reverse)
	assert.NoError(err)
	twice, err := host.Format(once)
	assert.NoError(err)
	assert.Equal(once, twice)

	text, err := host.Run(once, ReverseRegisters)
	assert.NoError(err)
	assert.Equal("RX: 111010\nRY:\nRZ:\n", text)
}
