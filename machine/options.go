package machine

const (
	DEFAULT_MAX_STEPS = 20_000_000 // Default bound on executed instructions.
)

// Discipline selects which end of a register the jmp0, jmp1 and del
// instructions operate on. add0 and add1 always append at the end.
type Discipline int

const (
	DISCIPLINE_QUEUE = Discipline(0) // Oldest bit first.
	DISCIPLINE_STACK = Discipline(1) // Most recently appended bit first.
)

var disciplineName = map[Discipline]string{
	DISCIPLINE_QUEUE: "queue",
	DISCIPLINE_STACK: "stack",
}

func (d Discipline) String() string {
	name, ok := disciplineName[d]
	if !ok {
		return f("Discipline(%d)", int(d))
	}
	return name
}

// MarshalText implements encoding.TextMarshaler.
func (d Discipline) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Discipline) UnmarshalText(text []byte) error {
	for value, name := range disciplineName {
		if name == string(text) {
			*d = value
			return nil
		}
	}
	return ErrOption{Option: "discipline", Value: string(text)}
}

// FallOff selects what happens when execution reaches the end of a block
// that did not jump or halt.
type FallOff int

const (
	FALLOFF_NEXT  = FallOff(0) // Continue with the next block in source order.
	FALLOFF_HALT  = FallOff(1) // Halt, as if 'continue' was reached.
	FALLOFF_FAULT = FallOff(2) // Fault with ErrFallOff.
)

var fallOffName = map[FallOff]string{
	FALLOFF_NEXT:  "next",
	FALLOFF_HALT:  "halt",
	FALLOFF_FAULT: "fault",
}

func (fo FallOff) String() string {
	name, ok := fallOffName[fo]
	if !ok {
		return f("FallOff(%d)", int(fo))
	}
	return name
}

// MarshalText implements encoding.TextMarshaler.
func (fo FallOff) MarshalText() ([]byte, error) {
	return []byte(fo.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (fo *FallOff) UnmarshalText(text []byte) error {
	for value, name := range fallOffName {
		if name == string(text) {
			*fo = value
			return nil
		}
	}
	return ErrOption{Option: "fall-off", Value: string(text)}
}

// ErrOption is an unknown option value.
type ErrOption struct {
	Option string
	Value  string
}

func (err ErrOption) Error() string {
	return f("%v '%v' invalid", err.Option, err.Value)
}
