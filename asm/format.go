package asm

import (
	"strings"
)

// DEFAULT_INDENT is the instruction indentation of STYLE_BLOCK.
const DEFAULT_INDENT = 4

// Style is a canonical source layout.
type Style int

const (
	// Label on its own line, instructions indented below it.
	STYLE_BLOCK = Style(0)
	// First instruction on the label line, the rest aligned under it.
	STYLE_ALIGNED = Style(1)
)

var styleName = map[Style]string{
	STYLE_BLOCK:   "block",
	STYLE_ALIGNED: "aligned",
}

func (style Style) String() string {
	name, ok := styleName[style]
	if !ok {
		return f("Style(%d)", int(style))
	}
	return name
}

// MarshalText implements encoding.TextMarshaler.
func (style Style) MarshalText() ([]byte, error) {
	return []byte(style.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (style *Style) UnmarshalText(text []byte) error {
	for value, name := range styleName {
		if name == string(text) {
			*style = value
			return nil
		}
	}
	return ErrStyleInvalid(text)
}

// ErrStyleInvalid is an unknown style name.
type ErrStyleInvalid string

func (err ErrStyleInvalid) Error() string {
	return f("format style '%v' invalid", string(err))
}

// Formatter renders programs as canonical source text.
type Formatter struct {
	Style  Style
	Indent int // Instruction indentation for STYLE_BLOCK; DEFAULT_INDENT if zero.
}

// FormatSource parses and re-renders source text. Parse errors are
// returned unchanged, and no text is produced.
func (fm *Formatter) FormatSource(source string) (text string, err error) {
	prog, err := ParseString(source)
	if err != nil {
		return
	}

	text = fm.Format(prog)

	return
}

// Format renders a program.
func (fm *Formatter) Format(prog *Program) string {
	var sb strings.Builder

	indent := fm.Indent
	if indent <= 0 {
		indent = DEFAULT_INDENT
	}

	for n, blk := range prog.Blocks {
		if n > 0 {
			sb.WriteString("\n")
		}

		sb.WriteString(blk.Label)
		sb.WriteString(":")

		switch fm.Style {
		case STYLE_ALIGNED:
			pad := strings.Repeat(" ", len(blk.Label)+2)
			for i, instr := range blk.Instructions {
				if i == 0 {
					sb.WriteString(" ")
				} else {
					sb.WriteString(pad)
				}
				sb.WriteString(instr.String())
				sb.WriteString("\n")
			}
			if len(blk.Instructions) == 0 {
				sb.WriteString("\n")
			}
		default:
			pad := strings.Repeat(" ", indent)
			sb.WriteString("\n")
			for _, instr := range blk.Instructions {
				sb.WriteString(pad)
				sb.WriteString(instr.String())
				sb.WriteString("\n")
			}
		}
	}

	return sb.String()
}

// Format parses and re-renders source text in the default style.
func Format(source string) (string, error) {
	fm := &Formatter{}
	return fm.FormatSource(source)
}
