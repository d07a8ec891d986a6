// Package repl is an interactive line editor for ram programs.
//
// Lines that are not commands are added to the program buffer. Commands
// start with ':'.
//
//	:run [REG=bits ...]   run the buffer
//	:format               print the buffer in canonical form
//	:list                 print the buffer with line numbers
//	:load path            replace the buffer with a file
//	:example              replace the buffer with the reversal example
//	:clear                empty the buffer
//	:help                 list the commands
//	:quit                 leave
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/peterh/liner"

	"github.com/ezrec/ram/asm"
	"github.com/ezrec/ram/ram"
	"github.com/ezrec/ram/translate"
)

var f = translate.From

// HISTORY_FILE is the history file name, kept in the home directory.
const HISTORY_FILE = ".ram_history"

const (
	PROMPT_MAIN = "ram> "
	PROMPT_CONT = " ... "
)

var (
	ErrQuit error = translate.Error("quit")
)

// ErrCommand is an unknown command, or a command with bad arguments.
type ErrCommand struct {
	Command string
	Usage   string
}

func (err *ErrCommand) Error() string {
	if len(err.Usage) == 0 {
		return f("unknown command '%v', try :help", err.Command)
	}
	return f("usage: %v", err.Usage)
}

// commands lists the commands and their usage.
var commands = []struct {
	name  string
	usage string
}{
	{":run", ":run [REG=bits ...]"},
	{":format", ":format"},
	{":list", ":list"},
	{":load", ":load path"},
	{":example", ":example"},
	{":clear", ":clear"},
	{":help", ":help"},
	{":quit", ":quit"},
}

// Session is the state of an interactive session.
type Session struct {
	Host  *ram.Host
	Lines []string // Program buffer.
}

// NewSession creates an empty session.
func NewSession(host *ram.Host) *Session {
	return &Session{Host: host}
}

// Source returns the program buffer as source text.
func (s *Session) Source() string {
	if len(s.Lines) == 0 {
		return ""
	}
	return strings.Join(s.Lines, "\n") + "\n"
}

// Eval handles one line of input, returning the text to print.
// ErrQuit is returned by ':quit'.
func (s *Session) Eval(line string) (output string, err error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ":") {
		if len(trimmed) != 0 {
			s.Lines = append(s.Lines, line)
		}
		return
	}

	args := strings.Fields(trimmed)
	cmd := args[0]
	args = args[1:]

	switch cmd {
	case ":run":
		initial := map[string]string{}
		for _, arg := range args {
			name, value, ok := strings.Cut(arg, "=")
			if !ok {
				err = &ErrCommand{Command: cmd, Usage: usageOf(cmd)}
				return
			}
			initial[name] = value
		}
		output, err = s.Host.Run(s.Source(), initial)
	case ":format":
		output, err = s.Host.Format(s.Source())
		if err != nil {
			return
		}
		s.Lines = strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	case ":list":
		var sb strings.Builder
		for n, text := range s.Lines {
			fmt.Fprintf(&sb, "%3d  %v\n", n+1, text)
		}
		output = sb.String()
	case ":load":
		if len(args) != 1 {
			err = &ErrCommand{Command: cmd, Usage: usageOf(cmd)}
			return
		}
		var data []byte
		data, err = os.ReadFile(args[0])
		if err != nil {
			return
		}
		s.Lines = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
		output = f("%d lines\n", len(s.Lines))
	case ":example":
		s.Lines = strings.Split(strings.TrimSuffix(ram.Reverse, "\n"), "\n")
		var seed []string
		for name, value := range ram.ReverseRegisters {
			seed = append(seed, name+"="+value)
		}
		slices.Sort(seed)
		output = f("try :run %v\n", strings.Join(seed, " "))
	case ":clear":
		s.Lines = nil
	case ":help":
		var sb strings.Builder
		for _, entry := range commands {
			sb.WriteString(entry.usage + "\n")
		}
		output = sb.String()
	case ":quit":
		err = ErrQuit
	default:
		err = &ErrCommand{Command: cmd}
	}

	return
}

func usageOf(cmd string) string {
	for _, entry := range commands {
		if entry.name == cmd {
			return entry.usage
		}
	}
	return ""
}

// Complete returns completions for the last word of a line: commands,
// mnemonics, and the labels and registers of the buffer.
func (s *Session) Complete(line string) (completions []string) {
	start := strings.LastIndexFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t'
	}) + 1
	head, word := line[:start], line[start:]
	if len(word) == 0 {
		return
	}

	var words []string
	if strings.HasPrefix(word, ":") {
		for _, entry := range commands {
			words = append(words, entry.name)
		}
	} else {
		for kw := asm.KW_CLR; kw <= asm.KW_CONTINUE; kw++ {
			words = append(words, kw.String())
		}
		if prog, err := s.Host.Parse(s.Source()); err == nil {
			words = append(words, prog.Labels()...)
			words = append(words, prog.Registers()...)
		}
	}

	slices.Sort(words)
	words = slices.Compact(words)

	for _, candidate := range words {
		if strings.HasPrefix(candidate, word) {
			completions = append(completions, head+candidate)
		}
	}

	return
}

// Interactive runs a session on the terminal until ':quit' or end of input.
func Interactive(host *ram.Host, out io.Writer) (err error) {
	session := NewSession(host)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(session.Complete)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, HISTORY_FILE)
	if hf, herr := os.Open(histPath); herr == nil {
		_, _ = ln.ReadHistory(hf)
		_ = hf.Close()
	}
	defer func() {
		if hf, herr := os.Create(histPath); herr == nil {
			_, _ = ln.WriteHistory(hf)
			_ = hf.Close()
		}
	}()

	for {
		prompt := PROMPT_MAIN
		if len(session.Lines) != 0 {
			prompt = PROMPT_CONT
		}

		var line string
		line, err = ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out)
			err = nil
			return
		}
		if err != nil {
			return
		}
		ln.AppendHistory(line)

		var text string
		text, err = session.Eval(line)
		if errors.Is(err, ErrQuit) {
			err = nil
			return
		}
		if err != nil {
			fmt.Fprintln(out, err)
			err = nil
			continue
		}
		fmt.Fprint(out, text)
	}
}
