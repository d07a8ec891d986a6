// Package grader runs Starlark scripts that check ram programs.
//
// Scripts have these builtins, along with the Starlark universe:
//
//	format(src)                -> canonical source text
//	parse(src)                 -> list of block labels
//	run(src, registers={})     -> dict of final register values
//	fault(src, registers={})   -> error message, or None if the run halts
//	read(path)                 -> contents of a file, relative to the script
//	check(got, want, msg="")   -> fails the script unless got == want
//
// A script passes if it executes without error.
package grader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/ram/ram"
	"github.com/ezrec/ram/translate"
)

var f = translate.From

// Grader executes check scripts against a host.
type Grader struct {
	Host   *ram.Host
	Output io.Writer // Destination of print(); os.Stdout if nil.
	Dir    string    // Base directory for read(); the script directory if empty.
}

// New creates a grader for a host.
func New(host *ram.Host) *Grader {
	return &Grader{Host: host}
}

// ErrCheck is a failed check() in a script.
type ErrCheck struct {
	Got  string
	Want string
	Msg  string
}

func (err *ErrCheck) Error() string {
	if len(err.Msg) != 0 {
		return f("check failed: %v: got %v, want %v", err.Msg, err.Got, err.Want)
	}
	return f("check failed: got %v, want %v", err.Got, err.Want)
}

// ExecFile runs a script file.
func (g *Grader) ExecFile(path string) (globals starlark.StringDict, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	dir := g.Dir
	if len(dir) == 0 {
		dir = filepath.Dir(path)
	}

	return g.exec(path, data, dir)
}

// Exec runs a script held in memory.
func (g *Grader) Exec(filename string, src string) (globals starlark.StringDict, err error) {
	return g.exec(filename, src, g.Dir)
}

func (g *Grader) exec(filename string, src any, dir string) (globals starlark.StringDict, err error) {
	out := g.Output
	if out == nil {
		out = os.Stdout
	}

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(out, msg)
		},
	}

	predeclared := starlark.StringDict{
		"format": starlark.NewBuiltin("format", g.format),
		"parse":  starlark.NewBuiltin("parse", g.parse),
		"run":    starlark.NewBuiltin("run", g.run),
		"fault":  starlark.NewBuiltin("fault", g.fault),
		"check":  starlark.NewBuiltin("check", check),
		"read": starlark.NewBuiltin("read", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var path string
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "path", &path); err != nil {
				return nil, err
			}
			if !filepath.IsAbs(path) {
				path = filepath.Join(dir, path)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			return starlark.String(data), nil
		}),
	}

	opts := syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
	}
	globals, err = starlark.ExecFileOptions(&opts, thread, filename, src, predeclared)

	return
}

// registersOf converts an optional Starlark dict to initial registers.
func registersOf(fn string, dict *starlark.Dict) (initial map[string]string, err error) {
	initial = map[string]string{}
	if dict == nil {
		return
	}

	for _, item := range dict.Items() {
		name, ok := starlark.AsString(item[0])
		if !ok {
			err = fmt.Errorf("%s: %s", fn, f("register name %v is not a string", item[0]))
			return
		}
		value, ok := starlark.AsString(item[1])
		if !ok {
			err = fmt.Errorf("%s: %s", fn, f("register %v value %v is not a string", name, item[1]))
			return
		}
		initial[name] = value
	}

	return
}

func (g *Grader) format(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var src string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "src", &src); err != nil {
		return nil, err
	}

	text, err := g.Host.Format(src)
	if err != nil {
		return nil, err
	}

	return starlark.String(text), nil
}

func (g *Grader) parse(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var src string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "src", &src); err != nil {
		return nil, err
	}

	prog, err := g.Host.Parse(src)
	if err != nil {
		return nil, err
	}

	var labels []starlark.Value
	for _, label := range prog.Labels() {
		labels = append(labels, starlark.String(label))
	}

	return starlark.NewList(labels), nil
}

func (g *Grader) execute(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (result *starlark.Dict, err error) {
	var src string
	var dict *starlark.Dict
	if err = starlark.UnpackArgs(b.Name(), args, kwargs, "src", &src, "registers?", &dict); err != nil {
		return
	}

	initial, err := registersOf(b.Name(), dict)
	if err != nil {
		return
	}

	regs, err := g.Host.Execute(src, initial)
	if err != nil {
		return
	}

	result = starlark.NewDict(regs.Len())
	for _, name := range regs.Names() {
		err = result.SetKey(starlark.String(name), starlark.String(regs.Get(name).String()))
		if err != nil {
			return
		}
	}

	return
}

func (g *Grader) run(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	result, err := g.execute(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (g *Grader) fault(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	_, err := g.execute(b, args, kwargs)
	if err != nil {
		return starlark.String(err.Error()), nil
	}
	return starlark.None, nil
}

func check(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var got, want starlark.Value
	var msg string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "got", &got, "want", &want, "msg?", &msg); err != nil {
		return nil, err
	}

	equal, err := starlark.Equal(got, want)
	if err != nil {
		return nil, err
	}
	if !equal {
		return nil, &ErrCheck{Got: got.String(), Want: want.String(), Msg: msg}
	}

	return starlark.None, nil
}
