// Package config handles ram.toml configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/ram/asm"
	"github.com/ezrec/ram/machine"
	"github.com/ezrec/ram/translate"
)

var f = translate.From

// FILENAME is the configuration file searched for by FindAndLoad.
const FILENAME = "ram.toml"

var (
	ErrMaxSteps error = translate.Error("max-steps must not be negative")
	ErrIndent   error = translate.Error("indent must not be negative")
)

// Config is a ram.toml configuration.
type Config struct {
	Machine Machine `toml:"machine"`
	Format  Format  `toml:"format"`
	Output  Output  `toml:"output"`

	// Path is the file the configuration was loaded from (set at load time).
	Path string `toml:"-"`
}

// Machine configures program execution.
type Machine struct {
	MaxSteps   int                `toml:"max-steps"`
	Discipline machine.Discipline `toml:"discipline"`
	FallOff    machine.FallOff    `toml:"fall-off"`
}

// Format configures the source formatter.
type Format struct {
	Style  asm.Style `toml:"style"`
	Indent int       `toml:"indent"`
}

// Output configures the register listing.
type Output struct {
	HideEmpty bool `toml:"hide-empty"`
}

// ErrConfig locates a configuration error.
type ErrConfig struct {
	Path string
	Err  error
}

func (err *ErrConfig) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}

// ErrKeyUnknown lists keys in a configuration that are not understood.
type ErrKeyUnknown []string

func (err ErrKeyUnknown) Error() string {
	return f("unknown keys: %v", strings.Join(err, ", "))
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Machine: Machine{
			MaxSteps:   machine.DEFAULT_MAX_STEPS,
			Discipline: machine.DISCIPLINE_QUEUE,
			FallOff:    machine.FALLOFF_NEXT,
		},
		Format: Format{
			Style:  asm.STYLE_BLOCK,
			Indent: asm.DEFAULT_INDENT,
		},
	}
}

// Parse decodes TOML text over the default configuration.
func Parse(text string) (cfg *Config, err error) {
	cfg = Default()

	md, err := toml.Decode(text, cfg)
	if err != nil {
		cfg = nil
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make(ErrKeyUnknown, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		cfg = nil
		err = keys
		return
	}

	err = cfg.Validate()
	if err != nil {
		cfg = nil
	}

	return
}

// Load parses a configuration file.
func Load(path string) (cfg *Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	cfg, err = Parse(string(data))
	if err != nil {
		err = &ErrConfig{Path: path, Err: err}
		return
	}

	cfg.Path = path

	return
}

// FindAndLoad walks up from dir to find a ram.toml file, and loads it.
// If none is found, the default configuration is returned.
func FindAndLoad(dir string) (cfg *Config, err error) {
	dir, err = filepath.Abs(dir)
	if err != nil {
		return
	}

	for {
		path := filepath.Join(dir, FILENAME)
		if _, serr := os.Stat(path); serr == nil {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	cfg = Default()

	return
}

// Validate checks option ranges.
func (cfg *Config) Validate() error {
	if cfg.Machine.MaxSteps < 0 {
		return ErrMaxSteps
	}
	if cfg.Format.Indent < 0 {
		return ErrIndent
	}
	return nil
}

// NewMachine creates a machine for a program, configured for execution.
func (cfg *Config) NewMachine(prog *asm.Program) (m *machine.Machine) {
	m = machine.NewMachine(prog)
	m.MaxSteps = cfg.Machine.MaxSteps
	m.Discipline = cfg.Machine.Discipline
	m.FallOff = cfg.Machine.FallOff
	return
}

// Formatter creates a configured source formatter.
func (cfg *Config) Formatter() *asm.Formatter {
	return &asm.Formatter{
		Style:  cfg.Format.Style,
		Indent: cfg.Format.Indent,
	}
}
