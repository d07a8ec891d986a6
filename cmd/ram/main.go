// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/ram/config"
	"github.com/ezrec/ram/grader"
	"github.com/ezrec/ram/ram"
	"github.com/ezrec/ram/repl"
	"github.com/ezrec/ram/translate"
)

func main() {
	var configPath string
	var format bool
	var write bool
	var verbose bool
	var lang string
	var script string
	var interactive bool

	flag.StringVar(&configPath, "config", "", "ram.toml file to use (default: search upwards)")
	flag.BoolVar(&format, "f", false, "Print formatted source, do not execute")
	flag.BoolVar(&write, "w", false, "Rewrite source formatted, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "lang", "", "Message language (BCP 47 tag)")
	flag.StringVar(&script, "s", "", ".star grader script to run")
	flag.BoolVar(&interactive, "i", false, "Interactive mode")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [flags] file.ram [REG=bits ...]\n       %v -i\n       %v -s script.star\n", os.Args[0], os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if len(lang) != 0 {
		translate.Use(lang)
	}

	var cfg *config.Config
	var err error
	if len(configPath) != 0 {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.FindAndLoad(".")
	}
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	host := ram.NewHost(cfg)
	host.Verbose = verbose

	if len(script) != 0 {
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}
		gr := grader.New(host)
		gr.Dir = filepath.Dir(script)
		_, err = gr.ExecFile(script)
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
		return
	}

	if interactive {
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}
		err = repl.Interactive(host, os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	path := flag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}
	source := string(data)

	if format || write {
		if flag.NArg() != 1 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args()[1:])
		}

		text, err := host.Format(source)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}

		if write {
			err = os.WriteFile(path, []byte(text), 0o644)
			if err != nil {
				log.Fatalf("%v: %v", path, err)
			}
		} else {
			fmt.Print(text)
		}
		return
	}

	initial := map[string]string{}
	for _, arg := range flag.Args()[1:] {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			log.Fatalf("%v: expected REG=bits, not %q", os.Args[0], arg)
		}
		initial[name] = value
	}

	text, err := host.Run(source, initial)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	fmt.Print(text)
}
