// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/tliron/commonlog"

	"github.com/ezrec/ram/config"
	"github.com/ezrec/ram/lsp"
	"github.com/ezrec/ram/ram"
)

func main() {
	var verbosity int
	var configPath string

	flag.IntVar(&verbosity, "v", 0, "Log verbosity")
	flag.StringVar(&configPath, "config", "", "ram.toml file to use (default: search upwards)")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	// Logs go to stderr; stdout carries the protocol.
	commonlog.Configure(verbosity, nil)

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

	server := lsp.New(ram.NewHost(cfg))
	err = server.RunStdio()
	if err != nil {
		log.Fatal(err)
	}
}
