package main

import (
	"flag"
	"fmt"
	"os"

	"lumen/colors"
	"lumen/internal/compiler"
	"lumen/internal/config"
	"lumen/internal/diagnostics"
	"lumen/internal/frontend/printer"
	"lumen/internal/semantics/renamer"
)

const version = "0.1.0"

func main() {
	debug := flag.Bool("d", false, "Enable debug output")
	showVersion := flag.Bool("v", false, "Show version")
	flag.BoolVar(debug, "debug", false, "Enable debug output")
	flag.BoolVar(showVersion, "version", false, "Show version")
	showAST := flag.Bool("ast", false, "Print the annotated AST after compilation")
	rename := flag.Bool("rename", false, "Run the symbol rename pass after a clean compile")
	configPath := flag.String("config", config.DefaultFile, "Project config file")

	flag.Parse()

	if *showVersion {
		fmt.Printf("Lumen compiler version %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		colors.RED.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.Debug {
		*debug = true
	}

	entry := cfg.Entry
	if flag.NArg() > 0 {
		entry = flag.Arg(0)
	}
	if entry == "" {
		fmt.Fprintln(os.Stderr, "Usage: lumen [options] <file.lum>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	src, err := os.ReadFile(entry)
	if err != nil {
		colors.RED.Fprintf(os.Stderr, "cannot read %s: %v\n", entry, err)
		os.Exit(1)
	}

	log := diagnostics.NewLog()
	module, ok := compiler.CompileSource(log, entry, string(src))

	for _, d := range log.Diagnostics() {
		if d.Severity == diagnostics.Error {
			colors.RED.Fprintln(os.Stderr, d.String())
		} else {
			colors.ORANGE.Fprintln(os.Stderr, d.String())
		}
	}

	if !ok {
		colors.RED.Fprintf(os.Stderr, "\nCompilation failed with %d error(s)\n", log.ErrorCount())
		os.Exit(1)
	}

	if *rename || cfg.Rename {
		renamer.Rename(module, cfg.ReservedWords(), cfg.RenameOverloads)
	}

	if *showAST || *debug {
		printer.Fprint(os.Stdout, module)
	}

	if *debug {
		colors.GREEN.Printf("\n✓ Compilation successful\n")
	}
}
