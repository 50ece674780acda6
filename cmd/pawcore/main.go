package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/phroun/pawcore"
)

var version = "dev" // set via -ldflags at build time

func main() {
	configPath := flag.String("config", "", "path to a TOML configuration file")
	debug := flag.Bool("debug", false, "enable debug logging")
	relaxed := flag.Bool("relaxed", false, "log refcount violations instead of aborting")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pawcore %s\n", version)
		return
	}

	config := pawcore.DefaultConfig()
	if *configPath != "" {
		loaded, err := pawcore.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pawcore: %v\n", err)
			os.Exit(1)
		}
		config = loaded
	}
	if *debug {
		config.Debug = true
	}
	if *relaxed {
		config.StrictCounts = false
	}

	rt := pawcore.New(config)
	repl := pawcore.NewREPL(rt)

	// with a script argument the shell reads commands from the file,
	// otherwise it reads stdin (interactive when stdin is a terminal)
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "pawcore: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		repl.Run(f)
		return
	}
	repl.Run(os.Stdin)
}
