//go:build linux

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// fdEnv names the inherited descriptor the helper serves on.
const fdEnv = "PRIVSEP_FD"

type command struct {
	Usage string
	Short string
	Run   func(log *zap.Logger, args []string) error
}

var commands = []*command{
	capsCmd,
	callCmd,
	helperCmd,
}

func main() {
	verbose := flag.Bool("v", false, "log debug output to stderr")
	flag.Usage = usage
	flag.Parse()

	log := newLogger(*verbose)
	defer log.Sync()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	name, args := flag.Arg(0), flag.Args()[1:]
	for _, cmd := range commands {
		if strings.Fields(cmd.Usage)[0] != name {
			continue
		}
		if err := cmd.Run(log, args); err != nil {
			log.Fatal(name+" failed", zap.Error(err))
		}
		return
	}
	fmt.Fprintf(os.Stderr, "privsep: unknown command %q\n", name)
	usage()
	os.Exit(2)
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	log, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return log
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: privsep [-v] <command> [args]")
	fmt.Fprintln(os.Stderr)
	for _, cmd := range commands {
		fmt.Fprintf(os.Stderr, "  %-24s %s\n", cmd.Usage, cmd.Short)
	}
}
