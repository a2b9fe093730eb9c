// bloomtool is a headless CLI for simulating and exporting bloom flowers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/Faultbox/bloom/internal/logger"
)

// errUsage marks bad command-line input; main prints usage for it.
var errUsage = errors.New("usage error")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1], os.Args[2:], os.Stdout)
	logger.Sync()

	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printUsage(os.Stderr)
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string, out io.Writer) error {
	switch command {
	case "simulate", "sim":
		return cmdSimulate(ctx, args, out)
	case "export":
		return cmdExport(ctx, args, out)
	case "noise":
		return cmdNoise(args, out)
	case "preset":
		return cmdPreset(args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `bloomtool - headless bloom flower utility

Usage:
  bloomtool <command> [options]

Commands:
  simulate [-frames N] [-dt S]          Run the controller and log frame stats
  export   [-frames N] [-o file.obj]    Write the deformed flower as Wavefront OBJ
  noise    [-backend B] [-size N]       Print a grid of noise samples
  preset   [-o file.yaml]               Write the default preset

Common options:
  -config <file>   Config file (default: search ./bloom.yaml, user config dir)
  -preset <file>   Shape parameters to use instead of the config's flower section

Examples:
  bloomtool simulate -frames 600 -parallel
  bloomtool export -frames 90 -o tulip.obj -preset tulip.yaml
  bloomtool noise -backend perlin -size 12
  bloomtool preset -o presets/default.yaml`)
}
