/*
Package main is the entry point for storyterm.

It parses the command line with kong, loads configuration, wires the session
and story managers to the remote services through a persisted cookie jar, and
either starts the interactive client or runs a one-shot command.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/tesso57/storyterm/internal/domain/apperr"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args and executes the selected command. It returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var cli CLI
	exitCode := -1
	parser, err := kong.New(&cli,
		kong.Name("storyterm"),
		kong.Description("Share short stories from your terminal."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.BindTo(stdout, (*io.Writer)(nil)),
	)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "storyterm: %v\n", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		// --help and friends
		return exitCode
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "storyterm: %v\n", err)
		return 2
	}

	if err := kctx.Run(&cli.Globals); err != nil {
		_, _ = fmt.Fprintf(stderr, "storyterm: %s\n", apperr.Message(err, err.Error()))
		if errors.Is(err, errNotSignedIn) {
			return 3
		}
		return 1
	}
	return 0
}
