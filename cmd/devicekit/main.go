package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Version and Commit are overridden at build time.
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// execute runs the CLI with args and the given output writers.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)
	if len(args) > 0 {
		cmd.SetArgs(args[1:])
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

func runMain(args []string, stdout, stderr io.Writer, exit func(int)) {
	if err := execute(context.Background(), args, stdout, stderr); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		exit(1)
	}
}
