// Command limelightctl reads and drives a Limelight camera table from the
// shell, and can serve an in-memory bridge for local development.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Ratio1/limelight_sdk_go/pkg/limelight"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	return execute(newApp(stdout), args, stderr)
}

func execute(a *app, args []string, stderr io.Writer) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(a.out)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "limelightctl:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// usageError marks bad input from the command line.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func userErr(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func exitCode(err error) int {
	var ue *usageError
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &ue), errors.Is(err, limelight.ErrOutOfRange):
		return exitUserError
	case strings.HasPrefix(err.Error(), "unknown command"):
		return exitUserError
	default:
		return exitSysError
	}
}
