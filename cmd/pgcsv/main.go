package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/vvka-141/pgcsv/internal/cli"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

func main() {
	os.Exit(run(cli.Execute, os.Stderr))
}

// run executes the CLI and maps its outcome to a process exit code.
// A panic is reported with its stack trace and exits with ExitPanic.
func run(execute func() error, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "panic: %v\n%s\n", r, debug.Stack())
			code = pgcsv.ExitPanic
		}
	}()

	return pgcsv.ExitCodeForError(execute())
}
