// Package tui renders the live progress line and final summary of an import
// when a human is at the terminal.
package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode for pgcsv.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts, and redirected output.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// DetectMode determines whether pgcsv should run in interactive or non-interactive mode.
//
// Returns ModeNonInteractive if:
//   - PGCSV_NON_INTERACTIVE=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - stdin or stdout is not a terminal
//
// Returns ModeInteractive otherwise.
func DetectMode() Mode {
	if os.Getenv("PGCSV_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ModeNonInteractive
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}

	return ModeInteractive
}

// IsInteractive is a convenience function that returns true if running in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}

// ShowProgress reports whether the live progress display should be used.
// Verbose output and --no-progress both fall back to plain log lines.
func ShowProgress(verbose, noProgress bool) bool {
	return !verbose && !noProgress && IsInteractive()
}
