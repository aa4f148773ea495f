package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// InteractiveApprover prompts the user to type the table name to confirm the replacement.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover on stdin and stderr.
func NewInteractiveApprover(verbose bool) pgcsv.Approver {
	return &InteractiveApprover{verbose: verbose, input: os.Stdin, output: os.Stderr}
}

// RequestApproval prompts for the table name and approves on an exact match.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, table string) (bool, error) {
	fmt.Fprintf(a.output, "\n⚠️  WARNING: You are about to DROP and RECREATE the table '%s'\n", table)
	fmt.Fprintln(a.output, "This will permanently delete all rows currently in this table!")
	fmt.Fprintf(a.output, "\nTo confirm, type the table name '%s' and press Enter: ", table)

	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	// The goroutine outlives a cancelled prompt; stdin stays blocked until the process exits.
	go func() {
		input, err := bufio.NewReader(a.input).ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input == table {
			fmt.Fprintln(a.output, "✓ Confirmed. Proceeding with table replacement...")
			return true, nil
		}
		fmt.Fprintf(a.output, "✗ Input '%s' does not match table name '%s'. Import cancelled.\n", input, table)
		return false, nil
	}
}

var _ pgcsv.Approver = (*InteractiveApprover)(nil)
