package pgcsv

import "context"

// Approver confirms that an existing destination table may be dropped.
//
// Implementations:
//   - ForcedApprover: shows a countdown and approves unless cancelled
//   - InteractiveApprover: prompts the user to type the table name
type Approver interface {
	// RequestApproval is called once per run, after the probe and before the
	// first batch replaces table, and only when table already exists.
	//
	// Returns:
	//   - (true, nil): proceed with the replacement
	//   - (false, nil): the user declined
	//   - (false, error): the prompt itself failed or ctx was cancelled
	RequestApproval(ctx context.Context, table string) (bool, error)
}
