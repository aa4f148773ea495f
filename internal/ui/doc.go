// Package ui implements pgcsv.Approver for confirming that an existing
// destination table may be dropped and recreated.
//
// InteractiveApprover asks the user to type the table name. ForcedApprover is
// used when nobody can answer: it prints a warning and counts down, giving an
// operator watching the log a chance to interrupt the run.
package ui
