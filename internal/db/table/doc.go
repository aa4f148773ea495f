// Package table creates, replaces and appends to the destination table.
//
// Every write runs in its own transaction and uses the COPY protocol.
// Replace drops and recreates the table and copies the first batch in one
// transaction, so a failed first batch leaves any previous table untouched.
//
// Table names may be schema-qualified ("staging.voos"). Identifiers are
// quoted with pgx.Identifier.Sanitize(), so labels with spaces or accents
// ("Partida Prevista", "Situação Voo") are stored verbatim.
//
//	mgr := table.New()
//	n, err := mgr.Replace(ctx, conn, "voos", columns, rows)
//	n, err = mgr.Append(ctx, conn, "voos", columns, more)
package table
