// Package ledger records the outcome of each generate run in a local SQLite
// database so `parrot history` can show what was generated, when, and with
// which voice. The ledger is bookkeeping only; dedup state never lives here.
package ledger
