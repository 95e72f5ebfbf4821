// Package table adapts key/value backends to the limelight.Table contract.
//
// A Store talks to a concrete backend and reports errors. A Handle binds a
// Store to one table name and implements GetNumber/SetNumber with the
// semantics the accessors rely on: unset or unreadable entries read as 0 and
// writes are fire-and-forget. Errors swallowed at that boundary are logged.
package table
