// Package logger provides leveled diagnostics for tripwirs commands.
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: shows info messages
//   - --debug: additionally shows debug details
//
// Warnings and errors are always shown. Commands create a Logger in the
// root command's PersistentPreRun and pass it to the scan engine, which
// uses Warnf for per-entry failures that do not abort a run.
package logger
