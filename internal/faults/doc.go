// Package faults defines the error taxonomy shared by the rename engine.
//
// Every fatal condition is tagged with one of the exported marker errors so
// callers can classify failures with errors.Is without parsing messages. Wrap
// attaches the component and operation that failed; ExitCode maps a marker to
// the process exit status used by the CLI.
package faults
