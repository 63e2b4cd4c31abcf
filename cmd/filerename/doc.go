// Package main hosts the filerename CLI entrypoint and command graph.
//
// The root command takes one target, a directory tree or a single file, and
// runs it through the workflow in dry-run mode unless --force is given.
// Subcommands scaffold and validate configuration and report external
// binaries. Exit codes follow the faults package so scripts can tell a
// conflict from a lost file.
package main
