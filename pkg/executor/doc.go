// Package executor runs compiled actions as local subprocesses.
//
// All actions handed to Execute are launched in input order and run
// concurrently, optionally bounded by MaxProcs. Every process is waited
// on and its output, return code and pid recorded. Failures never cancel
// siblings; the caller's context is the only way to stop running
// processes.
//
// Processes are started through a Runner so tests can replace the shell.
package executor
