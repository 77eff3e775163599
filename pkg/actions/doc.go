// Package actions turns action declarations into runnable actions.
//
// Compilation merges a declaration with the template it references,
// computes the file macros for the changed file that triggered it and
// substitutes them into the command, working directory and name.
// Deduplication then collapses compiled actions sharing the same
// command, working directory and type, keeping the last occurrence.
package actions
