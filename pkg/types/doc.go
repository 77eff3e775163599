// Package types defines the data model shared by the moopad pipeline:
// action declarations and templates as they come out of the configuration,
// path rules and stages, and the compiled and executed actions produced
// while a stage runs.
package types
