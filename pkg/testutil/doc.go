// Package testutil provides helpers shared by the moopad tests.
//
// Key components:
//   - Config builders: Rule, Run, Stage and Template assemble pipeline
//     configurations inline, without going through a file
//   - FakeExecutor: records the batches it is given and fails chosen
//     commands, for pipeline tests that must not spawn processes
//   - Isolate: points the settings and log file locations at a temp dir
//   - RequireShell: skips tests that need a real /bin/sh
//
// Usage guidelines:
//   - All test data should be defined inline, not in external files
//   - Tests that run real commands call RequireShell first
package testutil
