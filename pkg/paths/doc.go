// Package paths provides the path handling used by moopad: resolving the
// working directory, locating user-level files under the XDG base
// directories, and the lexical path arithmetic behind the file macros.
package paths
