// Package changes reads the list of changed files a run is triggered by
package changes

import (
	"strings"

	"github.com/arthur-debert/moopad/pkg/errors"
	"github.com/spf13/afero"
)

// sample is used when no change list is given, handy to try a config out
const sample = `path1/changed_file1.py
path2/sub2/file_changed_again.txt
path3/sub1/sub2/sub4/changed
path2/sub2
`

// Sample returns the built-in example change set
func Sample() []string {
	return FromString(sample)
}

// FromString splits a newline separated list. Lines are trimmed and
// blank lines skipped.
func FromString(s string) []string {
	var files []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		files = append(files, line)
	}
	return files
}

// FromFile reads a newline separated list from path
func FromFile(fs afero.Fs, path string) ([]string, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrChangesLoad, "cannot read changed files from %s", path).
			WithDetail("path", path)
	}
	return FromString(string(data)), nil
}

// Source describes where the changed files come from. At most one of
// File and Inline should be set; File wins when both are.
type Source struct {
	File   string
	Inline *string
}

// Load resolves the source into a list of changed files, falling back to
// the sample when neither a file nor an inline list is given
func (s Source) Load(fs afero.Fs) ([]string, error) {
	switch {
	case s.File != "":
		return FromFile(fs, s.File)
	case s.Inline != nil:
		return FromString(*s.Inline), nil
	default:
		return Sample(), nil
	}
}
