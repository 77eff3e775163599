package actions

import (
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/moopad/pkg/errors"
	"github.com/arthur-debert/moopad/pkg/paths"
)

// Macro names available in run, cwd and name
const (
	MacroRootDir       = "root_dir"
	MacroFilePath      = "file_path"
	MacroFileName      = "file_name"
	MacroDirPath       = "dir_path"
	MacroDirName       = "dir_name"
	MacroParentDirPath = "parent_dir_path"
	MacroParentDirName = "parent_dir_name"
)

// MacroNames lists every recognised macro
var MacroNames = []string{
	MacroRootDir,
	MacroFilePath,
	MacroFileName,
	MacroDirPath,
	MacroDirName,
	MacroParentDirPath,
	MacroParentDirName,
}

// placeholderRe matches "$$", "$name", "${name}" and, as a last resort,
// a lone "$" which is an invalid placeholder
var placeholderRe = regexp.MustCompile(`\$(?:(\$)|([_a-zA-Z][_a-zA-Z0-9]*)|\{([_a-zA-Z][_a-zA-Z0-9]*)\}|())`)

// Macros holds the values substituted for one changed file
type Macros struct {
	RootDir       string
	FilePath      string
	FileName      string
	DirPath       string
	DirName       string
	ParentDirPath string
	ParentDirName string
}

// NewMacros computes the macro values for changedFile relative to rootDir.
// Absolute changed files keep their own location; relative ones are
// placed under rootDir.
func NewMacros(changedFile, rootDir string) Macros {
	root := paths.ParsePure(rootDir)
	file := paths.ParsePure(changedFile)
	dir := file.Parent()
	parentDir := dir.Parent()

	m := Macros{
		RootDir:       root.String(),
		FileName:      file.Name(),
		DirName:       dir.Name(),
		ParentDirName: parentDir.Name(),
	}

	if file.IsAbs() {
		m.FilePath = file.String()
		m.DirPath = dir.String()
		m.ParentDirPath = parentDir.String()
	} else {
		m.FilePath = root.Join(file).String()
		m.DirPath = root.Join(dir).String()
		m.ParentDirPath = root.Join(parentDir).String()
	}

	return m
}

// Map returns the macros keyed by name
func (m Macros) Map() map[string]string {
	return map[string]string{
		MacroRootDir:       m.RootDir,
		MacroFilePath:      m.FilePath,
		MacroFileName:      m.FileName,
		MacroDirPath:       m.DirPath,
		MacroDirName:       m.DirName,
		MacroParentDirPath: m.ParentDirPath,
		MacroParentDirName: m.ParentDirName,
	}
}

// Expand substitutes the macros into s
func (m Macros) Expand(s string) (string, error) {
	values := m.Map()
	return expand(s, func(name string) (string, bool) {
		v, ok := values[name]
		return v, ok
	})
}

// ValidateMacros checks that s only references known macros and contains
// no malformed placeholder. It needs no changed file.
func ValidateMacros(s string) error {
	_, err := expand(s, func(name string) (string, bool) {
		for _, known := range MacroNames {
			if known == name {
				return "", true
			}
		}
		return "", false
	})
	return err
}

// expand walks every placeholder in s, asking lookup for named ones.
// Substitution is single pass: values are never re-expanded.
func expand(s string, lookup func(string) (string, bool)) (string, error) {
	matches := placeholderRe.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var b strings.Builder
	last := 0
	for _, loc := range matches {
		b.WriteString(s[last:loc[0]])
		last = loc[1]

		switch {
		case loc[2] >= 0:
			b.WriteByte('$')
		case loc[4] >= 0 || loc[6] >= 0:
			name := groupText(s, loc, 4)
			if name == "" {
				name = groupText(s, loc, 6)
			}
			v, ok := lookup(name)
			if !ok {
				return "", errors.Newf(errors.ErrTemplate, "unknown macro %q in %q (known: %s)",
					name, s, strings.Join(sortedMacroNames(), ", ")).
					WithDetail("macro", name).
					WithDetail("text", s)
			}
			b.WriteString(v)
		default:
			line, col := position(s, loc[0])
			return "", errors.Newf(errors.ErrTemplate, "invalid placeholder in %q: line %d, col %d", s, line, col).
				WithDetail("text", s)
		}
	}
	b.WriteString(s[last:])

	return b.String(), nil
}

func groupText(s string, loc []int, idx int) string {
	if loc[idx] < 0 {
		return ""
	}
	return s[loc[idx]:loc[idx+1]]
}

// position converts a byte offset into 1-based line and column numbers
func position(s string, offset int) (int, int) {
	before := s[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset + 1
	if i := strings.LastIndex(before, "\n"); i >= 0 {
		col = offset - i
	}
	return line, col
}

func sortedMacroNames() []string {
	names := append([]string(nil), MacroNames...)
	sort.Strings(names)
	return names
}
