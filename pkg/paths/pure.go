package paths

import "strings"

// Pure is a lexical, slash-separated path. It never touches the
// filesystem: "." segments and repeated separators are dropped, ".." is
// kept as an ordinary segment.
type Pure struct {
	root  string
	parts []string
}

// ParsePure splits p into a Pure path. Exactly two leading slashes are a
// distinct root under POSIX and are kept, three or more collapse to one.
func ParsePure(p string) Pure {
	var out Pure
	switch {
	case strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "///"):
		out.root = "//"
	case strings.HasPrefix(p, "/"):
		out.root = "/"
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." {
			continue
		}
		out.parts = append(out.parts, seg)
	}
	return out
}

// IsAbs reports whether the path is rooted
func (p Pure) IsAbs() bool {
	return p.root != ""
}

// Parent drops the last segment. The parent of "." is "." and the
// parent of "/" is "/".
func (p Pure) Parent() Pure {
	if len(p.parts) == 0 {
		return p
	}
	return Pure{root: p.root, parts: p.parts[:len(p.parts)-1]}
}

// Name is the last segment, or "" for "." and "/"
func (p Pure) Name() string {
	if len(p.parts) == 0 {
		return ""
	}
	return p.parts[len(p.parts)-1]
}

// Join appends other to p. A rooted other replaces p.
func (p Pure) Join(other Pure) Pure {
	if other.root != "" {
		return other
	}
	parts := make([]string, 0, len(p.parts)+len(other.parts))
	parts = append(parts, p.parts...)
	parts = append(parts, other.parts...)
	return Pure{root: p.root, parts: parts}
}

// String renders the path, "." when empty and relative
func (p Pure) String() string {
	joined := strings.Join(p.parts, "/")
	if p.root != "" {
		return p.root + joined
	}
	if joined == "" {
		return "."
	}
	return joined
}
