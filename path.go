package ftptool

import "strings"

// Resolve resolves input against base following remote path semantics.
//
// If input starts with "/" it is absolute and base is ignored. Otherwise
// input is joined to base. In both cases the result is normalized: empty
// and "." segments are dropped, duplicate and trailing separators collapse,
// and ".." pops the last accumulated segment. A ".." at the root is a
// no-op, never an error; server paths have no notion of escaping "/".
//
// Resolve performs no I/O and does not consult the server. Server-side
// normalization (symlink resolution, case folding) only becomes visible
// through SetCurrentDirectory, which re-reads the directory from the
// server after changing it.
func Resolve(base, input string) string {
	abs := strings.HasPrefix(input, "/") || strings.HasPrefix(base, "/")

	var segs []string
	if !strings.HasPrefix(input, "/") {
		segs = appendSegments(segs, base)
	}
	segs = appendSegments(segs, input)

	joined := strings.Join(segs, "/")
	if abs {
		return "/" + joined
	}
	if joined == "" {
		return "."
	}
	return joined
}

// appendSegments normalizes raw into segs, resolving "." and "..".
func appendSegments(segs []string, raw string) []string {
	for _, seg := range strings.Split(raw, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segs) > 0 {
				segs = segs[:len(segs)-1]
			}
		default:
			segs = append(segs, seg)
		}
	}
	return segs
}

// parentDir returns the directory containing p, "/" for top-level paths.
func parentDir(p string) string {
	i := strings.LastIndex(p, "/")
	switch {
	case i < 0:
		return ""
	case i == 0:
		return "/"
	default:
		return p[:i]
	}
}

// splitSegments returns the normalized segments of p, outermost first.
func splitSegments(p string) []string {
	return appendSegments(nil, p)
}

// checkPath rejects inputs no server path may contain.
func checkPath(p string) error {
	if p == "" {
		return &PathError{Path: p, Reason: "empty path"}
	}
	if strings.ContainsRune(p, 0) {
		return &PathError{Path: p, Reason: "path contains NUL byte"}
	}
	return nil
}
