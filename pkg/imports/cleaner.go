package imports

import "strings"

// Dedupe removes repeated import directives of path, keeping the first one.
// Only directives whose URI is exactly path count: an import of another
// library that happens to share the file name is kept.
//
// Returns the cleaned text and the number of lines removed.
func Dedupe(src, path string) (string, int) {
	if path == "" {
		return src, 0
	}
	lines := strings.Split(src, "\n")
	out := lines[:0:0]
	seen := false
	removed := 0
	for _, l := range lines {
		if uri, ok := importURI(l); ok && uri == path && strings.Contains(l, ";") {
			if seen {
				removed++
				continue
			}
			seen = true
		}
		out = append(out, l)
	}
	if removed == 0 {
		return src, 0
	}
	return strings.Join(out, "\n"), removed
}

// Count returns the number of import directives whose URI is exactly path.
func Count(src, path string) int {
	n := 0
	for _, l := range strings.Split(src, "\n") {
		if uri, ok := importURI(l); ok && uri == path {
			n++
		}
	}
	return n
}

// importURI returns the quoted URI of an import directive starting on line.
func importURI(line string) (string, bool) {
	if !isDirective(line, "import") {
		return "", false
	}
	rest := strings.TrimSpace(strings.TrimSpace(line)[len("import"):])
	if rest == "" || (rest[0] != '\'' && rest[0] != '"') {
		return "", false
	}
	end := strings.IndexByte(rest[1:], rest[0])
	if end < 0 {
		return "", false
	}
	return rest[1 : end+1], true
}
