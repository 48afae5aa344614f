// Package imports manages the helper import directive of a Dart file.
package imports

import (
	"strings"
)

// RelativePath returns the import path of module as seen from a file whose
// directory lies depth levels below the source root.
//
// depth: number of directories between the source root and the file.
// module: file name of the helper module (e.g. "shared.dart").
func RelativePath(depth int, module string) string {
	if depth <= 0 {
		return module
	}
	return strings.Repeat("../", depth) + module
}

// Directive renders the import statement for path.
func Directive(path string) string {
	return "import '" + path + "';"
}

// Ensure adds the helper import to src unless src already imports it through
// the same relative path.
//
// The directive goes right after the last line of the last import statement.
// Without imports it goes after a leading library directive, or at the very top.
// The file's line terminator is preserved.
//
// Returns the new text and true if the import was added.
func Ensure(src string, depth int, module string) (string, bool) {
	if module == "" {
		return src, false
	}
	path := RelativePath(depth, module)
	if Count(src, path) > 0 {
		return src, false
	}
	crlf := strings.Contains(src, "\r\n")
	line := Directive(path)
	if crlf {
		line += "\r"
	}

	lines := strings.Split(src, "\n")
	at := lastStatementEnd(lines, "import") + 1
	if at == 0 {
		at = lastStatementEnd(lines, "library") + 1
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:at]...)
	out = append(out, line)
	out = append(out, lines[at:]...)
	return strings.Join(out, "\n"), true
}

// IsPart reports whether src is a part file ("part of ...;"). A part shares
// the imports of its library and cannot declare its own.
func IsPart(src string) bool {
	for _, l := range strings.Split(src, "\n") {
		if !isDirective(l, "part") {
			continue
		}
		rest := strings.TrimSpace(strings.TrimSpace(l)[len("part"):])
		if rest == "of" || strings.HasPrefix(rest, "of ") || strings.HasPrefix(rest, "of\t") {
			return true
		}
	}
	return false
}

// lastStatementEnd returns the index of the line terminating the last
// statement starting with keyword, or -1 if there is none.
// Statements may continue over several lines until their ';'.
func lastStatementEnd(lines []string, keyword string) int {
	last := -1
	for i := 0; i < len(lines); i++ {
		if !isDirective(lines[i], keyword) {
			continue
		}
		j := i
		for j < len(lines)-1 && !strings.Contains(lines[j], ";") {
			j++
		}
		last = j
		i = j
	}
	return last
}

func isDirective(line, keyword string) bool {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, keyword) {
		return false
	}
	rest := t[len(keyword):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\'' || rest[0] == '"' || rest[0] == ';'
}
