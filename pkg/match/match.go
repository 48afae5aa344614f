// Package match locates legacy snack bar call sites in Dart source text.
package match

import (
	"strconv"
	"strings"

	"github.com/SamuelMarks/snackbar-migrate/pkg/dart"
)

// Pattern names the parts of the legacy call
//
//	<Receiver>.<Accessor>(ctx).<Method>([const] <Widget>(...));
type Pattern struct {
	Receiver string
	Accessor string
	Method   string
	Widget   string
}

// DefaultPattern returns the Flutter ScaffoldMessenger pattern.
func DefaultPattern() Pattern {
	return Pattern{
		Receiver: "ScaffoldMessenger",
		Accessor: "of",
		Method:   "showSnackBar",
		Widget:   "SnackBar",
	}
}

// Mentions is a cheap textual pre-filter: it reports whether src can contain a legacy call at all.
func (p Pattern) Mentions(src string) bool {
	return strings.Contains(src, p.Receiver) && strings.Contains(src, p.Method)
}

// Position is the syntactic slot a call site occupies.
type Position int

const (
	// Statement is a statement of a block or of a switch case.
	Statement Position = iota
	// Body is the unbraced body of if, else, for, while or do.
	Body
	// Expression is any other slot: an initializer, an arrow body, a return value.
	Expression
)

// String returns the name of the position.
func (p Position) String() string {
	switch p {
	case Statement:
		return "statement"
	case Body:
		return "body"
	case Expression:
		return "expression"
	}
	return "position(" + strconv.Itoa(int(p)) + ")"
}

// CallSite is one legacy call found in a file.
type CallSite struct {
	// Start and End delimit the statement, from the receiver through the ';'.
	Start int
	End   int
	// Text is src[Start:End].
	Text string
	// Line is the 1-based line of Start.
	Line int
	// Indent is the leading whitespace of the line containing Start.
	Indent string
	// Newline is the line terminator used by the file.
	Newline string
	// Context is the rendered argument of the accessor call, usually "context".
	Context string
	// Const reports whether the widget construction carried a const qualifier.
	Const bool
	// Args are the widget's constructor arguments.
	Args []dart.Arg
	// Tokens are all tokens of the statement.
	Tokens []dart.Token
	// Position tells whether the call can be replaced by statements.
	Position Position
}

// Scanner yields call sites lazily and never revisits a consumed span.
type Scanner struct {
	src     string
	pat     Pattern
	toks    []dart.Token
	pos     int
	newline string
}

// NewScanner tokenizes src and prepares a scan for pat.
func NewScanner(src string, pat Pattern) *Scanner {
	nl := "\n"
	if strings.Contains(src, "\r\n") {
		nl = "\r\n"
	}
	return &Scanner{
		src:     src,
		pat:     pat,
		toks:    dart.Tokenize(src),
		newline: nl,
	}
}

// Next returns the next call site, or false when the text is exhausted.
func (s *Scanner) Next() (CallSite, bool) {
	for s.pos < len(s.toks) {
		site, last, ok := s.matchAt(s.pos)
		if ok {
			s.pos = last + 1
			return site, true
		}
		s.pos++
	}
	return CallSite{}, false
}

// Find returns every call site in src.
func Find(src string, pat Pattern) []CallSite {
	var sites []CallSite
	sc := NewScanner(src, pat)
	for {
		site, ok := sc.Next()
		if !ok {
			return sites
		}
		sites = append(sites, site)
	}
}

// matchAt tries to match a full legacy statement whose first token is toks[i].
// It returns the index of the terminating ';'.
func (s *Scanner) matchAt(i int) (CallSite, int, bool) {
	t := s.toks
	n := len(t)
	if i+3 >= n || t[i].Kind != dart.Ident || t[i].Text != s.pat.Receiver {
		return CallSite{}, 0, false
	}
	// A qualified receiver (prefix.ScaffoldMessenger) would leave the prefix dangling.
	if i > 0 && t[i-1].Is(".") {
		return CallSite{}, 0, false
	}
	if !t[i+1].Is(".") || !isIdent(t[i+2], s.pat.Accessor) || !t[i+3].Is("(") {
		return CallSite{}, 0, false
	}
	ctxClose := dart.MatchClose(t, i+3)
	if ctxClose < 0 {
		return CallSite{}, 0, false
	}
	ctxArgs := dart.SplitArgs(t[i+4 : ctxClose])
	if len(ctxArgs) != 1 || ctxArgs[0].Name != "" {
		return CallSite{}, 0, false
	}

	j := ctxClose + 1
	if j+2 >= n || !t[j].Is(".") || !isIdent(t[j+1], s.pat.Method) || !t[j+2].Is("(") {
		return CallSite{}, 0, false
	}
	callClose := dart.MatchClose(t, j+2)
	if callClose < 0 || callClose+1 >= n || !t[callClose+1].Is(";") {
		return CallSite{}, 0, false
	}
	callArgs := dart.SplitArgs(t[j+3 : callClose])
	if len(callArgs) != 1 || callArgs[0].Name != "" {
		return CallSite{}, 0, false
	}
	widget, isConst := dart.StripQualifier(callArgs[0].Value)
	inner, ok := dart.Construction(widget, s.pat.Widget)
	if !ok {
		return CallSite{}, 0, false
	}

	last := callClose + 1
	start, end := t[i].Start, t[last].End
	return CallSite{
		Start:    start,
		End:      end,
		Text:     s.src[start:end],
		Line:     strings.Count(s.src[:start], "\n") + 1,
		Indent:   lineIndent(s.src, start),
		Newline:  s.newline,
		Context:  dart.Render(ctxArgs[0].Value),
		Const:    isConst,
		Args:     dart.SplitArgs(inner),
		Tokens:   t[i : last+1],
		Position: position(t, i),
	}, last, true
}

// position classifies the slot of the expression starting at toks[i] by the token before it.
func position(toks []dart.Token, i int) Position {
	if i == 0 {
		return Statement
	}
	prev := toks[i-1]
	switch {
	case prev.Is(";"), prev.Is("{"), prev.Is("}"):
		return Statement
	case isIdent(prev, "else"), isIdent(prev, "do"):
		return Body
	case prev.Is(")"):
		open := matchOpen(toks, i-1)
		if open > 0 && (isIdent(toks[open-1], "if") || isIdent(toks[open-1], "for") || isIdent(toks[open-1], "while")) {
			return Body
		}
	case prev.Is(":"):
		if caseLabel(toks, i-1) {
			return Statement
		}
	}
	return Expression
}

// matchOpen returns the index of the '(' matching the ')' at end, or -1.
func matchOpen(toks []dart.Token, end int) int {
	depth := 0
	for k := end; k >= 0; k-- {
		switch {
		case toks[k].Is(")"):
			depth++
		case toks[k].Is("("):
			depth--
			if depth == 0 {
				return k
			}
		}
	}
	return -1
}

// caseLabel reports whether the ':' at colon ends a "case ...:" or "default:" label.
func caseLabel(toks []dart.Token, colon int) bool {
	if colon > 0 && isIdent(toks[colon-1], "default") {
		return true
	}
	depth := 0
	for k := colon - 1; k >= 0; k-- {
		t := toks[k]
		switch {
		case t.Is(")"), t.Is("]"):
			depth++
		case t.Is("("), t.Is("["):
			depth--
		case depth == 0 && (t.Is(";") || t.Is("{") || t.Is("}") || t.Is("?") || t.Is(":") || t.Is("=>")):
			return false
		case depth == 0 && isIdent(t, "case"):
			return true
		}
		if depth < 0 {
			return false
		}
	}
	return false
}

func isIdent(t dart.Token, name string) bool {
	return t.Kind == dart.Ident && t.Text == name
}

// lineIndent returns the leading blanks of the line containing offset.
func lineIndent(src string, offset int) string {
	lineStart := strings.LastIndexByte(src[:offset], '\n') + 1
	end := lineStart
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return src[lineStart:end]
}
