// Package dart provides a lightweight tokenizer for Dart source text.
//
// It is not a parser. It only knows enough of the lexical grammar (strings,
// interpolation, comments, bracket pairs) to let callers locate call
// expressions and their argument lists without being fooled by delimiters
// that appear inside literals or comments.
package dart

import "strings"

// Kind classifies a token.
type Kind int

const (
	// Ident is an identifier or keyword (e.g. "Text", "const").
	Ident Kind = iota + 1
	// Number is a numeric literal.
	Number
	// String is a complete string literal, including quotes, raw prefix and interpolations.
	String
	// Punct is an operator or delimiter.
	Punct
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Ident:
		return "Ident"
	case Number:
		return "Number"
	case String:
		return "String"
	case Punct:
		return "Punct"
	}
	return "Invalid"
}

// Token is a single lexical element of a Dart source text.
// Start and End are byte offsets into the tokenized text.
type Token struct {
	Kind  Kind
	Text  string
	Start int
	End   int
	// Space reports whether whitespace or a comment preceded the token.
	Space bool
}

// Is reports whether the token is punctuation or an identifier with the given text.
func (t Token) Is(text string) bool {
	return (t.Kind == Punct || t.Kind == Ident) && t.Text == text
}

// Unquote returns the body of a string literal token without its raw prefix
// and quotes. Escapes and interpolations are left as written.
// Returns false if the token is not a terminated string literal.
func Unquote(t Token) (string, bool) {
	if t.Kind != String {
		return "", false
	}
	s := strings.TrimPrefix(t.Text, "r")
	for _, q := range []string{`'''`, `"""`, `'`, `"`} {
		if len(s) >= 2*len(q) && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			return s[len(q) : len(s)-len(q)], true
		}
	}
	return "", false
}

var closers = map[string]string{
	"(": ")",
	"[": "]",
	"{": "}",
}

// MatchClose returns the index of the bracket closing toks[open].
// Nesting of (), [] and {} is tracked to any depth.
// Returns -1 if toks[open] is not an opening bracket or the brackets are unbalanced.
func MatchClose(toks []Token, open int) int {
	if open < 0 || open >= len(toks) || toks[open].Kind != Punct {
		return -1
	}
	if _, ok := closers[toks[open].Text]; !ok {
		return -1
	}
	var stack []string
	for i := open; i < len(toks); i++ {
		t := toks[i]
		if t.Kind != Punct {
			continue
		}
		switch t.Text {
		case "(", "[", "{":
			stack = append(stack, closers[t.Text])
		case ")", "]", "}":
			if len(stack) == 0 || stack[len(stack)-1] != t.Text {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i
			}
		}
	}
	return -1
}

// Arg is one argument of an argument list.
// Name is empty for positional arguments.
type Arg struct {
	Name  string
	Value []Token
}

// SplitArgs splits the tokens between a pair of parentheses into arguments.
// Commas nested inside brackets do not split. A trailing comma is allowed.
func SplitArgs(toks []Token) []Arg {
	var args []Arg
	depth := 0
	start := 0
	flush := func(end int) {
		part := toks[start:end]
		if len(part) == 0 {
			return
		}
		if len(part) >= 2 && part[0].Kind == Ident && part[1].Is(":") {
			args = append(args, Arg{Name: part[0].Text, Value: part[2:]})
			return
		}
		args = append(args, Arg{Value: part})
	}
	for i, t := range toks {
		if t.Kind != Punct {
			continue
		}
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case ",":
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(toks))
	return args
}

// Named returns the first argument with the given name.
func Named(args []Arg, name string) (Arg, bool) {
	for _, a := range args {
		if a.Name == name {
			return a, true
		}
	}
	return Arg{}, false
}

// Positional returns the positional arguments in order.
func Positional(args []Arg) []Arg {
	var out []Arg
	for _, a := range args {
		if a.Name == "" {
			out = append(out, a)
		}
	}
	return out
}

// Render prints tokens back as source text on a single line.
// Any run of whitespace or comments between two tokens becomes one space.
func Render(toks []Token) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 && t.Space {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	return b.String()
}

// Compact concatenates the text of all non-string tokens, lower-cased.
// It is used for case-insensitive searches that must ignore literal message text.
func Compact(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		if t.Kind == String {
			continue
		}
		b.WriteString(strings.ToLower(t.Text))
	}
	return b.String()
}

// StripQualifier drops a leading "const" or "new" keyword.
// It reports whether "const" was present.
func StripQualifier(toks []Token) ([]Token, bool) {
	if len(toks) > 0 && toks[0].Kind == Ident {
		switch toks[0].Text {
		case "const":
			return toks[1:], true
		case "new":
			return toks[1:], false
		}
	}
	return toks, false
}

// Construction reports whether toks is exactly one call "<name>(...)" and
// returns the tokens between its parentheses.
func Construction(toks []Token, name string) ([]Token, bool) {
	if len(toks) < 3 || toks[0].Kind != Ident || toks[0].Text != name || !toks[1].Is("(") {
		return nil, false
	}
	if MatchClose(toks, 1) != len(toks)-1 {
		return nil, false
	}
	return toks[2 : len(toks)-1], true
}
