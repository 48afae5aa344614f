package dart

import (
	"reflect"
	"testing"
)

func texts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

// TestTokenize verifies token boundaries for the lexical forms the matcher relies on.
func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "CallChain",
			src:  "ScaffoldMessenger.of(context).showSnackBar(x);",
			want: []string{"ScaffoldMessenger", ".", "of", "(", "context", ")", ".", "showSnackBar", "(", "x", ")", ";"},
		},
		{
			name: "ParensInsideString",
			src:  `Text('a (b')`,
			want: []string{"Text", "(", `'a (b'`, ")"},
		},
		{
			name: "EscapedQuote",
			src:  `'it\'s'`,
			want: []string{`'it\'s'`},
		},
		{
			name: "Interpolation",
			src:  `"n: ${map['k'] ?? f(1)}" + x`,
			want: []string{`"n: ${map['k'] ?? f(1)}"`, "+", "x"},
		},
		{
			name: "NestedInterpolatedBraces",
			src:  `'${{'a': 1}['a']}'`,
			want: []string{`'${{'a': 1}['a']}'`},
		},
		{
			name: "RawString",
			src:  `r'\d+ ${x}' y`,
			want: []string{`r'\d+ ${x}'`, "y"},
		},
		{
			name: "TripleQuoted",
			src:  "'''one\n'two'\n''' z",
			want: []string{"'''one\n'two'\n'''", "z"},
		},
		{
			name: "Comments",
			src:  "a // ) ignored\n/* ( /* nested */ ) */ b",
			want: []string{"a", "b"},
		},
		{
			name: "Operators",
			src:  "a?.b ?? c ? d : e..f",
			want: []string{"a", "?.", "b", "??", "c", "?", "d", ":", "e", "..", "f"},
		},
		{
			name: "Numbers",
			src:  "1.5e-3 .5 0xFF",
			want: []string{"1.5e-3", ".5", "0xFF"},
		},
		{
			name: "UnterminatedString",
			src:  "'abc\nd",
			want: []string{"'abc", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(Tokenize(tt.src))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestTokenize_Offsets(t *testing.T) {
	src := "  foo /*c*/(bar)"
	toks := Tokenize(src)
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(toks))
	}
	for _, tok := range toks {
		if src[tok.Start:tok.End] != tok.Text {
			t.Errorf("offsets of %q do not slice the source: %q", tok.Text, src[tok.Start:tok.End])
		}
	}
	if !toks[0].Space || !toks[1].Space || toks[2].Space || toks[3].Space {
		t.Errorf("unexpected Space flags: %+v", toks)
	}
}

func TestMatchClose(t *testing.T) {
	tests := []struct {
		name string
		src  string
		open int
		want int
	}{
		{"Flat", "(a)", 0, 2},
		{"DeepNesting", "(a(b(c[d]{e}))) x", 0, 14},
		{"Unbalanced", "(a(b)", 0, -1},
		{"Mismatched", "(a]", 0, -1},
		{"NotAnOpener", "a(b)", 0, -1},
		{"OutOfRange", "()", 5, -1},
		{"ParenInString", "(')')", 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchClose(Tokenize(tt.src), tt.open); got != tt.want {
				t.Errorf("MatchClose(%q, %d) = %d, want %d", tt.src, tt.open, got, tt.want)
			}
		})
	}
}

func TestSplitArgs(t *testing.T) {
	toks := Tokenize("content: Text(a, b), backgroundColor: c ? d : e, f(g, h),")
	args := SplitArgs(toks)
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if args[0].Name != "content" || Render(args[0].Value) != "Text(a, b)" {
		t.Errorf("arg 0 = %q %q", args[0].Name, Render(args[0].Value))
	}
	if args[1].Name != "backgroundColor" || Render(args[1].Value) != "c ? d : e" {
		t.Errorf("arg 1 = %q %q", args[1].Name, Render(args[1].Value))
	}
	if args[2].Name != "" || Render(args[2].Value) != "f(g, h)" {
		t.Errorf("arg 2 = %q %q", args[2].Name, Render(args[2].Value))
	}

	if _, ok := Named(args, "backgroundColor"); !ok {
		t.Error("Named did not find backgroundColor")
	}
	if pos := Positional(args); len(pos) != 1 {
		t.Errorf("expected 1 positional arg, got %d", len(pos))
	}
}

func TestRender_CollapsesWhitespace(t *testing.T) {
	src := "'a' +\n      // note\n      b.c(\n d )"
	if got, want := Render(Tokenize(src)), "'a' + b.c( d )"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		src    string
		want   string
		wantOK bool
	}{
		{`'Saved'`, "Saved", true},
		{`"Erreur: "`, "Erreur: ", true},
		{`''`, "", true},
		{`r'\n'`, `\n`, true},
		{`'''x'''`, "x", true},
		{`'open`, "", false},
	}
	for _, tt := range tests {
		toks := Tokenize(tt.src)
		got, ok := Unquote(toks[0])
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Unquote(%s) = %q, %v; want %q, %v", tt.src, got, ok, tt.want, tt.wantOK)
		}
	}
	if _, ok := Unquote(Token{Kind: Ident, Text: "x"}); ok {
		t.Error("Unquote accepted an identifier")
	}
}

func TestConstruction(t *testing.T) {
	toks, isConst := StripQualifier(Tokenize("const Text('x', style: s)"))
	if !isConst {
		t.Error("expected const qualifier")
	}
	inner, ok := Construction(toks, "Text")
	if !ok {
		t.Fatal("expected Text construction")
	}
	if got := Render(inner); got != "'x', style: s" {
		t.Errorf("inner = %q", got)
	}
	if _, ok := Construction(Tokenize("Text('x') + y"), "Text"); ok {
		t.Error("trailing tokens must not count as a single construction")
	}
	if _, ok := Construction(Tokenize("Icon(x)"), "Text"); ok {
		t.Error("wrong constructor name accepted")
	}
}

func TestCompact(t *testing.T) {
	toks := Tokenize("Colors . Red, 'Colors.green'")
	if got := Compact(toks); got != "colors.red," {
		t.Errorf("Compact = %q", got)
	}
}
