// Package extract isolates the message expression of a legacy snack bar call.
package extract

import (
	"strings"

	"github.com/SamuelMarks/snackbar-migrate/pkg/dart"
	"github.com/SamuelMarks/snackbar-migrate/pkg/match"
)

// Options configures message extraction.
type Options struct {
	// ContentArg is the widget argument holding the message widget.
	ContentArg string
	// TextWidget is the constructor wrapping the message expression.
	TextWidget string
	// Prefixes are localized labels ("Erreur", "Error") that legacy code
	// concatenated in front of error messages. Matched case-insensitively,
	// followed by a colon.
	Prefixes []string
	// CleanupMethod and CleanupLabel describe the caller-side cleanup
	// "<expr>.replaceAll('Exception: ', '')" that is dropped from messages.
	CleanupMethod string
	CleanupLabel  string
}

// DefaultOptions returns the options matching Flutter SnackBar code.
func DefaultOptions() Options {
	return Options{
		ContentArg:    "content",
		TextWidget:    "Text",
		Prefixes:      []string{"Erreur", "Error"},
		CleanupMethod: "replaceAll",
		CleanupLabel:  "Exception:",
	}
}

// Message returns the message expression of site as single-line source text.
// It returns false when no message can be isolated; callers must then leave the site untouched.
func Message(site match.CallSite, opts Options) (string, bool) {
	toks, ok := Tokens(site, opts)
	if !ok {
		return "", false
	}
	return dart.Render(toks), true
}

// Tokens is like Message but returns the normalized tokens.
func Tokens(site match.CallSite, opts Options) ([]dart.Token, bool) {
	content, ok := dart.Named(site.Args, opts.ContentArg)
	if !ok {
		return nil, false
	}
	widget, _ := dart.StripQualifier(content.Value)
	inner, ok := dart.Construction(widget, opts.TextWidget)
	if !ok {
		return nil, false
	}
	// Text takes exactly one positional argument. More than one means the
	// splitter cut through a type argument list such as get<K, V>(k).
	positional := dart.Positional(dart.SplitArgs(inner))
	if len(positional) != 1 {
		return nil, false
	}
	msg := stripPrefix(positional[0].Value, opts.Prefixes)
	msg = stripCleanup(msg, opts)
	if len(msg) == 0 {
		return nil, false
	}
	return msg, true
}

// stripPrefix removes a leading "'<Prefix>: ' +" concatenation.
func stripPrefix(toks []dart.Token, prefixes []string) []dart.Token {
	if len(toks) < 3 || !toks[1].Is("+") {
		return toks
	}
	body, ok := dart.Unquote(toks[0])
	if !ok || !IsLabel(body, prefixes) {
		return toks
	}
	return toks[2:]
}

// IsLabel reports whether s is exactly one of the prefixes followed by a colon,
// ignoring case and surrounding blanks.
func IsLabel(s string, prefixes []string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, ":") {
		return false
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, ":"))
	for _, p := range prefixes {
		if strings.EqualFold(s, p) {
			return true
		}
	}
	return false
}

// stripCleanup drops every ".replaceAll('Exception: ', '')" call.
func stripCleanup(toks []dart.Token, opts Options) []dart.Token {
	if opts.CleanupMethod == "" {
		return toks
	}
	out := make([]dart.Token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		if end, ok := cleanupAt(toks, i, opts); ok {
			i = end
			continue
		}
		out = append(out, toks[i])
	}
	return out
}

// cleanupAt reports whether a cleanup call starts at toks[i] and returns the index of its ')'.
func cleanupAt(toks []dart.Token, i int, opts Options) (int, bool) {
	if i+2 >= len(toks) || !toks[i].Is(".") || !toks[i+1].Is(opts.CleanupMethod) || !toks[i+2].Is("(") {
		return 0, false
	}
	end := dart.MatchClose(toks, i+2)
	if end < 0 {
		return 0, false
	}
	args := dart.SplitArgs(toks[i+3 : end])
	if len(args) != 2 || args[0].Name != "" || args[1].Name != "" || len(args[0].Value) != 1 || len(args[1].Value) != 1 {
		return 0, false
	}
	from, ok1 := dart.Unquote(args[0].Value[0])
	to, ok2 := dart.Unquote(args[1].Value[0])
	if !ok1 || !ok2 || to != "" || strings.TrimSpace(from) != opts.CleanupLabel {
		return 0, false
	}
	return end, true
}
