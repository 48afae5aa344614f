// Package classify decides the severity of a legacy snack bar call from its styling.
package classify

import (
	"fmt"
	"strings"

	"github.com/SamuelMarks/snackbar-migrate/pkg/dart"
	"github.com/SamuelMarks/snackbar-migrate/pkg/match"
)

// Severity is the intended urgency of a notification.
type Severity int

const (
	// Info is a neutral notification.
	Info Severity = iota
	// Success confirms a completed action.
	Success
	// Error reports a failure.
	Error
	// Conditional means the styling itself branches on a condition.
	Conditional
	// Unclassified means no rule fired and the policy asks for manual review.
	Unclassified
)

// String returns the lower-case name of the severity.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Success:
		return "success"
	case Error:
		return "error"
	case Conditional:
		return "conditional"
	case Unclassified:
		return "unclassified"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// ParsePolicy maps the name of a default-severity policy to the severity used
// when no rule fires: "info" or "review".
func ParsePolicy(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return Info, nil
	case "review":
		return Unclassified, nil
	}
	return Info, fmt.Errorf("unknown unclassified policy %q (want info or review)", name)
}

// Options holds the styling vocabulary. Tokens are compared lower-case against
// the call's code with whitespace removed and string literals ignored.
type Options struct {
	ErrorTokens   []string
	SuccessTokens []string
	// ErrorMarkers are localized prefixes of string literals ("erreur:") that mark an error.
	ErrorMarkers []string
	// Default is the severity used when no rule fires.
	Default Severity
}

// DefaultOptions returns the vocabulary used by Flutter Material code.
func DefaultOptions() Options {
	return Options{
		ErrorTokens:   []string{"colors.red", "colorscheme.error"},
		SuccessTokens: []string{"colors.green"},
		ErrorMarkers:  []string{"erreur:", "error:"},
		Default:       Info,
	}
}

// Result is the outcome of classification.
type Result struct {
	Severity Severity
	// Condition is the rendered predicate of a Conditional result.
	Condition string
	// SuccessWhenTrue reports whether the success colour is the true branch.
	SuccessWhenTrue bool
}

// Classify applies the rules in precedence order:
//  1. error colour, error theme reference or error marker text -> Error
//  2. success colour -> Success
//  3. "<cond> ? <success> : <error>" styling -> Conditional
//  4. otherwise opts.Default
//
// Tokens of a recognised ternary are excluded from rules 1 and 2 so that the
// error colour of its else branch does not mask it.
func Classify(site match.CallSite, opts Options) Result {
	var cond ternary
	for _, a := range site.Args {
		if c, ok := parseTernary(a.Value, opts); ok {
			cond = c
			break
		}
	}

	rest := site.Tokens
	if cond.found {
		rest = without(site.Tokens, cond.start, cond.end)
	}

	compact := dart.Compact(rest)
	if containsAny(compact, opts.ErrorTokens) || hasMarker(rest, opts.ErrorMarkers) {
		return Result{Severity: Error}
	}
	if containsAny(compact, opts.SuccessTokens) {
		return Result{Severity: Success}
	}
	if cond.found {
		return Result{Severity: Conditional, Condition: cond.condition, SuccessWhenTrue: cond.successWhenTrue}
	}
	return Result{Severity: opts.Default}
}

type ternary struct {
	found           bool
	condition       string
	successWhenTrue bool
	start, end      int
}

// parseTernary recognises "<cond> ? <colour> : <colour>" where one branch is a
// success colour and the other an error colour. Enclosing parentheses are ignored.
func parseTernary(arg []dart.Token, opts Options) (ternary, bool) {
	toks := unwrap(arg)
	q, c := -1, -1
	depth := 0
	for i, t := range toks {
		if t.Kind != dart.Punct {
			continue
		}
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case "?":
			if depth == 0 && q < 0 {
				q = i
			}
		case ":":
			if depth == 0 && q >= 0 && c < 0 {
				c = i
			}
		}
	}
	if q <= 0 || c < 0 || c == q+1 || c == len(toks)-1 {
		return ternary{}, false
	}
	then := dart.Compact(toks[q+1 : c])
	els := dart.Compact(toks[c+1:])

	res := ternary{
		found:     true,
		condition: renderCondition(toks[:q]),
		start:     arg[0].Start,
		end:       arg[len(arg)-1].End,
	}
	switch {
	case containsAny(then, opts.SuccessTokens) && containsAny(els, opts.ErrorTokens):
		res.successWhenTrue = true
	case containsAny(then, opts.ErrorTokens) && containsAny(els, opts.SuccessTokens):
		res.successWhenTrue = false
	default:
		return ternary{}, false
	}
	return res, true
}

// unwrap strips every pair of parentheses enclosing the whole of toks.
func unwrap(toks []dart.Token) []dart.Token {
	for len(toks) >= 2 && toks[0].Is("(") && dart.MatchClose(toks, 0) == len(toks)-1 {
		toks = toks[1 : len(toks)-1]
	}
	return toks
}

// renderCondition prints the predicate, dropping one redundant pair of parentheses.
func renderCondition(toks []dart.Token) string {
	if len(toks) >= 2 && toks[0].Is("(") && dart.MatchClose(toks, 0) == len(toks)-1 {
		toks = toks[1 : len(toks)-1]
	}
	return dart.Render(toks)
}

// without returns the tokens lying outside the byte range [start, end).
func without(toks []dart.Token, start, end int) []dart.Token {
	out := make([]dart.Token, 0, len(toks))
	for _, t := range toks {
		if t.Start >= start && t.End <= end {
			continue
		}
		out = append(out, t)
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// hasMarker reports whether a string literal starts with one of the markers.
func hasMarker(toks []dart.Token, markers []string) bool {
	for _, t := range toks {
		body, ok := dart.Unquote(t)
		if !ok {
			continue
		}
		body = strings.ToLower(strings.TrimSpace(body))
		for _, m := range markers {
			if m != "" && strings.HasPrefix(body, strings.ToLower(m)) {
				return true
			}
		}
	}
	return false
}
