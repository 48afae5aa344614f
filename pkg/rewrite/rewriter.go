// Package rewrite turns a classified legacy call into calls of the notification helper.
package rewrite

import (
	"regexp"
	"strings"

	"github.com/SamuelMarks/snackbar-migrate/pkg/classify"
	"github.com/SamuelMarks/snackbar-migrate/pkg/match"
)

// Options configures the generated code.
type Options struct {
	// Helper is the class exposing the notification operations.
	Helper string
	// SuccessMethod, ErrorMethod and InfoMethod name the helper operations.
	SuccessMethod string
	ErrorMethod   string
	InfoMethod    string
	// Template renders one call; see DefaultTemplate.
	Template string
	// Indent is the number of spaces a block adds to its enclosing line.
	Indent int
}

// DefaultOptions targets NotificationService with two-space Dart indentation.
func DefaultOptions() Options {
	return Options{
		Helper:        "NotificationService",
		SuccessMethod: "showSuccess",
		ErrorMethod:   "showError",
		InfoMethod:    "showInfo",
		Template:      DefaultTemplate,
		Indent:        2,
	}
}

// Rewriter renders replacement text for call sites.
type Rewriter struct {
	opts Options
}

// New creates a Rewriter.
func New(opts Options) *Rewriter {
	if opts.Template == "" {
		opts.Template = DefaultTemplate
	}
	return &Rewriter{opts: opts}
}

// Method returns the helper operation for a single-call severity.
func (r *Rewriter) Method(sev classify.Severity) (string, bool) {
	switch sev {
	case classify.Success:
		return r.opts.SuccessMethod, true
	case classify.Error:
		return r.opts.ErrorMethod, true
	case classify.Info:
		return r.opts.InfoMethod, true
	}
	return "", false
}

// Replace returns the text that replaces site.Text.
// It returns false for Unclassified results, which must stay untouched.
func (r *Rewriter) Replace(site match.CallSite, message string, res classify.Result) (string, bool) {
	if message == "" {
		return "", false
	}
	if res.Severity == classify.Conditional {
		return r.branch(site, message, res), true
	}
	method, ok := r.Method(res.Severity)
	if !ok {
		return "", false
	}
	return r.call(site, method, message), true
}

func (r *Rewriter) call(site match.CallSite, method, message string) string {
	ctx := site.Context
	if ctx == "" {
		ctx = "context"
	}
	return applyTemplate(r.opts.Template, r.opts.Helper, method, ctx, message)
}

// branch renders
//
//	if (cond) {
//	  Helper.showSuccess(ctx, msg);
//	} else {
//	  Helper.showError(ctx, msg);
//	}
//
// indented relative to the line the call started on. The success call is
// always in the if branch; a mirrored ternary has its condition negated.
func (r *Rewriter) branch(site match.CallSite, message string, res classify.Result) string {
	cond := res.Condition
	if !res.SuccessWhenTrue {
		cond = Negate(cond)
	}
	nl := site.Newline
	if nl == "" {
		nl = "\n"
	}
	inner := site.Indent + strings.Repeat(" ", r.opts.Indent)

	var b strings.Builder
	b.WriteString("if (" + cond + ") {" + nl)
	b.WriteString(inner + r.call(site, r.opts.SuccessMethod, message) + nl)
	b.WriteString(site.Indent + "} else {" + nl)
	b.WriteString(inner + r.call(site, r.opts.ErrorMethod, message) + nl)
	b.WriteString(site.Indent + "}")
	return b.String()
}

var simpleOperand = regexp.MustCompile(`^[A-Za-z_$][\w$]*(\??\.[A-Za-z_$][\w$]*)*$`)

// Negate returns the logical negation of a Dart boolean expression.
func Negate(cond string) string {
	cond = strings.TrimSpace(cond)
	if strings.HasPrefix(cond, "!") && simpleOperand.MatchString(cond[1:]) {
		return cond[1:]
	}
	if simpleOperand.MatchString(cond) {
		return "!" + cond
	}
	return "!(" + cond + ")"
}
