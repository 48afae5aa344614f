package rewrite

import (
	"fmt"
	"strings"
)

// DefaultTemplate renders one helper call.
const DefaultTemplate = "{helper}.{method}({context}, {message});"

// placeholders recognised in call templates.
var placeholders = []string{"{helper}", "{method}", "{context}", "{message}"}

// ValidateTemplate checks that tmpl can render a call that keeps the message.
func ValidateTemplate(tmpl string) error {
	if !strings.Contains(tmpl, "{message}") {
		return fmt.Errorf("template %q must reference {message}", tmpl)
	}
	if !strings.Contains(tmpl, "{method}") {
		return fmt.Errorf("template %q must reference {method}", tmpl)
	}
	if strings.Count(tmpl, "(") != strings.Count(tmpl, ")") {
		return fmt.Errorf("template %q has unbalanced parentheses", tmpl)
	}
	return nil
}

// applyTemplate substitutes the placeholders in a single pass, so text coming
// from the message is never expanded again.
func applyTemplate(tmpl, helper, method, context, message string) string {
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	values := []string{helper, method, context, message}
	pairs := make([]string, 0, 2*len(placeholders))
	for i, p := range placeholders {
		pairs = append(pairs, p, values[i])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
