package driver

import (
	"fmt"

	"loom/compiler-go/pkg/semantics"
)

// Describe formats one diagnostic for CLI output, anchored at the module's
// file path.
func Describe(path string, d semantics.Diagnostic) string {
	pos := d.Pos()
	if pos.Line == 0 {
		return fmt.Sprintf("%s: %s: %s [%s]", path, d.Severity, d.Message, d.Code)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s [%s]", path, pos.Line, pos.Column, d.Severity, d.Message, d.Code)
}

// Summarize counts errors and warnings across a set of results.
func Summarize(results []*Result) (errors, warnings int) {
	for _, r := range results {
		for _, d := range r.Diagnostics {
			switch d.Severity {
			case semantics.SeverityError:
				errors++
			case semantics.SeverityWarning:
				warnings++
			}
		}
	}
	return errors, warnings
}
