// Package formatter renders signature check reports for terminal output.
package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gnoverse/sigmatch"
	"github.com/gnoverse/sigmatch/source"
)

var (
	matchStyle    = color.New(color.FgGreen, color.Bold)
	mismatchStyle = color.New(color.FgRed, color.Bold)
	fileStyle     = color.New(color.FgCyan, color.Bold)
	lineStyle     = color.New(color.FgHiBlue, color.Bold)
	detailStyle   = color.New(color.FgYellow)
)

// Report is the outcome of checking one function against a shape.
type Report struct {
	Function source.Function `json:"function"`
	Shape    string          `json:"shape,omitempty"`
	Matched  bool            `json:"matched"`
	// Failed names the checks that rejected the function. Empty when
	// Matched is true.
	Failed []string `json:"failed,omitempty"`
}

// BuildReports checks every function against the matcher.
func BuildReports(m *sigmatch.Matcher, shape string, fns []source.Function) []Report {
	reports := make([]Report, 0, len(fns))
	for _, fn := range fns {
		reports = append(reports, buildReport(m, shape, fn))
	}
	return reports
}

func buildReport(m *sigmatch.Matcher, shape string, fn source.Function) Report {
	r := Report{Function: fn, Shape: shape, Matched: true}
	err := m.Check(fn.Sig)
	if err == nil {
		return r
	}

	r.Matched = false
	var mismatch *sigmatch.MismatchError
	if errors.As(err, &mismatch) {
		r.Failed = mismatch.Failed
	}
	return r
}

// Format renders reports one line per function, with the failed checks
// appended to mismatches.
func Format(reports []Report) string {
	var builder strings.Builder
	for _, r := range reports {
		verdict := matchStyle.Sprint("match")
		if !r.Matched {
			verdict = mismatchStyle.Sprint("mismatch")
		}

		builder.WriteString(fmt.Sprintf("%s:%s: %s: %s",
			fileStyle.Sprint(r.Function.File),
			lineStyle.Sprint(r.Function.Line),
			r.Function.Name,
			verdict))
		if len(r.Failed) > 0 {
			builder.WriteString(detailStyle.Sprintf(" (%s)", strings.Join(r.Failed, ", ")))
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

// Mismatches filters reports down to the functions that failed.
func Mismatches(reports []Report) []Report {
	var failed []Report
	for _, r := range reports {
		if !r.Matched {
			failed = append(failed, r)
		}
	}
	return failed
}
