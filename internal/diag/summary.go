package diag

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary formats a one-line, correctly-pluralized count of reports
// (e.g. "3 errors" vs "1 error"). No command of cmd/babelc prints it.
func Summary(reports []*Report) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d %s", len(reports), pluralize(len(reports), "error", "errors"))
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// Render renders a batch of reports as human-readable lines, one per
// report, in "phase/code: message (file:line:col)" form.
func Render(reports []*Report) string {
	var b strings.Builder
	for _, r := range reports {
		fmt.Fprintf(&b, "%s/%s: %s", r.Phase, r.Code, r.Message)
		if r.Pos != nil {
			fmt.Fprintf(&b, " (%s:%d:%d)", r.Pos.File, r.Pos.Line, r.Pos.Column)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
