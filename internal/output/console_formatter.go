package output

import (
	"bytes"
	"fmt"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	sum := report.Summarize()

	fmt.Fprintf(&buf, "%s: Score=%d FundsEnd=%d Retire=%d\n",
		report.Scenario.Name, sum.ReadinessScore, sum.FundsEndAge, sum.RetirementAge)
	fmt.Fprintf(&buf, "  AtRetirement=%s Peak=%s Final=%s\n",
		FormatCurrency(sum.AssetsAtRetirement), FormatCurrency(sum.PeakAssets), FormatCurrency(sum.FinalAssets))
	fmt.Fprintf(&buf, "  %s\n", Verdict(sum.ReadinessScore))
	return buf.Bytes(), nil
}
