package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/readiness/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"pct":    FormatPercentage,
	"status": statusClass,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*Report
		Summary Summary
		Verdict string
	}{report, report.Summarize(), Verdict(report.Result.ReadinessScore)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func statusClass(s domain.Status) string {
	switch s {
	case domain.StatusWarning:
		return "warning"
	case domain.StatusCritical:
		return "critical"
	}
	return "ok"
}
