package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVFormatter writes one row per projected year.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Age", "Phase", "TotalAssets", "AnnualIncome", "AnnualExpenses", "Status"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, y := range report.Result.Projections {
		phase := "accumulation"
		if y.IsRetired() {
			phase = "retirement"
		}
		row := []string{
			report.Scenario.Name,
			strconv.Itoa(y.Age),
			phase,
			y.TotalAssets.StringFixed(2),
			y.AnnualIncome.StringFixed(2),
			y.AnnualExpenses.StringFixed(2),
			string(y.Status),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
