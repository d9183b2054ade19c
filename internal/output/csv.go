package output

import (
	"encoding/csv"
	"strconv"
)

// CSVWriter writes transform reports as CSV.
type CSVWriter struct{}

// Write outputs the transform report as CSV.
func (w *CSVWriter) Write(report *TransformReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	writer := csv.NewWriter(out)

	roundTrip := report.Direction == DirectionRoundTrip

	headers := []string{"Index", "Source", "Input", "Output", "Clamp"}
	if roundTrip {
		headers = append(headers, "Restored", "AbsError")
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, item := range items {
		row := []string{
			strconv.Itoa(item.Index),
			item.Source,
			formatValue(item.Input),
			formatValue(item.Output),
			string(item.State),
		}
		if roundTrip {
			restored := ""
			if item.Restored != nil {
				restored = formatValue(*item.Restored)
			}
			row = append(row, restored, formatValue(absError(item)))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
