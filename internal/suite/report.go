package suite

import (
	"encoding/json"
	"fmt"
	"io"
)

// FormatText writes a human-readable run summary.
func FormatText(w io.Writer, report *Report) error {
	if _, err := fmt.Fprintf(w, "run %s (%d iterations, %s)\n", report.RunID, report.Iterations, report.Duration.Round(0)); err != nil {
		return err
	}

	for _, result := range report.Results {
		status := "PASS"
		if !result.Passed {
			status = "FAIL"
		}
		if _, err := fmt.Fprintf(w, "%s  %s (%s) matches=%d\n", status, result.Name, result.Query, result.Matches); err != nil {
			return err
		}
		for _, failure := range result.Failures {
			if _, err := fmt.Fprintf(w, "      %s\n", failure); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "%d passed, %d failed\n", report.Passed, report.Failed)
	return err
}

// FormatJSON writes the report as indented JSON.
func FormatJSON(w io.Writer, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
