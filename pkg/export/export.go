// Package export serializes bulk assignment results for hand-off to office
// tooling.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/fieldcrew/dispatch/core/dispatch"
)

// WriteJSON writes the bulk result to w in JSON format.
func WriteJSON(w io.Writer, res dispatch.BulkResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteCSV writes the committed assignments to w in CSV format. Failed jobs
// are appended with an empty technician column and the failure reason.
func WriteCSV(w io.Writer, res dispatch.BulkResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"job_id", "technician_id", "start", "score", "reason"}); err != nil {
		return err
	}
	for _, a := range res.Successful {
		rec := []string{
			a.JobID,
			a.TechnicianID,
			a.Start.Format(time.RFC3339),
			strconv.Itoa(a.Score),
			"",
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	for _, f := range res.Failed {
		if err := cw.Write([]string{f.JobID, "", "", "", f.Reason}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
