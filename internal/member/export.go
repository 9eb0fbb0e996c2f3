package member

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// utf8BOM makes spreadsheet tools pick up the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type CSVExporter interface {
	WriteCSV(ctx context.Context, gymID int, w io.Writer) error
}

// ExportFilename returns the date-stamped download name for the member export.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("members_%s.csv", now.Format("2006-01-02"))
}

// WriteCSV flattens the member list. encoding/csv quotes fields containing
// commas, quotes or newlines, which is exactly the escaping the export needs.
func (s *service) WriteCSV(ctx context.Context, gymID int, w io.Writer) error {
	members, err := s.repo.ListByGym(ctx, gymID)
	if err != nil {
		return err
	}

	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"Name", "Phone", "Date of Birth", "Plan", "Start Date", "End Date", "Amount", "Status", "Services",
	}); err != nil {
		return err
	}

	today := time.Now()
	for _, m := range members {
		dob := ""
		if m.DOB != nil {
			dob = m.DOB.Format("2006-01-02")
		}

		names := make([]string, 0, len(m.Services))
		for _, svc := range m.Services {
			names = append(names, svc.ServiceName)
		}

		record := []string{
			m.Name,
			m.Phone,
			dob,
			string(m.PlanType),
			m.StartDate.Format("2006-01-02"),
			m.EndDate.Format("2006-01-02"),
			fmt.Sprintf("%.2f", m.Amount),
			string(MemberStatus(&m.Member, today)),
			strings.Join(names, "; "),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
