package export

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/finplan/internal/money"
)

var (
	scheduleHeader = []string{"segment", "start_month", "end_month", "months", "monthly_obligation", "active_credits"}
	creditsHeader  = []string{"id", "category", "lender", "principal", "rate_percent", "term_months", "monthly_payment", "total_payment"}
)

func WriteScheduleCSV(w io.Writer, doc *Document) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(scheduleHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, seg := range doc.Snapshot.Schedule {
		ids := make([]string, len(seg.ActiveCreditIDs))
		for j, id := range seg.ActiveCreditIDs {
			ids[j] = id.String()
		}

		record := []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(seg.StartMonth),
			strconv.Itoa(seg.EndMonth),
			strconv.Itoa(seg.Months()),
			money.Format(seg.MonthlyObligation),
			strings.Join(ids, " "),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing segment %d: %w", i+1, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func WriteCreditsCSV(w io.Writer, doc *Document) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(creditsHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, c := range doc.Snapshot.Plan.Credits() {
		record := []string{
			c.ID.String(),
			string(c.Category),
			doc.lenderName(c.LenderID),
			money.Format(c.Principal),
			c.RatePercent.String(),
			strconv.Itoa(c.TermMonths),
			money.Format(c.MonthlyPayment),
			money.Format(c.TotalPayment),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing credit %s: %w", c.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteArchive writes a zip holding the schedule, the credits and the summary.
func WriteArchive(w io.Writer, doc *Document) error {
	zw := zip.NewWriter(w)

	entries := []struct {
		name  string
		write func(io.Writer, *Document) error
	}{
		{name: "schedule.csv", write: WriteScheduleCSV},
		{name: "credits.csv", write: WriteCreditsCSV},
		{name: "summary.txt", write: func(w io.Writer, d *Document) error {
			_, err := io.WriteString(w, GenerateSummary(d))
			return err
		}},
	}

	for _, e := range entries {
		f, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", e.name, err)
		}

		if err := e.write(f, doc); err != nil {
			return fmt.Errorf("writing %s: %w", e.name, err)
		}
	}

	return zw.Close()
}
