// Package report renders allocation results as a console table, a CSV file
// and an optional XLSX workbook. It is a pure formatting layer: by the time
// data reaches it, the bill has been validated and the split computed.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"billsplit/internal/bill"
	"billsplit/internal/directory"
	"billsplit/internal/split"
	"billsplit/pkg/money"
)

// Row is one output line of the report. Account-level charges never appear
// as a row; they are already folded into every line's shared portion.
type Row struct {
	Name              string `csv:"Name"`
	PhoneNumber       string `csv:"Phone Number"`
	SharedPlanPortion string `csv:"Shared Plan Portion"`
	LineServices      string `csv:"Line-Specific Services"`
	TotalOwed         string `csv:"Total Owed"`
}

// Report is a fully formatted bill split, ready to write.
type Report struct {
	BillDate   string
	BillTotal  money.Money
	Carrier    string
	Rows       []Row
	GrandTotal money.Money
}

// Build resolves names and rounds every amount to display precision.
// Row order follows the share order, which follows the source bill.
func Build(b *bill.Bill, shares []split.Share, dir directory.Directory, carrierName string) *Report {
	r := &Report{
		BillDate:  b.Date,
		BillTotal: money.FromDecimal(b.TotalDue),
		Carrier:   carrierName,
		Rows:      make([]Row, 0, len(shares)),
	}

	for _, s := range shares {
		owed := money.FromDecimal(s.TotalOwed)
		r.Rows = append(r.Rows, Row{
			Name:              dir.NameFor(s.Key),
			PhoneNumber:       s.Key,
			SharedPlanPortion: money.FromDecimal(s.SharedPlanPortion).Display(),
			LineServices:      money.FromDecimal(s.LineServices).Display(),
			TotalOwed:         owed.Display(),
		})
		r.GrandTotal = r.GrandTotal.Add(owed)
	}
	return r
}

// ConsoleText renders the fixed-width breakdown table with a grand-total
// line.
func (r *Report) ConsoleText() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Bill Date: %s (%s)\n", r.BillDate, r.Carrier)
	fmt.Fprintf(&sb, "Grand Total from Bill: %s\n", r.BillTotal.Display())
	sb.WriteString("\nPer-Line Breakdown:\n")

	fmt.Fprintf(&sb, "%-20s %-18s %14s %14s %14s\n",
		"Name", "Phone Number", "Shared Plans", "Services", "Total Owed")
	sb.WriteString(strings.Repeat("-", 84) + "\n")

	for _, row := range r.Rows {
		fmt.Fprintf(&sb, "%-20s %-18s %14s %14s %14s\n",
			row.Name, row.PhoneNumber, row.SharedPlanPortion, row.LineServices, row.TotalOwed)
	}

	sb.WriteString(strings.Repeat("-", 84) + "\n")
	fmt.Fprintf(&sb, "%-20s %-18s %14s %14s %14s\n",
		"TOTAL", "", "", "", r.GrandTotal.Display())

	return sb.String()
}

// WriteCSV writes the rows with the canonical header to path.
func (r *Report) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.Marshal(&r.Rows, f); err != nil {
		return fmt.Errorf("write csv %s: %w", path, err)
	}
	return nil
}

const xlsxSheet = "Split"

// WriteXLSX writes the same table as the CSV into a single-sheet workbook,
// with the bill date and grand total above the rows.
func (r *Report) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("write xlsx %s: %w", path, err)
	}

	rows := [][]any{
		{"Bill Date", r.BillDate},
		{"Carrier", r.Carrier},
		{"Grand Total from Bill", r.BillTotal.Display()},
		{},
		{"Name", "Phone Number", "Shared Plan Portion", "Line-Specific Services", "Total Owed"},
	}
	for _, row := range r.Rows {
		rows = append(rows, []any{row.Name, row.PhoneNumber, row.SharedPlanPortion, row.LineServices, row.TotalOwed})
	}
	rows = append(rows, []any{"TOTAL", "", "", "", r.GrandTotal.Display()})

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("write xlsx %s: %w", path, err)
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("write xlsx %s: %w", path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write xlsx %s: %w", path, err)
	}
	return nil
}
