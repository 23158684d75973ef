package payroll

import (
	"fmt"
	"time"

	"sitepay-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	mcfg "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// pdfTable - a landscape A4 report with the company header and a single
// table, the layout every export here shares.
type pdfTable struct {
	Company  string
	Title    string
	Subtitle string
	Widths   []int // column sizes, must sum to 12
	Headers  []string
	Rows     [][]string
	TotalRow []string
}

func buildPDF(t pdfTable) ([]byte, error) {
	cfg := mcfg.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		Build()
	m := maroto.New(cfg)

	m.AddRow(12, text.NewCol(12, t.Company, props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Center}))
	m.AddRow(8, text.NewCol(12, t.Title, props.Text{Size: 13, Style: fontstyle.Bold, Align: align.Center}))
	m.AddRow(6, text.NewCol(12, t.Subtitle, props.Text{Size: 10, Align: align.Center}))
	m.AddRow(4)

	headerCols := make([]core.Col, 0, len(t.Headers))
	for i, h := range t.Headers {
		headerCols = append(headerCols, text.NewCol(t.Widths[i], h,
			props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Center}))
	}
	m.AddRow(8, headerCols...)

	for _, row := range t.Rows {
		cols := make([]core.Col, 0, len(row))
		for i, cell := range row {
			cols = append(cols, text.NewCol(t.Widths[i], cell, props.Text{Size: 9, Align: align.Center}))
		}
		m.AddRow(6, cols...)
	}

	if len(t.TotalRow) > 0 {
		cols := make([]core.Col, 0, len(t.TotalRow))
		for i, cell := range t.TotalRow {
			cols = append(cols, text.NewCol(t.Widths[i], cell,
				props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center}))
		}
		m.AddRow(7, cols...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func sendPDF(c *fiber.Ctx, data []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

func inr(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}

// GET /api/payroll/weekly/export/pdf?start_date=...&end_date=...
func ExportWeeklyPDFHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := weekRange(c)
		if err != nil {
			return err
		}

		rows, err := buildPayroll(from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build payroll")
		}

		table := pdfTable{
			Company:  cfg.CompanyName,
			Title:    "Weekly Payroll Report",
			Subtitle: fmt.Sprintf("Period: %s to %s", from.Format("2006-01-02"), to.Format("2006-01-02")),
			Widths:   []int{1, 2, 2, 1, 1, 2, 1, 2},
			Headers:  []string{"ID", "Name", "Role", "Days", "Daily Salary", "Gross", "Advance", "Net Salary"},
		}

		total := 0.0
		for _, r := range rows {
			total += r.NetSalary
			table.Rows = append(table.Rows, []string{
				fmt.Sprint(r.EmployeeID), r.EmployeeName, r.EmployeeRole,
				fmt.Sprint(r.PresentDays), inr(r.DailySalary), inr(r.GrossSalary),
				inr(r.TotalAdvance), inr(r.NetSalary),
			})
		}
		table.TotalRow = []string{"", "", "", "", "", "", "TOTAL:", inr(total)}

		data, err := buildPDF(table)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build PDF")
		}

		filename := fmt.Sprintf("weekly_payroll_%s_to_%s.pdf", from.Format("2006-01-02"), to.Format("2006-01-02"))
		return sendPDF(c, data, filename)
	}
}

// GET /api/payroll/monthly/export/pdf?year=2025&month=12
func ExportMonthlyPDFHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, month, firstDay, lastDay, err := monthRange(c)
		if err != nil {
			return err
		}

		rows, err := buildPayroll(firstDay, lastDay)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build monthly report")
		}

		table := pdfTable{
			Company:  cfg.CompanyName,
			Title:    "Monthly Salary Report",
			Subtitle: fmt.Sprintf("Month: %s %d", time.Month(month).String(), year),
			Widths:   []int{1, 3, 2, 1, 2, 2, 1},
			Headers:  []string{"ID", "Name", "Role", "Days", "Gross Salary", "Advance", "Net Paid"},
		}

		var totalSalary, totalAdvance, totalNet float64
		for _, r := range rows {
			totalSalary += r.GrossSalary
			totalAdvance += r.TotalAdvance
			totalNet += r.NetSalary
			table.Rows = append(table.Rows, []string{
				fmt.Sprint(r.EmployeeID), r.EmployeeName, r.EmployeeRole,
				fmt.Sprint(r.PresentDays), inr(r.GrossSalary), inr(r.TotalAdvance), inr(r.NetSalary),
			})
		}
		table.TotalRow = []string{"", "", "", "TOTAL:", inr(totalSalary), inr(totalAdvance), inr(totalNet)}

		data, err := buildPDF(table)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build PDF")
		}

		filename := fmt.Sprintf("monthly_report_%02d_%d.pdf", month, year)
		return sendPDF(c, data, filename)
	}
}
