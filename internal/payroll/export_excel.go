package payroll

import (
	"fmt"
	"time"

	"sitepay-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// sheetStyles: title/header/currency styles shared by the payroll workbooks.
type sheetStyles struct {
	title    int
	subtitle int
	header   int
	currency int
	bold     int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, err
	}
	if s.subtitle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, err
	}
	currencyFmt := `"₹"#,##0.00`
	if s.currency, err = f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt}); err != nil {
		return s, err
	}
	if s.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, err
	}
	return s, nil
}

func sendWorkbook(c *fiber.Ctx, f *excelize.File, filename string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not write workbook")
	}
	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}

// GET /api/payroll/weekly/export/excel?start_date=...&end_date=...
func ExportWeeklyExcelHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := weekRange(c)
		if err != nil {
			return err
		}

		rows, err := buildPayroll(from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build payroll")
		}

		f := excelize.NewFile()
		defer f.Close()
		sheet := "Weekly Payroll"
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
		}

		styles, err := newSheetStyles(f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
		}

		f.MergeCell(sheet, "A1", "H1")
		f.SetCellValue(sheet, "A1", cfg.CompanyName)
		f.SetCellStyle(sheet, "A1", "H1", styles.title)

		f.MergeCell(sheet, "A2", "H2")
		f.SetCellValue(sheet, "A2", "Weekly Payroll Report")
		f.SetCellStyle(sheet, "A2", "H2", styles.subtitle)

		f.MergeCell(sheet, "A3", "H3")
		f.SetCellValue(sheet, "A3", fmt.Sprintf("Period: %s to %s", from.Format("2006-01-02"), to.Format("2006-01-02")))

		headers := []interface{}{"Employee ID", "Name", "Role", "Present Days", "Daily Salary", "Gross Salary", "Advance", "Net Salary"}
		f.SetSheetRow(sheet, "A5", &headers)
		f.SetCellStyle(sheet, "A5", "H5", styles.header)

		total := 0.0
		rowNum := 6
		for _, r := range rows {
			total += r.NetSalary
			f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &[]interface{}{
				r.EmployeeID, r.EmployeeName, r.EmployeeRole, r.PresentDays,
				r.DailySalary, r.GrossSalary, r.TotalAdvance, r.NetSalary,
			})
			rowNum++
		}

		totalRow := rowNum + 1
		f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "TOTAL")
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("A%d", totalRow), styles.bold)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", totalRow), total)
		f.SetCellStyle(sheet, fmt.Sprintf("H%d", totalRow), fmt.Sprintf("H%d", totalRow), styles.bold)

		f.SetCellStyle(sheet, "E6", fmt.Sprintf("H%d", totalRow), styles.currency)
		f.SetColWidth(sheet, "A", "A", 12)
		f.SetColWidth(sheet, "B", "B", 20)
		f.SetColWidth(sheet, "C", "C", 15)
		f.SetColWidth(sheet, "D", "H", 12)

		filename := fmt.Sprintf("weekly_payroll_%s_to_%s.xlsx", from.Format("2006-01-02"), to.Format("2006-01-02"))
		return sendWorkbook(c, f, filename)
	}
}

// GET /api/payroll/monthly/export/excel?year=2025&month=12
func ExportMonthlyExcelHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, month, firstDay, lastDay, err := monthRange(c)
		if err != nil {
			return err
		}

		rows, err := buildPayroll(firstDay, lastDay)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build monthly report")
		}

		f := excelize.NewFile()
		defer f.Close()
		sheet := "Monthly Report"
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
		}

		styles, err := newSheetStyles(f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
		}

		f.MergeCell(sheet, "A1", "G1")
		f.SetCellValue(sheet, "A1", cfg.CompanyName)
		f.SetCellStyle(sheet, "A1", "G1", styles.title)

		f.MergeCell(sheet, "A2", "G2")
		f.SetCellValue(sheet, "A2", "Monthly Salary Report")
		f.SetCellStyle(sheet, "A2", "G2", styles.subtitle)

		f.MergeCell(sheet, "A3", "G3")
		f.SetCellValue(sheet, "A3", fmt.Sprintf("Month: %s %d", time.Month(month).String(), year))

		headers := []interface{}{"Employee ID", "Name", "Role", "Days Worked", "Gross Salary", "Advance", "Net Paid"}
		f.SetSheetRow(sheet, "A5", &headers)
		f.SetCellStyle(sheet, "A5", "G5", styles.header)

		var totalSalary, totalAdvance, totalNet float64
		rowNum := 6
		for _, r := range rows {
			totalSalary += r.GrossSalary
			totalAdvance += r.TotalAdvance
			totalNet += r.NetSalary
			f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &[]interface{}{
				r.EmployeeID, r.EmployeeName, r.EmployeeRole, r.PresentDays,
				r.GrossSalary, r.TotalAdvance, r.NetSalary,
			})
			rowNum++
		}

		totalRow := rowNum + 1
		f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "TOTAL")
		f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), totalSalary)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", totalRow), totalAdvance)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", totalRow), totalNet)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("G%d", totalRow), styles.bold)

		f.SetCellStyle(sheet, "E6", fmt.Sprintf("G%d", totalRow), styles.currency)
		f.SetColWidth(sheet, "A", "A", 12)
		f.SetColWidth(sheet, "B", "B", 20)
		f.SetColWidth(sheet, "C", "C", 15)
		f.SetColWidth(sheet, "D", "D", 12)
		f.SetColWidth(sheet, "E", "G", 15)

		filename := fmt.Sprintf("monthly_report_%02d_%d.xlsx", month, year)
		return sendWorkbook(c, f, filename)
	}
}
