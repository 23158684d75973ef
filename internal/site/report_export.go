package site

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
	"github.com/xuri/excelize/v2"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func inr(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}

// GET /api/sites/:id/report/export/excel
func ExportSiteReportExcelHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		d, err := loadSiteReport(id)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Site not found")
		}

		f := excelize.NewFile()
		defer f.Close()
		sheet := "Site Report"
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
		}

		titleStyle, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 16},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
		}
		subtitleStyle, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 12},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
		}
		headerStyle, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
		}
		currencyFmt := `"₹"#,##0.00`
		currencyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
		}
		boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
		}

		f.MergeCell(sheet, "A1", "I1")
		f.SetCellValue(sheet, "A1", cfg.CompanyName)
		f.SetCellStyle(sheet, "A1", "I1", titleStyle)

		f.MergeCell(sheet, "A2", "I2")
		f.SetCellValue(sheet, "A2", fmt.Sprintf("Site Report - %s", d.Site.SiteName))
		f.SetCellStyle(sheet, "A2", "I2", subtitleStyle)

		f.MergeCell(sheet, "A3", "I3")
		f.SetCellValue(sheet, "A3", fmt.Sprintf("Location: %s | Status: %s | Generated: %s",
			d.Site.Location, d.Site.Status, time.Now().Format("2006-01-02")))

		row := 5

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Materials")
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), boldStyle)
		row++

		matHeaders := []interface{}{"Material", "Category", "Qty", "Unit", "Rate", "Total Cost", "Paid", "Balance", "Status"}
		f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &matHeaders)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("I%d", row), headerStyle)
		row++

		matStart := row
		for _, m := range d.Materials {
			f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &[]interface{}{
				m.MaterialName, m.Category.Name, m.Quantity, m.Unit,
				m.RatePerUnit, m.TotalCost, m.AmountPaid, m.AmountBalance, string(m.PaymentStatus),
			})
			row++
		}
		if row > matStart {
			f.SetCellStyle(sheet, fmt.Sprintf("E%d", matStart), fmt.Sprintf("H%d", row-1), currencyStyle)
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "TOTAL")
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), d.Summary.TotalMaterialCost)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), d.Summary.TotalMaterialPaid)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), d.Summary.TotalMaterialBalance)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("I%d", row), boldStyle)
		f.SetCellStyle(sheet, fmt.Sprintf("F%d", row), fmt.Sprintf("H%d", row), currencyStyle)
		row += 2

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Expenses")
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), boldStyle)
		row++

		expHeaders := []interface{}{"Date", "Type", "Description", "Paid To", "Mode", "Amount"}
		f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &expHeaders)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), headerStyle)
		row++

		expStart := row
		for _, e := range d.Expenses {
			f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &[]interface{}{
				e.ExpenseDate.Format("2006-01-02"), e.ExpenseType, e.Description,
				e.PaidTo, e.PaymentMode, e.Amount,
			})
			row++
		}
		if row > expStart {
			f.SetCellStyle(sheet, fmt.Sprintf("F%d", expStart), fmt.Sprintf("F%d", row-1), currencyStyle)
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "TOTAL")
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), d.Summary.TotalExpenses)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), boldStyle)
		f.SetCellStyle(sheet, fmt.Sprintf("F%d", row), fmt.Sprintf("F%d", row), currencyStyle)

		f.SetColWidth(sheet, "A", "B", 20)
		f.SetColWidth(sheet, "C", "E", 12)
		f.SetColWidth(sheet, "F", "H", 15)
		f.SetColWidth(sheet, "I", "I", 12)

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not write workbook")
		}
		c.Set(fiber.HeaderContentType, xlsxMIME)
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="site_report_%d.xlsx"`, d.Site.ID))
		return c.Send(buf.Bytes())
	}
}

// GET /api/sites/:id/report/export/pdf
func ExportSiteReportPDFHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		d, err := loadSiteReport(id)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Site not found")
		}

		pcfg := mcfg.NewBuilder().
			WithPageSize(pagesize.A4).
			WithOrientation(orientation.Horizontal).
			Build()
		m := maroto.New(pcfg)

		m.AddRow(12, text.NewCol(12, cfg.CompanyName,
			props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Center}))
		m.AddRow(8, text.NewCol(12, fmt.Sprintf("Site Report - %s", d.Site.SiteName),
			props.Text{Size: 13, Style: fontstyle.Bold, Align: align.Center}))
		m.AddRow(6, text.NewCol(12, fmt.Sprintf("Location: %s | Status: %s | Generated: %s",
			d.Site.Location, d.Site.Status, time.Now().Format("2006-01-02")),
			props.Text{Size: 10, Align: align.Center}))
		m.AddRow(4)

		matWidths := []int{3, 2, 1, 1, 1, 1, 1, 1, 1}
		addTable(m, "Materials", matWidths,
			[]string{"Material", "Category", "Qty", "Unit", "Rate", "Total", "Paid", "Balance", "Status"},
			func() [][]string {
				rows := make([][]string, 0, len(d.Materials))
				for _, mat := range d.Materials {
					rows = append(rows, []string{
						mat.MaterialName, mat.Category.Name,
						fmt.Sprint(mat.Quantity), mat.Unit, inr(mat.RatePerUnit),
						inr(mat.TotalCost), inr(mat.AmountPaid), inr(mat.AmountBalance),
						string(mat.PaymentStatus),
					})
				}
				return rows
			}(),
			[]string{"TOTAL", "", "", "", "", inr(d.Summary.TotalMaterialCost),
				inr(d.Summary.TotalMaterialPaid), inr(d.Summary.TotalMaterialBalance), ""})

		m.AddRow(4)

		expWidths := []int{2, 2, 4, 2, 1, 1}
		addTable(m, "Expenses", expWidths,
			[]string{"Date", "Type", "Description", "Paid To", "Mode", "Amount"},
			func() [][]string {
				rows := make([][]string, 0, len(d.Expenses))
				for _, e := range d.Expenses {
					rows = append(rows, []string{
						e.ExpenseDate.Format("2006-01-02"), e.ExpenseType, e.Description,
						e.PaidTo, e.PaymentMode, inr(e.Amount),
					})
				}
				return rows
			}(),
			[]string{"TOTAL", "", "", "", "", inr(d.Summary.TotalExpenses)})

		doc, err := m.Generate()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build PDF")
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="site_report_%d.pdf"`, d.Site.ID))
		return c.Send(doc.GetBytes())
	}
}

// addTable: section label, bold header row, data rows, bold total row.
func addTable(m core.Maroto, label string, widths []int, headers []string, rows [][]string, totalRow []string) {
	m.AddRow(7, text.NewCol(12, label, props.Text{Size: 11, Style: fontstyle.Bold}))

	headerCols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		headerCols = append(headerCols, text.NewCol(widths[i], h,
			props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Center}))
	}
	m.AddRow(8, headerCols...)

	for _, row := range rows {
		cols := make([]core.Col, 0, len(row))
		for i, cell := range row {
			cols = append(cols, text.NewCol(widths[i], cell, props.Text{Size: 9, Align: align.Center}))
		}
		m.AddRow(6, cols...)
	}

	cols := make([]core.Col, 0, len(totalRow))
	for i, cell := range totalRow {
		cols = append(cols, text.NewCol(widths[i], cell,
			props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center}))
	}
	m.AddRow(7, cols...)
}
