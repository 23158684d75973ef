package site

import (
	"time"

	"sitepay-backend/internal/database"
	"sitepay-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SiteMaterialRow struct {
	ID            uint    `json:"id"`
	MaterialName  string  `json:"material_name"`
	CategoryName  string  `json:"category_name"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	RatePerUnit   float64 `json:"rate_per_unit"`
	TotalCost     float64 `json:"total_cost"`
	SupplierName  string  `json:"supplier_name"`
	SentDate      string  `json:"sent_date"`
	AmountPaid    float64 `json:"amount_paid"`
	AmountBalance float64 `json:"amount_balance"`
	PaymentStatus string  `json:"payment_status"`
}

type SiteDetailResponse struct {
	Site            SiteResponse          `json:"site"`
	Summary         SiteSummary           `json:"summary"`
	CategorySummary []CategorySummary     `json:"category_summary"`
	Workers         []SiteWorkerResponse  `json:"workers"`
	Materials       []SiteMaterialRow     `json:"materials"`
	Expenses        []SiteExpenseResponse `json:"expenses"`
}

type SiteReportResponse struct {
	GeneratedAt     string                `json:"generated_at"`
	Site            SiteResponse          `json:"site"`
	Summary         SiteSummary           `json:"summary"`
	CategorySummary []CategorySummary     `json:"category_summary"`
	Materials       []SiteMaterialRow     `json:"materials"`
	Expenses        []SiteExpenseResponse `json:"expenses"`
}

func materialRow(m models.SiteMaterial) SiteMaterialRow {
	return SiteMaterialRow{
		ID:            m.ID,
		MaterialName:  m.MaterialName,
		CategoryName:  m.Category.Name,
		Quantity:      m.Quantity,
		Unit:          m.Unit,
		RatePerUnit:   m.RatePerUnit,
		TotalCost:     m.TotalCost,
		SupplierName:  m.SupplierName,
		SentDate:      m.SentDate.Format("2006-01-02"),
		AmountPaid:    m.AmountPaid,
		AmountBalance: m.AmountBalance,
		PaymentStatus: string(m.PaymentStatus),
	}
}

// siteReportData: everything the detail page, the report and the exports need.
type siteReportData struct {
	Site       models.Site
	Summary    SiteSummary
	Categories []CategorySummary
	Workers    []models.SiteWorker
	Materials  []models.SiteMaterial
	Expenses   []models.SiteExpense
}

func loadSiteReport(siteID uint) (*siteReportData, error) {
	var d siteReportData

	if err := database.DB.First(&d.Site, "id = ?", siteID).Error; err != nil {
		return nil, err
	}

	var err error
	if d.Summary, err = siteSummary(siteID); err != nil {
		return nil, err
	}
	if d.Categories, err = categorySummaries(siteID); err != nil {
		return nil, err
	}

	if err := database.DB.Preload("Employee").
		Where("site_id = ?", siteID).
		Order("is_active desc, assigned_date desc, id desc").
		Find(&d.Workers).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Preload("Category").
		Where("site_id = ?", siteID).
		Order("sent_date desc, id desc").
		Find(&d.Materials).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Where("site_id = ?", siteID).
		Order("expense_date desc, id desc").
		Find(&d.Expenses).Error; err != nil {
		return nil, err
	}

	return &d, nil
}

// GET /api/sites/:id/detail
func SiteDetailHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		d, err := loadSiteReport(id)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Site not found")
		}

		resp := SiteDetailResponse{
			Site:            siteResponse(d.Site),
			Summary:         d.Summary,
			CategorySummary: d.Categories,
			Workers:         make([]SiteWorkerResponse, 0, len(d.Workers)),
			Materials:       make([]SiteMaterialRow, 0, len(d.Materials)),
			Expenses:        make([]SiteExpenseResponse, 0, len(d.Expenses)),
		}
		for _, w := range d.Workers {
			resp.Workers = append(resp.Workers, workerResponse(w))
		}
		for _, m := range d.Materials {
			resp.Materials = append(resp.Materials, materialRow(m))
		}
		for _, e := range d.Expenses {
			resp.Expenses = append(resp.Expenses, expenseResponse(e))
		}

		return c.JSON(resp)
	}
}

// GET /api/sites/:id/report
func SiteReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		d, err := loadSiteReport(id)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Site not found")
		}

		resp := SiteReportResponse{
			GeneratedAt:     time.Now().Format(time.RFC3339),
			Site:            siteResponse(d.Site),
			Summary:         d.Summary,
			CategorySummary: d.Categories,
			Materials:       make([]SiteMaterialRow, 0, len(d.Materials)),
			Expenses:        make([]SiteExpenseResponse, 0, len(d.Expenses)),
		}
		for _, m := range d.Materials {
			resp.Materials = append(resp.Materials, materialRow(m))
		}
		for _, e := range d.Expenses {
			resp.Expenses = append(resp.Expenses, expenseResponse(e))
		}

		return c.JSON(resp)
	}
}
