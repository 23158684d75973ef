package material

import (
	"fmt"
	"math"
	"strings"
	"time"

	"sitepay-backend/internal/database"
	"sitepay-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateSiteMaterialRequest struct {
	MaterialCategoryID uint    `json:"material_category_id"`
	MaterialName       string  `json:"material_name"`
	Quantity           float64 `json:"quantity"`
	Unit               string  `json:"unit"`
	RatePerUnit        float64 `json:"rate_per_unit"`
	SupplierName       string  `json:"supplier_name"`
	SentDate           string  `json:"sent_date"` // "2025-12-09"
	BillNumber         string  `json:"bill_number"`
	Notes              string  `json:"notes"`
}

type SiteMaterialResponse struct {
	ID            uint    `json:"id"`
	SiteID        uint    `json:"site_id"`
	SiteName      string  `json:"site_name,omitempty"`
	CategoryID    uint    `json:"material_category_id"`
	CategoryName  string  `json:"category_name"`
	MaterialName  string  `json:"material_name"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	RatePerUnit   float64 `json:"rate_per_unit"`
	TotalCost     float64 `json:"total_cost"`
	SupplierName  string  `json:"supplier_name"`
	SentDate      string  `json:"sent_date"`
	BillNumber    string  `json:"bill_number"`
	AmountPaid    float64 `json:"amount_paid"`
	AmountBalance float64 `json:"amount_balance"`
	PaymentStatus string  `json:"payment_status"`
	Notes         string  `json:"notes"`
}

type MaterialDetailResponse struct {
	SiteMaterialResponse
	Payments []MaterialPaymentResponse `json:"payments"`
}

type MaterialCategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// -------------------------
// Helpers
// -------------------------

func parseID(raw string) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(raw, &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

// round2: total cost is stored at two decimals, like the money columns.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func materialResponse(m models.SiteMaterial) SiteMaterialResponse {
	return SiteMaterialResponse{
		ID:            m.ID,
		SiteID:        m.SiteID,
		SiteName:      m.Site.SiteName,
		CategoryID:    m.MaterialCategoryID,
		CategoryName:  m.Category.Name,
		MaterialName:  m.MaterialName,
		Quantity:      m.Quantity,
		Unit:          m.Unit,
		RatePerUnit:   m.RatePerUnit,
		TotalCost:     m.TotalCost,
		SupplierName:  m.SupplierName,
		SentDate:      m.SentDate.Format("2006-01-02"),
		BillNumber:    m.BillNumber,
		AmountPaid:    m.AmountPaid,
		AmountBalance: m.AmountBalance,
		PaymentStatus: string(m.PaymentStatus),
		Notes:         m.Notes,
	}
}

// -------------------------
// Material Category Handlers
// -------------------------

// GET /api/material-categories
func ListMaterialCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cats []models.MaterialCategory
		if err := database.DB.Order("name asc").Find(&cats).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list material categories")
		}

		resp := make([]MaterialCategoryResponse, 0, len(cats))
		for _, cat := range cats {
			resp = append(resp, MaterialCategoryResponse{
				ID:          cat.ID,
				Name:        cat.Name,
				Description: cat.Description,
			})
		}

		return c.JSON(resp)
	}
}

// -------------------------
// Site Material Handlers
// -------------------------

// POST /api/sites/:id/materials
func CreateSiteMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		siteID, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var site models.Site
		if err := database.DB.First(&site, "id = ?", siteID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Site not found")
		}

		var body CreateSiteMaterialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(body.MaterialName) == "" || strings.TrimSpace(body.Unit) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "material_name and unit are required")
		}
		if body.Quantity <= 0 || body.RatePerUnit <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity and rate_per_unit must be > 0")
		}

		var cat models.MaterialCategory
		if err := database.DB.First(&cat, "id = ?", body.MaterialCategoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Material category not found")
		}

		sentDate, err := time.Parse("2006-01-02", body.SentDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "sent_date must be 'YYYY-MM-DD'")
		}

		m := models.SiteMaterial{
			SiteID:             site.ID,
			MaterialCategoryID: cat.ID,
			MaterialName:       strings.TrimSpace(body.MaterialName),
			Quantity:           body.Quantity,
			Unit:               strings.TrimSpace(body.Unit),
			RatePerUnit:        body.RatePerUnit,
			TotalCost:          round2(body.Quantity * body.RatePerUnit),
			SupplierName:       body.SupplierName,
			SentDate:           sentDate,
			BillNumber:         body.BillNumber,
			AmountPaid:         0,
			PaymentStatus:      models.PaymentPending,
			Notes:              body.Notes,
		}
		m.AmountBalance = m.TotalCost

		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save material")
		}

		m.Site = site
		m.Category = cat
		return c.Status(fiber.StatusCreated).JSON(materialResponse(m))
	}
}

// GET /api/sites/:id/materials
func ListSiteMaterialsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		siteID, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var rows []models.SiteMaterial
		if err := database.DB.
			Preload("Site").
			Preload("Category").
			Where("site_id = ?", siteID).
			Order("sent_date desc, id desc").
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list materials")
		}

		resp := make([]SiteMaterialResponse, 0, len(rows))
		for _, m := range rows {
			resp = append(resp, materialResponse(m))
		}

		return c.JSON(resp)
	}
}

// GET /api/materials/:id
func GetMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var m models.SiteMaterial
		if err := database.DB.
			Preload("Site").
			Preload("Category").
			First(&m, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Material not found")
		}

		var payments []models.MaterialPayment
		if err := database.DB.
			Where("site_material_id = ?", m.ID).
			Order("payment_date desc, id desc").
			Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load payments")
		}

		detail := MaterialDetailResponse{
			SiteMaterialResponse: materialResponse(m),
			Payments:             make([]MaterialPaymentResponse, 0, len(payments)),
		}
		for _, p := range payments {
			detail.Payments = append(detail.Payments, paymentResponse(p))
		}

		return c.JSON(detail)
	}
}

// GET /api/materials/pending
// Materials whose ledger has not covered the total cost yet.
func ListPendingMaterialsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.SiteMaterial
		if err := database.DB.
			Preload("Site").
			Preload("Category").
			Where("payment_status <> ?", models.PaymentPaid).
			Order("sent_date asc, id asc").
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list pending materials")
		}

		resp := make([]SiteMaterialResponse, 0, len(rows))
		for _, m := range rows {
			resp = append(resp, materialResponse(m))
		}

		return c.JSON(resp)
	}
}
