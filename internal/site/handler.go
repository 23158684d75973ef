package site

import (
	"fmt"
	"strings"
	"time"

	"sitepay-backend/internal/database"
	"sitepay-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateSiteRequest struct {
	SiteName    string  `json:"site_name"`
	Location    string  `json:"location"`
	ClientName  string  `json:"client_name"`
	StartDate   string  `json:"start_date"` // optional, "2025-12-09"
	EndDate     string  `json:"end_date"`   // optional
	TotalBudget float64 `json:"total_budget"`
	Notes       string  `json:"notes"`
}

type UpdateSiteRequest struct {
	SiteName    *string  `json:"site_name"`
	Location    *string  `json:"location"`
	ClientName  *string  `json:"client_name"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	Status      *string  `json:"status"`
	TotalBudget *float64 `json:"total_budget"`
	Notes       *string  `json:"notes"`
}

type SiteResponse struct {
	ID          uint    `json:"id"`
	SiteName    string  `json:"site_name"`
	Location    string  `json:"location"`
	ClientName  string  `json:"client_name"`
	StartDate   string  `json:"start_date,omitempty"`
	EndDate     string  `json:"end_date,omitempty"`
	Status      string  `json:"status"`
	TotalBudget float64 `json:"total_budget"`
	Notes       string  `json:"notes"`
	CreatedAt   string  `json:"created_at"`
}

// CategorySummary - material cost/paid/balance rolled up per category.
type CategorySummary struct {
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Count        int     `json:"count"`
	TotalCost    float64 `json:"total_cost"`
	TotalPaid    float64 `json:"total_paid"`
	TotalBalance float64 `json:"total_balance"`
}

type SiteSummary struct {
	WorkerCount          int64   `json:"worker_count"`
	MaterialCount        int64   `json:"material_count"`
	TotalMaterialCost    float64 `json:"total_material_cost"`
	TotalMaterialPaid    float64 `json:"total_material_paid"`
	TotalMaterialBalance float64 `json:"total_material_balance"`
	TotalExpenses        float64 `json:"total_expenses"`
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

func parseOptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
	}
	return &d, nil
}

func validSiteStatus(s string) bool {
	switch models.SiteStatus(s) {
	case models.SiteActive, models.SiteCompleted, models.SiteOnHold:
		return true
	}
	return false
}

func siteResponse(s models.Site) SiteResponse {
	resp := SiteResponse{
		ID:          s.ID,
		SiteName:    s.SiteName,
		Location:    s.Location,
		ClientName:  s.ClientName,
		Status:      string(s.Status),
		TotalBudget: s.TotalBudget,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
	}
	if s.StartDate != nil {
		resp.StartDate = s.StartDate.Format("2006-01-02")
	}
	if s.EndDate != nil {
		resp.EndDate = s.EndDate.Format("2006-01-02")
	}
	return resp
}

// siteSummary: aggregate counters shown on the site detail and report pages.
func siteSummary(siteID uint) (SiteSummary, error) {
	var sum SiteSummary

	if err := database.DB.Model(&models.SiteWorker{}).
		Where("site_id = ? AND is_active = ?", siteID, true).
		Count(&sum.WorkerCount).Error; err != nil {
		return sum, err
	}

	if err := database.DB.Model(&models.SiteMaterial{}).
		Where("site_id = ?", siteID).
		Count(&sum.MaterialCount).Error; err != nil {
		return sum, err
	}

	type totals struct {
		Cost    float64 `gorm:"column:cost"`
		Paid    float64 `gorm:"column:paid"`
		Balance float64 `gorm:"column:balance"`
	}
	var t totals
	if err := database.DB.Model(&models.SiteMaterial{}).
		Select("COALESCE(SUM(total_cost), 0) as cost, COALESCE(SUM(amount_paid), 0) as paid, COALESCE(SUM(amount_balance), 0) as balance").
		Where("site_id = ?", siteID).
		Scan(&t).Error; err != nil {
		return sum, err
	}
	sum.TotalMaterialCost = t.Cost
	sum.TotalMaterialPaid = t.Paid
	sum.TotalMaterialBalance = t.Balance

	if err := database.DB.Model(&models.SiteExpense{}).
		Where("site_id = ?", siteID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum.TotalExpenses).Error; err != nil {
		return sum, err
	}

	return sum, nil
}

// categorySummaries: material totals grouped by category for one site.
func categorySummaries(siteID uint) ([]CategorySummary, error) {
	type row struct {
		CategoryID uint    `gorm:"column:category_id"`
		Count      int     `gorm:"column:cnt"`
		Cost       float64 `gorm:"column:cost"`
		Paid       float64 `gorm:"column:paid"`
		Balance    float64 `gorm:"column:balance"`
	}
	var rows []row

	if err := database.DB.Model(&models.SiteMaterial{}).
		Select("material_category_id as category_id, COUNT(*) as cnt, SUM(total_cost) as cost, SUM(amount_paid) as paid, SUM(amount_balance) as balance").
		Where("site_id = ?", siteID).
		Group("material_category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.CategoryID)
	}

	catMap := make(map[uint]string)
	if len(ids) > 0 {
		var cats []models.MaterialCategory
		if err := database.DB.Where("id IN ?", ids).Find(&cats).Error; err != nil {
			return nil, err
		}
		for _, cat := range cats {
			catMap[cat.ID] = cat.Name
		}
	}

	out := make([]CategorySummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, CategorySummary{
			CategoryID:   r.CategoryID,
			CategoryName: catMap[r.CategoryID],
			Count:        r.Count,
			TotalCost:    r.Cost,
			TotalPaid:    r.Paid,
			TotalBalance: r.Balance,
		})
	}
	return out, nil
}

// -------------------------
// Site CRUD
// -------------------------

// POST /api/sites
func CreateSiteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSiteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(body.SiteName) == "" || strings.TrimSpace(body.Location) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "site_name and location are required")
		}

		startDate, err := parseOptionalDate(body.StartDate)
		if err != nil {
			return err
		}
		endDate, err := parseOptionalDate(body.EndDate)
		if err != nil {
			return err
		}

		s := models.Site{
			SiteName:    strings.TrimSpace(body.SiteName),
			Location:    strings.TrimSpace(body.Location),
			ClientName:  body.ClientName,
			StartDate:   startDate,
			EndDate:     endDate,
			Status:      models.SiteActive,
			TotalBudget: body.TotalBudget,
			Notes:       body.Notes,
		}

		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save site")
		}

		return c.Status(fiber.StatusCreated).JSON(siteResponse(s))
	}
}

// GET /api/sites
func ListSitesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Site
		if err := database.DB.Order("id desc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list sites")
		}

		resp := make([]SiteResponse, 0, len(rows))
		for _, s := range rows {
			resp = append(resp, siteResponse(s))
		}

		return c.JSON(resp)
	}
}

// GET /api/sites/:id
func GetSiteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var s models.Site
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Site not found")
		}

		return c.JSON(siteResponse(s))
	}
}

// PUT /api/sites/:id
func UpdateSiteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var s models.Site
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Site not found")
		}

		var body UpdateSiteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.SiteName != nil {
			name := strings.TrimSpace(*body.SiteName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "site_name cannot be empty")
			}
			s.SiteName = name
		}
		if body.Location != nil {
			loc := strings.TrimSpace(*body.Location)
			if loc == "" {
				return fiber.NewError(fiber.StatusBadRequest, "location cannot be empty")
			}
			s.Location = loc
		}
		if body.ClientName != nil {
			s.ClientName = *body.ClientName
		}
		if body.StartDate != nil {
			d, err := parseOptionalDate(*body.StartDate)
			if err != nil {
				return err
			}
			s.StartDate = d
		}
		if body.EndDate != nil {
			d, err := parseOptionalDate(*body.EndDate)
			if err != nil {
				return err
			}
			s.EndDate = d
		}
		if body.Status != nil {
			if !validSiteStatus(*body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "status must be 'Active', 'Completed' or 'On Hold'")
			}
			s.Status = models.SiteStatus(*body.Status)
		}
		if body.TotalBudget != nil {
			s.TotalBudget = *body.TotalBudget
		}
		if body.Notes != nil {
			s.Notes = *body.Notes
		}

		if err := database.DB.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update site")
		}

		return c.JSON(siteResponse(s))
	}
}

// DELETE /api/sites/:id
// Cascades to workers, materials (and their payment ledgers) and expenses.
func DeleteSiteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var s models.Site
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Site not found")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("site_material_id IN (?)",
				tx.Model(&models.SiteMaterial{}).Select("id").Where("site_id = ?", s.ID),
			).Delete(&models.MaterialPayment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("site_id = ?", s.ID).Delete(&models.SiteMaterial{}).Error; err != nil {
				return err
			}
			if err := tx.Where("site_id = ?", s.ID).Delete(&models.SiteWorker{}).Error; err != nil {
				return err
			}
			if err := tx.Where("site_id = ?", s.ID).Delete(&models.SiteExpense{}).Error; err != nil {
				return err
			}
			return tx.Delete(&s).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete site")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
