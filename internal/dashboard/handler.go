package dashboard

import (
	"sitepay-backend/internal/database"
	"sitepay-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type DashboardResponse struct {
	TotalEmployees          int64   `json:"total_employees"`
	ActiveSites             int64   `json:"active_sites"`
	PendingMaterialCount    int64   `json:"pending_material_count"`
	TotalOutstandingBalance float64 `json:"total_outstanding_balance"`
}

// GET /api/dashboard
func DashboardHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var resp DashboardResponse

		if err := database.DB.Model(&models.Employee{}).
			Count(&resp.TotalEmployees).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build dashboard")
		}

		if err := database.DB.Model(&models.Site{}).
			Where("status = ?", models.SiteActive).
			Count(&resp.ActiveSites).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build dashboard")
		}

		if err := database.DB.Model(&models.SiteMaterial{}).
			Where("payment_status <> ?", models.PaymentPaid).
			Count(&resp.PendingMaterialCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build dashboard")
		}

		if err := database.DB.Model(&models.SiteMaterial{}).
			Select("COALESCE(SUM(amount_balance), 0)").
			Where("payment_status <> ?", models.PaymentPaid).
			Scan(&resp.TotalOutstandingBalance).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build dashboard")
		}

		return c.JSON(resp)
	}
}
