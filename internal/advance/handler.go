package advance

import (
	"time"

	"sitepay-backend/internal/database"
	"sitepay-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateAdvanceRequest struct {
	EmployeeID uint    `json:"employee_id"`
	Date       string  `json:"date"` // "2025-12-09"
	Amount     float64 `json:"amount"`
	Reason     string  `json:"reason"`
}

type AdvanceResponse struct {
	ID           uint    `json:"id"`
	EmployeeID   uint    `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	Amount       float64 `json:"amount"`
	Reason       string  `json:"reason"`
}

// POST /api/advances
func CreateAdvanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateAdvanceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "amount must be > 0")
		}

		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
		}

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", body.EmployeeID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Employee not found")
		}

		adv := models.Advance{
			EmployeeID: emp.ID,
			Date:       date,
			Amount:     body.Amount,
			Reason:     body.Reason,
		}

		if err := database.DB.Create(&adv).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save advance")
		}

		return c.Status(fiber.StatusCreated).JSON(AdvanceResponse{
			ID:           adv.ID,
			EmployeeID:   adv.EmployeeID,
			EmployeeName: emp.Name,
			Date:         adv.Date.Format("2006-01-02"),
			Amount:       adv.Amount,
			Reason:       adv.Reason,
		})
	}
}

// GET /api/advances
func ListAdvancesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Advance
		if err := database.DB.
			Preload("Employee").
			Order("date desc, id desc").
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list advances")
		}

		resp := make([]AdvanceResponse, 0, len(rows))
		for _, a := range rows {
			resp = append(resp, AdvanceResponse{
				ID:           a.ID,
				EmployeeID:   a.EmployeeID,
				EmployeeName: a.Employee.Name,
				Date:         a.Date.Format("2006-01-02"),
				Amount:       a.Amount,
				Reason:       a.Reason,
			})
		}

		return c.JSON(resp)
	}
}
