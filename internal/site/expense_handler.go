package site

import (
	"strings"
	"time"

	"sitepay-backend/internal/database"
	"sitepay-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateSiteExpenseRequest struct {
	ExpenseDate string  `json:"expense_date"` // "2025-12-09"
	ExpenseType string  `json:"expense_type"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaidTo      string  `json:"paid_to"`
	PaymentMode string  `json:"payment_mode"`
}

type SiteExpenseResponse struct {
	ID          uint    `json:"id"`
	SiteID      uint    `json:"site_id"`
	ExpenseDate string  `json:"expense_date"`
	ExpenseType string  `json:"expense_type"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaidTo      string  `json:"paid_to"`
	PaymentMode string  `json:"payment_mode"`
}

func expenseResponse(e models.SiteExpense) SiteExpenseResponse {
	return SiteExpenseResponse{
		ID:          e.ID,
		SiteID:      e.SiteID,
		ExpenseDate: e.ExpenseDate.Format("2006-01-02"),
		ExpenseType: e.ExpenseType,
		Description: e.Description,
		Amount:      e.Amount,
		PaidTo:      e.PaidTo,
		PaymentMode: e.PaymentMode,
	}
}

// POST /api/sites/:id/expenses
func CreateSiteExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		siteID, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var s models.Site
		if err := database.DB.First(&s, "id = ?", siteID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Site not found")
		}

		var body CreateSiteExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(body.ExpenseType) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "expense_type is required")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "amount must be > 0")
		}

		expenseDate, err := time.Parse("2006-01-02", body.ExpenseDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "expense_date must be 'YYYY-MM-DD'")
		}

		e := models.SiteExpense{
			SiteID:      s.ID,
			ExpenseDate: expenseDate,
			ExpenseType: strings.TrimSpace(body.ExpenseType),
			Description: body.Description,
			Amount:      body.Amount,
			PaidTo:      body.PaidTo,
			PaymentMode: body.PaymentMode,
		}

		if err := database.DB.Create(&e).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save expense")
		}

		return c.Status(fiber.StatusCreated).JSON(expenseResponse(e))
	}
}

// GET /api/sites/:id/expenses
func ListSiteExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		siteID, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var rows []models.SiteExpense
		if err := database.DB.
			Where("site_id = ?", siteID).
			Order("expense_date desc, id desc").
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list expenses")
		}

		resp := make([]SiteExpenseResponse, 0, len(rows))
		for _, e := range rows {
			resp = append(resp, expenseResponse(e))
		}

		return c.JSON(resp)
	}
}
