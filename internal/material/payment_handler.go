package material

import (
	"errors"
	"time"

	"sitepay-backend/internal/database"
	"sitepay-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateMaterialPaymentRequest struct {
	PaymentDate     string  `json:"payment_date"` // "2025-12-09"
	Amount          float64 `json:"amount"`
	PaymentMode     string  `json:"payment_mode"`
	ReferenceNumber string  `json:"reference_number"`
	Notes           string  `json:"notes"`
}

type MaterialPaymentResponse struct {
	ID              uint    `json:"id"`
	SiteMaterialID  uint    `json:"site_material_id"`
	PaymentDate     string  `json:"payment_date"`
	Amount          float64 `json:"amount"`
	PaymentMode     string  `json:"payment_mode"`
	ReferenceNumber string  `json:"reference_number"`
	Notes           string  `json:"notes"`
	CreatedAt       string  `json:"created_at"`
}

// RecordPaymentResponse carries the payment together with the material's
// fresh aggregate state so callers don't have to re-fetch.
type RecordPaymentResponse struct {
	Payment       MaterialPaymentResponse `json:"payment"`
	AmountPaid    float64                 `json:"amount_paid"`
	AmountBalance float64                 `json:"amount_balance"`
	PaymentStatus string                  `json:"payment_status"`
}

func paymentResponse(p models.MaterialPayment) MaterialPaymentResponse {
	return MaterialPaymentResponse{
		ID:              p.ID,
		SiteMaterialID:  p.SiteMaterialID,
		PaymentDate:     p.PaymentDate.Format("2006-01-02"),
		Amount:          p.Amount,
		PaymentMode:     p.PaymentMode,
		ReferenceNumber: p.ReferenceNumber,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
}

// POST /api/materials/:id/payments
func CreateMaterialPaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		materialID, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var body CreateMaterialPaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		paymentDate, err := time.Parse("2006-01-02", body.PaymentDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "payment_date must be 'YYYY-MM-DD'")
		}

		m, payment, err := RecordPayment(database.DB, materialID, PaymentInput{
			PaymentDate:     paymentDate,
			Amount:          body.Amount,
			PaymentMode:     body.PaymentMode,
			ReferenceNumber: body.ReferenceNumber,
			Notes:           body.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrMaterialNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Material not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not record payment")
		}

		return c.Status(fiber.StatusCreated).JSON(RecordPaymentResponse{
			Payment:       paymentResponse(*payment),
			AmountPaid:    m.AmountPaid,
			AmountBalance: m.AmountBalance,
			PaymentStatus: string(m.PaymentStatus),
		})
	}
}

// GET /api/materials/:id/payments
func ListMaterialPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		materialID, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var m models.SiteMaterial
		if err := database.DB.First(&m, "id = ?", materialID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Material not found")
		}

		var payments []models.MaterialPayment
		if err := database.DB.
			Where("site_material_id = ?", m.ID).
			Order("payment_date desc, id desc").
			Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list payments")
		}

		resp := make([]MaterialPaymentResponse, 0, len(payments))
		for _, p := range payments {
			resp = append(resp, paymentResponse(p))
		}

		return c.JSON(resp)
	}
}
