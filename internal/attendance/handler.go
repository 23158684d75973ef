package attendance

import (
	"time"

	"sitepay-backend/internal/database"
	"sitepay-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// -------------------------
// Request/Response Types
// -------------------------

type MarkAttendanceEntry struct {
	EmployeeID uint   `json:"employee_id"`
	Status     string `json:"status"` // "Present", "Absent", "Half Day"
}

type MarkAttendanceRequest struct {
	Date    string                `json:"date"` // "2025-12-09"
	Entries []MarkAttendanceEntry `json:"entries"`
}

type AttendanceResponse struct {
	ID           uint   `json:"id"`
	EmployeeID   uint   `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	EmployeeRole string `json:"employee_role"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}

func validStatus(s string) bool {
	switch models.AttendanceStatus(s) {
	case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceHalfDay:
		return true
	}
	return false
}

// -------------------------
// Attendance Handlers
// -------------------------

// POST /api/attendance
// Marks the whole crew for one day. Re-marking a day replaces the stored
// status (upsert on employee_id+date), matching how the day sheet is used.
func MarkAttendanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MarkAttendanceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if len(body.Entries) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "entries is required")
		}

		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
		}

		ids := make([]uint, 0, len(body.Entries))
		for _, e := range body.Entries {
			if !validStatus(e.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "status must be 'Present', 'Absent' or 'Half Day'")
			}
			ids = append(ids, e.EmployeeID)
		}

		var known int64
		if err := database.DB.Model(&models.Employee{}).Where("id IN ?", ids).Count(&known).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not verify employees")
		}
		if known != int64(len(ids)) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown employee in entries")
		}

		records := make([]models.AttendanceRecord, 0, len(body.Entries))
		for _, e := range body.Entries {
			records = append(records, models.AttendanceRecord{
				EmployeeID: e.EmployeeID,
				Date:       date,
				Status:     models.AttendanceStatus(e.Status),
			})
		}

		if err := database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).Create(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save attendance")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"date":   date.Format("2006-01-02"),
			"marked": len(records),
		})
	}
}

// GET /api/attendance?date=2025-12-09
func ListAttendanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dateStr := c.Query("date", time.Now().Format("2006-01-02"))
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
		}

		var rows []models.AttendanceRecord
		if err := database.DB.
			Preload("Employee").
			Where("date = ?", date).
			Order("employee_id asc").
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list attendance")
		}

		resp := make([]AttendanceResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, AttendanceResponse{
				ID:           r.ID,
				EmployeeID:   r.EmployeeID,
				EmployeeName: r.Employee.Name,
				EmployeeRole: r.Employee.Role,
				Date:         r.Date.Format("2006-01-02"),
				Status:       string(r.Status),
			})
		}

		return c.JSON(resp)
	}
}
