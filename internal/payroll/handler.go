package payroll

import (
	"fmt"
	"time"

	"sitepay-backend/internal/database"
	"sitepay-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type PayrollRowResponse struct {
	EmployeeID   uint    `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	EmployeeRole string  `json:"employee_role"`
	DailySalary  float64 `json:"daily_salary"`
	PresentDays  int     `json:"present_days"`
	GrossSalary  float64 `json:"gross_salary"`
	TotalAdvance float64 `json:"total_advance"`
	NetSalary    float64 `json:"net_salary"`
}

type WeeklyPayrollResponse struct {
	StartDate    string               `json:"start_date"`
	EndDate      string               `json:"end_date"`
	Rows         []PayrollRowResponse `json:"rows"`
	TotalPayroll float64              `json:"total_payroll"`
}

type MonthlyReportResponse struct {
	Year         int                  `json:"year"`
	Month        int                  `json:"month"`
	Rows         []PayrollRowResponse `json:"rows"`
	TotalSalary  float64              `json:"total_salary"`
	TotalAdvance float64              `json:"total_advance"`
	TotalNet     float64              `json:"total_net"`
}

// -------------------------
// Payroll computation
// -------------------------

// buildPayroll: per employee, present days in the range times the daily rate,
// minus advances taken in the same range.
func buildPayroll(from, to time.Time) ([]PayrollRowResponse, error) {
	var employees []models.Employee
	if err := database.DB.Order("id asc").Find(&employees).Error; err != nil {
		return nil, err
	}

	rows := make([]PayrollRowResponse, 0, len(employees))
	for _, emp := range employees {
		var presentDays int64
		if err := database.DB.Model(&models.AttendanceRecord{}).
			Where("employee_id = ? AND date >= ? AND date <= ? AND status = ?",
				emp.ID, from, to, models.AttendancePresent).
			Count(&presentDays).Error; err != nil {
			return nil, err
		}

		var totalAdvance float64
		if err := database.DB.Model(&models.Advance{}).
			Where("employee_id = ? AND date >= ? AND date <= ?", emp.ID, from, to).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&totalAdvance).Error; err != nil {
			return nil, err
		}

		gross := float64(presentDays) * emp.DailySalary
		rows = append(rows, PayrollRowResponse{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			EmployeeRole: emp.Role,
			DailySalary:  emp.DailySalary,
			PresentDays:  int(presentDays),
			GrossSalary:  gross,
			TotalAdvance: totalAdvance,
			NetSalary:    gross - totalAdvance,
		})
	}

	return rows, nil
}

// weekRange: query params if given, otherwise the current Monday..Sunday week.
func weekRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	offset := (int(now.Weekday()) + 6) % 7 // days since Monday
	defStart := now.AddDate(0, 0, -offset).Format("2006-01-02")
	defEnd := now.AddDate(0, 0, 6-offset).Format("2006-01-02")

	from, err := time.Parse("2006-01-02", c.Query("start_date", defStart))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "start_date must be 'YYYY-MM-DD'")
	}
	to, err := time.Parse("2006-01-02", c.Query("end_date", defEnd))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "end_date must be 'YYYY-MM-DD'")
	}
	return from, to, nil
}

func monthRange(c *fiber.Ctx) (int, int, time.Time, time.Time, error) {
	now := time.Now()
	var year, month int
	if _, err := fmt.Sscan(c.Query("year", fmt.Sprint(now.Year())), &year); err != nil || year < 2000 {
		return 0, 0, time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "year is invalid")
	}
	if _, err := fmt.Sscan(c.Query("month", fmt.Sprint(int(now.Month()))), &month); err != nil || month < 1 || month > 12 {
		return 0, 0, time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "month is invalid")
	}

	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.AddDate(0, 1, -1)
	return year, month, firstDay, lastDay, nil
}

// -------------------------
// Handlers
// -------------------------

// GET /api/payroll/weekly?start_date=...&end_date=...
func WeeklyPayrollHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := weekRange(c)
		if err != nil {
			return err
		}

		rows, err := buildPayroll(from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build payroll")
		}

		total := 0.0
		for _, r := range rows {
			total += r.NetSalary
		}

		return c.JSON(WeeklyPayrollResponse{
			StartDate:    from.Format("2006-01-02"),
			EndDate:      to.Format("2006-01-02"),
			Rows:         rows,
			TotalPayroll: total,
		})
	}
}

// GET /api/payroll/monthly?year=2025&month=12
func MonthlyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, month, firstDay, lastDay, err := monthRange(c)
		if err != nil {
			return err
		}

		rows, err := buildPayroll(firstDay, lastDay)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build monthly report")
		}

		resp := MonthlyReportResponse{Year: year, Month: month, Rows: rows}
		for _, r := range rows {
			resp.TotalSalary += r.GrossSalary
			resp.TotalAdvance += r.TotalAdvance
			resp.TotalNet += r.NetSalary
		}

		return c.JSON(resp)
	}
}
