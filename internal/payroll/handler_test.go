package payroll

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"sitepay-backend/internal/database"
	"sitepay-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPayrollApp(t *testing.T) *fiber.App {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Employee{},
		&models.AttendanceRecord{},
		&models.Advance{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	app := fiber.New()
	app.Get("/api/payroll/weekly", WeeklyPayrollHandler())
	app.Get("/api/payroll/monthly", MonthlyReportHandler())
	return app
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedPayrollWeek(t *testing.T) (models.Employee, models.Employee) {
	mason := models.Employee{Name: "Kumar", Role: "Mason", DailySalary: 800}
	helper := models.Employee{Name: "Ravi", Role: "Helper", DailySalary: 500}
	for _, e := range []*models.Employee{&mason, &helper} {
		if err := database.DB.Create(e).Error; err != nil {
			t.Fatalf("create employee: %v", err)
		}
	}

	// Mon 2025-12-01 .. Sun 2025-12-07: mason works 5 days, helper 3
	for d := 1; d <= 5; d++ {
		rec := models.AttendanceRecord{EmployeeID: mason.ID, Date: day(2025, 12, d), Status: models.AttendancePresent}
		if err := database.DB.Create(&rec).Error; err != nil {
			t.Fatalf("create attendance: %v", err)
		}
	}
	for d := 1; d <= 3; d++ {
		rec := models.AttendanceRecord{EmployeeID: helper.ID, Date: day(2025, 12, d), Status: models.AttendancePresent}
		if err := database.DB.Create(&rec).Error; err != nil {
			t.Fatalf("create attendance: %v", err)
		}
	}
	// absences must not count
	abs := models.AttendanceRecord{EmployeeID: helper.ID, Date: day(2025, 12, 4), Status: models.AttendanceAbsent}
	if err := database.DB.Create(&abs).Error; err != nil {
		t.Fatalf("create attendance: %v", err)
	}

	adv := models.Advance{EmployeeID: mason.ID, Date: day(2025, 12, 3), Amount: 1000, Reason: "medical"}
	if err := database.DB.Create(&adv).Error; err != nil {
		t.Fatalf("create advance: %v", err)
	}
	// advance outside the week must not count
	late := models.Advance{EmployeeID: mason.ID, Date: day(2025, 12, 15), Amount: 500}
	if err := database.DB.Create(&late).Error; err != nil {
		t.Fatalf("create advance: %v", err)
	}

	return mason, helper
}

func TestWeeklyPayroll(t *testing.T) {
	app := setupPayrollApp(t)
	mason, helper := seedPayrollWeek(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/payroll/weekly?start_date=2025-12-01&end_date=2025-12-07", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("weekly payroll: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d", resp.StatusCode)
	}

	var out WeeklyPayrollResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(out.Rows))
	}

	byID := map[uint]PayrollRowResponse{}
	for _, r := range out.Rows {
		byID[r.EmployeeID] = r
	}

	m := byID[mason.ID]
	if m.PresentDays != 5 || m.GrossSalary != 4000 || m.TotalAdvance != 1000 || m.NetSalary != 3000 {
		t.Fatalf("mason row: %+v", m)
	}
	h := byID[helper.ID]
	if h.PresentDays != 3 || h.GrossSalary != 1500 || h.TotalAdvance != 0 || h.NetSalary != 1500 {
		t.Fatalf("helper row: %+v", h)
	}
	if out.TotalPayroll != 4500 {
		t.Fatalf("total payroll %v, want 4500", out.TotalPayroll)
	}
}

func TestMonthlyReport(t *testing.T) {
	app := setupPayrollApp(t)
	mason, _ := seedPayrollWeek(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/payroll/monthly?year=2025&month=12", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("monthly report: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d", resp.StatusCode)
	}

	var out MonthlyReportResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Year != 2025 || out.Month != 12 {
		t.Fatalf("period: %d-%d", out.Year, out.Month)
	}

	// the mid-month advance counts in the monthly report
	for _, r := range out.Rows {
		if r.EmployeeID == mason.ID && r.TotalAdvance != 1500 {
			t.Fatalf("mason monthly advance %v, want 1500", r.TotalAdvance)
		}
	}
	if out.TotalSalary != 5500 || out.TotalNet != 4000 {
		t.Fatalf("totals: salary=%v net=%v", out.TotalSalary, out.TotalNet)
	}
}

func TestMonthlyReportRejectsBadMonth(t *testing.T) {
	app := setupPayrollApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/payroll/monthly?year=2025&month=13", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("monthly report: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}
}
