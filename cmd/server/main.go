package main

import (
	"log"
	"strings"

	"sitepay-backend/internal/advance"
	"sitepay-backend/internal/attendance"
	"sitepay-backend/internal/config"
	"sitepay-backend/internal/dashboard"
	"sitepay-backend/internal/database"
	"sitepay-backend/internal/employee"
	"sitepay-backend/internal/material"
	"sitepay-backend/internal/payroll"
	"sitepay-backend/internal/site"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Dashboard
	api.Get("/dashboard", dashboard.DashboardHandler())

	// Employees
	api.Post("/employees", employee.CreateEmployeeHandler())
	api.Get("/employees", employee.ListEmployeesHandler())
	api.Get("/employees/:id", employee.GetEmployeeHandler())
	api.Put("/employees/:id", employee.UpdateEmployeeHandler())
	api.Delete("/employees/:id", employee.DeleteEmployeeHandler())

	// Attendance
	api.Post("/attendance", attendance.MarkAttendanceHandler())
	api.Get("/attendance", attendance.ListAttendanceHandler())

	// Advances
	api.Post("/advances", advance.CreateAdvanceHandler())
	api.Get("/advances", advance.ListAdvancesHandler())

	// Payroll & exports
	api.Get("/payroll/weekly", payroll.WeeklyPayrollHandler())
	api.Get("/payroll/weekly/export/excel", payroll.ExportWeeklyExcelHandler(cfg))
	api.Get("/payroll/weekly/export/pdf", payroll.ExportWeeklyPDFHandler(cfg))
	api.Get("/payroll/monthly", payroll.MonthlyReportHandler())
	api.Get("/payroll/monthly/export/excel", payroll.ExportMonthlyExcelHandler(cfg))
	api.Get("/payroll/monthly/export/pdf", payroll.ExportMonthlyPDFHandler(cfg))

	// Sites
	api.Post("/sites", site.CreateSiteHandler())
	api.Get("/sites", site.ListSitesHandler())
	api.Get("/sites/:id", site.GetSiteHandler())
	api.Put("/sites/:id", site.UpdateSiteHandler())
	api.Delete("/sites/:id", site.DeleteSiteHandler())
	api.Get("/sites/:id/detail", site.SiteDetailHandler())
	api.Get("/sites/:id/report", site.SiteReportHandler())
	api.Get("/sites/:id/report/export/excel", site.ExportSiteReportExcelHandler(cfg))
	api.Get("/sites/:id/report/export/pdf", site.ExportSiteReportPDFHandler(cfg))

	// Site workers
	api.Post("/sites/:id/workers", site.AssignWorkerHandler())
	api.Get("/sites/:id/workers", site.ListSiteWorkersHandler())
	api.Delete("/site-workers/:id", site.RemoveWorkerHandler())

	// Materials & payment ledger
	api.Get("/material-categories", material.ListMaterialCategoriesHandler())
	api.Post("/sites/:id/materials", material.CreateSiteMaterialHandler())
	api.Get("/sites/:id/materials", material.ListSiteMaterialsHandler())
	api.Get("/materials/pending", material.ListPendingMaterialsHandler())
	api.Get("/materials/:id", material.GetMaterialHandler())
	api.Post("/materials/:id/payments", material.CreateMaterialPaymentHandler())
	api.Get("/materials/:id/payments", material.ListMaterialPaymentsHandler())

	// Site expenses
	api.Post("/sites/:id/expenses", site.CreateSiteExpenseHandler())
	api.Get("/sites/:id/expenses", site.ListSiteExpensesHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
