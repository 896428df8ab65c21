package Apis

import (
	"math"

	"github.com/gofiber/fiber/v2"

	"GDCPortal/Models"
)

// GetDashboardStats returns the counters shown on the admin landing page.
func GetDashboardStats(ctx *fiber.Ctx) error {
	var studentCount, openTaskCount, noticeCount, applicationCount int64
	Models.DB.Model(&Models.Student{}).Count(&studentCount)
	Models.DB.Model(&Models.Task{}).Where("completed = ?", false).Count(&openTaskCount)
	Models.DB.Model(&Models.Notice{}).Count(&noticeCount)
	Models.DB.Model(&Models.AdmissionApplication{}).Count(&applicationCount)

	var students []Models.Student
	if err := Models.DB.Preload("Attendance").Find(&students).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve students"})
	}

	averageAttendance := 0.0
	if len(students) > 0 {
		total := 0.0
		for _, student := range students {
			total += Models.CalculateAttendance(student.Attendance).Percentage
		}
		averageAttendance = math.Round(total/float64(len(students))*100) / 100
	}

	return ctx.JSON(fiber.Map{
		"students":           studentCount,
		"open_tasks":         openTaskCount,
		"notices":            noticeCount,
		"applications":       applicationCount,
		"average_attendance": averageAttendance,
	})
}

// Health is the liveness probe.
func Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}
