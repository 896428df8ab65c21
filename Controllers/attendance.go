package Controllers

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"GDCPortal/Models"
)

// AttendanceController handles marking and reporting attendance
type AttendanceController struct {
	DB *gorm.DB
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

// MarkAttendance records one student's status for one date. Holidays and
// Sundays are rejected outright; marking the same date again overwrites
// the earlier status.
func (ac *AttendanceController) MarkAttendance(ctx *fiber.Ctx) error {
	var input struct {
		StudentID uint   `json:"student_id"`
		Date      string `json:"date"`
		Status    string `json:"status"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}

	if _, err := time.Parse(Models.DateLayout, input.Date); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date must be in YYYY-MM-DD format"})
	}
	if !Models.IsValidStatus(input.Status) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status must be Present, Absent or Leave"})
	}
	if Models.IsHoliday(input.Date) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot mark attendance on holidays or Sundays.",
		})
	}

	var student Models.Student
	if err := ac.DB.First(&student, input.StudentID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	record := Models.AttendanceRecord{
		StudentID: student.ID,
		Date:      input.Date,
		Status:    input.Status,
	}
	err := ac.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		log.Println(err.Error())
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record attendance"})
	}

	student.LastMarkedAt = time.Now().Format("2006-01-02 15:04:05")
	ac.DB.Model(&student).Select("LastMarkedAt").Updates(student)

	return ctx.JSON(fiber.Map{
		"message": "Attendance recorded",
		"date":    input.Date,
		"status":  input.Status,
	})
}

// GetStudentAttendance returns one student's full per-date history with
// the derived summary.
func (ac *AttendanceController) GetStudentAttendance(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student ID"})
	}

	var student Models.Student
	if err := ac.DB.Preload("Attendance", func(db *gorm.DB) *gorm.DB {
		return db.Order("date")
	}).First(&student, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	return ctx.JSON(fiber.Map{
		"student_id":  student.ID,
		"name":        student.Name,
		"roll_number": student.RollNumber,
		"attendance":  student.Attendance,
		"summary":     Models.CalculateAttendance(student.Attendance),
	})
}

// GetDaySheet returns every student of a semester with their status on a
// given date, for the mark-attendance screen.
func (ac *AttendanceController) GetDaySheet(ctx *fiber.Ctx) error {
	semester := ctx.Query("semester", "Semester 1")
	date := ctx.Query("date", time.Now().Format(Models.DateLayout))
	if !Models.IsValidSemester(semester) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown semester"})
	}
	if _, err := time.Parse(Models.DateLayout, date); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date must be in YYYY-MM-DD format"})
	}

	var students []Models.Student
	if err := ac.DB.Where("semester = ?", semester).Order("id").Find(&students).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve students"})
	}

	var records []Models.AttendanceRecord
	studentIDs := make([]uint, 0, len(students))
	for _, student := range students {
		studentIDs = append(studentIDs, student.ID)
	}
	if len(studentIDs) > 0 {
		ac.DB.Where("student_id IN ? AND date = ?", studentIDs, date).Find(&records)
	}

	statusByStudent := make(map[uint]string, len(records))
	for _, record := range records {
		statusByStudent[record.StudentID] = record.Status
	}

	type dayRow struct {
		StudentID  uint   `json:"student_id"`
		Name       string `json:"name"`
		RollNumber string `json:"roll_number"`
		Status     string `json:"status,omitempty"`
	}
	rows := make([]dayRow, 0, len(students))
	for _, student := range students {
		rows = append(rows, dayRow{
			StudentID:  student.ID,
			Name:       student.Name,
			RollNumber: student.RollNumber,
			Status:     statusByStudent[student.ID],
		})
	}

	return ctx.JSON(fiber.Map{
		"semester":   semester,
		"date":       date,
		"is_holiday": Models.IsHoliday(date),
		"students":   rows,
	})
}

// GetSemesterStats returns per-student attendance summaries for a
// semester, for the performance dashboard chart.
func (ac *AttendanceController) GetSemesterStats(ctx *fiber.Ctx) error {
	semester := ctx.Query("semester", "Semester 1")
	if !Models.IsValidSemester(semester) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown semester"})
	}

	var students []Models.Student
	if err := ac.DB.Where("semester = ?", semester).Preload("Attendance").Order("id").
		Find(&students).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve students"})
	}

	type statRow struct {
		StudentID  uint                     `json:"student_id"`
		Name       string                   `json:"name"`
		RollNumber string                   `json:"roll_number"`
		Summary    Models.AttendanceSummary `json:"summary"`
	}
	rows := make([]statRow, 0, len(students))
	for _, student := range students {
		rows = append(rows, statRow{
			StudentID:  student.ID,
			Name:       student.Name,
			RollNumber: student.RollNumber,
			Summary:    Models.CalculateAttendance(student.Attendance),
		})
	}

	return ctx.JSON(rows)
}
