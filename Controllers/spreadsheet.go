package Controllers

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"GDCPortal/Models"
)

// RosterController handles bulk spreadsheet import and export
type RosterController struct {
	DB *gorm.DB
}

// NewRosterController creates a new RosterController
func NewRosterController(db *gorm.DB) *RosterController {
	return &RosterController{DB: db}
}

// ImportRoster parses an uploaded xlsx and appends its rows to the
// selected semester. The header row maps the Name, Semester and
// RollNumber columns in any order. Rows missing a required value and
// rows whose roll number already exists in the semester are skipped and
// counted rather than silently producing half-empty records.
func (rc *RosterController) ImportRoster(ctx *fiber.Ctx) error {
	semester := ctx.FormValue("semester", "Semester 1")
	if !Models.IsValidSemester(semester) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown semester"})
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A spreadsheet file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot read uploaded file"})
	}
	defer file.Close()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Not a valid spreadsheet file"})
	}
	defer workbook.Close()

	sheetName := workbook.GetSheetName(0)
	rows, err := workbook.GetRows(sheetName)
	if err != nil || len(rows) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Spreadsheet has no rows"})
	}

	// Map header names to column indexes
	columns := map[string]int{}
	for columnIndex, header := range rows[0] {
		columns[strings.TrimSpace(header)] = columnIndex
	}
	nameCol, hasName := columns["Name"]
	rollCol, hasRoll := columns["RollNumber"]
	semesterCol, hasSemester := columns["Semester"]
	if !hasName || !hasRoll {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Spreadsheet must have Name and RollNumber columns",
		})
	}

	cell := func(row []string, index int) string {
		if index < 0 || index >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[index])
	}

	created := 0
	skipped := 0
	seen := map[string]bool{}
	for _, row := range rows[1:] {
		name := cell(row, nameCol)
		roll := cell(row, rollCol)
		rowSemester := semester
		if hasSemester {
			if s := cell(row, semesterCol); s != "" {
				rowSemester = s
			}
		}
		if name == "" || roll == "" || !Models.IsValidSemester(rowSemester) {
			skipped++
			continue
		}
		if seen[rowSemester+"/"+roll] {
			skipped++
			continue
		}
		seen[rowSemester+"/"+roll] = true

		var existing int64
		rc.DB.Model(&Models.Student{}).
			Where("semester = ? AND roll_number = ?", rowSemester, roll).
			Count(&existing)
		if existing > 0 {
			skipped++
			continue
		}

		student := Models.Student{Name: name, Semester: rowSemester, RollNumber: roll}
		if err := rc.DB.Create(&student).Error; err != nil {
			log.Println(err.Error())
			skipped++
			continue
		}
		created++
	}

	return ctx.JSON(fiber.Map{
		"message": "Import complete",
		"created": created,
		"skipped": skipped,
	})
}

// ExportAttendanceSheet builds the semester attendance report workbook:
// one row per student with attended/total lecture counts and the
// percentage, holidays excluded. The raw per-date statuses are not
// exported; the report is aggregate only.
func (rc *RosterController) ExportAttendanceSheet(ctx *fiber.Ctx) error {
	semester := ctx.Query("semester", "Semester 1")
	if !Models.IsValidSemester(semester) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown semester"})
	}

	var students []Models.Student
	if err := rc.DB.Where("semester = ?", semester).Preload("Attendance").Order("id").
		Find(&students).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve students"})
	}

	buf, err := buildAttendanceWorkbook(students)
	if err != nil {
		log.Println(err.Error())
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build spreadsheet"})
	}

	fileName := semester + "_attendance.xlsx"
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(buf.Bytes())
}

func buildAttendanceWorkbook(students []Models.Student) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	sheetName := "Attendance"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Name", "RollNumber", "TotalLecturesAttended", "TotalLectures", "AttendancePercentage",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for rowIndex, student := range students {
		row := rowIndex + 2 // Start from row 2 (after headers)
		summary := Models.CalculateAttendance(student.Attendance)

		values := []interface{}{
			student.Name,
			student.RollNumber,
			summary.PresentDays,
			summary.TotalDays,
			summary.Percentage,
		}
		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := 0; i < len(headers); i++ {
		f.SetColWidth(sheetName, string('A'+rune(i)), string('A'+rune(i)), 22)
	}

	if f.GetSheetName(0) != sheetName {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing spreadsheet to buffer: %v", err)
	}
	return &buf, nil
}
