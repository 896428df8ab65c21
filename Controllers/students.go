package Controllers

import (
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"GDCPortal/Models"
)

var validate = validator.New()

// StudentController handles the student roster endpoints
type StudentController struct {
	DB *gorm.DB
}

// NewStudentController creates a new StudentController
func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

// StudentResponse is a roster row with its derived attendance summary.
type StudentResponse struct {
	Models.Student
	Summary Models.AttendanceSummary `json:"summary"`
}

// GetStudents lists one semester's roster, optionally filtered by a search
// query matching name or roll number.
func (sc *StudentController) GetStudents(ctx *fiber.Ctx) error {
	semester := ctx.Query("semester", "Semester 1")
	if !Models.IsValidSemester(semester) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown semester"})
	}

	query := sc.DB.Where("semester = ?", semester)
	if search := ctx.Query("q"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR roll_number LIKE ?", pattern, pattern)
	}

	var students []Models.Student
	if err := query.Preload("Attendance").Order("id").Find(&students).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve students"})
	}

	response := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		response = append(response, StudentResponse{
			Student: student,
			Summary: Models.CalculateAttendance(student.Attendance),
		})
	}
	return ctx.JSON(response)
}

// GetStudent retrieves a single student with attendance history.
func (sc *StudentController) GetStudent(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student ID"})
	}

	var student Models.Student
	if err := sc.DB.Preload("Attendance").First(&student, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	return ctx.JSON(StudentResponse{
		Student: student,
		Summary: Models.CalculateAttendance(student.Attendance),
	})
}

// CreateStudent adds a student to a semester's roster.
func (sc *StudentController) CreateStudent(ctx *fiber.Ctx) error {
	var input struct {
		Name       string `json:"name" validate:"required"`
		Semester   string `json:"semester" validate:"required"`
		RollNumber string `json:"roll_number" validate:"required"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name, semester and roll number are required"})
	}
	if !Models.IsValidSemester(input.Semester) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown semester"})
	}

	student := Models.Student{
		Name:       strings.TrimSpace(input.Name),
		Semester:   input.Semester,
		RollNumber: strings.TrimSpace(input.RollNumber),
	}

	if err := sc.DB.Create(&student).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A student with this roll number already exists in " + input.Semester,
			})
		}
		log.Println(err.Error())
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create student"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(student)
}

// DeleteStudent removes a student and their attendance rows.
func (sc *StudentController) DeleteStudent(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student ID"})
	}

	var student Models.Student
	if err := sc.DB.First(&student, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	// Hard delete: a soft-deleted row would keep the roll number's slot in
	// the (semester, roll) unique index occupied forever.
	sc.DB.Where("student_id = ?", student.ID).Delete(&Models.AttendanceRecord{})
	sc.DB.Unscoped().Delete(&student)

	return ctx.JSON(fiber.Map{"message": "Student removed successfully"})
}

// UpdateScores sets a student's assignment and exam scores. Only fields
// present in the payload are written; an omitted score stays as it is.
// Bounds are enforced here; the old forms accepted anything.
func (sc *StudentController) UpdateScores(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student ID"})
	}

	var student Models.Student
	if err := sc.DB.First(&student, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	var input struct {
		AssignmentScore *int `json:"assignment_score" validate:"omitempty,min=0,max=20"`
		ExamScore       *int `json:"exam_score" validate:"omitempty,min=0,max=100"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Assignment score must be 0-20 and exam score 0-100",
		})
	}

	columns := make([]string, 0, 2)
	if input.AssignmentScore != nil {
		student.AssignmentScore = input.AssignmentScore
		columns = append(columns, "AssignmentScore")
	}
	if input.ExamScore != nil {
		student.ExamScore = input.ExamScore
		columns = append(columns, "ExamScore")
	}
	if len(columns) == 0 {
		return ctx.JSON(student)
	}

	if err := sc.DB.Model(&student).Select(columns).Updates(student).Error; err != nil {
		log.Println(err.Error())
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update scores"})
	}

	return ctx.JSON(student)
}

// UploadResultFile stores a result document against a student.
func (sc *StudentController) UploadResultFile(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student ID"})
	}

	var student Models.Student
	if err := sc.DB.First(&student, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A result file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot read uploaded file"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Cannot read uploaded file"})
	}

	student.ResultFileName = fileHeader.Filename
	student.ResultFile = data
	if err := sc.DB.Model(&student).Select("ResultFileName", "ResultFile").Updates(student).Error; err != nil {
		log.Println(err.Error())
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store result file"})
	}

	return ctx.JSON(fiber.Map{"message": "Result file uploaded", "file_name": student.ResultFileName})
}

// DownloadResultFile streams a student's stored result document.
func (sc *StudentController) DownloadResultFile(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student ID"})
	}

	var student Models.Student
	if err := sc.DB.First(&student, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}
	if len(student.ResultFile) == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No result file uploaded for this student"})
	}

	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+student.ResultFileName+`"`)
	return ctx.Send(student.ResultFile)
}

// RemoveResultFile deletes a stored result document.
func (sc *StudentController) RemoveResultFile(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student ID"})
	}

	var student Models.Student
	if err := sc.DB.First(&student, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	if err := sc.DB.Model(&student).Updates(map[string]interface{}{
		"result_file_name": "",
		"result_file":      nil,
	}).Error; err != nil {
		log.Println(err.Error())
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove result file"})
	}

	return ctx.JSON(fiber.Map{"message": "Result file removed"})
}

// SelfProfile returns the logged-in student's own record with the
// attendance summary. The raw result blob stays out of the payload.
func (sc *StudentController) SelfProfile(ctx *fiber.Ctx) error {
	student, ok := ctx.Locals("student").(Models.Student)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not logged in"})
	}

	if err := sc.DB.Preload("Attendance", func(db *gorm.DB) *gorm.DB {
		return db.Order("date ASC")
	}).First(&student, student.ID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	student.ResultFile = nil
	return ctx.JSON(StudentResponse{
		Student: student,
		Summary: Models.CalculateAttendance(student.Attendance),
	})
}

// SelfDownloadResult streams the logged-in student's own result document.
func (sc *StudentController) SelfDownloadResult(ctx *fiber.Ctx) error {
	student, ok := ctx.Locals("student").(Models.Student)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not logged in"})
	}

	if err := sc.DB.First(&student, student.ID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}
	if len(student.ResultFile) == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No result file uploaded for this student"})
	}

	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+student.ResultFileName+`"`)
	return ctx.Send(student.ResultFile)
}
