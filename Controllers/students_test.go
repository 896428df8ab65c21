package Controllers

import (
	"io"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"GDCPortal/Models"
)

func newStudentApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	controller := NewStudentController(db)
	app.Get("/api/students", controller.GetStudents)
	app.Post("/api/students", controller.CreateStudent)
	app.Get("/api/students/:id", controller.GetStudent)
	app.Delete("/api/students/:id", controller.DeleteStudent)
	app.Patch("/api/students/:id/scores", controller.UpdateScores)
	app.Post("/api/students/:id/result", controller.UploadResultFile)
	app.Get("/api/students/:id/result", controller.DownloadResultFile)
	app.Delete("/api/students/:id/result", controller.RemoveResultFile)
	return app
}

func TestCreateStudent(t *testing.T) {
	db := newTestDB(t)
	app := newStudentApp(db)

	resp := jsonRequest(t, app, fiber.MethodPost, "/api/students", fiber.Map{
		"name":        "Aarav Sharma",
		"semester":    "Semester 1",
		"roll_number": "101",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var student Models.Student
	require.NoError(t, db.Where("roll_number = ?", "101").First(&student).Error)
	assert.Equal(t, "Aarav Sharma", student.Name)
	assert.Equal(t, "Semester 1", student.Semester)
}

func TestCreateStudentValidation(t *testing.T) {
	db := newTestDB(t)
	app := newStudentApp(db)

	resp := jsonRequest(t, app, fiber.MethodPost, "/api/students", fiber.Map{
		"name": "No Roll",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = jsonRequest(t, app, fiber.MethodPost, "/api/students", fiber.Map{
		"name":        "Bad Semester",
		"semester":    "Semester 9",
		"roll_number": "102",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateStudentDuplicateRoll(t *testing.T) {
	db := newTestDB(t)
	app := newStudentApp(db)
	seedStudent(t, db, "Aarav Sharma", "Semester 1", "101")

	resp := jsonRequest(t, app, fiber.MethodPost, "/api/students", fiber.Map{
		"name":        "Someone Else",
		"semester":    "Semester 1",
		"roll_number": "101",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Same roll number in another semester is fine
	resp = jsonRequest(t, app, fiber.MethodPost, "/api/students", fiber.Map{
		"name":        "Someone Else",
		"semester":    "Semester 2",
		"roll_number": "101",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var count int64
	db.Model(&Models.Student{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestGetStudentsFiltersBySemester(t *testing.T) {
	db := newTestDB(t)
	app := newStudentApp(db)
	seedStudent(t, db, "Aarav Sharma", "Semester 1", "101")
	seedStudent(t, db, "Diya Verma", "Semester 1", "102")
	seedStudent(t, db, "Kabir Mehta", "Semester 2", "201")

	resp := jsonRequest(t, app, fiber.MethodGet, "/api/students?semester=Semester+1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rows []StudentResponse
	decodeBody(t, resp, &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, "Aarav Sharma", rows[0].Name)
	assert.Equal(t, "Diya Verma", rows[1].Name)
}

func TestGetStudentsSearch(t *testing.T) {
	db := newTestDB(t)
	app := newStudentApp(db)
	seedStudent(t, db, "Aarav Sharma", "Semester 1", "101")
	seedStudent(t, db, "Diya Verma", "Semester 1", "102")

	resp := jsonRequest(t, app, fiber.MethodGet, "/api/students?semester=Semester+1&q=diya", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rows []StudentResponse
	decodeBody(t, resp, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "Diya Verma", rows[0].Name)

	// Roll number search
	resp = jsonRequest(t, app, fiber.MethodGet, "/api/students?semester=Semester+1&q=101", nil)
	decodeBody(t, resp, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "Aarav Sharma", rows[0].Name)
}

func TestDeleteStudentRemovesAttendance(t *testing.T) {
	db := newTestDB(t)
	app := newStudentApp(db)
	student := seedStudent(t, db, "Aarav Sharma", "Semester 1", "101")
	require.NoError(t, db.Create(&Models.AttendanceRecord{
		StudentID: student.ID, Date: "2024-12-02", Status: Models.StatusPresent,
	}).Error)

	resp := jsonRequest(t, app, fiber.MethodDelete, "/api/students/1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var students, records int64
	db.Model(&Models.Student{}).Count(&students)
	db.Model(&Models.AttendanceRecord{}).Count(&records)
	assert.EqualValues(t, 0, students)
	assert.EqualValues(t, 0, records)

	// The roster slot is free again
	resp = jsonRequest(t, app, fiber.MethodPost, "/api/students", fiber.Map{
		"name":        "Replacement",
		"semester":    "Semester 1",
		"roll_number": "101",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestUpdateScores(t *testing.T) {
	db := newTestDB(t)
	app := newStudentApp(db)
	seedStudent(t, db, "Aarav Sharma", "Semester 1", "101")

	resp := jsonRequest(t, app, fiber.MethodPatch, "/api/students/1/scores", fiber.Map{
		"assignment_score": 18,
		"exam_score":       92,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var student Models.Student
	require.NoError(t, db.First(&student, 1).Error)
	require.NotNil(t, student.AssignmentScore)
	require.NotNil(t, student.ExamScore)
	assert.Equal(t, 18, *student.AssignmentScore)
	assert.Equal(t, 92, *student.ExamScore)
}

func TestUpdateScoresPartial(t *testing.T) {
	db := newTestDB(t)
	app := newStudentApp(db)
	seedStudent(t, db, "Aarav Sharma", "Semester 1", "101")

	resp := jsonRequest(t, app, fiber.MethodPatch, "/api/students/1/scores", fiber.Map{
		"assignment_score": 18,
		"exam_score":       92,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Sending only one score leaves the other untouched
	resp = jsonRequest(t, app, fiber.MethodPatch, "/api/students/1/scores", fiber.Map{
		"exam_score": 75,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var student Models.Student
	require.NoError(t, db.First(&student, 1).Error)
	require.NotNil(t, student.AssignmentScore)
	require.NotNil(t, student.ExamScore)
	assert.Equal(t, 18, *student.AssignmentScore)
	assert.Equal(t, 75, *student.ExamScore)
}

func TestUploadResultFile(t *testing.T) {
	db := newTestDB(t)
	app := newStudentApp(db)
	seedStudent(t, db, "Aarav Sharma", "Semester 1", "101")

	content := []byte("%PDF-1.4 semester one result")
	resp := multipartRequest(t, app, "/api/students/1/result",
		nil, "file", "result.pdf", content)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The stored blob is the whole upload, byte for byte
	var student Models.Student
	require.NoError(t, db.First(&student, 1).Error)
	assert.Equal(t, "result.pdf", student.ResultFileName)
	assert.Equal(t, content, student.ResultFile)

	download := jsonRequest(t, app, fiber.MethodGet, "/api/students/1/result", nil)
	require.Equal(t, fiber.StatusOK, download.StatusCode)
	data, err := io.ReadAll(download.Body)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestUploadResultFileEmpty(t *testing.T) {
	db := newTestDB(t)
	app := newStudentApp(db)
	seedStudent(t, db, "Aarav Sharma", "Semester 1", "101")

	// A zero-byte upload is accepted, not a server error
	resp := multipartRequest(t, app, "/api/students/1/result",
		nil, "file", "result.pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var student Models.Student
	require.NoError(t, db.First(&student, 1).Error)
	assert.Equal(t, "result.pdf", student.ResultFileName)
	assert.Empty(t, student.ResultFile)
}

func TestUpdateScoresBounds(t *testing.T) {
	db := newTestDB(t)
	app := newStudentApp(db)
	seedStudent(t, db, "Aarav Sharma", "Semester 1", "101")

	resp := jsonRequest(t, app, fiber.MethodPatch, "/api/students/1/scores", fiber.Map{
		"assignment_score": 25,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = jsonRequest(t, app, fiber.MethodPatch, "/api/students/1/scores", fiber.Map{
		"exam_score": 101,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var student Models.Student
	require.NoError(t, db.First(&student, 1).Error)
	assert.Nil(t, student.AssignmentScore)
	assert.Nil(t, student.ExamScore)
}
