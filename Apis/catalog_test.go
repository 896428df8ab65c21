package Apis

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"GDCPortal/Models"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&Models.Course{},
		&Models.Student{},
		&Models.AttendanceRecord{},
		&Models.Task{},
		&Models.Notice{},
		&Models.AdmissionApplication{},
	))

	previous := Models.DB
	Models.DB = db
	t.Cleanup(func() { Models.DB = previous })
}

func get(t *testing.T, app *fiber.App, target string, out interface{}) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, target, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestGetCourses(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, Models.SeedCourses(Models.DB))

	app := fiber.New()
	app.Get("/api/courses", GetCourses)
	app.Get("/api/courses/:title", GetCourse)

	var courses []Models.Course
	require.Equal(t, fiber.StatusOK, get(t, app, "/api/courses", &courses))
	require.Len(t, courses, 3)
	assert.Equal(t, "PGDCA", courses[0].Title)
	assert.Equal(t, "BCA", courses[1].Title)
	assert.Equal(t, "MCA", courses[2].Title)

	var course Models.Course
	require.Equal(t, fiber.StatusOK, get(t, app, "/api/courses/BCA", &course))
	assert.Equal(t, 6, course.SemesterCount)
	assert.Contains(t, course.SyllabusURL, "hpuniv.ac.in")

	assert.Equal(t, fiber.StatusNotFound, get(t, app, "/api/courses/BTech", nil))
}

func TestGetQuoteOfTheDay(t *testing.T) {
	app := fiber.New()
	app.Get("/api/quote", GetQuoteOfTheDay)

	var first, second struct {
		Quote string `json:"quote"`
	}
	require.Equal(t, fiber.StatusOK, get(t, app, "/api/quote", &first))
	require.Equal(t, fiber.StatusOK, get(t, app, "/api/quote", &second))
	assert.Contains(t, quotes, first.Quote)
	assert.Equal(t, first.Quote, second.Quote, "quote is stable within a day")
}

func TestGetDashboardStats(t *testing.T) {
	setupTestDB(t)
	student := Models.Student{Name: "Aarav Sharma", Semester: "Semester 1", RollNumber: "101"}
	require.NoError(t, Models.DB.Create(&student).Error)
	require.NoError(t, Models.DB.Create(&Models.AttendanceRecord{
		StudentID: student.ID, Date: "2024-12-02", Status: Models.StatusPresent,
	}).Error)
	require.NoError(t, Models.DB.Create(&Models.Task{
		Text: "Collect exam forms", Deadline: "2024-12-20",
		Category: Models.CategoryWork, Priority: Models.PriorityLow,
	}).Error)

	app := fiber.New()
	app.Get("/api/dashboard", GetDashboardStats)

	var stats struct {
		Students          int64   `json:"students"`
		OpenTasks         int64   `json:"open_tasks"`
		Notices           int64   `json:"notices"`
		AverageAttendance float64 `json:"average_attendance"`
	}
	require.Equal(t, fiber.StatusOK, get(t, app, "/api/dashboard", &stats))
	assert.EqualValues(t, 1, stats.Students)
	assert.EqualValues(t, 1, stats.OpenTasks)
	assert.EqualValues(t, 0, stats.Notices)
	assert.Equal(t, 100.0, stats.AverageAttendance)
}
