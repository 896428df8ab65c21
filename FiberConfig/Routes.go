package FiberConfig

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"

	"GDCPortal/Apis"
	"GDCPortal/Controllers"
	"GDCPortal/Models"
	"GDCPortal/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	studentController := Controllers.NewStudentController(db)
	attendanceController := Controllers.NewAttendanceController(db)
	rosterController := Controllers.NewRosterController(db)
	feeController := Controllers.NewFeeController(db)
	noticeController := Controllers.NewNoticeController(db)
	taskController := Controllers.NewTaskController(db)
	admissionController := Controllers.NewAdmissionController(db)
	chatController := Controllers.NewChatController(db)

	// API group
	api := app.Group("/api")

	// Auth
	api.Post("/Login", Controllers.Login)
	api.Post("/StudentLogin", Controllers.StudentLogin)
	api.Get("/validate-token", Controllers.ValidateToken)
	api.Use("/User", Controllers.User)
	api.Use("/Logout", Controllers.Logout)
	api.Post("/RegisterUser", middleware.Verify(4), Controllers.RegisterUser)
	api.Get("/FetchUsers", middleware.Verify(4), Controllers.FetchUsers)
	api.Delete("/DeleteUser", middleware.Verify(4), Controllers.DeleteUser)

	// Roster routes
	students := api.Group("/students", middleware.Verify(2))
	students.Get("/", studentController.GetStudents)
	students.Post("/", studentController.CreateStudent)
	students.Get("/:id", studentController.GetStudent)
	students.Delete("/:id", studentController.DeleteStudent)
	students.Patch("/:id/scores", studentController.UpdateScores)
	students.Post("/:id/result", studentController.UploadResultFile)
	students.Get("/:id/result", studentController.DownloadResultFile)
	students.Delete("/:id/result", studentController.RemoveResultFile)

	// Attendance routes
	attendance := api.Group("/attendance", middleware.Verify(2))
	attendance.Post("/mark", attendanceController.MarkAttendance)
	attendance.Get("/day", attendanceController.GetDaySheet)
	attendance.Get("/stats", attendanceController.GetSemesterStats)
	attendance.Get("/student/:id", attendanceController.GetStudentAttendance)

	// Roster import/export
	api.Post("/roster/import", middleware.Verify(2), rosterController.ImportRoster)
	api.Get("/roster/export", middleware.Verify(2), rosterController.ExportAttendanceSheet)

	// Fee routes - the amount lookup is public, the admission form uses it
	api.Get("/fees/amount", feeController.GetFeeAmount)
	fees := api.Group("/fees", middleware.Verify(3))
	fees.Get("/", feeController.GetFeeMappings)
	fees.Post("/", feeController.CreateFeeMapping)
	fees.Put("/:id", feeController.UpdateFeeMapping)
	fees.Delete("/:id", feeController.DeleteFeeMapping)

	// Notice routes - reading is public, managing is admin
	api.Get("/notices", noticeController.GetNotices)
	api.Get("/notices/:id/file", noticeController.DownloadNotice)
	api.Post("/notices", middleware.Verify(3), noticeController.CreateNotice)
	api.Delete("/notices/:id", middleware.Verify(3), noticeController.DeleteNotice)

	// Task routes
	tasks := api.Group("/tasks", middleware.Verify(2))
	tasks.Get("/", taskController.GetTasks)
	tasks.Post("/", taskController.CreateTask)
	tasks.Patch("/:id/toggle", taskController.ToggleTask)
	tasks.Delete("/:id", taskController.DeleteTask)

	// Admission routes
	api.Post("/admissions", admissionController.SubmitApplication)
	api.Get("/admissions", middleware.Verify(3), admissionController.GetApplications)
	api.Get("/admissions/:id/photo", middleware.Verify(3), admissionController.GetApplicationPhoto)
	app.Get("/receipt/:id", admissionController.ReceiptPage)

	// Chatbot routes
	api.Post("/chat", chatController.SendMessage)
	api.Get("/chat", chatController.GetHistory)
	api.Delete("/chat", chatController.ClearHistory)

	// Public catalog and dashboard
	api.Get("/courses", Apis.GetCourses)
	api.Get("/courses/:title", Apis.GetCourse)
	api.Get("/quote", Apis.GetQuoteOfTheDay)
	api.Get("/dashboard", middleware.Verify(2), Apis.GetDashboardStats)

	// Student self-service
	self := api.Group("/self", middleware.VerifyStudent())
	self.Get("/profile", studentController.SelfProfile)
	self.Get("/result", studentController.SelfDownloadResult)

	app.Get("/health", Apis.Health)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	engine := html.New("./templates", ".html")
	// Html Template engine
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,
	}))

	SetupRoutes(app, Models.DB)
	app.Static("/static", "static/")

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	app.Listen(":" + port)
}
