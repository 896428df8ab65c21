package Controllers

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"GDCPortal/Models"
)

// TaskController handles the admin task board endpoints
type TaskController struct {
	DB *gorm.DB
}

// NewTaskController creates a new TaskController
func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{DB: db}
}

// CreateTask adds a task to the board. Text and deadline are required.
func (tc *TaskController) CreateTask(ctx *fiber.Ctx) error {
	var input struct {
		Text     string `json:"text"`
		Deadline string `json:"deadline"`
		Category string `json:"category"`
		Priority string `json:"priority"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}

	input.Text = strings.TrimSpace(input.Text)
	if input.Text == "" || input.Deadline == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please fill all fields!"})
	}
	if _, err := time.Parse(Models.DateLayout, input.Deadline); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Deadline must be in YYYY-MM-DD format"})
	}
	if input.Category == "" {
		input.Category = Models.CategoryWork
	}
	if input.Priority == "" {
		input.Priority = Models.PriorityLow
	}
	if !Models.IsValidCategory(input.Category) || !Models.IsValidPriority(input.Priority) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown category or priority"})
	}

	task := Models.Task{
		Text:     input.Text,
		Deadline: input.Deadline,
		Category: input.Category,
		Priority: input.Priority,
	}
	if err := tc.DB.Create(&task).Error; err != nil {
		log.Println(err.Error())
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create task"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(task)
}

// GetTasks lists tasks, optionally filtered by a text search.
func (tc *TaskController) GetTasks(ctx *fiber.Ctx) error {
	query := tc.DB.Order("id")
	if search := ctx.Query("q"); search != "" {
		query = query.Where("LOWER(text) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var tasks []Models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tasks"})
	}
	return ctx.JSON(tasks)
}

// ToggleTask flips a task's completion flag.
func (tc *TaskController) ToggleTask(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var task Models.Task
	if err := tc.DB.First(&task, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	if err := tc.DB.Model(&task).Update("completed", !task.Completed).Error; err != nil {
		log.Println(err.Error())
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update task"})
	}
	return ctx.JSON(task)
}

// DeleteTask removes a task from the board.
func (tc *TaskController) DeleteTask(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var task Models.Task
	if err := tc.DB.First(&task, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	tc.DB.Delete(&task)
	return ctx.JSON(fiber.Map{"message": "Task deleted successfully"})
}
