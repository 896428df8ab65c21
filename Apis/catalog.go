package Apis

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/exp/rand"

	"GDCPortal/Models"
)

var quotes = []string{
	"Education is the most powerful weapon which you can use to change the world.",
	"The beautiful thing about learning is that no one can take it away from you.",
	"Success is the sum of small efforts, repeated day in and day out.",
}

// GetCourses returns the public course catalog.
func GetCourses(ctx *fiber.Ctx) error {
	var courses []Models.Course
	if err := Models.DB.Order("id ASC").Find(&courses).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve courses"})
	}
	return ctx.JSON(courses)
}

// GetCourse returns a single catalog entry by title.
func GetCourse(ctx *fiber.Ctx) error {
	var course Models.Course
	if err := Models.DB.Where("title = ?", ctx.Params("title")).First(&course).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	return ctx.JSON(course)
}

// GetQuoteOfTheDay picks one of the motivational quotes, seeded by the
// date so everyone sees the same quote all day.
func GetQuoteOfTheDay(ctx *fiber.Ctx) error {
	seed := uint64(time.Now().Year())*1000 + uint64(time.Now().YearDay())
	source := rand.New(rand.NewSource(seed))
	return ctx.JSON(fiber.Map{"quote": quotes[source.Intn(len(quotes))]})
}
