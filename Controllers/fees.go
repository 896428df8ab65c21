package Controllers

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"GDCPortal/Models"
)

// FeeController handles the fee table endpoints
type FeeController struct {
	DB *gorm.DB
}

// NewFeeController creates a new FeeController
func NewFeeController(db *gorm.DB) *FeeController {
	return &FeeController{DB: db}
}

// GetFeeAmount resolves (course, fee type) against the canonical table.
// Unknown courses resolve to 0, which the admission form shows as "no fee
// information available".
func (fc *FeeController) GetFeeAmount(ctx *fiber.Ctx) error {
	course := ctx.Query("course")
	feeType := ctx.Query("fee_type")
	if course == "" || feeType == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "course and fee_type are required"})
	}

	return ctx.JSON(fiber.Map{
		"course":   course,
		"fee_type": feeType,
		"amount":   Models.GetFeeAmount(fc.DB, course, feeType),
	})
}

// GetFeeMappings lists the whole fee table.
func (fc *FeeController) GetFeeMappings(ctx *fiber.Ctx) error {
	var mappings []Models.FeeMapping
	if err := fc.DB.Order("course, fee_type").Find(&mappings).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve fee table"})
	}
	return ctx.JSON(mappings)
}

// CreateFeeMapping adds a fee table row. Admin only.
func (fc *FeeController) CreateFeeMapping(ctx *fiber.Ctx) error {
	var input Models.FeeMapping
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Course == "" || input.FeeType == "" || input.Amount < 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "course, fee_type and a non-negative amount are required"})
	}

	mapping := Models.FeeMapping{
		Course:  input.Course,
		FeeType: input.FeeType,
		Amount:  input.Amount,
	}
	if err := fc.DB.Create(&mapping).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A fee mapping for this course and fee type already exists",
			})
		}
		log.Println(err.Error())
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create fee mapping"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(mapping)
}

// UpdateFeeMapping changes a fee table row's amount. Admin only.
func (fc *FeeController) UpdateFeeMapping(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid fee mapping ID"})
	}

	var mapping Models.FeeMapping
	if err := fc.DB.First(&mapping, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Fee mapping not found"})
	}

	var input struct {
		Amount int `json:"amount"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Amount < 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Amount must be non-negative"})
	}

	fc.DB.Model(&mapping).Update("amount", input.Amount)
	return ctx.JSON(mapping)
}

// DeleteFeeMapping removes a fee table row. Admin only.
func (fc *FeeController) DeleteFeeMapping(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid fee mapping ID"})
	}

	var mapping Models.FeeMapping
	if err := fc.DB.First(&mapping, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Fee mapping not found"})
	}

	fc.DB.Delete(&mapping)
	return ctx.JSON(fiber.Map{"message": "Fee mapping deleted successfully"})
}
