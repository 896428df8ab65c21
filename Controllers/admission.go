package Controllers

import (
	"bytes"
	"fmt"
	"log"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"GDCPortal/Models"
	"GDCPortal/email"
)

// AdmissionController handles admission form submissions and receipts
type AdmissionController struct {
	DB *gorm.DB
}

// NewAdmissionController creates a new AdmissionController
func NewAdmissionController(db *gorm.DB) *AdmissionController {
	return &AdmissionController{DB: db}
}

// AdmissionInput is the admission form payload. The multipart ID photo is
// handled separately.
type AdmissionInput struct {
	Name          string `json:"name" form:"name" validate:"required"`
	Email         string `json:"email" form:"email" validate:"required,email"`
	Phone         string `json:"phone" form:"phone" validate:"required,min=7,max=15"`
	Address       string `json:"address" form:"address"`
	DateOfBirth   string `json:"dob" form:"dob" validate:"required,datetime=2006-01-02"`
	Course        string `json:"course" form:"course" validate:"required"`
	Semester      int    `json:"semester" form:"semester" validate:"required,min=1,max=6"`
	FeeType       string `json:"fee_type" form:"fee_type" validate:"required,oneof=Subsidized Non-Subsidized"`
	RollNumber    string `json:"roll_number" form:"roll_number" validate:"required"`
	PaymentMethod string `json:"payment_method" form:"payment_method" validate:"required,oneof=UPI 'At College Office'"`
	Agree         bool   `json:"agree" form:"agree"`
}

// SubmitApplication validates and stores an admission form. The uploaded
// ID photo must be JPEG, PNG or GIF and is normalized to a JPEG thumbnail
// before storage. A confirmation email goes out when SMTP is configured.
func (adc *AdmissionController) SubmitApplication(ctx *fiber.Ctx) error {
	var input AdmissionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid form: " + err.Error()})
	}
	if !input.Agree {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "You must agree to the terms and conditions before submitting.",
		})
	}

	var courseCount int64
	adc.DB.Model(&Models.Course{}).Where("title = ?", input.Course).Count(&courseCount)
	if courseCount == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown course"})
	}

	application := Models.AdmissionApplication{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		DateOfBirth:   input.DateOfBirth,
		Course:        input.Course,
		Semester:      input.Semester,
		FeeType:       input.FeeType,
		RollNumber:    input.RollNumber,
		PaymentMethod: input.PaymentMethod,
		FeeAmount:     Models.GetFeeAmount(adc.DB, input.Course, input.FeeType),
		// The UPI gateway is not live, so every application starts Unpaid
		// and is settled at the office counter
		PaymentStatus: Models.PaymentStatusUnpaid,
	}

	if fileHeader, err := ctx.FormFile("id_photo"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot read uploaded photo"})
		}
		defer file.Close()

		img, err := imaging.Decode(file)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please upload an image file (JPEG, PNG, GIF).",
			})
		}

		// Normalize to a bounded thumbnail so the blob stays small
		thumbnail := imaging.Fit(img, 256, 256, imaging.Lanczos)
		var photoBuf bytes.Buffer
		if err := imaging.Encode(&photoBuf, thumbnail, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
			log.Println(err.Error())
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process photo"})
		}
		application.PhotoFileName = fileHeader.Filename
		application.Photo = photoBuf.Bytes()
	} else {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "An ID photo is required"})
	}

	if err := adc.DB.Create(&application).Error; err != nil {
		log.Println(err.Error())
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store application"})
	}

	if config, ok := Models.LoadEmailConfig(); ok {
		message := Models.EmailMessage{
			To:      []string{application.Email},
			Subject: "Admission application received",
			Body: fmt.Sprintf(
				"Dear %s,\n\nYour admission application for %s (Semester %d) has been received.\nFee amount: Rs. %d (%s)\nPlease verify and submit your fee at the college clerk's office.\n\nGDC Admissions Office",
				application.Name, application.Course, application.Semester,
				application.FeeAmount, application.FeeType,
			),
		}
		if err := email.SendEmail(config, message); err != nil {
			// Email is best effort; the application is already stored
			log.Printf("Failed to send confirmation email to %s: %v", application.Email, err)
		}
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Form Submitted Successfully!",
		"id":         application.ID,
		"fee_amount": application.FeeAmount,
		"status":     application.PaymentStatus,
	})
}

// GetApplications lists submitted applications, newest first. Admin only.
func (adc *AdmissionController) GetApplications(ctx *fiber.Ctx) error {
	var applications []Models.AdmissionApplication
	if err := adc.DB.Order("created_at DESC").Find(&applications).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve applications"})
	}
	return ctx.JSON(applications)
}

// GetApplicationPhoto streams the stored ID photo thumbnail.
func (adc *AdmissionController) GetApplicationPhoto(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid application ID"})
	}

	var application Models.AdmissionApplication
	if err := adc.DB.First(&application, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}
	if len(application.Photo) == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No photo on this application"})
	}

	ctx.Set(fiber.HeaderContentType, "image/jpeg")
	return ctx.Send(application.Photo)
}

// ReceiptPage renders the printable admission receipt in a standalone
// page, replacing the old open-in-new-tab HTML blob.
func (adc *AdmissionController) ReceiptPage(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid application ID"})
	}

	var application Models.AdmissionApplication
	if err := adc.DB.First(&application, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}

	officeNote := "Please verify and submit your fee at the college clerk's office. Thank you."
	if application.PaymentMethod == Models.PaymentMethodUPI {
		officeNote = "UPI payments are currently unavailable. " + officeNote
	}

	return ctx.Render("receipt", fiber.Map{
		"Application": application,
		"HasPhoto":    len(application.Photo) > 0,
		"OfficeNote":  officeNote,
	})
}
