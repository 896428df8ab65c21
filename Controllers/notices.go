package Controllers

import (
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"GDCPortal/Models"
)

// NoticeController handles the notice board endpoints
type NoticeController struct {
	DB *gorm.DB
}

// NewNoticeController creates a new NoticeController
func NewNoticeController(db *gorm.DB) *NoticeController {
	return &NoticeController{DB: db}
}

// CreateNotice publishes a notice. Both a title and a document are
// required; either missing is a 400 so the console can surface the
// "fill both fields" message.
func (nc *NoticeController) CreateNotice(ctx *fiber.Ctx) error {
	title := strings.TrimSpace(ctx.FormValue("title"))
	fileHeader, err := ctx.FormFile("file")
	if title == "" || err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please fill both fields before submitting",
		})
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

	notice := Models.Notice{
		Title:       title,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		File:        data,
	}
	if err := nc.DB.Create(&notice).Error; err != nil {
		log.Println(err.Error())
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to publish notice"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(notice)
}

// GetNotices lists published notices, newest first.
func (nc *NoticeController) GetNotices(ctx *fiber.Ctx) error {
	var notices []Models.Notice
	if err := nc.DB.Order("created_at DESC").Find(&notices).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve notices"})
	}
	return ctx.JSON(notices)
}

// DownloadNotice streams a notice's attached document.
func (nc *NoticeController) DownloadNotice(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid notice ID"})
	}

	var notice Models.Notice
	if err := nc.DB.First(&notice, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notice not found"})
	}

	if notice.ContentType != "" {
		ctx.Set(fiber.HeaderContentType, notice.ContentType)
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+notice.FileName+`"`)
	return ctx.Send(notice.File)
}

// DeleteNotice removes a published notice.
func (nc *NoticeController) DeleteNotice(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid notice ID"})
	}

	var notice Models.Notice
	if err := nc.DB.First(&notice, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notice not found"})
	}

	nc.DB.Delete(&notice)
	return ctx.JSON(fiber.Map{"message": "Notice deleted successfully"})
}
