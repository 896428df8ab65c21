package Controllers

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"GDCPortal/Models"
)

// ChatController answers admission questions with a keyword matcher and
// keeps the conversation history in the database.
type ChatController struct {
	DB *gorm.DB
}

// NewChatController creates a new ChatController
func NewChatController(db *gorm.DB) *ChatController {
	return &ChatController{DB: db}
}

type chatInput struct {
	Text string `json:"text" validate:"required"`
}

// SendMessage stores the visitor's message, computes the bot reply and
// stores that too. Both messages come back so the client can append them
// without refetching the whole history.
func (cc *ChatController) SendMessage(ctx *fiber.Ctx) error {
	var input chatInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if strings.TrimSpace(input.Text) == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message text is required"})
	}

	userMessage := Models.ChatMessage{From: Models.ChatFromUser, Text: input.Text}
	if err := cc.DB.Create(&userMessage).Error; err != nil {
		log.Println(err.Error())
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store message"})
	}

	botMessage := Models.ChatMessage{
		From:   Models.ChatFromBot,
		Text:   cc.botResponse(input.Text),
		IsHTML: true,
	}
	if err := cc.DB.Create(&botMessage).Error; err != nil {
		log.Println(err.Error())
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store reply"})
	}

	return ctx.JSON(fiber.Map{"user": userMessage, "bot": botMessage})
}

// GetHistory returns the stored conversation oldest first.
func (cc *ChatController) GetHistory(ctx *fiber.Ctx) error {
	var messages []Models.ChatMessage
	if err := cc.DB.Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve history"})
	}
	return ctx.JSON(messages)
}

// ClearHistory wipes the stored conversation.
func (cc *ChatController) ClearHistory(ctx *fiber.Ctx) error {
	if err := cc.DB.Where("1 = 1").Delete(&Models.ChatMessage{}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to clear history"})
	}
	return ctx.JSON(fiber.Map{"message": "Chat history cleared"})
}

// botResponse is a first-match keyword matcher. Fee figures come from the
// fee table so the chatbot never disagrees with the admission form.
func (cc *ChatController) botResponse(text string) string {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "course") || strings.Contains(lower, "program"):
		var courses []Models.Course
		cc.DB.Order("id ASC").Find(&courses)
		var sb strings.Builder
		sb.WriteString("We offer the following programs:<br/><ul>")
		for _, course := range courses {
			sb.WriteString(fmt.Sprintf("<li><b>%s</b>: %s (%d semesters)</li>",
				course.Title, course.ShortDescription, course.SemesterCount))
		}
		sb.WriteString("</ul>Ask about any of them by name for details.")
		return sb.String()
	case strings.Contains(lower, "bca"):
		return cc.courseReply("BCA", "Bachelor of Computer Applications, a 3-year undergraduate program (6 semesters).")
	case strings.Contains(lower, "mca"):
		return cc.courseReply("MCA", "Master of Computer Applications, a 2-year postgraduate program (4 semesters).")
	case strings.Contains(lower, "bcom") || strings.Contains(lower, "b.com"):
		return "We do not offer B.Com at this campus. Our computer application programs are <b>PGDCA</b>, <b>BCA</b> and <b>MCA</b>."
	case strings.Contains(lower, "admission process") || strings.Contains(lower, "apply") || strings.Contains(lower, "admission"):
		return "To apply: fill the <b>online admission form</b> with your details, upload an ID photo, " +
			"choose your fee type, then submit your fee at the college clerk's office. " +
			"You will receive a printable receipt once the form is submitted."
	case strings.Contains(lower, "eligib"):
		return "<b>BCA</b>: 10+2 in any stream from a recognized board.<br/>" +
			"<b>MCA</b>: a bachelor's degree with mathematics at 10+2 or graduation level.<br/>" +
			"<b>PGDCA</b>: any bachelor's degree."
	case strings.Contains(lower, "deadline") || strings.Contains(lower, "last date"):
		return "Admissions close at the end of the academic intake window. " +
			"Please check the notice board on this portal for the exact last date."
	case strings.Contains(lower, "fee"):
		return cc.feeReply()
	default:
		return "I can help with <b>courses</b>, <b>fees</b>, <b>eligibility</b>, <b>deadlines</b> and the " +
			"<b>admission process</b>. What would you like to know?"
	}
}

func (cc *ChatController) courseReply(title, blurb string) string {
	var course Models.Course
	reply := "<b>" + title + "</b>: " + blurb
	if err := cc.DB.Where("title = ?", title).First(&course).Error; err == nil && course.SyllabusURL != "" {
		reply += `<br/>Syllabus: <a href="` + course.SyllabusURL + `" target="_blank">` + course.SyllabusURL + "</a>"
	}
	return reply + "<br/>" + cc.feeLine(title)
}

func (cc *ChatController) feeReply() string {
	return "Semester fees:<br/>" + cc.feeLine("BCA") + "<br/>" + cc.feeLine("MCA") +
		"<br/>Fees are paid at the college clerk's office."
}

func (cc *ChatController) feeLine(course string) string {
	subsidized := Models.GetFeeAmount(cc.DB, course, Models.FeeTypeSubsidized)
	nonSubsidized := Models.GetFeeAmount(cc.DB, course, Models.FeeTypeNonSubsidized)
	if subsidized == 0 && nonSubsidized == 0 {
		return "<b>" + course + "</b>: fee schedule published on the notice board."
	}
	return fmt.Sprintf("<b>%s</b>: Rs. %d (Subsidized) / Rs. %d (Non-Subsidized) per semester.",
		course, subsidized, nonSubsidized)
}
