package CronJobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"GDCPortal/Models"
	"GDCPortal/email"
)

// DigestScheduler runs the morning digest: tasks due today and students
// whose attendance has dropped below the warning threshold. The digest
// only reads and reports, it never writes records.
type DigestScheduler struct {
	DB                  *gorm.DB
	cronScheduler       *cron.Cron
	attendanceThreshold float64
	runImmediately      bool
	jobID               cron.EntryID
}

// NewDigestScheduler creates a new digest scheduler with the given configuration
func NewDigestScheduler(db *gorm.DB, attendanceThreshold float64, runImmediately bool) *DigestScheduler {
	return &DigestScheduler{
		DB:                  db,
		cronScheduler:       cron.New(cron.WithSeconds()),
		attendanceThreshold: attendanceThreshold,
		runImmediately:      runImmediately,
	}
}

// Start schedules the daily digest
func (d *DigestScheduler) Start() error {
	var err error
	d.jobID, err = d.cronScheduler.AddFunc("0 0 6 * * *", func() {
		log.Println("Running scheduled daily digest")
		d.runDigest()
	})

	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	d.cronScheduler.Start()
	fmt.Println("Daily digest scheduler started - will run daily at 6:00 AM")

	if d.runImmediately {
		fmt.Println("Running initial digest")
		d.runDigest()
	}

	return nil
}

// Stop terminates the digest scheduler
func (d *DigestScheduler) Stop() {
	if d.cronScheduler != nil {
		d.cronScheduler.Stop()
		log.Println("Daily digest scheduler stopped")
	}
}

func (d *DigestScheduler) runDigest() {
	today := time.Now().Format(Models.DateLayout)

	var dueTasks []Models.Task
	if err := d.DB.Where("deadline = ? AND completed = ?", today, false).Find(&dueTasks).Error; err != nil {
		log.Println(err.Error())
		return
	}
	for _, task := range dueTasks {
		log.Printf("Task due today [%s/%s]: %s", task.Category, task.Priority, task.Text)
	}

	var students []Models.Student
	if err := d.DB.Preload("Attendance").Find(&students).Error; err != nil {
		log.Println(err.Error())
		return
	}

	var lowAttendance []string
	for _, student := range students {
		summary := Models.CalculateAttendance(student.Attendance)
		if summary.TotalDays > 0 && summary.Percentage < d.attendanceThreshold {
			lowAttendance = append(lowAttendance,
				fmt.Sprintf("%s (%s, roll %s): %.2f%%", student.Name, student.Semester, student.RollNumber, summary.Percentage))
		}
	}
	for _, line := range lowAttendance {
		log.Println("Low attendance: " + line)
	}

	log.Printf("Daily digest: %d task(s) due today, %d student(s) below %.0f%% attendance",
		len(dueTasks), len(lowAttendance), d.attendanceThreshold)

	d.emailDigest(today, dueTasks, lowAttendance)
}

// emailDigest mails the digest to DIGEST_EMAIL when SMTP is configured.
func (d *DigestScheduler) emailDigest(today string, dueTasks []Models.Task, lowAttendance []string) {
	config, ok := Models.LoadEmailConfig()
	if !ok {
		return
	}
	recipient := config.FromEmail
	if recipient == "" {
		return
	}

	body := fmt.Sprintf("Daily digest for %s\n\nTasks due today:\n", today)
	if len(dueTasks) == 0 {
		body += "  (none)\n"
	}
	for _, task := range dueTasks {
		body += fmt.Sprintf("  - [%s/%s] %s\n", task.Category, task.Priority, task.Text)
	}
	body += fmt.Sprintf("\nStudents below %.0f%% attendance:\n", d.attendanceThreshold)
	if len(lowAttendance) == 0 {
		body += "  (none)\n"
	}
	for _, line := range lowAttendance {
		body += "  - " + line + "\n"
	}

	message := Models.EmailMessage{
		To:      []string{recipient},
		Subject: "Portal digest for " + today,
		Body:    body,
	}
	if err := email.SendEmail(config, message); err != nil {
		log.Printf("Failed to send digest email: %v", err)
	}
}
