package Models

import (
	"time"

	"gorm.io/gorm"
)

// Attendance statuses a student can be marked with on a given date.
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusLeave   = "Leave"
)

// Semesters lists the valid semester labels, in order.
var Semesters = []string{
	"Semester 1",
	"Semester 2",
	"Semester 3",
	"Semester 4",
	"Semester 5",
	"Semester 6",
}

func IsValidSemester(label string) bool {
	for _, s := range Semesters {
		if s == label {
			return true
		}
	}
	return false
}

func IsValidStatus(status string) bool {
	return status == StatusPresent || status == StatusAbsent || status == StatusLeave
}

// Student is a registered student within a semester. Roll numbers are
// unique within a semester, not globally.
type Student struct {
	gorm.Model
	Name       string `json:"name" gorm:"not null"`
	Semester   string `json:"semester" gorm:"not null;uniqueIndex:idx_semester_roll"`
	RollNumber string `json:"roll_number" gorm:"not null;uniqueIndex:idx_semester_roll"`

	// Performance fields, optional until entered by staff
	AssignmentScore *int `json:"assignment_score,omitempty"` // out of 20
	ExamScore       *int `json:"exam_score,omitempty"`       // out of 100

	// Uploaded result document
	ResultFileName string `json:"result_file_name,omitempty"`
	ResultFile     []byte `json:"-" gorm:"type:blob"`

	// When attendance was last marked for this student, display only
	LastMarkedAt string `json:"last_marked_at,omitempty"`

	Attendance []AttendanceRecord `json:"attendance,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

// AttendanceRecord is one student's status on one calendar date. Marking
// the same date twice overwrites the previous status (last write wins).
// No soft delete here: a removed student's rows go away with them, and a
// soft-deleted row would still occupy the (student, date) unique index.
type AttendanceRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	StudentID uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_student_date"`
	Date      string    `json:"date" gorm:"not null;uniqueIndex:idx_student_date"` // "2006-01-02"
	Status    string    `json:"status" gorm:"type:varchar(10);not null"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
