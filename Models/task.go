package Models

import (
	"gorm.io/gorm"
)

// Task categories and priorities.
const (
	CategoryWork     = "Work"
	CategoryPersonal = "Personal"
	CategoryOther    = "Other"

	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Task is an administrative to-do item on the dashboard task board.
type Task struct {
	gorm.Model
	Text      string `json:"text" gorm:"not null"`
	Completed bool   `json:"completed" gorm:"default:false"`
	Deadline  string `json:"deadline" gorm:"not null"` // "2006-01-02"
	Category  string `json:"category" gorm:"type:varchar(10);not null"`
	Priority  string `json:"priority" gorm:"type:varchar(10);not null"`
}

func IsValidCategory(category string) bool {
	return category == CategoryWork || category == CategoryPersonal || category == CategoryOther
}

func IsValidPriority(priority string) bool {
	return priority == PriorityLow || priority == PriorityMedium || priority == PriorityHigh
}
