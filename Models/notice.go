package Models

import (
	"gorm.io/gorm"
)

// Notice is a published institutional notice with an attached document.
// Listing order is newest first.
type Notice struct {
	gorm.Model
	Title       string `json:"title" gorm:"not null"`
	FileName    string `json:"file_name" gorm:"not null"`
	ContentType string `json:"content_type"`
	File        []byte `json:"-" gorm:"type:blob"`
}
