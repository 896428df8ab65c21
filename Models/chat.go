package Models

import (
	"gorm.io/gorm"
)

// Chat message senders.
const (
	ChatFromUser = "user"
	ChatFromBot  = "bot"
)

// ChatMessage is one line of the assistant conversation. Bot replies carry
// formatted HTML; user messages are plain text.
type ChatMessage struct {
	gorm.Model
	From   string `json:"from" gorm:"type:varchar(8);not null"`
	Text   string `json:"text" gorm:"type:text;not null"`
	IsHTML bool   `json:"is_html" gorm:"default:false"`
}
