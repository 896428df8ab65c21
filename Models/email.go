package Models

import (
	"os"
	"strconv"
)

// EmailConfig holds SMTP settings for outgoing mail.
type EmailConfig struct {
	SMTPServer   string
	SMTPPort     int
	Username     string
	Password     string
	FromEmail    string
	FromName     string
	TLSEnabled   bool
	SkipTLSCheck bool
}

// EmailMessage represents an email to be sent
type EmailMessage struct {
	To      []string
	CC      []string
	BCC     []string
	Subject string
	Body    string
	IsHTML  bool
}

// LoadEmailConfig builds the SMTP configuration from the environment.
// Returns false when SMTP_SERVER is unset, in which case outgoing mail is
// disabled and callers should skip sending.
func LoadEmailConfig() (EmailConfig, bool) {
	server := os.Getenv("SMTP_SERVER")
	if server == "" {
		return EmailConfig{}, false
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	return EmailConfig{
		SMTPServer: server,
		SMTPPort:   port,
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"),
		FromEmail:  os.Getenv("SMTP_FROM_EMAIL"),
		FromName:   "GDC Admissions Office",
		TLSEnabled: os.Getenv("SMTP_TLS") != "false",
	}, true
}
