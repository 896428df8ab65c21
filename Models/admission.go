package Models

import (
	"gorm.io/gorm"
)

// Payment methods accepted on the admission form. UPI is listed but the
// gateway integration is not live, so UPI applications stay Unpaid.
const (
	PaymentMethodUPI    = "UPI"
	PaymentMethodOffice = "At College Office"

	PaymentStatusPaid   = "Paid"
	PaymentStatusUnpaid = "Unpaid"
)

// AdmissionApplication is a submitted admission form. FeeAmount is a
// snapshot of the fee table at submission time so later fee revisions do
// not change what an applicant was quoted.
type AdmissionApplication struct {
	gorm.Model
	Name          string `json:"name" gorm:"not null"`
	Email         string `json:"email" gorm:"not null"`
	Phone         string `json:"phone" gorm:"not null"`
	Address       string `json:"address"`
	DateOfBirth   string `json:"date_of_birth" gorm:"not null"` // "2006-01-02"
	Course        string `json:"course" gorm:"not null"`
	Semester      int    `json:"semester" gorm:"not null"`
	FeeType       string `json:"fee_type" gorm:"not null"`
	RollNumber    string `json:"roll_number" gorm:"not null"`
	PaymentMethod string `json:"payment_method" gorm:"not null"`
	FeeAmount     int    `json:"fee_amount"`
	PaymentStatus string `json:"payment_status"`

	// ID photo, normalized to a JPEG thumbnail on upload
	PhotoFileName string `json:"photo_file_name"`
	Photo         []byte `json:"-" gorm:"type:blob"`
}
