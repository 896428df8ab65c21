package Models

import (
	"log"

	"gorm.io/gorm"
)

// Fee types offered during admission.
const (
	FeeTypeSubsidized    = "Subsidized"
	FeeTypeNonSubsidized = "Non-Subsidized"
)

// FeeMapping maps a (course, fee type) pair to a fixed amount in rupees.
// This table is the single source of truth for fee amounts; the old forms
// each carried their own diverging copies.
type FeeMapping struct {
	gorm.Model
	Course  string `json:"course" gorm:"not null;uniqueIndex:idx_course_fee_type"`
	FeeType string `json:"fee_type" gorm:"not null;uniqueIndex:idx_course_fee_type"`
	Amount  int    `json:"amount" gorm:"not null"`
}

// SeedFeeMappings installs the canonical fee table if the rows are absent.
func SeedFeeMappings(db *gorm.DB) error {
	mappings := []FeeMapping{
		{Course: "BCA", FeeType: FeeTypeSubsidized, Amount: 7650},
		{Course: "BCA", FeeType: FeeTypeNonSubsidized, Amount: 14800},
		{Course: "MCA", FeeType: FeeTypeSubsidized, Amount: 7650},
		{Course: "MCA", FeeType: FeeTypeNonSubsidized, Amount: 14800},
	}
	for _, mapping := range mappings {
		result := db.Where("course = ? AND fee_type = ?", mapping.Course, mapping.FeeType).
			FirstOrCreate(&FeeMapping{}, mapping)
		if result.Error != nil {
			return result.Error
		}
	}
	return nil
}

// GetFeeAmount returns the fee amount for a course and fee type, or 0 when
// no mapping exists for the course.
func GetFeeAmount(db *gorm.DB, course, feeType string) int {
	var mapping FeeMapping
	if err := db.Where("course = ? AND fee_type = ?", course, feeType).First(&mapping).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Println(err.Error())
		}
		return 0
	}
	return mapping.Amount
}
