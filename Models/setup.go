package Models

import (
	"fmt"
	"log"
	"os"

	"github.com/360EntSecGroup-Skylar/excelize"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "database.db"
	}

	connection, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open database %s: %v", dbPath, err)
	}
	DB = connection

	// 1. Base tables with no dependencies
	DB.AutoMigrate(
		&User{},
		&Course{},
		&FeeMapping{},
		&Notice{},
		&Task{},
		&ChatMessage{},
	)

	// 2. Students, then rows that hang off them
	DB.AutoMigrate(&Student{})
	DB.AutoMigrate(
		&AttendanceRecord{}, // depends on Student
		&AdmissionApplication{},
	)

	if err := SeedRootUser(DB); err != nil {
		log.Printf("Error seeding root user: %v", err)
	}
	if err := SeedFeeMappings(DB); err != nil {
		log.Printf("Error seeding fee table: %v", err)
	}
	if err := SeedCourses(DB); err != nil {
		log.Printf("Error seeding course catalog: %v", err)
	}

	// Optional one-time roster load from an office spreadsheet
	if rosterPath := os.Getenv("ROSTER_XLSX"); rosterPath != "" {
		if err := SeedStudentsFromSheet(DB, rosterPath); err != nil {
			log.Printf("Error loading roster from %s: %v", rosterPath, err)
		}
	}
}

// SeedStudentsFromSheet loads an office-format roster spreadsheet into the
// students table. Column order is fixed: Name, Semester, RollNumber, with
// a header in the first row. Rows whose roll number already exists in the
// semester are skipped.
func SeedStudentsFromSheet(db *gorm.DB, path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}

	rows := f.GetRows(f.GetSheetName(1))
	created := 0
	skipped := 0
	for rowIndex, row := range rows {
		if rowIndex == 0 {
			// header
			continue
		}
		var student Student
		for columnIndex, data := range row {
			if columnIndex == 0 {
				student.Name = data
			}
			if columnIndex == 1 {
				student.Semester = data
			}
			if columnIndex == 2 {
				student.RollNumber = data
			}
		}
		if student.Name == "" || student.RollNumber == "" || !IsValidSemester(student.Semester) {
			skipped++
			continue
		}

		var existing int64
		db.Model(&Student{}).
			Where("semester = ? AND roll_number = ?", student.Semester, student.RollNumber).
			Count(&existing)
		if existing > 0 {
			skipped++
			continue
		}

		if err := db.Create(&student).Error; err != nil {
			return fmt.Errorf("row %d: %w", rowIndex+1, err)
		}
		created++
	}

	log.Printf("Roster load complete: %d created, %d skipped", created, skipped)
	return nil
}
