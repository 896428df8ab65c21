package Models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course is a catalog entry shown on the public site.
type Course struct {
	gorm.Model
	Title            string         `json:"title" gorm:"unique;not null"`
	ShortDescription string         `json:"short_description"`
	FullDescription  string         `json:"full_description"`
	Difficulty       string         `json:"difficulty"`
	SyllabusURL      string         `json:"syllabus_url"`
	DurationYears    int            `json:"duration_years"`
	SemesterCount    int            `json:"semester_count"`
	Skills           datatypes.JSON `json:"skills"`
}

func skillsJSON(skills ...string) datatypes.JSON {
	data, _ := json.Marshal(skills)
	return datatypes.JSON(data)
}

// SeedCourses installs the course catalog if it is empty.
func SeedCourses(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	courses := []Course{
		{
			Title:            "PGDCA",
			ShortDescription: "A one-year diploma in computer applications.",
			FullDescription:  "An intensive one-year program equipping students with advanced computer application skills, including programming, networking, and database management.",
			Difficulty:       "Beginner",
			SyllabusURL:      "https://hpuniv.ac.in/upload/syllabus/66eaa7654e534PGDCACBCS.pdf",
			DurationYears:    1,
			SemesterCount:    2,
			Skills:           skillsJSON("Programming", "Networking", "Database"),
		},
		{
			Title:            "BCA",
			ShortDescription: "A three-year undergraduate program in IT.",
			FullDescription:  "A dynamic three-year undergraduate program focusing on software development, networking, cybersecurity, and more, preparing students for the IT industry.",
			Difficulty:       "Intermediate",
			SyllabusURL:      "https://hpuniv.ac.in/upload/syllabus/596af9ceda572BCACBCSSyllabus20161730.pdf",
			DurationYears:    3,
			SemesterCount:    6,
			Skills:           skillsJSON("Software Development", "Cybersecurity", "Web Design"),
		},
		{
			Title:            "MCA",
			ShortDescription: "A two-year master's program in computing.",
			FullDescription:  "A comprehensive two-year postgraduate program designed to create tech leaders with expertise in AI, data science, and software engineering.",
			Difficulty:       "Advanced",
			SyllabusURL:      "https://hpuniv.ac.in/upload/syllabus/60c1bcfc6094fmca2yr.pdf",
			DurationYears:    2,
			SemesterCount:    4,
			Skills:           skillsJSON("AI", "Data Science", "Cloud Computing"),
		},
	}
	return db.Create(&courses).Error
}
