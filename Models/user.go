package Models

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Permission levels. Staff accounts can mark attendance and manage
// students; admins additionally manage fees and notices; root manages
// user accounts.
const (
	PermissionViewer = 1
	PermissionStaff  = 2
	PermissionAdmin  = 3
	PermissionRoot   = 4
)

// User is a portal account holder. Passwords are stored as bcrypt hashes;
// the old client-side literal credential check is gone for good.
type User struct {
	gorm.Model
	Name       string `json:"name"`
	Username   string `json:"username" gorm:"unique;not null"`
	Password   []byte `json:"-" gorm:"not null"`
	Permission int    `json:"permission" gorm:"default:1"`
}

func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = hash
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(u.Password, []byte(password)) == nil
}

// SeedRootUser creates the initial root account when the users table is
// empty. The password comes from ADMIN_PASSWORD; a generated default is
// logged so the operator can log in once and change it.
func SeedRootUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
		log.Println("ADMIN_PASSWORD not set, seeding root user with default password 'changeme'")
	}

	root := User{
		Name:       "Administrator",
		Username:   username,
		Permission: PermissionRoot,
	}
	if err := root.SetPassword(password); err != nil {
		return err
	}
	return db.Create(&root).Error
}
