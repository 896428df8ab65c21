package Controllers

import (
	"GDCPortal/Models"
	"GDCPortal/middleware"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func issueCookie(c *fiber.Ctx, claims jwt.RegisteredClaims) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(middleware.SecretKey())
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    signed,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return nil
}

// Login authenticates a staff account and sets the jwt cookie.
func Login(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}

	var user Models.User
	if err := Models.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	if !user.CheckPassword(input.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	claims := jwt.RegisteredClaims{
		Issuer:    strconv.Itoa(int(user.ID)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
	if err := issueCookie(c, claims); err != nil {
		log.Println(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"message":    "Login successful",
		"name":       user.Name,
		"username":   user.Username,
		"permission": user.Permission,
	})
}

// StudentLogin authenticates a student against the roster. The roll number
// doubles as the password for self-service access.
func StudentLogin(c *fiber.Ctx) error {
	var input struct {
		Semester   string `json:"semester"`
		RollNumber string `json:"roll_number"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}

	var student Models.Student
	err := Models.DB.Where("semester = ? AND roll_number = ?", input.Semester, input.RollNumber).
		First(&student).Error
	if err != nil || input.Password != student.RollNumber {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Incorrect password. Please try again."})
	}

	claims := jwt.RegisteredClaims{
		Subject:   "student:" + strconv.Itoa(int(student.ID)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
	if err := issueCookie(c, claims); err != nil {
		log.Println(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"message":     "Login successful",
		"name":        student.Name,
		"roll_number": student.RollNumber,
		"semester":    student.Semester,
	})
}

// User returns the identity behind the current jwt cookie.
func User(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(Models.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}
	return c.JSON(fiber.Map{
		"id":         user.ID,
		"name":       user.Name,
		"username":   user.Username,
		"permission": user.Permission,
	})
}

// ValidateToken reports whether the jwt cookie is still good.
func ValidateToken(c *fiber.Ctx) error {
	cookie := c.Cookies("jwt")
	if cookie == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"valid": false})
	}
	_, err := jwt.ParseWithClaims(cookie, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return middleware.SecretKey(), nil
	})
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"valid": false})
	}
	return c.JSON(fiber.Map{"valid": true})
}

// Logout clears the jwt cookie.
func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// RegisterUser creates a staff account. Root only.
func RegisterUser(c *fiber.Ctx) error {
	var input struct {
		Name       string `json:"name"`
		Username   string `json:"username"`
		Password   string `json:"password"`
		Permission int    `json:"permission"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if input.Username == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username and password are required"})
	}
	if input.Permission < Models.PermissionViewer || input.Permission > Models.PermissionRoot {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid permission level"})
	}

	user := Models.User{
		Name:       input.Name,
		Username:   input.Username,
		Permission: input.Permission,
	}
	if err := user.SetPassword(input.Password); err != nil {
		log.Println(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	if err := Models.DB.Create(&user).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A user with this username already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully"})
}

// FetchUsers lists all staff accounts. Root only.
func FetchUsers(c *fiber.Ctx) error {
	var users []Models.User
	if err := Models.DB.Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve users"})
	}
	return c.JSON(users)
}

// DeleteUser removes a staff account. Root only.
func DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Query("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var user Models.User
	if err := Models.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	Models.DB.Delete(&user)
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
