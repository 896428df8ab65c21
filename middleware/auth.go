package middleware

import (
	"GDCPortal/Models"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const studentSubjectPrefix = "student:"

// SecretKey returns the JWT signing key. JWT_SECRET must be set in
// production; the fallback exists so a fresh checkout runs.
func SecretKey() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("dev-secret")
}

func parseToken(cookie string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(cookie, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return SecretKey(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Verify gates a route behind a staff permission level. The JWT cookie's
// issuer is the user id; the user row is loaded fresh on each request so
// permission changes take effect immediately.
func Verify(requiredPermission int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies("jwt")
		if cookie == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not Logged In.",
			})
		}

		claims, err := parseToken(cookie)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		if strings.HasPrefix(claims.Subject, studentSubjectPrefix) {
			// Student tokens never grant staff access
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You do not have permission to access this page",
			})
		}

		var user Models.User
		result := Models.DB.Where("id = ?", claims.Issuer).First(&user)
		if result.Error != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "User not found",
			})
		}

		// Store user in context for later use in handlers
		c.Locals("user", user)

		if requiredPermission == 0 {
			if user.Permission != 0 {
				return c.Next()
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You do not have permission to access this page",
			})
		}

		if user.Permission >= requiredPermission {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Insufficient permissions to access this resource",
		})
	}
}

// VerifyStudent gates the self-service routes. Student tokens are issued
// by the student login with subject "student:<id>"; the student row is
// stored in context.
func VerifyStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies("jwt")
		if cookie == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not Logged In.",
			})
		}

		claims, err := parseToken(cookie)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		if !strings.HasPrefix(claims.Subject, studentSubjectPrefix) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Student access only",
			})
		}

		var student Models.Student
		studentID := strings.TrimPrefix(claims.Subject, studentSubjectPrefix)
		if err := Models.DB.Where("id = ?", studentID).First(&student).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Student not found",
			})
		}

		c.Locals("student", student)
		return c.Next()
	}
}
