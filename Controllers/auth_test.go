package Controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GDCPortal/Models"
	"GDCPortal/middleware"
)

// The auth handlers and middleware read the package-level connection, so
// these tests swap it for an in-memory one.
func newAuthApp(t *testing.T) *fiber.App {
	t.Helper()
	previous := Models.DB
	Models.DB = newTestDB(t)
	t.Cleanup(func() { Models.DB = previous })

	app := fiber.New()
	app.Post("/api/Login", Login)
	app.Post("/api/StudentLogin", StudentLogin)
	app.Get("/api/validate-token", ValidateToken)
	app.Get("/api/staff-only", middleware.Verify(Models.PermissionStaff), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/api/admin-only", middleware.Verify(Models.PermissionAdmin), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/api/self/profile", middleware.VerifyStudent(), NewStudentController(Models.DB).SelfProfile)
	return app
}

func seedUser(t *testing.T, username, password string, permission int) Models.User {
	t.Helper()
	user := Models.User{Name: "Test User", Username: username, Permission: permission}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, Models.DB.Create(&user).Error)
	return user
}

func jwtCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "jwt" {
			return cookie
		}
	}
	t.Fatal("no jwt cookie in response")
	return nil
}

func authedRequest(t *testing.T, app *fiber.App, target string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, target, nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestLogin(t *testing.T) {
	app := newAuthApp(t)
	seedUser(t, "registrar", "s3cret", Models.PermissionStaff)

	resp := jsonRequest(t, app, fiber.MethodPost, "/api/Login", fiber.Map{
		"username": "registrar", "password": "s3cret",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := jwtCookie(t, resp)

	protected := authedRequest(t, app, "/api/staff-only", cookie)
	assert.Equal(t, fiber.StatusOK, protected.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newAuthApp(t)
	seedUser(t, "registrar", "s3cret", Models.PermissionStaff)

	for _, payload := range []fiber.Map{
		{"username": "registrar", "password": "wrong"},
		{"username": "registrar", "password": ""},
		{"username": "ghost", "password": "s3cret"},
		{"username": "admin", "password": "1234"},
	} {
		resp := jsonRequest(t, app, fiber.MethodPost, "/api/Login", payload)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}
}

func TestVerifyPermissionLevels(t *testing.T) {
	app := newAuthApp(t)
	seedUser(t, "clerk", "s3cret", Models.PermissionStaff)

	resp := jsonRequest(t, app, fiber.MethodPost, "/api/Login", fiber.Map{
		"username": "clerk", "password": "s3cret",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := jwtCookie(t, resp)

	assert.Equal(t, fiber.StatusOK, authedRequest(t, app, "/api/staff-only", cookie).StatusCode)
	assert.Equal(t, fiber.StatusForbidden, authedRequest(t, app, "/api/admin-only", cookie).StatusCode)
}

func TestVerifyRequiresLogin(t *testing.T) {
	app := newAuthApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/staff-only", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestStudentLogin(t *testing.T) {
	app := newAuthApp(t)
	seedStudent(t, Models.DB, "Aarav Sharma", "Semester 1", "101")

	resp := jsonRequest(t, app, fiber.MethodPost, "/api/StudentLogin", fiber.Map{
		"semester": "Semester 1", "roll_number": "101", "password": "101",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := jwtCookie(t, resp)

	profile := authedRequest(t, app, "/api/self/profile", cookie)
	require.Equal(t, fiber.StatusOK, profile.StatusCode)
	var body StudentResponse
	decodeBody(t, profile, &body)
	assert.Equal(t, "Aarav Sharma", body.Name)
}

func TestStudentLoginRejectsWrongPassword(t *testing.T) {
	app := newAuthApp(t)
	seedStudent(t, Models.DB, "Aarav Sharma", "Semester 1", "101")

	for _, payload := range []fiber.Map{
		{"semester": "Semester 1", "roll_number": "101", "password": "102"},
		{"semester": "Semester 2", "roll_number": "101", "password": "101"},
		{"semester": "Semester 1", "roll_number": "999", "password": "999"},
	} {
		resp := jsonRequest(t, app, fiber.MethodPost, "/api/StudentLogin", payload)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}
}

func TestStudentTokenCannotReachStaffRoutes(t *testing.T) {
	app := newAuthApp(t)
	seedStudent(t, Models.DB, "Aarav Sharma", "Semester 1", "101")

	resp := jsonRequest(t, app, fiber.MethodPost, "/api/StudentLogin", fiber.Map{
		"semester": "Semester 1", "roll_number": "101", "password": "101",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := jwtCookie(t, resp)

	staff := authedRequest(t, app, "/api/staff-only", cookie)
	assert.Equal(t, fiber.StatusForbidden, staff.StatusCode)
}

func TestValidateToken(t *testing.T) {
	app := newAuthApp(t)
	seedUser(t, "registrar", "s3cret", Models.PermissionStaff)

	resp := jsonRequest(t, app, fiber.MethodPost, "/api/Login", fiber.Map{
		"username": "registrar", "password": "s3cret",
	})
	cookie := jwtCookie(t, resp)

	assert.Equal(t, fiber.StatusOK, authedRequest(t, app, "/api/validate-token", cookie).StatusCode)

	bad := &http.Cookie{Name: "jwt", Value: "garbage"}
	assert.Equal(t, fiber.StatusUnauthorized, authedRequest(t, app, "/api/validate-token", bad).StatusCode)
}
