package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sportify-backend/internal/config"
	"sportify-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func claimsFor(role models.Role, exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": uuid.NewString(),
		"email":   "someone@example.com",
		"role":    string(role),
		"iat":     time.Now().Unix(),
		"exp":     exp.Unix(),
	}
}

func gateApp() *fiber.App {
	app := fiber.New()
	app.Get("/organizer", JWTMiddleware(&config.Config{JWTSecret: testSecret}), RequireRole(models.RoleOrganizer), func(c *fiber.Ctx) error {
		identity, err := GetIdentity(c)
		if err != nil {
			return err
		}
		return c.SendString(string(identity.Role) + ":" + identity.Email)
	})
	return app
}

func call(t *testing.T, app *fiber.App, auth string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/organizer", nil)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func errorMessage(t *testing.T, body string) string {
	t.Helper()
	var out struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &out), body)
	return out.Error
}

func TestJWTAndRoleGate(t *testing.T) {
	app := gateApp()
	hour := time.Now().Add(time.Hour)

	status, body := call(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "No token provided", errorMessage(t, body))

	status, body = call(t, app, "Bearer not-a-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token", errorMessage(t, body))

	expired := signToken(t, testSecret, claimsFor(models.RoleOrganizer, time.Now().Add(-time.Minute)))
	status, body = call(t, app, "Bearer "+expired)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token", errorMessage(t, body))

	forged := signToken(t, "other-secret", claimsFor(models.RoleOrganizer, hour))
	status, _ = call(t, app, "Bearer "+forged)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	unknownRole := signToken(t, testSecret, claimsFor("admin", hour))
	status, _ = call(t, app, "Bearer "+unknownRole)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	player := signToken(t, testSecret, claimsFor(models.RolePlayer, hour))
	status, body = call(t, app, "Bearer "+player)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Access denied for role player", errorMessage(t, body))

	organizer := signToken(t, testSecret, claimsFor(models.RoleOrganizer, hour))
	status, body = call(t, app, "Bearer "+organizer)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "organizer:someone@example.com", body)
}

type signupBody struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role" validate:"required,oneof=organizer player sponsor"`
	Fee      float64 `json:"entry_fee" validate:"gt=0"`
}

func TestBindAndValidate(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var body signupBody
		if err := BindAndValidate(c, &body); err != nil {
			return err
		}
		return c.SendString("ok")
	})

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"malformed", `{"name":`, fiber.StatusBadRequest, "Invalid request body"},
		{"missing name", `{"email":"a@b.co","password":"secret1","role":"player","entry_fee":1}`, fiber.StatusBadRequest, "name is required"},
		{"bad email", `{"name":"A","email":"nope","password":"secret1","role":"player","entry_fee":1}`, fiber.StatusBadRequest, "Invalid email format"},
		{"short password", `{"name":"A","email":"a@b.co","password":"abc","role":"player","entry_fee":1}`, fiber.StatusBadRequest, "password is too short"},
		{"bad role", `{"name":"A","email":"a@b.co","password":"secret1","role":"admin","entry_fee":1}`, fiber.StatusBadRequest, "role must be one of: organizer player sponsor"},
		{"zero fee", `{"name":"A","email":"a@b.co","password":"secret1","role":"player","entry_fee":0}`, fiber.StatusBadRequest, "entry_fee must be greater than 0"},
		{"valid", `{"name":"A","email":"a@b.co","password":"secret1","role":"player","entry_fee":1}`, fiber.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.message != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.message, string(body))
			}
		})
	}
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestLogger())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetRequestID(c))
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	id := resp.Header.Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, string(body))

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	resp, err = app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "req-42", resp.Header.Get(RequestIDHeader))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
