package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"sportify-backend/internal/config"
	"sportify-backend/internal/middleware"
	"sportify-backend/internal/notify"
	"sportify-backend/internal/payment"
	"sportify-backend/internal/repositories/memrepo"
	"sportify-backend/internal/services"
	"sportify-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct{}

func (stubGateway) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string) (*payment.Order, error) {
	return &payment.Order{ID: "order_test", Amount: amountMinor, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

func (stubGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return payment.Sign("rzp-secret", orderID, paymentID) == signature
}

func (stubGateway) KeyID() string { return "rzp_test_key" }

type discardNotifier struct{}

func (discardNotifier) Enqueue(notify.Message) {}

type memUploader struct {
	keys []string
}

func (u *memUploader) Upload(_ context.Context, key, _ string, size int64, reader io.Reader) (*storage.UploadResult, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return nil, err
	}
	u.keys = append(u.keys, key)
	return &storage.UploadResult{URL: storage.PublicURL("https://files.example.com", key), PublicID: key, Format: "jpg", Bytes: size}, nil
}

type testServer struct {
	app      *fiber.App
	uploader *memUploader
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     time.Hour,
		Currency:      "INR",
		MaxUploadSize: 1 << 20,
		UploadFolder:  "sportify/aadhar",
	}
	repo := memrepo.New().Repository()
	uploader := &memUploader{}

	handler := NewHandler(
		services.NewAuthService(repo, cfg),
		services.NewTournamentService(repo, cfg),
		services.NewRegistrationService(repo, stubGateway{}, discardNotifier{}, cfg),
		services.NewVerificationService(repo, discardNotifier{}, cfg),
		services.NewSponsorshipService(repo),
		uploader,
		cfg,
	)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(middleware.RequestLogger())
	handler.RegisterRoutes(app.Group("/api"))

	return &testServer{app: app, uploader: uploader}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return s.send(t, req)
}

func (s *testServer) send(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func (s *testServer) signup(t *testing.T, name, role string) (token, userID string) {
	t.Helper()

	status, env := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":              name,
		"email":             name + "@example.com",
		"password":          "secret123",
		"phone":             "9876543210",
		"role":              role,
		"organization_name": name + " Club",
		"company_name":      name + " Corp",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)

	auth := decode[struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}](t, env)
	return auth.Token, auth.User.ID
}

func (s *testServer) createTournament(t *testing.T, token string, overrides map[string]any) string {
	t.Helper()

	body := map[string]any{
		"name":                  "Summer Smash",
		"sport":                 "Badminton",
		"description":           "Open singles",
		"venue":                 "City Arena",
		"city":                  "Pune",
		"state":                 "Maharashtra",
		"start_date":            time.Now().Add(14 * 24 * time.Hour).Format(time.RFC3339),
		"end_date":              time.Now().Add(15 * 24 * time.Hour).Format(time.RFC3339),
		"registration_deadline": time.Now().Add(7 * 24 * time.Hour).Format(time.RFC3339),
		"max_participants":      16,
		"entry_fee":             0,
	}
	for k, v := range overrides {
		body[k] = v
	}

	status, env := s.do(t, http.MethodPost, "/api/tournaments", token, body)
	require.Equal(t, http.StatusCreated, status, env.Error)
	return decode[struct {
		ID string `json:"id"`
	}](t, env).ID
}

func individualBody(tournamentID string) map[string]any {
	return map[string]any{
		"tournament_id":     tournamentID,
		"registration_type": "individual",
		"aadhar_number":     "1234 5678 9012",
		"aadhar_front_url":  "https://files.example.com/front.jpg",
		"aadhar_back_url":   "https://files.example.com/back.jpg",
	}
}

type registrationView struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signup(t, "olivia", "organizer")

	status, env := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "olivia@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	status, env = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "olivia@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", env.Error)

	status, env = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	me := decode[struct {
		Role    string         `json:"role"`
		Profile map[string]any `json:"profile"`
	}](t, env)
	assert.Equal(t, "organizer", me.Role)
	assert.Equal(t, "olivia Club", me.Profile["organization_name"])
	assert.NotContains(t, me.Profile, "company_name")
}

func TestRegister_ValidationMessage(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "x@example.com",
		"password": "secret123",
		"phone":    "1",
		"role":     "player",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "name is required", env.Error)
}

func TestGate(t *testing.T) {
	s := newTestServer(t)
	playerToken, _ := s.signup(t, "priya", "player")

	status, env := s.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "No token provided", env.Error)

	status, env = s.do(t, http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token", env.Error)

	status, _ = s.do(t, http.MethodPost, "/api/tournaments", playerToken, map[string]any{"name": "x"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, http.MethodGet, "/api/organizer/sponsorships", playerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestTournamentLookup(t *testing.T) {
	s := newTestServer(t)
	organizerToken, _ := s.signup(t, "olivia", "organizer")
	id := s.createTournament(t, organizerToken, nil)

	status, env := s.do(t, http.MethodGet, "/api/tournaments/"+id, "", nil)
	require.Equal(t, http.StatusOK, status)
	view := decode[struct {
		Status    string `json:"status"`
		Organizer struct {
			Name string `json:"name"`
		} `json:"organizer"`
	}](t, env)
	assert.Equal(t, "open", view.Status)
	assert.Equal(t, "olivia", view.Organizer.Name)

	status, _ = s.do(t, http.MethodGet, "/api/tournaments/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = s.do(t, http.MethodGet, "/api/tournaments/6f1c2a1e-0000-4000-8000-000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Tournament not found", env.Error)

	status, env = s.do(t, http.MethodGet, "/api/tournaments?city=pune", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env), 1)

	status, _ = s.do(t, http.MethodGet, "/api/tournaments?lat=abc&lng=1", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestListTournaments_RejectsNonFiniteGeo(t *testing.T) {
	s := newTestServer(t)
	organizerToken, _ := s.signup(t, "olivia", "organizer")
	s.createTournament(t, organizerToken, nil)

	tests := []struct {
		query   string
		message string
	}{
		{"lat=NaN&lng=73.85", "Invalid lat"},
		{"lat=18.52&lng=-Inf", "Invalid lng"},
		{"lat=18.52&lng=73.85&radiusKm=Inf", "Invalid radiusKm"},
		{"lat=18.52&lng=73.85&radiusKm=%2BInf", "Invalid radiusKm"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			status, env := s.do(t, http.MethodGet, "/api/tournaments?"+tt.query, "", nil)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.message, env.Error)
		})
	}
}

func TestRegistrationUntilFull(t *testing.T) {
	s := newTestServer(t)
	organizerToken, _ := s.signup(t, "olivia", "organizer")
	firstToken, _ := s.signup(t, "priya", "player")
	secondToken, _ := s.signup(t, "rahul", "player")
	tournamentID := s.createTournament(t, organizerToken, map[string]any{"max_participants": 1})

	status, env := s.do(t, http.MethodPost, "/api/registrations/create", firstToken, individualBody(tournamentID))
	require.Equal(t, http.StatusCreated, status, env.Error)
	result := decode[struct {
		Registration registrationView `json:"registration"`
	}](t, env)
	assert.Equal(t, "confirmed", result.Registration.Status)
	assert.Equal(t, "paid", result.Registration.PaymentStatus)

	status, env = s.do(t, http.MethodGet, "/api/tournaments/"+tournamentID, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, decode[struct {
		CurrentParticipants int `json:"current_participants"`
	}](t, env).CurrentParticipants)

	status, env = s.do(t, http.MethodPost, "/api/registrations/create", secondToken, individualBody(tournamentID))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Tournament is full", env.Error)
}

func TestPaidRegistrationAndVerification(t *testing.T) {
	s := newTestServer(t)
	organizerToken, _ := s.signup(t, "olivia", "organizer")
	rivalToken, _ := s.signup(t, "oscar", "organizer")
	playerToken, _ := s.signup(t, "priya", "player")
	tournamentID := s.createTournament(t, organizerToken, map[string]any{"entry_fee": 499})

	status, env := s.do(t, http.MethodPost, "/api/registrations/create", playerToken, individualBody(tournamentID))
	require.Equal(t, http.StatusCreated, status, env.Error)
	created := decode[struct {
		Registration  registrationView `json:"registration"`
		Order         payment.Order    `json:"order"`
		RazorpayKeyID string           `json:"razorpay_key_id"`
	}](t, env)
	assert.Equal(t, int64(49900), created.Order.Amount)
	assert.Equal(t, "pending", created.Registration.Status)
	assert.Equal(t, "rzp_test_key", created.RazorpayKeyID)

	verifyBody := map[string]any{
		"registration_id":     created.Registration.ID,
		"razorpay_order_id":   created.Order.ID,
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  "forged",
	}
	status, env = s.do(t, http.MethodPost, "/api/registrations/verify-payment", playerToken, verifyBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Payment verification failed", env.Error)

	verifyBody["razorpay_signature"] = payment.Sign("rzp-secret", created.Order.ID, "pay_1")
	status, env = s.do(t, http.MethodPost, "/api/registrations/verify-payment", playerToken, verifyBody)
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Equal(t, "paid", decode[registrationView](t, env).PaymentStatus)

	status, _ = s.do(t, http.MethodPost, "/api/organizer/verify-registration", rivalToken, map[string]any{
		"registration_id": created.Registration.ID,
		"verified":        false,
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.do(t, http.MethodPost, "/api/organizer/verify-registration", organizerToken, map[string]any{
		"registration_id":    created.Registration.ID,
		"verified":           true,
		"verification_notes": "ok",
	})
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Equal(t, "confirmed", decode[registrationView](t, env).Status)

	status, env = s.do(t, http.MethodGet, "/api/organizer/registrations/"+tournamentID, organizerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]registrationView](t, env), 1)

	status, env = s.do(t, http.MethodGet, "/api/registrations/my-registrations", playerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]registrationView](t, env), 1)

	req := httptest.NewRequest(http.MethodGet, "/api/registrations/"+created.Registration.ID+"/pass", nil)
	req.Header.Set("Authorization", "Bearer "+playerToken)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestSponsorshipFlow(t *testing.T) {
	s := newTestServer(t)
	organizerToken, _ := s.signup(t, "olivia", "organizer")
	rivalToken, _ := s.signup(t, "oscar", "organizer")
	sponsorToken, _ := s.signup(t, "sam", "sponsor")
	tournamentID := s.createTournament(t, organizerToken, nil)

	status, env := s.do(t, http.MethodPost, "/api/sponsor/sponsorships", sponsorToken, map[string]any{
		"tournament_id":    tournamentID,
		"amount":           5000,
		"sponsorship_type": "title",
		"benefits":         []string{"banner"},
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	sponsorship := decode[struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}](t, env)
	assert.Equal(t, "pending", sponsorship.Status)

	status, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/organizer/sponsorships/%s/reject", sponsorship.ID), rivalToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.NotEmpty(t, env.Error)

	status, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/organizer/sponsorships/%s/approve", sponsorship.ID), organizerToken, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Equal(t, "approved", decode[struct {
		Status string `json:"status"`
	}](t, env).Status)

	status, env = s.do(t, http.MethodPost, "/api/organizer/sponsorships/manage", organizerToken, map[string]any{
		"sponsorship_id": sponsorship.ID,
		"action":         "reject",
	})
	require.Equal(t, http.StatusOK, status, env.Error)

	status, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/organizer/sponsorships/%s/cancel", sponsorship.ID), organizerToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Action must be approve or reject", env.Error)

	status, env = s.do(t, http.MethodPost, "/api/organizer/sponsorships", organizerToken, map[string]any{
		"sponsorship_id":     sponsorship.ID,
		"status":             "active",
		"organizer_response": "Welcome aboard",
	})
	require.Equal(t, http.StatusOK, status, env.Error)

	status, env = s.do(t, http.MethodGet, "/api/sponsor/sponsorships", sponsorToken, nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[[]struct {
		Status            string `json:"status"`
		OrganizerResponse string `json:"organizer_response"`
	}](t, env)
	require.Len(t, list, 1)
	assert.Equal(t, "active", list[0].Status)
	assert.Equal(t, "Welcome aboard", list[0].OrganizerResponse)
}

func multipartUpload(t *testing.T, token, contentType string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="aadhar.jpg"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/aadhar", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUploadAadhar(t *testing.T) {
	s := newTestServer(t)
	playerToken, _ := s.signup(t, "priya", "player")
	sponsorToken, _ := s.signup(t, "sam", "sponsor")

	status, env := s.send(t, multipartUpload(t, playerToken, "image/jpeg", []byte("fake-jpeg-bytes")))
	require.Equal(t, http.StatusOK, status, env.Error)
	result := decode[storage.UploadResult](t, env)
	assert.Contains(t, result.URL, "https://files.example.com/sportify/aadhar/")
	assert.Equal(t, int64(len("fake-jpeg-bytes")), result.Bytes)
	require.Len(t, s.uploader.keys, 1)

	status, env = s.send(t, multipartUpload(t, playerToken, "text/plain", []byte("hello")))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Error, "file type not allowed")

	status, _ = s.send(t, multipartUpload(t, sponsorToken, "image/jpeg", []byte("x")))
	assert.Equal(t, http.StatusForbidden, status)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}
