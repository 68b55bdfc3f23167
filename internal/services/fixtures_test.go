package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"sportify-backend/internal/config"
	"sportify-backend/internal/models"
	"sportify-backend/internal/notify"
	"sportify-backend/internal/payment"
	"sportify-backend/internal/repositories"
	"sportify-backend/internal/repositories/memrepo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeGateway struct {
	secret string
	fail   error

	mu     sync.Mutex
	orders []payment.Order
}

func (g *fakeGateway) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string) (*payment.Order, error) {
	if g.fail != nil {
		return nil, g.fail
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	order := payment.Order{
		ID:       "order_" + uuid.NewString()[:8],
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}
	g.orders = append(g.orders, order)
	return &order, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return payment.Sign(g.secret, orderID, paymentID) == signature
}

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }

type fakeNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
}

func (n *fakeNotifier) Enqueue(msg notify.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *fakeNotifier) sent() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.msgs...)
}

type fixture struct {
	repo     *repositories.Repository
	cfg      *config.Config
	gateway  *fakeGateway
	notifier *fakeNotifier

	tournaments   *TournamentService
	registrations *RegistrationService
	verification  *VerificationService
	sponsorships  *SponsorshipService
	auth          *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: 720 * time.Hour,
		Currency:  "INR",
		PublicURL: "http://localhost:3000",
	}
	repo := memrepo.New().Repository()
	gateway := &fakeGateway{secret: "rzp-secret"}
	notifier := &fakeNotifier{}

	f := &fixture{
		repo:          repo,
		cfg:           cfg,
		gateway:       gateway,
		notifier:      notifier,
		tournaments:   NewTournamentService(repo, cfg),
		registrations: NewRegistrationService(repo, gateway, notifier, cfg),
		verification:  NewVerificationService(repo, notifier, cfg),
		sponsorships:  NewSponsorshipService(repo),
		auth:          NewAuthService(repo, cfg),
	}
	f.registrations.now = func() time.Time { return testNow }
	f.verification.now = func() time.Time { return testNow }
	f.auth.now = func() time.Time { return testNow }
	return f
}

func (f *fixture) user(t *testing.T, role models.Role, name string) models.Identity {
	t.Helper()

	user := &models.User{
		ID:    uuid.New(),
		Name:  name,
		Email: name + "@example.com",
		Phone: "9876543210",
		Role:  role,
	}
	profile := models.NewProfile(role)
	switch p := profile.(type) {
	case *models.OrganizerProfile:
		p.OrganizationName = name + " Sports Club"
	case *models.SponsorProfile:
		p.CompanyName = name + " Corp"
	}
	require.NoError(t, user.SetProfile(profile))
	require.NoError(t, f.repo.UserRepo.CreateUser(user))

	return models.Identity{UserID: user.ID, Email: user.Email, Role: role}
}

func (f *fixture) tournament(t *testing.T, organizer models.Identity, mutate ...func(*CreateTournamentRequest)) *models.Tournament {
	t.Helper()

	req := CreateTournamentRequest{
		Name:                 "Summer Smash",
		Sport:                "Badminton",
		Description:          "Open singles",
		Venue:                "City Arena",
		City:                 "Pune",
		State:                "Maharashtra",
		StartDate:            testNow.Add(14 * 24 * time.Hour),
		EndDate:              testNow.Add(15 * 24 * time.Hour),
		RegistrationDeadline: testNow.Add(7 * 24 * time.Hour),
		MaxParticipants:      16,
	}
	for _, m := range mutate {
		m(&req)
	}

	tournament, err := f.tournaments.CreateTournament(organizer, req)
	require.NoError(t, err)
	return tournament
}

func individual(tournamentID uuid.UUID) CreateRegistrationRequest {
	return CreateRegistrationRequest{
		TournamentID:     tournamentID,
		RegistrationType: models.RegistrationIndividual,
		AadharNumber:     "1234 5678 9012",
		AadharFrontURL:   "https://cdn.example.com/front.jpg",
		AadharBackURL:    "https://cdn.example.com/back.jpg",
	}
}

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	require.Equal(t, kind, appErr.Kind)
}

var errGatewayDown = errors.New("gateway unavailable")
