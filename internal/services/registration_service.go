package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sportify-backend/internal/config"
	"sportify-backend/internal/models"
	"sportify-backend/internal/notify"
	"sportify-backend/internal/payment"
	"sportify-backend/internal/repositories"
	"sportify-backend/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type RegistrationService struct {
	repo      *repositories.Repository
	gateway   payment.Gateway
	notifier  notify.Notifier
	ownership *Ownership
	cfg       *config.Config
	now       func() time.Time
}

func NewRegistrationService(
	repo *repositories.Repository,
	gateway payment.Gateway,
	notifier notify.Notifier,
	cfg *config.Config,
) *RegistrationService {
	return &RegistrationService{
		repo:      repo,
		gateway:   gateway,
		notifier:  notifier,
		ownership: NewOwnership(repo.TournamentRepo),
		cfg:       cfg,
		now:       time.Now,
	}
}

type CreateRegistrationRequest struct {
	TournamentID     uuid.UUID
	RegistrationType string
	TeamName         string
	TeamMembers      []models.TeamMember
	AadharNumber     string
	AadharFrontURL   string
	AadharBackURL    string
}

type CreateRegistrationResult struct {
	Registration  *models.Registration `json:"registration"`
	Order         *payment.Order       `json:"order,omitempty"`
	RazorpayKeyID string               `json:"razorpay_key_id,omitempty"`
}

type VerifyPaymentRequest struct {
	RegistrationID    uuid.UUID
	RazorpayOrderID   string
	RazorpayPaymentID string
	RazorpaySignature string
}

// CreateRegistration enrolls the calling player. The participant count is
// bumped even while payment is still pending, and the capacity check is not
// repeated at increment time, so concurrent registrations may overshoot.
func (s *RegistrationService) CreateRegistration(ctx context.Context, caller models.Identity, req CreateRegistrationRequest) (*CreateRegistrationResult, error) {
	if req.TournamentID == uuid.Nil || req.RegistrationType == "" {
		return nil, NewValidationError("Tournament ID and registration type are required")
	}
	if req.RegistrationType != models.RegistrationIndividual && req.RegistrationType != models.RegistrationTeam {
		return nil, NewValidationError("Registration type must be individual or team")
	}

	tournament, err := s.repo.TournamentRepo.GetTournamentByID(req.TournamentID)
	if err != nil {
		return nil, notFoundOr(err, ErrTournamentNotFound.Message)
	}

	if s.now().After(tournament.RegistrationDeadline) {
		return nil, ErrDeadlinePassed
	}
	if tournament.CurrentParticipants >= tournament.MaxParticipants {
		return nil, ErrTournamentFull
	}

	if _, err := s.repo.RegistrationRepo.FindByTournamentAndPlayer(tournament.ID, caller.UserID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	registration := &models.Registration{
		ID:               uuid.New(),
		TournamentID:     tournament.ID,
		PlayerID:         caller.UserID,
		RegistrationType: req.RegistrationType,
	}

	if req.RegistrationType == models.RegistrationTeam {
		if err := validateTeam(tournament, req); err != nil {
			return nil, err
		}
		registration.TeamName = strings.TrimSpace(req.TeamName)
		registration.TeamMembers = req.TeamMembers
	} else {
		if strings.TrimSpace(req.AadharNumber) == "" || req.AadharFrontURL == "" {
			return nil, ErrAadharRequired
		}
		registration.AadharNumber = strings.TrimSpace(req.AadharNumber)
		registration.AadharFrontURL = req.AadharFrontURL
		registration.AadharBackURL = req.AadharBackURL
	}

	result := &CreateRegistrationResult{Registration: registration}

	if tournament.EntryFee > 0 {
		order, err := s.gateway.CreateOrder(ctx, payment.ToMinorUnits(tournament.EntryFee), s.cfg.Currency, receiptFor(tournament.ID, caller.UserID))
		if err != nil {
			return nil, fmt.Errorf("failed to create payment order: %w", err)
		}
		registration.RazorpayOrderID = order.ID
		registration.PaymentStatus = models.PaymentPending
		registration.Status = models.RegistrationPending
		result.Order = order
		result.RazorpayKeyID = s.gateway.KeyID()
	} else {
		registration.PaymentStatus = models.PaymentPaid
		registration.Status = models.RegistrationConfirmed
	}

	if err := s.repo.RegistrationRepo.CreateRegistration(registration); err != nil {
		return nil, err
	}

	if err := s.repo.TournamentRepo.IncrementParticipants(tournament.ID, registration.Headcount()); err != nil {
		return nil, err
	}

	if player, err := s.repo.UserRepo.GetUserByID(caller.UserID); err == nil {
		s.notifier.Enqueue(notify.RegistrationConfirmation(player, tournament, registration, s.registrationsLink()))
	} else {
		logrus.WithError(err).WithField("registration_id", registration.ID).Warn("skipping registration notification")
	}

	return result, nil
}

func validateTeam(tournament *models.Tournament, req CreateRegistrationRequest) error {
	if !tournament.AllowTeamRegistration {
		return ErrTeamNotAllowed
	}
	if strings.TrimSpace(req.TeamName) == "" || len(req.TeamMembers) == 0 {
		return ErrTeamDetailsRequired
	}
	if tournament.TeamSize != nil && *tournament.TeamSize > 0 && len(req.TeamMembers) != *tournament.TeamSize {
		return NewValidationError(fmt.Sprintf("Team must have exactly %d members", *tournament.TeamSize))
	}
	for _, member := range req.TeamMembers {
		if strings.TrimSpace(member.AadharNumber) == "" || member.AadharFrontURL == "" {
			return ErrMemberAadharRequired
		}
	}
	return nil
}

// receiptFor keeps the receipt under the gateway's 40 character limit.
func receiptFor(tournamentID, playerID uuid.UUID) string {
	return fmt.Sprintf("rcpt_%s_%s", tournamentID.String()[:8], playerID.String()[:8])
}

// VerifyPayment finalizes a registration once the gateway signature checks out.
// Only registrations still awaiting payment can be finalized.
func (s *RegistrationService) VerifyPayment(caller models.Identity, req VerifyPaymentRequest) (*models.Registration, error) {
	registration, err := s.repo.RegistrationRepo.GetRegistrationByID(req.RegistrationID)
	if err != nil {
		return nil, notFoundOr(err, ErrRegistrationNotFound.Message)
	}
	if registration.PlayerID != caller.UserID {
		return nil, ErrNotRegistrationOwner
	}
	if registration.PaymentStatus != models.PaymentPending {
		return nil, ErrPaymentNotPending
	}

	if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return nil, ErrPaymentVerification
	}

	paidAt := s.now()
	registration.PaymentStatus = models.PaymentPaid
	registration.Status = models.RegistrationConfirmed
	registration.RazorpayOrderID = req.RazorpayOrderID
	registration.RazorpayPaymentID = req.RazorpayPaymentID
	registration.RazorpaySignature = req.RazorpaySignature
	registration.PaidAt = &paidAt
	if registration.Tournament != nil {
		registration.AmountPaid = registration.Tournament.EntryFee
	}

	if err := s.repo.RegistrationRepo.UpdateRegistration(registration); err != nil {
		return nil, err
	}

	if registration.Player != nil && registration.Tournament != nil {
		s.notifier.Enqueue(notify.PaymentConfirmation(registration.Player, registration.Tournament, registration, s.registrationsLink()))
	}

	return registration, nil
}

func (s *RegistrationService) ListPlayerRegistrations(caller models.Identity) ([]models.Registration, error) {
	return s.repo.RegistrationRepo.ListByPlayer(caller.UserID)
}

func (s *RegistrationService) ListTournamentRegistrations(caller models.Identity, tournamentID uuid.UUID) ([]models.Registration, error) {
	if _, err := s.ownership.Tournament(caller, tournamentID); err != nil {
		return nil, err
	}
	return s.repo.RegistrationRepo.ListByTournament(tournamentID)
}

// EntryPass renders the QR code a confirmed player shows at the venue.
func (s *RegistrationService) EntryPass(caller models.Identity, registrationID uuid.UUID) ([]byte, error) {
	registration, err := s.repo.RegistrationRepo.GetRegistrationByID(registrationID)
	if err != nil {
		return nil, notFoundOr(err, ErrRegistrationNotFound.Message)
	}
	if registration.PlayerID != caller.UserID {
		return nil, ErrNotRegistrationOwner
	}
	if registration.Status != models.RegistrationConfirmed {
		return nil, ErrRegistrationNotActive
	}
	return utils.EntryPassPNG(registration.ID)
}

func (s *RegistrationService) registrationsLink() string {
	return s.cfg.PublicURL + "/player/registrations"
}
