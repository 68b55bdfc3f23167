package services

import (
	"time"

	"sportify-backend/internal/config"
	"sportify-backend/internal/models"
	"sportify-backend/internal/notify"
	"sportify-backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// VerificationService lets an organizer review the registrations of the
// tournaments they own.
type VerificationService struct {
	repo      *repositories.Repository
	ownership *Ownership
	notifier  notify.Notifier
	cfg       *config.Config
	now       func() time.Time
}

func NewVerificationService(repo *repositories.Repository, notifier notify.Notifier, cfg *config.Config) *VerificationService {
	return &VerificationService{
		repo:      repo,
		ownership: NewOwnership(repo.TournamentRepo),
		notifier:  notifier,
		cfg:       cfg,
		now:       time.Now,
	}
}

type VerifyRegistrationRequest struct {
	RegistrationID    uuid.UUID
	Verified          bool
	VerificationNotes string
	Reset             bool
}

func (s *VerificationService) VerifyRegistration(caller models.Identity, req VerifyRegistrationRequest) (*models.Registration, error) {
	if req.RegistrationID == uuid.Nil {
		return nil, NewValidationError("Registration ID is required")
	}

	registration, err := s.repo.RegistrationRepo.GetRegistrationByID(req.RegistrationID)
	if err != nil {
		return nil, notFoundOr(err, ErrRegistrationNotFound.Message)
	}

	tournament, err := s.ownership.Registration(caller, registration)
	if err != nil {
		return nil, err
	}

	if req.Reset {
		registration.Verified = false
		registration.VerificationNotes = ""
		registration.VerifiedBy = nil
		registration.VerifiedAt = nil
		registration.Status = models.RegistrationPending

		if err := s.repo.RegistrationRepo.UpdateRegistration(registration); err != nil {
			return nil, err
		}
		return registration, nil
	}

	verifiedAt := s.now()
	verifier := caller.UserID
	registration.Verified = req.Verified
	registration.VerificationNotes = req.VerificationNotes
	registration.VerifiedBy = &verifier
	registration.VerifiedAt = &verifiedAt

	// Payment state is never touched here.
	if req.Verified && registration.PaymentStatus == models.PaymentPaid {
		registration.Status = models.RegistrationConfirmed
	} else if !req.Verified {
		registration.Status = models.RegistrationRejected
	}

	if err := s.repo.RegistrationRepo.UpdateRegistration(registration); err != nil {
		return nil, err
	}

	s.notifyPlayer(caller, tournament, registration)

	return registration, nil
}

func (s *VerificationService) notifyPlayer(caller models.Identity, tournament *models.Tournament, registration *models.Registration) {
	log := logrus.WithField("registration_id", registration.ID)

	player := registration.Player
	if player == nil {
		p, err := s.repo.UserRepo.GetUserByID(registration.PlayerID)
		if err != nil {
			log.WithError(err).Warn("skipping verification notification")
			return
		}
		player = p
	}

	organizerName := caller.Email
	if organizer, err := s.repo.UserRepo.GetUserByID(caller.UserID); err == nil {
		organizerName = organizer.DisplayName()
	} else {
		log.WithError(err).Debug("organizer lookup failed, using email")
	}

	s.notifier.Enqueue(notify.VerificationUpdate(player, organizerName, tournament, registration, s.cfg.PublicURL+"/player/registrations"))
}
