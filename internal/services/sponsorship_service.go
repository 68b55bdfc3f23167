package services

import (
	"strings"

	"sportify-backend/internal/models"
	"sportify-backend/internal/repositories"

	"github.com/google/uuid"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type SponsorshipService struct {
	repo      *repositories.Repository
	ownership *Ownership
}

func NewSponsorshipService(repo *repositories.Repository) *SponsorshipService {
	return &SponsorshipService{
		repo:      repo,
		ownership: NewOwnership(repo.TournamentRepo),
	}
}

type CreateSponsorshipRequest struct {
	TournamentID    uuid.UUID
	Amount          float64
	SponsorshipType string
	Benefits        []string
	Message         string
}

type UpdateSponsorshipRequest struct {
	SponsorshipID     uuid.UUID
	Status            string
	OrganizerResponse string
}

func (s *SponsorshipService) CreateSponsorship(caller models.Identity, req CreateSponsorshipRequest) (*models.Sponsorship, error) {
	if req.TournamentID == uuid.Nil || strings.TrimSpace(req.SponsorshipType) == "" {
		return nil, NewValidationError("Tournament ID, amount and sponsorship type are required")
	}
	if req.Amount <= 0 {
		return nil, NewValidationError("Amount must be greater than zero")
	}

	tournament, err := s.repo.TournamentRepo.GetTournamentByID(req.TournamentID)
	if err != nil {
		return nil, notFoundOr(err, ErrTournamentNotFound.Message)
	}

	benefits := req.Benefits
	if benefits == nil {
		benefits = []string{}
	}

	sponsorship := &models.Sponsorship{
		ID:              uuid.New(),
		TournamentID:    tournament.ID,
		SponsorID:       caller.UserID,
		Amount:          req.Amount,
		SponsorshipType: strings.TrimSpace(req.SponsorshipType),
		Benefits:        benefits,
		Message:         req.Message,
		Status:          models.SponsorshipPending,
	}

	if err := s.repo.SponsorshipRepo.CreateSponsorship(sponsorship); err != nil {
		return nil, err
	}
	return sponsorship, nil
}

func (s *SponsorshipService) ListSponsorSponsorships(caller models.Identity) ([]models.Sponsorship, error) {
	return s.repo.SponsorshipRepo.ListBySponsor(caller.UserID)
}

func (s *SponsorshipService) ListOrganizerSponsorships(caller models.Identity) ([]models.Sponsorship, error) {
	return s.repo.SponsorshipRepo.ListByOrganizer(caller.UserID)
}

// ManageSponsorship approves or rejects a request against one of the
// caller's tournaments.
func (s *SponsorshipService) ManageSponsorship(caller models.Identity, sponsorshipID uuid.UUID, action string) (*models.Sponsorship, error) {
	var status string
	switch strings.ToLower(strings.TrimSpace(action)) {
	case ActionApprove:
		status = models.SponsorshipApproved
	case ActionReject:
		status = models.SponsorshipRejected
	default:
		return nil, ErrInvalidAction
	}

	sponsorship, err := s.ownedSponsorship(caller, sponsorshipID)
	if err != nil {
		return nil, err
	}

	sponsorship.Status = status
	if err := s.repo.SponsorshipRepo.UpdateSponsorship(sponsorship); err != nil {
		return nil, err
	}
	return sponsorship, nil
}

// UpdateSponsorship overwrites status and response. Any known status is
// accepted, not just the approve/reject outcomes.
func (s *SponsorshipService) UpdateSponsorship(caller models.Identity, req UpdateSponsorshipRequest) (*models.Sponsorship, error) {
	if req.SponsorshipID == uuid.Nil || req.Status == "" {
		return nil, NewValidationError("Sponsorship ID and status are required")
	}
	if !models.ValidSponsorshipStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	sponsorship, err := s.ownedSponsorship(caller, req.SponsorshipID)
	if err != nil {
		return nil, err
	}

	sponsorship.Status = req.Status
	sponsorship.OrganizerResponse = req.OrganizerResponse
	if err := s.repo.SponsorshipRepo.UpdateSponsorship(sponsorship); err != nil {
		return nil, err
	}
	return sponsorship, nil
}

func (s *SponsorshipService) ownedSponsorship(caller models.Identity, id uuid.UUID) (*models.Sponsorship, error) {
	sponsorship, err := s.repo.SponsorshipRepo.GetSponsorshipByID(id)
	if err != nil {
		return nil, notFoundOr(err, ErrSponsorshipNotFound.Message)
	}
	if _, err := s.ownership.Sponsorship(caller, sponsorship); err != nil {
		return nil, err
	}
	return sponsorship, nil
}
