package services

import (
	"fmt"
	"time"

	"sportify-backend/internal/config"
	"sportify-backend/internal/models"
	"sportify-backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultRadiusKm applies when a proximity search gives a point but no radius.
const DefaultRadiusKm = 50.0

type TournamentService struct {
	repo      *repositories.Repository
	ownership *Ownership
	cfg       *config.Config
}

func NewTournamentService(repo *repositories.Repository, cfg *config.Config) *TournamentService {
	return &TournamentService{repo: repo, ownership: NewOwnership(repo.TournamentRepo), cfg: cfg}
}

type ListTournamentsQuery struct {
	City     string
	State    string
	Sport    string
	Status   string
	Lat      *float64
	Lng      *float64
	RadiusKm *float64
}

type CreateTournamentRequest struct {
	Name                  string
	Sport                 string
	Description           string
	Venue                 string
	City                  string
	State                 string
	Latitude              *float64
	Longitude             *float64
	StartDate             time.Time
	EndDate               time.Time
	RegistrationDeadline  time.Time
	MaxParticipants       int
	AllowTeamRegistration bool
	TeamSize              *int
	EntryFee              float64
	PrizePool             *float64
	Rules                 string
	AgeGroup              string
	SkillLevel            string
	ContactPhone          string
	ContactEmail          string
}

// UpdateTournamentRequest is a partial update. Nil fields are left alone.
type UpdateTournamentRequest struct {
	Name                  *string
	Description           *string
	Venue                 *string
	Latitude              *float64
	Longitude             *float64
	StartDate             *time.Time
	EndDate               *time.Time
	RegistrationDeadline  *time.Time
	MaxParticipants       *int
	AllowTeamRegistration *bool
	TeamSize              *int
	EntryFee              *float64
	PrizePool             *float64
	Rules                 *string
	AgeGroup              *string
	SkillLevel            *string
	Status                *string
	ContactPhone          *string
	ContactEmail          *string
}

func (s *TournamentService) ListTournaments(q ListTournamentsQuery) ([]models.Tournament, error) {
	filters := repositories.TournamentFilters{
		City:   q.City,
		State:  q.State,
		Sport:  q.Sport,
		Status: q.Status,
	}

	if q.Lat != nil || q.Lng != nil || q.RadiusKm != nil {
		if q.Lat == nil || q.Lng == nil {
			return nil, NewValidationError("lat and lng must be provided together")
		}
		if *q.Lat < -90 || *q.Lat > 90 || *q.Lng < -180 || *q.Lng > 180 {
			return nil, NewValidationError("lat/lng out of range")
		}
		radius := DefaultRadiusKm
		if q.RadiusKm != nil {
			if *q.RadiusKm <= 0 {
				return nil, NewValidationError("radiusKm must be positive")
			}
			radius = *q.RadiusKm
		}
		filters.Near = &repositories.GeoFilter{
			Latitude:     *q.Lat,
			Longitude:    *q.Lng,
			RadiusMeters: radius * 1000,
		}
	}

	return s.repo.TournamentRepo.ListTournaments(filters)
}

func (s *TournamentService) GetTournament(id uuid.UUID) (*models.Tournament, error) {
	tournament, err := s.repo.TournamentRepo.GetTournamentWithOrganizer(id)
	if err != nil {
		return nil, notFoundOr(err, ErrTournamentNotFound.Message)
	}
	return tournament, nil
}

func (s *TournamentService) ListOrganizerTournaments(caller models.Identity) ([]models.Tournament, error) {
	return s.repo.TournamentRepo.ListTournamentsByOrganizer(caller.UserID)
}

// CreateTournament opens a new tournament owned by the caller. Dates are
// stored as given.
func (s *TournamentService) CreateTournament(caller models.Identity, req CreateTournamentRequest) (*models.Tournament, error) {
	if req.MaxParticipants <= 0 {
		return nil, NewValidationError("Max participants must be positive")
	}
	if req.EntryFee < 0 {
		return nil, NewValidationError("Entry fee cannot be negative")
	}
	if req.TeamSize != nil && *req.TeamSize <= 0 {
		return nil, NewValidationError("Team size must be positive")
	}

	tournament := &models.Tournament{
		ID:                    uuid.New(),
		Name:                  req.Name,
		Sport:                 req.Sport,
		Description:           req.Description,
		OrganizerID:           caller.UserID,
		Venue:                 req.Venue,
		City:                  req.City,
		State:                 req.State,
		Latitude:              req.Latitude,
		Longitude:             req.Longitude,
		MapLink:               MapLink(req.Latitude, req.Longitude),
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		RegistrationDeadline:  req.RegistrationDeadline,
		MaxParticipants:       req.MaxParticipants,
		CurrentParticipants:   0,
		AllowTeamRegistration: req.AllowTeamRegistration,
		TeamSize:              req.TeamSize,
		EntryFee:              req.EntryFee,
		PrizePool:             req.PrizePool,
		Rules:                 req.Rules,
		AgeGroup:              req.AgeGroup,
		SkillLevel:            req.SkillLevel,
		Status:                models.TournamentOpen,
		ContactPhone:          req.ContactPhone,
		ContactEmail:          req.ContactEmail,
	}

	if err := s.repo.TournamentRepo.CreateTournament(tournament); err != nil {
		return nil, err
	}

	if err := s.repo.UserRepo.IncrementTournamentsOrganized(caller.UserID); err != nil {
		logrus.WithError(err).WithField("organizer_id", caller.UserID).Warn("failed to bump tournaments organized")
	}

	return tournament, nil
}

func (s *TournamentService) UpdateTournament(caller models.Identity, id uuid.UUID, req UpdateTournamentRequest) (*models.Tournament, error) {
	tournament, err := s.ownership.Tournament(caller, id)
	if err != nil {
		return nil, err
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&tournament.Name, req.Name)
	setString(&tournament.Description, req.Description)
	setString(&tournament.Venue, req.Venue)
	setString(&tournament.Rules, req.Rules)
	setString(&tournament.AgeGroup, req.AgeGroup)
	setString(&tournament.SkillLevel, req.SkillLevel)
	setString(&tournament.ContactPhone, req.ContactPhone)
	setString(&tournament.ContactEmail, req.ContactEmail)

	if req.Latitude != nil && req.Longitude != nil {
		tournament.Latitude, tournament.Longitude = req.Latitude, req.Longitude
		tournament.MapLink = MapLink(req.Latitude, req.Longitude)
	}
	if req.StartDate != nil {
		tournament.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		tournament.EndDate = *req.EndDate
	}
	if req.RegistrationDeadline != nil {
		tournament.RegistrationDeadline = *req.RegistrationDeadline
	}
	if req.MaxParticipants != nil {
		if *req.MaxParticipants <= 0 {
			return nil, NewValidationError("Max participants must be positive")
		}
		tournament.MaxParticipants = *req.MaxParticipants
	}
	if req.AllowTeamRegistration != nil {
		tournament.AllowTeamRegistration = *req.AllowTeamRegistration
	}
	if req.TeamSize != nil {
		tournament.TeamSize = req.TeamSize
	}
	if req.EntryFee != nil {
		if *req.EntryFee < 0 {
			return nil, NewValidationError("Entry fee cannot be negative")
		}
		tournament.EntryFee = *req.EntryFee
	}
	if req.PrizePool != nil {
		tournament.PrizePool = req.PrizePool
	}
	if req.Status != nil {
		if !models.ValidTournamentStatus(*req.Status) {
			return nil, NewValidationError("Invalid tournament status")
		}
		tournament.Status = *req.Status
	}

	if err := s.repo.TournamentRepo.UpdateTournament(tournament); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (s *TournamentService) DeleteTournament(caller models.Identity, id uuid.UUID) error {
	if _, err := s.ownership.Tournament(caller, id); err != nil {
		return err
	}
	return notFoundOr(s.repo.TournamentRepo.DeleteTournament(id), ErrTournamentNotFound.Message)
}

// CloseExpired moves open tournaments past their registration deadline to closed.
func (s *TournamentService) CloseExpired(now time.Time) (int64, error) {
	return s.repo.TournamentRepo.CloseExpiredTournaments(now)
}

// MapLink builds a Google Maps link for the venue coordinates.
func MapLink(lat, lng *float64) string {
	if lat == nil || lng == nil {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/maps?q=%f,%f", *lat, *lng)
}
