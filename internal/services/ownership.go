package services

import (
	"sportify-backend/internal/models"
	"sportify-backend/internal/repositories"

	"github.com/google/uuid"
)

// Ownership resolves the child -> tournament -> organizer chain. Every
// owner-only operation goes through it.
type Ownership struct {
	tournaments repositories.TournamentRepository
}

func NewOwnership(tournaments repositories.TournamentRepository) *Ownership {
	return &Ownership{tournaments: tournaments}
}

// Tournament loads the tournament and fails unless caller organizes it.
func (o *Ownership) Tournament(caller models.Identity, tournamentID uuid.UUID) (*models.Tournament, error) {
	tournament, err := o.tournaments.GetTournamentByID(tournamentID)
	if err != nil {
		return nil, notFoundOr(err, ErrTournamentNotFound.Message)
	}
	if tournament.OrganizerID != caller.UserID {
		return nil, ErrNotTournamentOwner
	}
	return tournament, nil
}

func (o *Ownership) Registration(caller models.Identity, registration *models.Registration) (*models.Tournament, error) {
	return o.Tournament(caller, registration.TournamentID)
}

func (o *Ownership) Sponsorship(caller models.Identity, sponsorship *models.Sponsorship) (*models.Tournament, error) {
	return o.Tournament(caller, sponsorship.TournamentID)
}
