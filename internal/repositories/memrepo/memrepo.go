// Package memrepo is an in-memory implementation of the repository
// interfaces. It keeps the same uniqueness rules as the postgres schema and
// is used by service and handler tests.
package memrepo

import (
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"sportify-backend/internal/models"
	"sportify-backend/internal/repositories"

	"github.com/google/uuid"
)

// ErrDuplicateKey mirrors a unique index violation.
var ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

type Store struct {
	mu            sync.Mutex
	users         map[uuid.UUID]models.User
	tournaments   map[uuid.UUID]models.Tournament
	registrations map[uuid.UUID]models.Registration
	sponsorships  map[uuid.UUID]models.Sponsorship
	clock         time.Time
}

func New() *Store {
	return &Store{
		users:         map[uuid.UUID]models.User{},
		tournaments:   map[uuid.UUID]models.Tournament{},
		registrations: map[uuid.UUID]models.Registration{},
		sponsorships:  map[uuid.UUID]models.Sponsorship{},
		clock:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Repository wires the store into the same aggregate the services use.
func (s *Store) Repository() *repositories.Repository {
	return &repositories.Repository{
		UserRepo:         (*userRepo)(s),
		TournamentRepo:   (*tournamentRepo)(s),
		RegistrationRepo: (*registrationRepo)(s),
		SponsorshipRepo:  (*sponsorshipRepo)(s),
	}
}

// tick returns strictly increasing timestamps so "newest first" is deterministic.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) summary(id uuid.UUID) *models.User {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &models.User{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role}
}

func (s *Store) tournamentWithOrganizer(id uuid.UUID) *models.Tournament {
	t, ok := s.tournaments[id]
	if !ok {
		return nil
	}
	t.Organizer = s.summary(t.OrganizerID)
	return &t
}

func cloneUser(u models.User) models.User {
	if u.OrganizerProfile != nil {
		p := *u.OrganizerProfile
		u.OrganizerProfile = &p
	}
	if u.PlayerProfile != nil {
		p := *u.PlayerProfile
		p.SportsPreferences = append([]string(nil), p.SportsPreferences...)
		p.Achievements = append([]string(nil), p.Achievements...)
		u.PlayerProfile = &p
	}
	if u.SponsorProfile != nil {
		p := *u.SponsorProfile
		u.SponsorProfile = &p
	}
	return u
}

type userRepo Store

func (r *userRepo) CreateUser(user *models.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := s.tick()
	user.CreatedAt, user.UpdatedAt = now, now
	if p := user.Profile(); p != nil {
		_ = user.SetProfile(p)
	}
	s.users[user.ID] = cloneUser(*user)
	return nil
}

func (r *userRepo) GetUserByID(id uuid.UUID) (*models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	u = cloneUser(u)
	return &u, nil
}

func (r *userRepo) GetUserByEmail(email string) (*models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u = cloneUser(u)
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepo) UpdateUser(user *models.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	user.UpdatedAt = s.tick()
	s.users[user.ID] = cloneUser(*user)
	return nil
}

func (r *userRepo) IncrementTournamentsOrganized(userID uuid.UUID) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok || u.OrganizerProfile == nil {
		return nil
	}
	u = cloneUser(u)
	u.OrganizerProfile.TournamentsOrganized++
	s.users[userID] = u
	return nil
}

type tournamentRepo Store

func (r *tournamentRepo) CreateTournament(t *models.Tournament) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := s.tick()
	t.CreatedAt, t.UpdatedAt = now, now
	stored := *t
	stored.Organizer = nil
	s.tournaments[t.ID] = stored
	return nil
}

func (r *tournamentRepo) GetTournamentByID(id uuid.UUID) (*models.Tournament, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tournaments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &t, nil
}

func (r *tournamentRepo) GetTournamentWithOrganizer(id uuid.UUID) (*models.Tournament, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tournamentWithOrganizer(id)
	if t == nil {
		return nil, repositories.ErrNotFound
	}
	return t, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// haversine mirrors the SQL distance expression used by the postgres repository.
func haversine(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180
	v := math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Cos((lng2-lng1)*rad) + math.Sin(lat1*rad)*math.Sin(lat2*rad)
	return 6371000 * math.Acos(math.Min(1, v))
}

func (r *tournamentRepo) ListTournaments(f repositories.TournamentFilters) ([]models.Tournament, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Tournament{}
	for id, t := range s.tournaments {
		if f.City != "" && !containsFold(t.City, f.City) {
			continue
		}
		if f.State != "" && !containsFold(t.State, f.State) {
			continue
		}
		if f.Sport != "" && !containsFold(t.Sport, f.Sport) {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Near != nil {
			if t.Latitude == nil || t.Longitude == nil {
				continue
			}
			if haversine(f.Near.Latitude, f.Near.Longitude, *t.Latitude, *t.Longitude) > f.Near.RadiusMeters {
				continue
			}
		}
		out = append(out, *s.tournamentWithOrganizer(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *tournamentRepo) ListTournamentsByOrganizer(organizerID uuid.UUID) ([]models.Tournament, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Tournament{}
	for _, t := range s.tournaments {
		if t.OrganizerID == organizerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *tournamentRepo) UpdateTournament(t *models.Tournament) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tournaments[t.ID]; !ok {
		return repositories.ErrNotFound
	}
	t.UpdatedAt = s.tick()
	stored := *t
	stored.Organizer = nil
	s.tournaments[t.ID] = stored
	return nil
}

func (r *tournamentRepo) DeleteTournament(id uuid.UUID) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tournaments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.tournaments, id)
	for rid, reg := range s.registrations {
		if reg.TournamentID == id {
			delete(s.registrations, rid)
		}
	}
	for sid, sp := range s.sponsorships {
		if sp.TournamentID == id {
			delete(s.sponsorships, sid)
		}
	}
	return nil
}

func (r *tournamentRepo) IncrementParticipants(id uuid.UUID, by int) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tournaments[id]
	if !ok {
		return nil
	}
	t.CurrentParticipants += by
	s.tournaments[id] = t
	return nil
}

func (r *tournamentRepo) CloseExpiredTournaments(now time.Time) (int64, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, t := range s.tournaments {
		if t.Status == models.TournamentOpen && t.RegistrationDeadline.Before(now) {
			t.Status = models.TournamentClosed
			s.tournaments[id] = t
			n++
		}
	}
	return n, nil
}

type registrationRepo Store

func (r *registrationRepo) CreateRegistration(reg *models.Registration) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.registrations {
		if existing.TournamentID == reg.TournamentID && existing.PlayerID == reg.PlayerID {
			return ErrDuplicateKey
		}
	}
	if reg.ID == uuid.Nil {
		reg.ID = uuid.New()
	}
	now := s.tick()
	reg.RegisteredAt, reg.UpdatedAt = now, now
	stored := *reg
	stored.Tournament, stored.Player = nil, nil
	stored.TeamMembers = append([]models.TeamMember(nil), reg.TeamMembers...)
	s.registrations[reg.ID] = stored
	return nil
}

func (r *registrationRepo) GetRegistrationByID(id uuid.UUID) (*models.Registration, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.registrations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if t, ok := s.tournaments[reg.TournamentID]; ok {
		reg.Tournament = &t
	}
	reg.Player = s.summary(reg.PlayerID)
	return &reg, nil
}

func (r *registrationRepo) FindByTournamentAndPlayer(tournamentID, playerID uuid.UUID) (*models.Registration, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, reg := range s.registrations {
		if reg.TournamentID == tournamentID && reg.PlayerID == playerID {
			return &reg, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func newestRegistrationsFirst(out []models.Registration) {
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.After(out[j].RegisteredAt) })
}

func (r *registrationRepo) ListByPlayer(playerID uuid.UUID) ([]models.Registration, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Registration{}
	for _, reg := range s.registrations {
		if reg.PlayerID == playerID {
			reg.Tournament = s.tournamentWithOrganizer(reg.TournamentID)
			out = append(out, reg)
		}
	}
	newestRegistrationsFirst(out)
	return out, nil
}

func (r *registrationRepo) ListByTournament(tournamentID uuid.UUID) ([]models.Registration, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Registration{}
	for _, reg := range s.registrations {
		if reg.TournamentID == tournamentID {
			reg.Player = s.summary(reg.PlayerID)
			out = append(out, reg)
		}
	}
	newestRegistrationsFirst(out)
	return out, nil
}

func (r *registrationRepo) UpdateRegistration(reg *models.Registration) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registrations[reg.ID]; !ok {
		return repositories.ErrNotFound
	}
	reg.UpdatedAt = s.tick()
	stored := *reg
	stored.Tournament, stored.Player = nil, nil
	s.registrations[reg.ID] = stored
	return nil
}

type sponsorshipRepo Store

func (r *sponsorshipRepo) CreateSponsorship(sp *models.Sponsorship) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if sp.ID == uuid.Nil {
		sp.ID = uuid.New()
	}
	now := s.tick()
	sp.CreatedAt, sp.UpdatedAt = now, now
	stored := *sp
	stored.Tournament, stored.Sponsor = nil, nil
	s.sponsorships[sp.ID] = stored
	return nil
}

func (r *sponsorshipRepo) GetSponsorshipByID(id uuid.UUID) (*models.Sponsorship, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.sponsorships[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if t, ok := s.tournaments[sp.TournamentID]; ok {
		sp.Tournament = &t
	}
	sp.Sponsor = s.summary(sp.SponsorID)
	return &sp, nil
}

func newestSponsorshipsFirst(out []models.Sponsorship) {
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
}

func (r *sponsorshipRepo) ListBySponsor(sponsorID uuid.UUID) ([]models.Sponsorship, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Sponsorship{}
	for _, sp := range s.sponsorships {
		if sp.SponsorID == sponsorID {
			sp.Tournament = s.tournamentWithOrganizer(sp.TournamentID)
			out = append(out, sp)
		}
	}
	newestSponsorshipsFirst(out)
	return out, nil
}

func (r *sponsorshipRepo) ListByOrganizer(organizerID uuid.UUID) ([]models.Sponsorship, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Sponsorship{}
	for _, sp := range s.sponsorships {
		t, ok := s.tournaments[sp.TournamentID]
		if !ok || t.OrganizerID != organizerID {
			continue
		}
		sp.Tournament = &t
		sp.Sponsor = s.summary(sp.SponsorID)
		out = append(out, sp)
	}
	newestSponsorshipsFirst(out)
	return out, nil
}

func (r *sponsorshipRepo) UpdateSponsorship(sp *models.Sponsorship) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sponsorships[sp.ID]; !ok {
		return repositories.ErrNotFound
	}
	sp.UpdatedAt = s.tick()
	stored := *sp
	stored.Tournament, stored.Sponsor = nil, nil
	s.sponsorships[sp.ID] = stored
	return nil
}
