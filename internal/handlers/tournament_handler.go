package handlers

import (
	"math"
	"strconv"
	"time"

	"sportify-backend/internal/middleware"
	"sportify-backend/internal/services"
	"sportify-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateTournamentRequest struct {
	Name                  string   `json:"name" validate:"required"`
	Sport                 string   `json:"sport" validate:"required"`
	Description           string   `json:"description" validate:"required"`
	Venue                 string   `json:"venue" validate:"required"`
	City                  string   `json:"city" validate:"required"`
	State                 string   `json:"state" validate:"required"`
	Latitude              *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude             *float64 `json:"longitude" validate:"omitempty,longitude"`
	StartDate             string   `json:"start_date" validate:"required"`
	EndDate               string   `json:"end_date" validate:"required"`
	RegistrationDeadline  string   `json:"registration_deadline" validate:"required"`
	MaxParticipants       int      `json:"max_participants" validate:"required,gt=0"`
	AllowTeamRegistration bool     `json:"allow_team_registration"`
	TeamSize              *int     `json:"team_size" validate:"omitempty,gt=0"`
	EntryFee              float64  `json:"entry_fee" validate:"gte=0"`
	PrizePool             *float64 `json:"prize_pool" validate:"omitempty,gte=0"`
	Rules                 string   `json:"rules"`
	AgeGroup              string   `json:"age_group"`
	SkillLevel            string   `json:"skill_level"`
	ContactPhone          string   `json:"contact_phone"`
	ContactEmail          string   `json:"contact_email" validate:"omitempty,email"`
}

type UpdateTournamentRequest struct {
	Name                  *string  `json:"name"`
	Description           *string  `json:"description"`
	Venue                 *string  `json:"venue"`
	Latitude              *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude             *float64 `json:"longitude" validate:"omitempty,longitude"`
	StartDate             *string  `json:"start_date"`
	EndDate               *string  `json:"end_date"`
	RegistrationDeadline  *string  `json:"registration_deadline"`
	MaxParticipants       *int     `json:"max_participants"`
	AllowTeamRegistration *bool    `json:"allow_team_registration"`
	TeamSize              *int     `json:"team_size" validate:"omitempty,gt=0"`
	EntryFee              *float64 `json:"entry_fee"`
	PrizePool             *float64 `json:"prize_pool"`
	Rules                 *string  `json:"rules"`
	AgeGroup              *string  `json:"age_group"`
	SkillLevel            *string  `json:"skill_level"`
	Status                *string  `json:"status"`
	ContactPhone          *string  `json:"contact_phone"`
	ContactEmail          *string  `json:"contact_email" validate:"omitempty,email"`
}

// ListTournaments returns tournaments matching the filters, earliest start date first
// @Summary List tournaments
// @Tags Tournaments
// @Produce json
// @Param city query string false "City (case-insensitive substring)"
// @Param state query string false "State (case-insensitive substring)"
// @Param sport query string false "Sport (case-insensitive substring)"
// @Param status query string false "Status"
// @Param lat query number false "Latitude"
// @Param lng query number false "Longitude"
// @Param radiusKm query number false "Search radius in km" default(50)
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.ErrorResponse
// @Router /tournaments [get]
func (h *Handler) ListTournaments(c *fiber.Ctx) error {
	query := services.ListTournamentsQuery{
		City:   c.Query("city"),
		State:  c.Query("state"),
		Sport:  c.Query("sport"),
		Status: c.Query("status"),
	}

	var err error
	if query.Lat, err = optionalFloat(c, "lat"); err != nil {
		return handleServiceError(c, err)
	}
	if query.Lng, err = optionalFloat(c, "lng"); err != nil {
		return handleServiceError(c, err)
	}
	if query.RadiusKm, err = optionalFloat(c, "radiusKm"); err != nil {
		return handleServiceError(c, err)
	}

	tournaments, err := h.tournamentSvc.ListTournaments(query)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Success(c, tournaments, "Tournaments retrieved successfully")
}

// GetTournament returns one tournament with its organizer
// @Summary Get tournament by ID
// @Tags Tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.ErrorResponse
// @Router /tournaments/{id} [get]
func (h *Handler) GetTournament(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id", "Invalid tournament ID")
	if err != nil {
		return handleServiceError(c, err)
	}

	tournament, err := h.tournamentSvc.GetTournament(id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Success(c, tournament, "Tournament retrieved successfully")
}

// CreateTournament opens a tournament owned by the calling organizer
// @Summary Create tournament
// @Tags Tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTournamentRequest true "Tournament data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /tournaments [post]
func (h *Handler) CreateTournament(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	var req CreateTournamentRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return utils.Error(c, "Invalid start_date format", fiber.StatusBadRequest)
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return utils.Error(c, "Invalid end_date format", fiber.StatusBadRequest)
	}
	deadline, err := parseDate(req.RegistrationDeadline)
	if err != nil {
		return utils.Error(c, "Invalid registration_deadline format", fiber.StatusBadRequest)
	}

	tournament, err := h.tournamentSvc.CreateTournament(caller, services.CreateTournamentRequest{
		Name:                  req.Name,
		Sport:                 req.Sport,
		Description:           req.Description,
		Venue:                 req.Venue,
		City:                  req.City,
		State:                 req.State,
		Latitude:              req.Latitude,
		Longitude:             req.Longitude,
		StartDate:             startDate,
		EndDate:               endDate,
		RegistrationDeadline:  deadline,
		MaxParticipants:       req.MaxParticipants,
		AllowTeamRegistration: req.AllowTeamRegistration,
		TeamSize:              req.TeamSize,
		EntryFee:              req.EntryFee,
		PrizePool:             req.PrizePool,
		Rules:                 req.Rules,
		AgeGroup:              req.AgeGroup,
		SkillLevel:            req.SkillLevel,
		ContactPhone:          req.ContactPhone,
		ContactEmail:          req.ContactEmail,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Created(c, tournament, "Tournament created successfully")
}

func (h *Handler) UpdateTournament(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	id, err := uuidParam(c, "id", "Invalid tournament ID")
	if err != nil {
		return handleServiceError(c, err)
	}

	var req UpdateTournamentRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	update := services.UpdateTournamentRequest{
		Name:                  req.Name,
		Description:           req.Description,
		Venue:                 req.Venue,
		Latitude:              req.Latitude,
		Longitude:             req.Longitude,
		MaxParticipants:       req.MaxParticipants,
		AllowTeamRegistration: req.AllowTeamRegistration,
		TeamSize:              req.TeamSize,
		EntryFee:              req.EntryFee,
		PrizePool:             req.PrizePool,
		Rules:                 req.Rules,
		AgeGroup:              req.AgeGroup,
		SkillLevel:            req.SkillLevel,
		Status:                req.Status,
		ContactPhone:          req.ContactPhone,
		ContactEmail:          req.ContactEmail,
	}
	dates := []struct {
		raw   *string
		field string
		dst   **time.Time
	}{
		{req.StartDate, "start_date", &update.StartDate},
		{req.EndDate, "end_date", &update.EndDate},
		{req.RegistrationDeadline, "registration_deadline", &update.RegistrationDeadline},
	}
	for _, d := range dates {
		if d.raw == nil {
			continue
		}
		t, err := parseDate(*d.raw)
		if err != nil {
			return utils.Error(c, "Invalid "+d.field+" format", fiber.StatusBadRequest)
		}
		*d.dst = &t
	}

	tournament, err := h.tournamentSvc.UpdateTournament(caller, id, update)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Success(c, tournament, "Tournament updated successfully")
}

// DeleteTournament removes a tournament together with its registrations and sponsorships
// @Summary Delete tournament
// @Tags Tournaments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tournament ID"
// @Success 200 {object} utils.Response
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /tournaments/{id} [delete]
func (h *Handler) DeleteTournament(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	id, err := uuidParam(c, "id", "Invalid tournament ID")
	if err != nil {
		return handleServiceError(c, err)
	}

	if err := h.tournamentSvc.DeleteTournament(caller, id); err != nil {
		return handleServiceError(c, err)
	}

	return utils.Success(c, nil, "Tournament deleted successfully")
}

func (h *Handler) ListOrganizerTournaments(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	tournaments, err := h.tournamentSvc.ListOrganizerTournaments(caller)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Success(c, tournaments, "Tournaments retrieved successfully")
}

func uuidParam(c *fiber.Ctx, name, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, message)
	}
	return id, nil
}

func optionalFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key)
	}
	return &v, nil
}
