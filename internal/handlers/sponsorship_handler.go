package handlers

import (
	"sportify-backend/internal/middleware"
	"sportify-backend/internal/models"
	"sportify-backend/internal/services"
	"sportify-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateSponsorshipRequest struct {
	TournamentID    string   `json:"tournament_id" validate:"required,uuid"`
	Amount          float64  `json:"amount" validate:"required,gt=0"`
	SponsorshipType string   `json:"sponsorship_type" validate:"required"`
	Benefits        []string `json:"benefits"`
	Message         string   `json:"message"`
}

type ManageSponsorshipRequest struct {
	SponsorshipID string `json:"sponsorship_id" validate:"required,uuid"`
	Action        string `json:"action" validate:"required,oneof=approve reject"`
}

type UpdateSponsorshipRequest struct {
	SponsorshipID     string `json:"sponsorship_id" validate:"required,uuid"`
	Status            string `json:"status" validate:"required,oneof=pending approved rejected active completed"`
	OrganizerResponse string `json:"organizer_response"`
}

// CreateSponsorship submits a funding offer against a tournament
// @Summary Create sponsorship request
// @Tags Sponsorships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSponsorshipRequest true "Sponsorship offer"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /sponsor/sponsorships [post]
func (h *Handler) CreateSponsorship(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	var req CreateSponsorshipRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	sponsorship, err := h.sponsorshipSvc.CreateSponsorship(caller, services.CreateSponsorshipRequest{
		TournamentID:    uuid.MustParse(req.TournamentID),
		Amount:          req.Amount,
		SponsorshipType: req.SponsorshipType,
		Benefits:        req.Benefits,
		Message:         req.Message,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Created(c, sponsorship, "Sponsorship request sent successfully")
}

func (h *Handler) ListSponsorSponsorships(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	sponsorships, err := h.sponsorshipSvc.ListSponsorSponsorships(caller)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Success(c, sponsorships, "Sponsorships retrieved successfully")
}

func (h *Handler) ListOrganizerSponsorships(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	sponsorships, err := h.sponsorshipSvc.ListOrganizerSponsorships(caller)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Success(c, sponsorships, "Sponsorships retrieved successfully")
}

// ManageSponsorship approves or rejects a sponsorship named in the body
// @Summary Approve or reject sponsorship
// @Tags Organizer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ManageSponsorshipRequest true "Decision"
// @Success 200 {object} utils.Response
// @Failure 403 {object} utils.ErrorResponse
// @Router /organizer/sponsorships/manage [post]
func (h *Handler) ManageSponsorship(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	var req ManageSponsorshipRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	return h.manageSponsorship(c, caller, uuid.MustParse(req.SponsorshipID), req.Action)
}

// ManageSponsorshipAction is the path form of ManageSponsorship: /sponsorships/:id/:action.
func (h *Handler) ManageSponsorshipAction(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	id, err := uuidParam(c, "id", "Invalid sponsorship ID")
	if err != nil {
		return handleServiceError(c, err)
	}

	return h.manageSponsorship(c, caller, id, c.Params("action"))
}

func (h *Handler) manageSponsorship(c *fiber.Ctx, caller models.Identity, id uuid.UUID, action string) error {
	sponsorship, err := h.sponsorshipSvc.ManageSponsorship(caller, id, action)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Success(c, sponsorship, "Sponsorship "+sponsorship.Status+" successfully")
}

// UpdateSponsorship overwrites status and organizer response
// @Summary Update sponsorship
// @Tags Organizer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateSponsorshipRequest true "New status"
// @Success 200 {object} utils.Response
// @Failure 403 {object} utils.ErrorResponse
// @Router /organizer/sponsorships [post]
func (h *Handler) UpdateSponsorship(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	var req UpdateSponsorshipRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	sponsorship, err := h.sponsorshipSvc.UpdateSponsorship(caller, services.UpdateSponsorshipRequest{
		SponsorshipID:     uuid.MustParse(req.SponsorshipID),
		Status:            req.Status,
		OrganizerResponse: req.OrganizerResponse,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Success(c, sponsorship, "Sponsorship updated successfully")
}
