package handlers

import (
	"sportify-backend/internal/middleware"
	"sportify-backend/internal/models"
	"sportify-backend/internal/services"
	"sportify-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateRegistrationRequest struct {
	TournamentID     string              `json:"tournament_id" validate:"required,uuid"`
	RegistrationType string              `json:"registration_type" validate:"required,oneof=individual team"`
	TeamName         string              `json:"team_name"`
	TeamMembers      []models.TeamMember `json:"team_members" validate:"omitempty,dive"`
	AadharNumber     string              `json:"aadhar_number"`
	AadharFrontURL   string              `json:"aadhar_front_url"`
	AadharBackURL    string              `json:"aadhar_back_url"`
}

type VerifyPaymentRequest struct {
	RegistrationID    string `json:"registration_id" validate:"required,uuid"`
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// CreateRegistration enrolls the calling player in a tournament
// @Summary Register for tournament
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRegistrationRequest true "Registration data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /registrations/create [post]
func (h *Handler) CreateRegistration(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	var req CreateRegistrationRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	result, err := h.registrationSvc.CreateRegistration(c.UserContext(), caller, services.CreateRegistrationRequest{
		TournamentID:     uuid.MustParse(req.TournamentID),
		RegistrationType: req.RegistrationType,
		TeamName:         req.TeamName,
		TeamMembers:      req.TeamMembers,
		AadharNumber:     req.AadharNumber,
		AadharFrontURL:   req.AadharFrontURL,
		AadharBackURL:    req.AadharBackURL,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Created(c, result, "Registration successful")
}

// VerifyPayment checks the gateway signature and confirms the registration
// @Summary Verify payment
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body VerifyPaymentRequest true "Gateway callback data"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.ErrorResponse
// @Router /registrations/verify-payment [post]
func (h *Handler) VerifyPayment(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	var req VerifyPaymentRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	registration, err := h.registrationSvc.VerifyPayment(caller, services.VerifyPaymentRequest{
		RegistrationID:    uuid.MustParse(req.RegistrationID),
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpaySignature: req.RazorpaySignature,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Success(c, registration, "Payment verified successfully")
}

func (h *Handler) ListMyRegistrations(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	registrations, err := h.registrationSvc.ListPlayerRegistrations(caller)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Success(c, registrations, "Registrations retrieved successfully")
}

// GetEntryPass serves the QR code for a confirmed registration as PNG.
func (h *Handler) GetEntryPass(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	id, err := uuidParam(c, "id", "Invalid registration ID")
	if err != nil {
		return handleServiceError(c, err)
	}

	png, err := h.registrationSvc.EntryPass(caller, id)
	if err != nil {
		return handleServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// ListTournamentRegistrations returns every registration for one of the caller's tournaments
// @Summary List tournament registrations
// @Tags Organizer
// @Produce json
// @Security BearerAuth
// @Param tournamentId path string true "Tournament ID"
// @Success 200 {object} utils.Response
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /organizer/registrations/{tournamentId} [get]
func (h *Handler) ListTournamentRegistrations(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	tournamentID, err := uuidParam(c, "tournamentId", "Invalid tournament ID")
	if err != nil {
		return handleServiceError(c, err)
	}

	registrations, err := h.registrationSvc.ListTournamentRegistrations(caller, tournamentID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Success(c, registrations, "Registrations retrieved successfully")
}
