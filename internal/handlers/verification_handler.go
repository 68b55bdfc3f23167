package handlers

import (
	"sportify-backend/internal/middleware"
	"sportify-backend/internal/services"
	"sportify-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type VerifyRegistrationRequest struct {
	RegistrationID    string `json:"registration_id" validate:"required,uuid"`
	Verified          bool   `json:"verified"`
	VerificationNotes string `json:"verification_notes"`
	Reset             bool   `json:"reset"`
}

// VerifyRegistration verifies, rejects or resets a registration
// @Summary Verify registration
// @Tags Organizer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body VerifyRegistrationRequest true "Verification decision"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /organizer/verify-registration [post]
func (h *Handler) VerifyRegistration(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	var req VerifyRegistrationRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	registration, err := h.verifySvc.VerifyRegistration(caller, services.VerifyRegistrationRequest{
		RegistrationID:    uuid.MustParse(req.RegistrationID),
		Verified:          req.Verified,
		VerificationNotes: req.VerificationNotes,
		Reset:             req.Reset,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	message := "Registration verified successfully"
	switch {
	case req.Reset:
		message = "Registration verification reset"
	case !req.Verified:
		message = "Registration rejected"
	}

	return utils.Success(c, registration, message)
}
