package handlers

import (
	"time"

	"sportify-backend/internal/middleware"
	"sportify-backend/internal/models"
	"sportify-backend/internal/services"
	"sportify-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name      string   `json:"name" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=6"`
	Phone     string   `json:"phone" validate:"required"`
	Role      string   `json:"role" validate:"required,oneof=organizer player sponsor"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`

	ProfileFields
}

// ProfileFields carries the role-specific attributes. Fields that do not
// belong to the caller's role are ignored.
type ProfileFields struct {
	OrganizationName string `json:"organization_name"`

	SportsPreferences []string `json:"sports_preferences"`
	SkillLevel        string   `json:"skill_level"`
	Achievements      []string `json:"achievements"`
	DateOfBirth       string   `json:"date_of_birth"`
	Gender            string   `json:"gender"`

	CompanyName       string   `json:"company_name"`
	Website           string   `json:"website"`
	BrandLogo         string   `json:"brand_logo"`
	SponsorshipBudget *float64 `json:"sponsorship_budget" validate:"omitempty,gte=0"`
}

type UpdateProfileRequest struct {
	Name      *string  `json:"name"`
	Phone     *string  `json:"phone"`
	City      *string  `json:"city"`
	State     *string  `json:"state"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`

	ProfileFields
}

type VerifyPhoneRequest struct {
	Phone string `json:"phone" validate:"required"`
}

func (p ProfileFields) toInput() (services.ProfileInput, error) {
	in := services.ProfileInput{
		OrganizationName:  p.OrganizationName,
		SportsPreferences: p.SportsPreferences,
		SkillLevel:        p.SkillLevel,
		Achievements:      p.Achievements,
		Gender:            p.Gender,
		CompanyName:       p.CompanyName,
		Website:           p.Website,
		BrandLogo:         p.BrandLogo,
		SponsorshipBudget: p.SponsorshipBudget,
	}
	if p.DateOfBirth != "" {
		dob, err := parseDate(p.DateOfBirth)
		if err != nil {
			return in, fiber.NewError(fiber.StatusBadRequest, "Invalid date_of_birth format")
		}
		in.DateOfBirth = &dob
	}
	return in, nil
}

// Register creates an account for any of the three roles
// @Summary Register account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (h *Handler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	profile, err := req.ProfileFields.toInput()
	if err != nil {
		return handleServiceError(c, err)
	}

	resp, err := h.authSvc.Register(services.RegisterRequest{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		Role:         models.Role(req.Role),
		City:         req.City,
		State:        req.State,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		ProfileInput: profile,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Created(c, resp, "Registration successful")
}

// Login handles user authentication
// @Summary User login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	loginResp, err := h.authSvc.Authenticate(req.Email, req.Password)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Success(c, loginResp, "Login successful")
}

// GetProfile returns the caller's account with its role profile
// @Summary Get current account
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/me [get]
func (h *Handler) GetProfile(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	user, err := h.authSvc.GetUserProfile(caller.UserID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Success(c, user, "Profile retrieved successfully")
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	var req UpdateProfileRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	profile, err := req.ProfileFields.toInput()
	if err != nil {
		return handleServiceError(c, err)
	}

	user, err := h.authSvc.UpdateProfile(caller.UserID, services.UpdateProfileRequest{
		Name:         req.Name,
		Phone:        req.Phone,
		City:         req.City,
		State:        req.State,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		ProfileInput: profile,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Success(c, user, "Profile updated successfully")
}

func (h *Handler) VerifyPhone(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	var req VerifyPhoneRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return handleServiceError(c, err)
	}

	user, err := h.authSvc.VerifyPhone(caller.UserID, req.Phone)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.Success(c, user, "Phone verified successfully")
}

// parseDate accepts RFC3339 timestamps and plain dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
