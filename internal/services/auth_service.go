package services

import (
	"errors"
	"strings"
	"time"

	"sportify-backend/internal/config"
	"sportify-backend/internal/models"
	"sportify-backend/internal/repositories"
	"sportify-backend/internal/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type AuthService struct {
	repo *repositories.Repository
	cfg  *config.Config
	now  func() time.Time
}

func NewAuthService(repo *repositories.Repository, cfg *config.Config) *AuthService {
	return &AuthService{repo: repo, cfg: cfg, now: time.Now}
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// RegisterRequest holds the base account fields plus every role's optional
// attributes. Only the attributes of the requested role are kept.
type RegisterRequest struct {
	Name      string
	Email     string
	Password  string
	Phone     string
	Role      models.Role
	City      string
	State     string
	Latitude  *float64
	Longitude *float64

	ProfileInput
}

type ProfileInput struct {
	OrganizationName string

	SportsPreferences []string
	SkillLevel        string
	Achievements      []string
	DateOfBirth       *time.Time
	Gender            string

	CompanyName       string
	Website           string
	BrandLogo         string
	SponsorshipBudget *float64
}

type UpdateProfileRequest struct {
	Name      *string
	Phone     *string
	City      *string
	State     *string
	Latitude  *float64
	Longitude *float64

	ProfileInput
}

func (s *AuthService) Register(req RegisterRequest) (*AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	role := models.Role(strings.TrimSpace(strings.ToLower(string(req.Role))))

	if !role.Valid() {
		return nil, NewValidationError("Role must be organizer, player or sponsor")
	}

	if existing, err := s.repo.UserRepo.GetUserByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	user := &models.User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Password:  hashedPassword,
		Phone:     req.Phone,
		Role:      role,
		City:      req.City,
		State:     req.State,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	profile := models.NewProfile(role)
	applyProfileInput(profile, req.ProfileInput)
	if err := user.SetProfile(profile); err != nil {
		return nil, err
	}

	if err := s.repo.UserRepo.CreateUser(user); err != nil {
		return nil, err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *AuthService) Authenticate(email, password string) (*AuthResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if email == "" || password == "" {
		return nil, NewValidationError("Email and password are required")
	}

	user, err := s.repo.UserRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &AuthResponse{Token: token, User: user}, nil
}

// GenerateToken issues the bearer credential. It is valid for cfg.JWTExpiry
// and cannot be revoked earlier.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     now.Add(s.cfg.JWTExpiry).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) GetUserProfile(userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.UserRepo.GetUserByID(userID)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound.Message)
	}
	return user, nil
}

// UpdateProfile changes base fields and the caller's own role attributes.
// Role and email are never changed here.
func (s *AuthService) UpdateProfile(userID uuid.UUID, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.repo.UserRepo.GetUserByID(userID)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound.Message)
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil && *req.Phone != user.Phone {
		user.Phone = *req.Phone
		user.PhoneVerified = false
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.State != nil {
		user.State = *req.State
	}
	if req.Latitude != nil && req.Longitude != nil {
		user.Latitude, user.Longitude = req.Latitude, req.Longitude
	}

	profile := user.Profile()
	if profile == nil {
		profile = models.NewProfile(user.Role)
	}
	applyProfileInput(profile, req.ProfileInput)
	if err := user.SetProfile(profile); err != nil {
		return nil, err
	}

	if err := s.repo.UserRepo.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyPhone records a phone number the client already confirmed with the
// SMS provider.
func (s *AuthService) VerifyPhone(userID uuid.UUID, phone string) (*models.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, NewValidationError("Phone number is required")
	}

	user, err := s.repo.UserRepo.GetUserByID(userID)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound.Message)
	}

	user.Phone = phone
	user.PhoneVerified = true
	if err := s.repo.UserRepo.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// applyProfileInput copies only the fields that belong to the profile's variant.
func applyProfileInput(profile models.RoleProfile, in ProfileInput) {
	switch p := profile.(type) {
	case *models.OrganizerProfile:
		if in.OrganizationName != "" {
			p.OrganizationName = in.OrganizationName
		}
	case *models.PlayerProfile:
		if in.SportsPreferences != nil {
			p.SportsPreferences = in.SportsPreferences
		}
		if in.SkillLevel != "" {
			p.SkillLevel = in.SkillLevel
		}
		if in.Achievements != nil {
			p.Achievements = in.Achievements
		}
		if in.DateOfBirth != nil {
			p.DateOfBirth = in.DateOfBirth
		}
		if in.Gender != "" {
			p.Gender = in.Gender
		}
	case *models.SponsorProfile:
		if in.CompanyName != "" {
			p.CompanyName = in.CompanyName
		}
		if in.Website != "" {
			p.Website = in.Website
		}
		if in.BrandLogo != "" {
			p.BrandLogo = in.BrandLogo
		}
		if in.SponsorshipBudget != nil {
			p.SponsorshipBudget = *in.SponsorshipBudget
		}
	}
}
