package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleOrganizer Role = "organizer"
	RolePlayer    Role = "player"
	RoleSponsor   Role = "sponsor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOrganizer, RolePlayer, RoleSponsor:
		return true
	}
	return false
}

const (
	TournamentDraft     = "draft"
	TournamentOpen      = "open"
	TournamentClosed    = "closed"
	TournamentOngoing   = "ongoing"
	TournamentCompleted = "completed"
	TournamentCancelled = "cancelled"
)

const (
	RegistrationIndividual = "individual"
	RegistrationTeam       = "team"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

const (
	RegistrationPending   = "pending"
	RegistrationConfirmed = "confirmed"
	RegistrationRejected  = "rejected"
	RegistrationCancelled = "cancelled"
)

const (
	SponsorshipPending   = "pending"
	SponsorshipApproved  = "approved"
	SponsorshipRejected  = "rejected"
	SponsorshipActive    = "active"
	SponsorshipCompleted = "completed"
)

// User is the shared account record. Role-specific attributes live in
// exactly one of the profile tables, see Profile and SetProfile.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Password      string    `gorm:"not null" json:"-"`
	Phone         string    `json:"phone"`
	Role          Role      `gorm:"type:varchar(20);not null" json:"role"`
	City          string    `json:"city,omitempty"`
	State         string    `json:"state,omitempty"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	IsVerified    bool      `gorm:"default:false" json:"is_verified"`
	PhoneVerified bool      `gorm:"default:false" json:"phone_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	OrganizerProfile *OrganizerProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	PlayerProfile    *PlayerProfile    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	SponsorProfile   *SponsorProfile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

type OrganizerProfile struct {
	UserID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	OrganizationName     string    `json:"organization_name"`
	VerifiedOrganizer    bool      `gorm:"default:false" json:"verified_organizer"`
	TournamentsOrganized int       `gorm:"default:0" json:"tournaments_organized"`
}

type PlayerProfile struct {
	UserID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"-"`
	SportsPreferences []string   `gorm:"serializer:json" json:"sports_preferences"`
	SkillLevel        string     `json:"skill_level,omitempty"`
	Achievements      []string   `gorm:"serializer:json" json:"achievements"`
	DateOfBirth       *time.Time `json:"date_of_birth,omitempty"`
	Gender            string     `json:"gender,omitempty"`
}

type SponsorProfile struct {
	UserID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	CompanyName       string    `json:"company_name"`
	Website           string    `json:"website,omitempty"`
	BrandLogo         string    `json:"brand_logo,omitempty"`
	SponsorshipBudget float64   `gorm:"default:0" json:"sponsorship_budget"`
}

type Tournament struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name                  string    `gorm:"not null" json:"name"`
	Sport                 string    `gorm:"index;not null" json:"sport"`
	Description           string    `gorm:"type:text" json:"description"`
	OrganizerID           uuid.UUID `gorm:"type:uuid;index;not null" json:"organizer_id"`
	Venue                 string    `gorm:"not null" json:"venue"`
	City                  string    `gorm:"index;not null" json:"city"`
	State                 string    `gorm:"not null" json:"state"`
	Latitude              *float64  `json:"latitude,omitempty"`
	Longitude             *float64  `json:"longitude,omitempty"`
	MapLink               string    `json:"map_link,omitempty"`
	StartDate             time.Time `gorm:"index" json:"start_date"`
	EndDate               time.Time `json:"end_date"`
	RegistrationDeadline  time.Time `json:"registration_deadline"`
	MaxParticipants       int       `gorm:"not null" json:"max_participants"`
	CurrentParticipants   int       `gorm:"default:0" json:"current_participants"`
	AllowTeamRegistration bool      `gorm:"default:false" json:"allow_team_registration"`
	TeamSize              *int      `json:"team_size,omitempty"`
	EntryFee              float64   `gorm:"default:0" json:"entry_fee"`
	PrizePool             *float64  `json:"prize_pool,omitempty"`
	Rules                 string    `gorm:"type:text" json:"rules,omitempty"`
	AgeGroup              string    `json:"age_group,omitempty"`
	SkillLevel            string    `json:"skill_level,omitempty"`
	Status                string    `gorm:"type:varchar(20);index;default:'open'" json:"status"`
	ContactPhone          string    `json:"contact_phone,omitempty"`
	ContactEmail          string    `json:"contact_email,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`

	// Relations
	Organizer *User `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
}

type TeamMember struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	AadharNumber   string `json:"aadhar_number"`
	AadharFrontURL string `json:"aadhar_front_url"`
	AadharBackURL  string `json:"aadhar_back_url,omitempty"`
}

type Registration struct {
	ID               uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TournamentID     uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_registration_tournament_player" json:"tournament_id"`
	PlayerID         uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_registration_tournament_player;index" json:"player_id"`
	RegistrationType string       `gorm:"type:varchar(20);not null" json:"registration_type"`
	TeamName         string       `json:"team_name,omitempty"`
	TeamMembers      []TeamMember `gorm:"serializer:json" json:"team_members,omitempty"`
	AadharNumber     string       `json:"aadhar_number,omitempty"`
	AadharFrontURL   string       `json:"aadhar_front_url,omitempty"`
	AadharBackURL    string       `json:"aadhar_back_url,omitempty"`

	PaymentStatus     string     `gorm:"type:varchar(20);default:'pending'" json:"payment_status"`
	RazorpayOrderID   string     `gorm:"index" json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string     `json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string     `json:"-"`
	AmountPaid        float64    `gorm:"default:0" json:"amount_paid"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`

	Verified          bool       `gorm:"default:false" json:"verified"`
	VerificationNotes string     `json:"verification_notes,omitempty"`
	VerifiedBy        *uuid.UUID `gorm:"type:uuid" json:"verified_by,omitempty"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`

	Status       string    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Tournament *Tournament `gorm:"foreignKey:TournamentID;constraint:OnDelete:CASCADE" json:"tournament,omitempty"`
	Player     *User       `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
}

// Headcount is how many participant slots the registration occupies.
func (r *Registration) Headcount() int {
	if r.RegistrationType == RegistrationTeam {
		return len(r.TeamMembers)
	}
	return 1
}

type Sponsorship struct {
	ID                uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TournamentID      uuid.UUID `gorm:"type:uuid;index;not null" json:"tournament_id"`
	SponsorID         uuid.UUID `gorm:"type:uuid;index;not null" json:"sponsor_id"`
	Amount            float64   `gorm:"not null" json:"amount"`
	SponsorshipType   string    `gorm:"not null" json:"sponsorship_type"`
	Benefits          []string  `gorm:"serializer:json" json:"benefits"`
	Status            string    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Message           string    `gorm:"type:text" json:"message,omitempty"`
	OrganizerResponse string    `gorm:"type:text" json:"organizer_response,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relations
	Tournament *Tournament `gorm:"foreignKey:TournamentID;constraint:OnDelete:CASCADE" json:"tournament,omitempty"`
	Sponsor    *User       `gorm:"foreignKey:SponsorID" json:"sponsor,omitempty"`
}

func ValidTournamentStatus(status string) bool {
	switch status {
	case TournamentDraft, TournamentOpen, TournamentClosed, TournamentOngoing, TournamentCompleted, TournamentCancelled:
		return true
	}
	return false
}

func ValidSponsorshipStatus(status string) bool {
	switch status {
	case SponsorshipPending, SponsorshipApproved, SponsorshipRejected, SponsorshipActive, SponsorshipCompleted:
		return true
	}
	return false
}

// Identity is the decoded bearer credential attached to each request.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}
