package models

import (
	"encoding/json"
	"errors"
)

var ErrProfileRoleMismatch = errors.New("profile does not match account role")

// RoleProfile is the role-specific part of an account. Exactly one variant
// exists per account and it always matches User.Role.
type RoleProfile interface {
	ProfileRole() Role
}

func (*OrganizerProfile) ProfileRole() Role { return RoleOrganizer }
func (*PlayerProfile) ProfileRole() Role    { return RolePlayer }
func (*SponsorProfile) ProfileRole() Role   { return RoleSponsor }

// Profile returns the variant for the account's role, or nil if it was not loaded.
func (u *User) Profile() RoleProfile {
	switch u.Role {
	case RoleOrganizer:
		if u.OrganizerProfile != nil {
			return u.OrganizerProfile
		}
	case RolePlayer:
		if u.PlayerProfile != nil {
			return u.PlayerProfile
		}
	case RoleSponsor:
		if u.SponsorProfile != nil {
			return u.SponsorProfile
		}
	}
	return nil
}

// SetProfile attaches p and clears the other variants.
func (u *User) SetProfile(p RoleProfile) error {
	if p == nil || p.ProfileRole() != u.Role {
		return ErrProfileRoleMismatch
	}
	u.OrganizerProfile, u.PlayerProfile, u.SponsorProfile = nil, nil, nil
	switch v := p.(type) {
	case *OrganizerProfile:
		v.UserID = u.ID
		u.OrganizerProfile = v
	case *PlayerProfile:
		v.UserID = u.ID
		u.PlayerProfile = v
	case *SponsorProfile:
		v.UserID = u.ID
		u.SponsorProfile = v
	}
	return nil
}

// NewProfile returns an empty variant for role.
func NewProfile(role Role) RoleProfile {
	switch role {
	case RoleOrganizer:
		return &OrganizerProfile{}
	case RolePlayer:
		return &PlayerProfile{SportsPreferences: []string{}, Achievements: []string{}}
	case RoleSponsor:
		return &SponsorProfile{}
	}
	return nil
}

// DisplayName prefers the organization or company name when the profile has one.
func (u *User) DisplayName() string {
	switch p := u.Profile().(type) {
	case *OrganizerProfile:
		if p.OrganizationName != "" {
			return p.OrganizationName
		}
	case *SponsorProfile:
		if p.CompanyName != "" {
			return p.CompanyName
		}
	}
	return u.Name
}

func (u User) MarshalJSON() ([]byte, error) {
	type base User
	return json.Marshal(struct {
		base
		Profile RoleProfile `json:"profile,omitempty"`
	}{base(u), u.Profile()})
}
