package services

import (
	"errors"
	"fmt"

	"sportify-backend/internal/repositories"
)

type ErrorKind string

const (
	KindValidation     ErrorKind = "VALIDATION"
	KindAuthentication ErrorKind = "AUTHENTICATION"
	KindAuthorization  ErrorKind = "AUTHORIZATION"
	KindNotFound       ErrorKind = "NOT_FOUND"
	KindInternal       ErrorKind = "INTERNAL"
)

// AppError carries the message shown to the client and the kind used to
// pick the HTTP status.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s]: %v", e.Message, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s [%s]", e.Message, e.Kind)
}

func (e *AppError) Unwrap() error { return e.Err }

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewAuthenticationError(message string) *AppError {
	return &AppError{Kind: KindAuthentication, Message: message}
}

func NewAuthorizationError(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// AsAppError unwraps err into an AppError if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// notFoundOr converts a repository miss into a NotFound error and passes
// everything else through untouched.
func notFoundOr(err error, message string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return &AppError{Kind: KindNotFound, Message: message, Err: err}
	}
	return err
}

var (
	ErrTournamentNotFound   = NewNotFoundError("Tournament not found")
	ErrRegistrationNotFound = NewNotFoundError("Registration not found")
	ErrSponsorshipNotFound  = NewNotFoundError("Sponsorship not found")
	ErrUserNotFound         = NewNotFoundError("User not found")

	ErrInvalidCredentials = NewAuthenticationError("Invalid email or password")

	ErrNotTournamentOwner   = NewAuthorizationError("You can only manage your own tournaments")
	ErrNotRegistrationOwner = NewAuthorizationError("You can only access your own registrations")

	ErrEmailTaken            = NewValidationError("Email is already registered")
	ErrDeadlinePassed        = NewValidationError("Registration deadline has passed")
	ErrTournamentFull        = NewValidationError("Tournament is full")
	ErrAlreadyRegistered     = NewValidationError("You have already registered for this tournament")
	ErrTeamNotAllowed        = NewValidationError("Team registration is not allowed for this tournament")
	ErrTeamDetailsRequired   = NewValidationError("Team name and members are required")
	ErrMemberAadharRequired  = NewValidationError("All team members must provide Aadhar number and document")
	ErrAadharRequired        = NewValidationError("Aadhar number and document are required")
	ErrPaymentVerification   = NewValidationError("Payment verification failed")
	ErrPaymentNotPending     = NewValidationError("Payment has already been processed for this registration")
	ErrRegistrationNotActive = NewValidationError("Entry pass is only available for confirmed registrations")
	ErrInvalidAction         = NewValidationError("Action must be approve or reject")
	ErrInvalidStatus         = NewValidationError("Invalid sponsorship status")
)
