package services

import "errors"

// Error kinds surfaced by the service layer. Handlers match them with
// errors.Is and translate to HTTP statuses.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrEmailTaken          = errors.New("email already taken")
	ErrInsufficientCredits = errors.New("not enough credits")
	ErrInvalidCreditsKind  = errors.New("unknown credits operation")
	ErrSearchQueryRequired = errors.New("search query is required")
	ErrIDSpaceExhausted    = errors.New("could not allocate a unique user id")
)
