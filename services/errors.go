package services

import "errors"

// Domain errors. Handlers branch on these with errors.Is to pick status
// codes; anything else coming out of a service is a storage failure.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found")

	ErrInvalidInviteCode = errors.New("invite code is invalid, expired, or already used")

	ErrEventNotFound     = errors.New("event not found")
	ErrNotEventCreator   = errors.New("only the event creator can do this")
	ErrInvalidTransition = errors.New("event status cannot move that way")
	ErrEventClosed       = errors.New("event is no longer open")

	ErrNotParticipant = errors.New("only event participants can do this")

	ErrGiftNotFound    = errors.New("gift not found")
	ErrGiftUnavailable = errors.New("gift has already been selected")
	ErrOwnGift         = errors.New("cannot select your own gift")
	ErrAlreadySelected = errors.New("a gift has already been selected in this event")
	ErrNotGiftHolder   = errors.New("gift is not currently held by this user")

	ErrReviewNotFound  = errors.New("review not found or not owned by this user")
	ErrAlreadyReviewed = errors.New("this gift has already been reviewed by this user")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)
