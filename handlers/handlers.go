package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"gift-exchange-system/services"
)

// fail maps domain errors onto HTTP status codes. Unknown errors are storage
// failures and stay opaque to the client.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrGiftNotFound),
		errors.Is(err, services.ErrReviewNotFound),
		errors.Is(err, services.ErrUserNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrGiftUnavailable),
		errors.Is(err, services.ErrAlreadySelected),
		errors.Is(err, services.ErrAlreadyReviewed),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrInvalidInviteCode),
		errors.Is(err, services.ErrInvalidTransition):
		status, message = fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrNotEventCreator),
		errors.Is(err, services.ErrNotParticipant),
		errors.Is(err, services.ErrNotGiftHolder):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		status, message = fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrOwnGift),
		errors.Is(err, services.ErrEventClosed):
		status, message = fiber.StatusBadRequest, err.Error()
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}
