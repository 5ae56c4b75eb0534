package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"gift-exchange-system/middleware"
	"gift-exchange-system/services"
	"gift-exchange-system/utils"
)

// SetupInvitationRoutes registers public code verification and secured
// issuance/listing.
func SetupInvitationRoutes(app *fiber.App, invitationService *services.InvitationService, tokens *utils.TokenManager) {
	app.Get("/invitations/verify/:code", verifyInvitation(invitationService))

	secured := app.Group("/invitations", middleware.UserContextMiddleware(tokens))
	secured.Post("/", issueInvitation(invitationService))
	secured.Get("/mine", listMyInvitations(invitationService))
}

func verifyInvitation(invitationService *services.InvitationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inv, err := invitationService.Verify(c.Context(), c.Params("code"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{
			"code":       inv.Code,
			"expires_at": inv.ExpiresAt,
			"valid":      true,
		})
	}
}

func issueInvitation(invitationService *services.InvitationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type Req struct {
			TTLHours int `json:"ttl_hours"`
		}
		var req Req
		// body is optional; default TTL applies when absent
		_ = c.BodyParser(&req)

		inv, err := invitationService.Issue(c.Context(), middleware.UserID(c), time.Duration(req.TTLHours)*time.Hour)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(201).JSON(inv)
	}
}

func listMyInvitations(invitationService *services.InvitationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		invs, err := invitationService.ListByCreator(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(invs)
	}
}
