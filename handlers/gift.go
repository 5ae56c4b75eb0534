package handlers

import (
	"github.com/gofiber/fiber/v2"

	"gift-exchange-system/middleware"
	"gift-exchange-system/services"
	"gift-exchange-system/utils"
)

// SetupGiftRoutes registers gift registration, browsing and the
// select/cancel allocation endpoints.
func SetupGiftRoutes(app *fiber.App, giftService *services.GiftService, tokens *utils.TokenManager) {
	auth := middleware.UserContextMiddleware(tokens)

	events := app.Group("/events", auth)
	events.Post("/:id/gifts", registerGift(giftService))
	events.Get("/:id/gifts", listAvailableGifts(giftService))
	events.Get("/:id/gifts/mine", myGiftStatus(giftService))

	gifts := app.Group("/gifts", auth)
	gifts.Post("/:id/select", selectGift(giftService))
	gifts.Post("/:id/cancel", cancelGiftSelection(giftService))

	app.Get("/users/me/gifts", auth, listUserGifts(giftService))
}

func registerGift(giftService *services.GiftService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type Req struct {
			Description string `json:"description"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.Description == "" {
			return c.Status(400).JSON(fiber.Map{"error": "description is required"})
		}

		gift, err := giftService.Register(c.Context(), c.Params("id"), middleware.UserID(c), req.Description)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(201).JSON(gift)
	}
}

func listAvailableGifts(giftService *services.GiftService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gifts, err := giftService.ListAvailable(c.Context(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(gifts)
	}
}

// myGiftStatus tells the caller where they stand in one event: whether they
// registered a gift yet, and which gift they currently hold.
func myGiftStatus(giftService *services.GiftService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventID := c.Params("id")
		userID := middleware.UserID(c)

		registered, err := giftService.HasRegisteredGift(c.Context(), eventID, userID)
		if err != nil {
			return fail(c, err)
		}
		selected, err := giftService.SelectedGift(c.Context(), eventID, userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{
			"has_registered_gift": registered,
			"selected_gift":       selected,
		})
	}
}

func selectGift(giftService *services.GiftService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := giftService.Select(c.Context(), c.Params("id"), middleware.UserID(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"message": "gift selected"})
	}
}

func cancelGiftSelection(giftService *services.GiftService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := giftService.CancelSelection(c.Context(), c.Params("id"), middleware.UserID(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"message": "selection cancelled"})
	}
}

func listUserGifts(giftService *services.GiftService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gifts, err := giftService.UserGifts(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(gifts)
	}
}
