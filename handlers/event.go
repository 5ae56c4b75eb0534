package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"gift-exchange-system/middleware"
	"gift-exchange-system/models"
	"gift-exchange-system/services"
	"gift-exchange-system/utils"
)

// SetupEventRoutes registers the event lifecycle endpoints. Everything is
// behind authentication; events are only visible to signed-up members.
func SetupEventRoutes(app *fiber.App, eventService *services.EventService, tokens *utils.TokenManager) {
	secured := app.Group("/events", middleware.UserContextMiddleware(tokens))

	secured.Post("/", createEvent(eventService))
	secured.Get("/", listActiveEvents(eventService))
	secured.Get("/mine", listMyEvents(eventService))
	secured.Get("/:id", getEvent(eventService))
	secured.Patch("/:id/status", advanceEventStatus(eventService))
	secured.Post("/:id/complete", completeEvent(eventService))
	secured.Get("/:id/participants", listParticipants(eventService))
	secured.Post("/:id/cover", uploadCoverPhoto(eventService))
}

func createEvent(eventService *services.EventService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type Req struct {
			Title        string    `json:"title"`
			Description  string    `json:"description"`
			StartDate    time.Time `json:"start_date"`
			EndDate      time.Time `json:"end_date"`
			Participants []string  `json:"participants,omitempty"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.Title == "" || req.StartDate.IsZero() || req.EndDate.IsZero() {
			return c.Status(400).JSON(fiber.Map{"error": "title, start_date, and end_date are required"})
		}
		if !req.EndDate.After(req.StartDate) {
			return c.Status(400).JSON(fiber.Map{"error": "end_date must be after start_date"})
		}

		event, err := eventService.Create(c.Context(), middleware.UserID(c), services.CreateEventInput{
			Title:       req.Title,
			Description: req.Description,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
		}, req.Participants)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(201).JSON(event)
	}
}

func listActiveEvents(eventService *services.EventService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		events, err := eventService.ListActive(c.Context())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(events)
	}
}

func listMyEvents(eventService *services.EventService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		events, err := eventService.ListForUser(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(events)
	}
}

func getEvent(eventService *services.EventService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		event, err := eventService.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(event)
	}
}

func advanceEventStatus(eventService *services.EventService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type Req struct {
			Status string `json:"status"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.Status == "" {
			return c.Status(400).JSON(fiber.Map{"error": "status is required"})
		}

		event, err := eventService.AdvanceStatus(c.Context(), c.Params("id"), middleware.UserID(c), req.Status)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(event)
	}
}

func completeEvent(eventService *services.EventService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		event, err := eventService.AdvanceStatus(c.Context(), c.Params("id"), middleware.UserID(c), models.EventStatusCompleted)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(event)
	}
}

func listParticipants(eventService *services.EventService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventID := c.Params("id")
		if _, err := eventService.Get(c.Context(), eventID); err != nil {
			return fail(c, err)
		}
		participants, err := eventService.ParticipantsWithGiftStatus(c.Context(), eventID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(participants)
	}
}

func uploadCoverPhoto(eventService *services.EventService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := c.FormFile("cover_photo")
		if err != nil || file.Size == 0 {
			return c.Status(400).JSON(fiber.Map{"error": "cover_photo file is required"})
		}

		url, err := eventService.SetCoverPhoto(c.Context(), c.Params("id"), middleware.UserID(c), file)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"cover_photo_url": url})
	}
}
