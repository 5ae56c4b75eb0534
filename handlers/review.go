package handlers

import (
	"github.com/gofiber/fiber/v2"

	"gift-exchange-system/middleware"
	"gift-exchange-system/services"
	"gift-exchange-system/utils"
)

// SetupReviewRoutes registers review creation, the anonymized event feed,
// and owner-only edits.
func SetupReviewRoutes(app *fiber.App, reviewService *services.ReviewService, tokens *utils.TokenManager) {
	auth := middleware.UserContextMiddleware(tokens)

	app.Post("/gifts/:id/reviews", auth, createReview(reviewService))
	app.Get("/events/:id/reviews", auth, listEventReviews(reviewService))
	app.Get("/users/me/reviews", auth, listUserReviews(reviewService))

	reviews := app.Group("/reviews", auth)
	reviews.Put("/:id", updateReview(reviewService))
	reviews.Delete("/:id", deleteReview(reviewService))
}

func createReview(reviewService *services.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type Req struct {
			Content string `json:"content"`
			Rating  int    `json:"rating"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.Content == "" {
			return c.Status(400).JSON(fiber.Map{"error": "content is required"})
		}

		review, err := reviewService.Create(c.Context(), c.Params("id"), middleware.UserID(c), req.Content, req.Rating)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(201).JSON(review)
	}
}

func listEventReviews(reviewService *services.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reviews, err := reviewService.ForEvent(c.Context(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(reviews)
	}
}

func listUserReviews(reviewService *services.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reviews, err := reviewService.ForUser(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(reviews)
	}
}

func updateReview(reviewService *services.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type Req struct {
			Content string `json:"content"`
			Rating  int    `json:"rating"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
		}

		if err := reviewService.Update(c.Context(), c.Params("id"), middleware.UserID(c), req.Content, req.Rating); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"message": "review updated"})
	}
}

func deleteReview(reviewService *services.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := reviewService.Delete(c.Context(), c.Params("id"), middleware.UserID(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"message": "review deleted"})
	}
}
