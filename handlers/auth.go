package handlers

import (
	"github.com/gofiber/fiber/v2"

	"gift-exchange-system/middleware"
	"gift-exchange-system/services"
	"gift-exchange-system/utils"
)

// SetupAuthRoutes registers the public sign-up/sign-in endpoints and the
// secured session endpoints.
func SetupAuthRoutes(app *fiber.App, authService *services.AuthService, tokens *utils.TokenManager) {
	app.Post("/auth/signup", signUp(authService))
	app.Post("/auth/signin", signIn(authService))

	secured := app.Group("/auth", middleware.UserContextMiddleware(tokens))
	secured.Get("/me", currentUser(authService))
	secured.Post("/signout", signOut())
}

func signUp(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type Req struct {
			Email      string `json:"email"`
			Password   string `json:"password"`
			Username   string `json:"username"`
			InviteCode string `json:"invite_code"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.Email == "" || req.Password == "" || req.Username == "" || req.InviteCode == "" {
			return c.Status(400).JSON(fiber.Map{"error": "email, password, username, and invite_code are required"})
		}
		if len(req.Password) < 8 {
			return c.Status(400).JSON(fiber.Map{"error": "password must be at least 8 characters"})
		}

		result, err := authService.SignUp(c.Context(), req.Email, req.Password, req.Username, req.InviteCode)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(201).JSON(result)
	}
}

func signIn(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type Req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.Email == "" || req.Password == "" {
			return c.Status(400).JSON(fiber.Map{"error": "email and password are required"})
		}

		result, err := authService.SignIn(c.Context(), req.Email, req.Password)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(result)
	}
}

func currentUser(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := authService.CurrentUser(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(user)
	}
}

// Sessions are stateless tokens; sign-out exists so clients have a uniform
// endpoint to call while discarding the token locally.
func signOut() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "signed out"})
	}
}
