package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/models"
	"stockroom/internal/services"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes wires the authentication routes. Everything except logout is
// public; logout needs the token it is about to revoke.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
	router.Post("/token", h.HandleToken)
	router.Post("/token/refresh", h.HandleTokenRefresh)
	router.Post("/token/verify", h.HandleTokenVerify)
	router.Post("/logout", auth, h.HandleLogout)
}

// RegisterRequest is the write shape for a new account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a credential pair.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, map[string]string{"body": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessages(err))
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := h.authService.RegisterUser(&user); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// HandleLogin authenticates a credential pair and returns the user summary
// along with a fresh token pair.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, map[string]string{"body": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessages(err))
	}

	user, pair, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid credentials",
			})
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
		"access":  pair.Access,
		"refresh": pair.Refresh,
	})
}

// HandleLogout revokes the access token presented on this request.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	tokenString, _ := c.Locals("token").(string)
	if err := h.authService.Logout(tokenString); err != nil {
		log.Printf("Logout failed: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid or expired token",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Logout successful",
	})
}

// HandleToken issues an access/refresh pair for a credential pair, embedding
// a short user summary in the payload.
func (h *AuthHandler) HandleToken(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, map[string]string{"body": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessages(err))
	}

	user, pair, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "No active account found with the given credentials",
			})
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"access":  pair.Access,
		"refresh": pair.Refresh,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// HandleTokenRefresh exchanges a refresh token for a new access token.
func (h *AuthHandler) HandleTokenRefresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, map[string]string{"body": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessages(err))
	}

	access, err := h.authService.Refresh(req.Refresh)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Token is invalid or expired",
		})
	}
	return c.JSON(fiber.Map{
		"access": access,
	})
}

// VerifyRequest carries a token of either type.
type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

// HandleTokenVerify reports whether a token is currently valid.
func (h *AuthHandler) HandleTokenVerify(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, map[string]string{"body": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessages(err))
	}

	if err := h.authService.Verify(req.Token); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Token is invalid or expired",
		})
	}
	return c.JSON(fiber.Map{})
}
