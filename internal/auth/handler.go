package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/monez-app/monez/internal/user"
)

// Handler exposes registration and session endpoints.
type Handler struct {
	users   *user.Service
	service *Service
}

// NewHandler constructs an auth handler.
func NewHandler(users *user.Service, service *Service) *Handler {
	return &Handler{users: users, service: service}
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Locale   string `json:"locale"`
}

// Register creates a new account and issues a token pair.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	u, err := h.users.Register(c.UserContext(), user.Credentials{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Locale:   req.Locale,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return fiber.NewError(http.StatusConflict, "email already registered")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	tokens, err := h.service.Login(u)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user_id":  u.ID,
		"email":    u.Email,
		"currency": u.Currency,
		"tokens":   tokens,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a token pair.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	u, err := h.users.Authenticate(c.UserContext(), user.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	tokens, err := h.service.Login(u)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"user_id": u.ID, "tokens": tokens})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh exchanges a refresh token for a new access token.
func (h *Handler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	access, expiresIn, err := h.service.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}

	return c.JSON(fiber.Map{"access_token": access, "expires_in": expiresIn})
}

// Logout invalidates all outstanding tokens for the authenticated user.
func (h *Handler) Logout(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return c.SendStatus(http.StatusUnauthorized)
	}
	if err := h.service.Logout(c.UserContext(), uid); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(http.StatusNoContent)
}
