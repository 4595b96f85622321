package handlers

import (
	"github.com/KDAtkins/infrastructure/internal/middleware"
	"github.com/KDAtkins/infrastructure/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles HTTP requests for profiles.
type ProfileHandler struct {
	service  *services.ProfileService
	validate *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the profile routes.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Get("/:id", h.HandleGetProfile)
	profileRoutes.Put("/:id/password", auth, h.HandleResetPassword)
}

// HandleGetProfile returns the public fields of a profile.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	id, err := idParam(c, "profileId")
	if err != nil {
		return respondError(c, err)
	}
	profile, err := h.service.GetProfile(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Profile found.", fiber.Map{
		"profileId":       profile.ID,
		"profileUsername": profile.Username,
		"profileIsAdmin":  profile.IsAdmin,
	})
}

// PasswordResetRequest represents the request body for a password change.
type PasswordResetRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// HandleResetPassword lets a signed-in profile change its own password.
func (h *ProfileHandler) HandleResetPassword(c *fiber.Ctx) error {
	id, err := idParam(c, "profileId")
	if err != nil {
		return respondError(c, err)
	}
	if current, ok := middleware.ProfileID(c); !ok || current != id {
		return respond(c, fiber.StatusForbidden, "You may only change your own password.", nil)
	}

	var req PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.ResetPassword(c.UserContext(), id, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Your password has been changed.", nil)
}
