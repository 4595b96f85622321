package handlers

import (
	"errors"
	"strings"

	"github.com/KDAtkins/infrastructure/internal/metrics"
	"github.com/KDAtkins/infrastructure/internal/middleware"
	"github.com/KDAtkins/infrastructure/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

// AuthHandler handles sign-in, sign-up, activation and sign-out.
type AuthHandler struct {
	authService    *services.AuthService
	profileService *services.ProfileService
	sessions       *session.Store
	validate       *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, profileService *services.ProfileService, sessions *session.Store) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		profileService: profileService,
		sessions:       sessions,
		validate:       newValidator(),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/session", h.HandleSession)
	router.Post("/sign-in", h.HandleSignIn)
	router.Post("/sign-up", h.HandleSignUp)
	router.Get("/activation/:token", h.HandleActivation)
	router.Post("/sign-out", h.HandleSignOut)
}

// HandleSession hands out the anti-forgery token. The CSRF middleware has
// already set it as the XSRF-TOKEN cookie.
func (h *AuthHandler) HandleSession(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, "Session ready.", fiber.Map{
		"csrfToken": middleware.CSRFToken(c),
	})
}

// SignInRequest represents the request body for sign-in.
type SignInRequest struct {
	Email    string `json:"profileEmail"`
	Password string `json:"profilePassword"`
}

// HandleSignIn verifies the credentials, rotates the session id and issues a
// token bound to the new session.
func (h *AuthHandler) HandleSignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if strings.TrimSpace(req.Email) == "" {
		return respond(c, fiber.StatusUnauthorized, "You must enter an email address.", nil)
	}
	if req.Password == "" {
		return respond(c, fiber.StatusUnauthorized, "You must enter a password.", nil)
	}

	principal, err := h.authService.Verify(c.UserContext(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound), errors.Is(err, services.ErrInvalidCredentials):
			metrics.SignInOutcomes.WithLabelValues("rejected").Inc()
		case errors.Is(err, services.ErrAccountNotActivated):
			metrics.SignInOutcomes.WithLabelValues("not_activated").Inc()
		default:
			metrics.SignInOutcomes.WithLabelValues("error").Inc()
		}
		return respondError(c, err)
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := sess.Regenerate(); err != nil {
		return respondError(c, err)
	}
	sess.Set(middleware.SessionProfileID, principal.ProfileID.String())
	sess.Set(middleware.SessionProfileUsername, principal.Username)

	token, err := h.authService.IssueToken(*principal, sess.ID())
	if err != nil {
		return respondError(c, err)
	}
	if err := sess.Save(); err != nil {
		return respondError(c, err)
	}

	metrics.SignInOutcomes.WithLabelValues("success").Inc()
	zap.L().Info("profile signed in", zap.String("profile_id", principal.ProfileID.String()))

	c.Set(middleware.JWTHeader, token)
	return c.JSON(fiber.Map{
		"status":    fiber.StatusOK,
		"message":   "Sign in was successful.",
		"authToken": token,
	})
}

// SignUpRequest represents the request body for sign-up.
type SignUpRequest struct {
	Username        string `json:"profileUsername" validate:"required"`
	Email           string `json:"profileEmail" validate:"required"`
	Password        string `json:"profilePassword" validate:"required"`
	PasswordConfirm string `json:"profilePasswordConfirm" validate:"required"`
}

// HandleSignUp creates an inactive profile.
func (h *AuthHandler) HandleSignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	profile, err := h.profileService.SignUp(c.UserContext(), services.SignUpInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusCreated,
		"Thank you for signing up. Please check your email to activate your account.", profile)
}

// HandleActivation clears the activation token named in the link.
func (h *AuthHandler) HandleActivation(c *fiber.Ctx) error {
	if err := h.profileService.Activate(c.UserContext(), c.Params("token")); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Your account has been activated. You may now sign in.", nil)
}

// HandleSignOut destroys the server-side session, which voids every token
// issued with it.
func (h *AuthHandler) HandleSignOut(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := sess.Destroy(); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "You have been signed out.", nil)
}
