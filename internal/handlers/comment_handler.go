package handlers

import (
	"github.com/KDAtkins/infrastructure/internal/middleware"
	"github.com/KDAtkins/infrastructure/internal/models"
	"github.com/KDAtkins/infrastructure/internal/services"
	"github.com/KDAtkins/infrastructure/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CommentHandler handles HTTP requests for comments.
type CommentHandler struct {
	service  *services.CommentService
	profiles *services.ProfileService
	validate *validator.Validate
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(service *services.CommentService, profiles *services.ProfileService) *CommentHandler {
	return &CommentHandler{
		service:  service,
		profiles: profiles,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the comment routes.
func (h *CommentHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	commentRoutes := router.Group("/comment")
	commentRoutes.Get("/", h.HandleGetComments)
	commentRoutes.Get("/:id", h.HandleGetCommentByID)
	commentRoutes.Post("/", auth, h.HandleCreateComment)
	commentRoutes.Delete("/:id", auth, h.HandleDeleteComment)
}

// HandleGetComments lists comments, optionally for one report or one author.
func (h *CommentHandler) HandleGetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var (
		comments []models.Comment
		err      error
	)
	switch {
	case c.Query("reportId") != "":
		reportID, perr := validation.Identifier("reportId", c.Query("reportId"))
		if perr != nil {
			return respondError(c, perr)
		}
		comments, err = h.service.ListByReport(ctx, reportID)
	case c.Query("profileId") != "":
		profileID, perr := validation.Identifier("profileId", c.Query("profileId"))
		if perr != nil {
			return respondError(c, perr)
		}
		comments, err = h.service.ListByProfile(ctx, profileID)
	default:
		comments, err = h.service.ListComments(ctx)
	}
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Comments found.", comments)
}

func (h *CommentHandler) HandleGetCommentByID(c *fiber.Ctx) error {
	id, err := idParam(c, "commentId")
	if err != nil {
		return respondError(c, err)
	}
	comment, err := h.service.GetComment(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Comment found.", comment)
}

// CreateCommentRequest represents the request body for a new comment. The
// author is always the signed-in profile.
type CreateCommentRequest struct {
	ReportID string `json:"commentReportId" validate:"required"`
	Content  string `json:"commentContent" validate:"required"`
}

func (h *CommentHandler) HandleCreateComment(c *fiber.Ctx) error {
	author, ok := middleware.ProfileID(c)
	if !ok {
		return respond(c, fiber.StatusUnauthorized, "You must be signed in to do this.", nil)
	}

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	comment, err := h.service.CreateComment(c.UserContext(), author, models.CommentInput{
		ReportID: req.ReportID,
		Content:  req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "Comment created OK.", comment)
}

// HandleDeleteComment removes a comment; only its author or an administrator
// may.
func (h *CommentHandler) HandleDeleteComment(c *fiber.Ctx) error {
	id, err := idParam(c, "commentId")
	if err != nil {
		return respondError(c, err)
	}
	actor, ok := middleware.ProfileID(c)
	if !ok {
		return respond(c, fiber.StatusUnauthorized, "You must be signed in to do this.", nil)
	}
	profile, err := h.profiles.GetProfile(c.UserContext(), actor)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.DeleteComment(c.UserContext(), actor, profile.IsAdmin, id); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Comment deleted OK.", nil)
}
