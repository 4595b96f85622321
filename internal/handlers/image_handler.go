package handlers

import (
	"github.com/KDAtkins/infrastructure/internal/models"
	"github.com/KDAtkins/infrastructure/internal/services"
	"github.com/KDAtkins/infrastructure/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ImageHandler handles HTTP requests for report images.
type ImageHandler struct {
	service  *services.ImageService
	validate *validator.Validate
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(service *services.ImageService) *ImageHandler {
	return &ImageHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the image routes. Photos are attached by the
// submitting citizen; removal takes an administrator.
func (h *ImageHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	imageRoutes := router.Group("/image")
	imageRoutes.Get("/", h.HandleGetImages)
	imageRoutes.Get("/:id", h.HandleGetImageByID)
	imageRoutes.Post("/", h.HandleCreateImage)
	imageRoutes.Delete("/:id", auth, admin, h.HandleDeleteImage)
}

func (h *ImageHandler) HandleGetImages(c *fiber.Ctx) error {
	var (
		images []services.ImageView
		err    error
	)
	if raw := c.Query("reportId"); raw != "" {
		reportID, perr := validation.Identifier("reportId", raw)
		if perr != nil {
			return respondError(c, perr)
		}
		images, err = h.service.ListByReport(c.UserContext(), reportID)
	} else {
		images, err = h.service.ListImages(c.UserContext())
	}
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Images found.", images)
}

func (h *ImageHandler) HandleGetImageByID(c *fiber.Ctx) error {
	id, err := idParam(c, "imageId")
	if err != nil {
		return respondError(c, err)
	}
	image, err := h.service.GetImage(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Image found.", image)
}

// CreateImageRequest records a photo already uploaded to the media host.
type CreateImageRequest struct {
	ReportID string   `json:"imageReportId" validate:"required"`
	MediaRef string   `json:"imageCloudinaryId" validate:"required"`
	Lat      *float64 `json:"imageLat"`
	Long     *float64 `json:"imageLong"`
}

func (h *ImageHandler) HandleCreateImage(c *fiber.Ctx) error {
	var req CreateImageRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	image, err := h.service.CreateImage(c.UserContext(), models.ImageInput{
		ReportID: req.ReportID,
		MediaRef: req.MediaRef,
		Lat:      req.Lat,
		Long:     req.Long,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "Image created OK.", image)
}

func (h *ImageHandler) HandleDeleteImage(c *fiber.Ctx) error {
	id, err := idParam(c, "imageId")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteImage(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Image deleted OK.", nil)
}
