package handlers

import (
	"strings"

	"github.com/KDAtkins/infrastructure/internal/models"
	"github.com/KDAtkins/infrastructure/internal/services"
	"github.com/KDAtkins/infrastructure/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles HTTP requests for reports.
type ReportHandler struct {
	service  *services.ReportService
	validate *validator.Validate
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the report routes. Anyone may file and read
// reports; changing or removing one takes an administrator.
func (h *ReportHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	reportRoutes := router.Group("/report")
	reportRoutes.Get("/", h.HandleGetReports)
	reportRoutes.Get("/:id", h.HandleGetReportByID)
	reportRoutes.Post("/", h.HandleCreateReport)
	reportRoutes.Put("/:id", auth, admin, h.HandleUpdateReport)
	reportRoutes.Delete("/:id", auth, admin, h.HandleDeleteReport)
}

// HandleGetReports lists reports, narrowed by at most one of categoryId,
// status, urgency or the from/to pair.
func (h *ReportHandler) HandleGetReports(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var (
		reports []models.Report
		err     error
	)
	switch {
	case c.Query("categoryId") != "":
		categoryID, perr := validation.Identifier("categoryId", c.Query("categoryId"))
		if perr != nil {
			return respondError(c, perr)
		}
		reports, err = h.service.ListByCategory(ctx, categoryID)
	case c.Query("status") != "":
		reports, err = h.service.ListByStatus(ctx, c.Query("status"))
	case c.Query("urgency") != "":
		urgency, perr := intQuery("urgency", c.Query("urgency"))
		if perr != nil {
			return respondError(c, perr)
		}
		reports, err = h.service.ListByUrgency(ctx, urgency)
	case c.Query("from") != "" || c.Query("to") != "":
		from, to := strings.TrimSpace(c.Query("from")), strings.TrimSpace(c.Query("to"))
		if from == "" || to == "" {
			return respond(c, fiber.StatusBadRequest, "Both from and to are required for a date range.", nil)
		}
		start, perr := validation.Timestamp("from", from)
		if perr != nil {
			return respondError(c, perr)
		}
		end, perr := validation.Timestamp("to", to)
		if perr != nil {
			return respondError(c, perr)
		}
		reports, err = h.service.ListByDateRange(ctx, start, end)
	default:
		reports, err = h.service.ListReports(ctx)
	}
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Reports found.", reports)
}

// HandleGetReportByID retrieves a single report.
func (h *ReportHandler) HandleGetReportByID(c *fiber.Ctx) error {
	id, err := idParam(c, "reportId")
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.service.GetReport(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Report found.", report)
}

// CreateReportRequest represents a citizen submission. The address and user
// agent come from the request itself.
type CreateReportRequest struct {
	CategoryID string   `json:"reportCategoryId" validate:"required"`
	Content    string   `json:"reportContent" validate:"required"`
	DateTime   any      `json:"reportDateTime"`
	Lat        *float64 `json:"reportLat" validate:"required"`
	Long       *float64 `json:"reportLong" validate:"required"`
	Status     string   `json:"reportStatus"`
	Urgency    *int     `json:"reportUrgency" validate:"required"`
}

// HandleCreateReport files a new report.
func (h *ReportHandler) HandleCreateReport(c *fiber.Ctx) error {
	var req CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	userAgent := c.Get(fiber.HeaderUserAgent)
	if strings.TrimSpace(userAgent) == "" {
		userAgent = "unknown"
	}

	report, err := h.service.CreateReport(c.UserContext(), models.ReportInput{
		CategoryID: req.CategoryID,
		Content:    req.Content,
		CreatedAt:  req.DateTime,
		IPAddress:  c.IP(),
		Lat:        *req.Lat,
		Long:       *req.Long,
		Status:     req.Status,
		Urgency:    *req.Urgency,
		UserAgent:  userAgent,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "Report created OK.", report)
}

// UpdateReportRequest carries the fields an administrator may change. Absent
// fields are left alone.
type UpdateReportRequest struct {
	CategoryID *string `json:"reportCategoryId"`
	Content    *string `json:"reportContent"`
	DateTime   any     `json:"reportDateTime"`
	Status     *string `json:"reportStatus"`
	Urgency    *int    `json:"reportUrgency"`
}

// HandleUpdateReport changes a report's triage fields.
func (h *ReportHandler) HandleUpdateReport(c *fiber.Ctx) error {
	id, err := idParam(c, "reportId")
	if err != nil {
		return respondError(c, err)
	}
	var req UpdateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	report, err := h.service.UpdateReport(c.UserContext(), id, models.ReportUpdate{
		CategoryID: optionalString(req.CategoryID),
		Content:    req.Content,
		CreatedAt:  req.DateTime,
		Status:     req.Status,
		Urgency:    req.Urgency,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Report updated OK.", report)
}

// HandleDeleteReport removes a report.
func (h *ReportHandler) HandleDeleteReport(c *fiber.Ctx) error {
	id, err := idParam(c, "reportId")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteReport(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Report deleted OK.", nil)
}
