package mapping

import (
	"errors"

	"library-sync/core/logger"
	"library-sync/core/middleware/auth"
	"library-sync/feature/platform"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for title mappings.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// CreateRequest is the body of POST /sync/mappings.
type CreateRequest struct {
	Platform      string `json:"platform"`
	OriginalTitle string `json:"original_title"`
	GameID        string `json:"game_id"`
}

// RegisterRoutes registers the mapping routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync/mappings")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Delete("/", h.HandleDelete)
}

// HandleList lists title mappings.
// @Summary List Title Mappings
// @Description Lists operator title mappings, optionally filtered by platform.
// @Tags mappings
// @Produce json
// @Param platform query string false "Platform filter"
// @Success 200 {array} TitleMapping
// @Failure 400 {object} map[string]string "Unknown platform"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/mappings [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	var p string
	if raw := c.Query("platform"); raw != "" {
		parsed, err := platform.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		p = parsed.String()
	}

	mappings, err := h.service.List(c.Context(), p)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to list mappings", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(mappings)
}

// HandleCreate creates or repoints a title mapping.
// @Summary Create Title Mapping
// @Description Maps a platform's raw title to a canonical game. Mappings win over every automatic match.
// @Tags mappings
// @Accept json
// @Produce json
// @Param mapping body CreateRequest true "Mapping"
// @Success 201 {object} TitleMapping
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Game not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/mappings [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	p, err := platform.Parse(req.Platform)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	m, err := h.service.Create(c.Context(), p.String(), req.OriginalTitle, req.GameID, auth.UserID(c))
	switch {
	case errors.Is(err, ErrInvalidMapping):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrGameNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		logger.WithRayID(h.logger, c).Error("Failed to create mapping", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// HandleDelete removes a title mapping.
// @Summary Delete Title Mapping
// @Description Removes the mapping for a platform and raw title.
// @Tags mappings
// @Produce json
// @Param platform query string true "Platform"
// @Param title query string true "Original title"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 400 {object} map[string]string "Unknown platform"
// @Failure 404 {object} map[string]string "Mapping not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/mappings [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	p, err := platform.Parse(c.Query("platform"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	title := c.Query("title")
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	err = h.service.Delete(c.Context(), p.String(), title)
	switch {
	case errors.Is(err, ErrMappingNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		logger.WithRayID(h.logger, c).Error("Failed to delete mapping", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
