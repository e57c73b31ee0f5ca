package mods

import (
	"bytes"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/beInDev/vaultmp/core/logger"
)

// Handler handles HTTP requests for mods.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the mod routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/mods")
	group.Get("/", h.HandleList)
	group.Post("/refresh", h.HandleRefresh)
	group.Get("/:name", h.HandleDownload)
	group.Put("/:name", h.HandleUpload)
	group.Delete("/:name", h.HandleDelete)
}

func modName(c *fiber.Ctx) string {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return ""
	}
	return name
}

func statusFor(err error) int {
	if errors.Is(err, ErrInvalidName) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// HandleList returns the cached mod list.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"mods": h.service.Mods()})
}

// HandleRefresh lists the bucket again.
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	mods, err := h.service.Refresh(c.Context())
	if err != nil {
		l.Error("Mod refresh failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "refreshed", "mods": mods})
}

// HandleDownload streams one mod file.
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	r, err := h.service.Open(c.Context(), modName(c))
	if err != nil {
		l.Warn("Mod download failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.SendStream(r)
}

// HandleUpload publishes the request body as a mod file.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	body := c.Body()
	mod, err := h.service.Publish(c.Context(), modName(c), bytes.NewReader(body), int64(len(body)))
	if err != nil {
		l.Error("Mod upload failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(mod)
}

// HandleDelete removes one mod file.
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.Remove(c.Context(), modName(c)); err != nil {
		l.Error("Mod removal failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "removed"})
}
