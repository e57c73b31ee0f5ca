package admin

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/beInDev/vaultmp/core/logger"
	"github.com/beInDev/vaultmp/core/world"
)

// Handler handles HTTP requests for the admin API.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the admin routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/status", h.HandleStatus)
	app.Get("/players", h.HandlePlayers)
	app.Get("/entities/:id", h.HandleEntity)
	app.Get("/defaults", h.HandleGetDefaults)
	app.Put("/defaults", h.HandlePutDefaults)
	app.Get("/globals", h.HandleGetGlobals)
	app.Put("/globals", h.HandlePutGlobals)
	app.Get("/events", h.HandleEvents)

	group := app.Group("/records")
	group.Post("/reload", h.HandleReloadRecords)
	group.Get("/schema", h.HandleSchema)
}

func errorJSON(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandleStatus returns the server counts.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// HandlePlayers lists connected players.
func (h *Handler) HandlePlayers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"players": h.service.Players()})
}

// HandleEntity returns one entity by network id.
func (h *Handler) HandleEntity(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	obj, err := h.service.Entity(world.NetworkID(id))
	if errors.Is(err, world.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, err)
	}
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(obj)
}

// HandleGetDefaults returns the player defaults.
func (h *Handler) HandleGetDefaults(c *fiber.Ctx) error {
	return c.JSON(h.service.Defaults())
}

// HandlePutDefaults updates the player defaults.
func (h *Handler) HandlePutDefaults(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var u DefaultsUpdate
	if err := c.BodyParser(&u); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	view, err := h.service.UpdateDefaults(u)
	if err != nil {
		l.Warn("Defaults update rejected", zap.Error(err))
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	return c.JSON(view)
}

// HandleGetGlobals returns the world globals.
func (h *Handler) HandleGetGlobals(c *fiber.Ctx) error {
	return c.JSON(h.service.Globals())
}

// HandlePutGlobals updates the world globals.
func (h *Handler) HandlePutGlobals(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var u GlobalsUpdate
	if err := c.BodyParser(&u); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	view, err := h.service.UpdateGlobals(u)
	if err != nil {
		l.Warn("Globals update rejected", zap.Error(err))
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	return c.JSON(view)
}

// HandleEvents returns recent script events.
func (h *Handler) HandleEvents(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"events": h.service.Events(c.Query("kind"))})
}

// HandleReloadRecords reloads the record table.
func (h *Handler) HandleReloadRecords(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	stats, err := h.service.ReloadRecords(c.Context())
	if errors.Is(err, ErrNoDatabase) {
		return errorJSON(c, fiber.StatusServiceUnavailable, err)
	}
	if err != nil {
		l.Error("Record reload failed", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"status": "reloaded", "records": stats})
}

// HandleSchema checks the record database schema.
func (h *Handler) HandleSchema(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if errors.Is(err, ErrNoDatabase) {
		return errorJSON(c, fiber.StatusServiceUnavailable, err)
	}
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(report)
}
