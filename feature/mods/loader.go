package mods

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/beInDev/vaultmp/core/storage"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new mods feature.
func NewFeature(client storage.Client, bucket, prefix string, logger *zap.Logger) *Feature {
	svc := NewService(client, bucket, prefix, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Service exposes the mod list to other features.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "mods"
}

// IsEnabled reports whether a storage client is configured.
func (f *Feature) IsEnabled() bool {
	return f.service.client != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
