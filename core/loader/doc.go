// Package loader provides the feature loading system of the admin API.
//
// Each feature implements the Feature interface, which names it, reports whether
// it is enabled and registers its routes.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order and loads the enabled ones
// with LoadAll. Game-facing features register on the dispatch Router instead.
package loader
