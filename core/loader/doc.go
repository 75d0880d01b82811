// Package loader provides the plugin-like feature loading system.
//
// Each feature (lookup, translate, export, integrity) implements the Feature
// interface and mounts its own routes.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager holds the registry of features. Register adds one and LoadAll
// loads every enabled feature in registration order.
package loader
