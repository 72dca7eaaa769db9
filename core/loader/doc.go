// Package loader registers the HTTP features of the service.
//
// A feature owns a route group and is wired in cmd/start.go:
//
//	mgr := loader.NewManager()
//	mgr.Register(syncer.NewFeature(orchestrator, limiter.Handler()))
//	mgr.Register(mapping.NewFeature(mappings))
//	if err := mgr.LoadAll(app); err != nil {
//	    log.Fatal(err)
//	}
//
// LoadAll skips features whose IsEnabled returns false and stops at the first
// Load error, naming the feature that failed.
package loader
