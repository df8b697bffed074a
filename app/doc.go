// Package app assembles the GradLink client: configuration, logging,
// storage, the API client, the session store and its bootstrapper, the
// identity refresh controller, and the route guard, with a uniform
// startup/shutdown lifecycle.
//
//	a, err := app.New(cfg)
//	if err != nil { ... }
//	if err := a.Start(ctx); err != nil { ... }
//	defer a.Shutdown(ctx)
package app
