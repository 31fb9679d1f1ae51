// Package health provides liveness and readiness probes for the gateway.
//
// Liveness (/health by default) only reports that the process is serving.
// Readiness (/ready by default) runs the registered checks concurrently,
// each under its own timeout, and answers 503 if any of them fails:
//
//   - RoutesCheck: the service table is not empty
//   - RuntimeCheck: the local inference runtime answers (registered only
//     when a local inference service exists)
//   - CredentialsCheck: every passthrough credential resolves
//
// During graceful shutdown the server calls SetDraining(true); readiness then
// fails immediately so load balancers drain the instance while in-flight
// requests complete.
//
// Usage:
//
//	checker := health.New(5 * time.Second)
//	checker.RegisterCheck("routes", health.RoutesCheck(reg))
//	checker.Register(mux, cfg.Telemetry.Health)
package health
