// Package health provides liveness and readiness HTTP handlers.
//
// Checks run concurrently with a shared timeout:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "routes": routesCompiled,
//	}, health.WithTimeout(2*time.Second)))
//
// Responses are plain text ("OK" or "Service Unavailable") unless the client
// asks for JSON with Accept: application/json or ?format=json.
package health
