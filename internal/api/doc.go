// Package api exposes the schedule service over HTTP.
//
// Handlers decode and validate JSON payloads, take the user from the
// context set by middleware.AuthMiddleware and translate service errors
// into status codes with HandleAPIError. Error bodies carry only a safe
// message and the request's trace ID; details go to the log, redacted.
//
// Routes (mounted by cmd/server):
//
//	PUT  /api/subjects/{id}
//	GET  /api/subjects
//	POST /api/plans
//	GET  /api/plans/latest
//	POST /api/plans/{id}/reschedule
//	POST /api/plans/{id}/tasks/{taskID}/complete
//	GET  /api/reviews
//	POST /api/schedule/preview
package api
