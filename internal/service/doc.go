// Package service contains the application use cases of the planner. It
// loads subjects and plans from the stores, runs the scheduling engine and
// writes the results back, applying transactional boundaries where an
// operation touches more than one row.
//
// The service depends on the store interfaces, never on a specific
// database, and translates store failures into ServiceError values that the
// API layer maps to HTTP statuses.
package service
