// Package inspect serves a read-only HTTP view of a di.Registry.
//
// Routes:
//
//	GET /health                         registry status and instance count
//	GET /registrations                  every cached instance in construction order
//	GET /registrations/lookup?type=...  one instance by type name
//	GET /version                        build information
//
// Errors use the errors.AppError response envelope and status code.
package inspect
