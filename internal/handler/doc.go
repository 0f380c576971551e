// Package handler implements the HTTP endpoint that generates question papers.
// It decodes the request, runs the allocator against the shared pool, maps
// validation and allocation failures to client errors, and emits metrics.
package handler
