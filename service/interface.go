// Package service defines the lifecycle shared by long-lived input backends.
package service

// Service is a backend that owns an external resource (a terminal screen, an
// input device) and runs its own event loop.
//
// Lifecycle:
//  1. Construction
//  2. Init(args...) - attach handlers and acquire the resource
//  3. Start() - launch the event loop goroutine
//  4. [events flow to the handler]
//  5. Stop() - end the loop and release the resource
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	Dependencies() []string

	// Init configures the service. Args are service specific: handlers,
	// pre-built screens or devices.
	Init(args ...any) error

	// Start begins delivering events
	Start() error

	// Stop halts delivery and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}
