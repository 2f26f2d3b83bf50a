package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a lifecycle-managed piece of infrastructure, such as an
// HTTP client bound to one upstream.
type Component interface {
	// Name returns the unique name of the component for registration.
	Name() string

	// Start initializes the component.
	Start(ctx context.Context) error

	// Stop releases the component's resources.
	Stop(ctx context.Context) error

	// Health returns the current health status of the component.
	Health(ctx context.Context) Health
}

// Description summarises a component for startup output.
type Description struct {
	// Name is the display name. Empty means Component.Name().
	Name string
	// Type categorizes the component, e.g. "http-client".
	Type string
	// Details is a one-line configuration summary.
	Details string
}

// Describable is optionally implemented by components that can describe
// themselves.
type Describable interface {
	Describe() Description
}
