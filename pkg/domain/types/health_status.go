package types

import "fmt"

// HealthStatus is the readiness reported by the generation backend
type HealthStatus string

const (
	HealthStatusNotReady HealthStatus = "not_ready"
	HealthStatusLoading  HealthStatus = "loading"
	HealthStatusOK       HealthStatus = "ok"
	HealthStatusNoSlot   HealthStatus = "no_slot_available"
)

// IsValid checks if the health status is valid
func (s HealthStatus) IsValid() bool {
	switch s {
	case HealthStatusNotReady,
		HealthStatusLoading,
		HealthStatusOK,
		HealthStatusNoSlot:
		return true
	default:
		return false
	}
}

// IsReady reports whether the backend can accept requests. A server with
// no free slot is up and will queue the request.
func (s HealthStatus) IsReady() bool {
	return s == HealthStatusOK || s == HealthStatusNoSlot
}

// String returns the string representation of the health status
func (s HealthStatus) String() string {
	return string(s)
}

// ParseHealthStatus parses a string into a HealthStatus
func ParseHealthStatus(s string) (HealthStatus, error) {
	status := HealthStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid health status: %s", s)
	}
	return status, nil
}
