package model

// Health is the outcome of the latest health check of the prediction service.
type Health string

const (
	Unknown   Health = "unknown"
	Healthy   Health = "healthy"
	Unhealthy Health = "unhealthy"
	Offline   Health = "offline"
)

// Status is the lifecycle of a single request slot.
type Status string

const (
	Idle    Status = "idle"
	Loading Status = "loading"
	Success Status = "success"
	Failure Status = "failure"
)
