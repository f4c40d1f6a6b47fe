package domain

import "time"

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetAPIBaseURL() string
	GetHTTPTimeout() time.Duration
	GetLogLevel() string
	GetStateDir() string
}

// NotificationKind classifies a transient user-facing message.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notifier is a fire-and-forget transient-message display. Every workflow
// action reports its outcome through it.
type Notifier interface {
	Show(message string, kind NotificationKind)
}

// Application routes used by views when handing control back to the shell.
const (
	RouteLogin     = "/login"
	RouteRegister  = "/register"
	RouteDashboard = "/dashboard"
)

// Navigator switches the active screen. Route decisions stay thin; the
// backend remains the sole authorization enforcer.
type Navigator interface {
	Navigate(route string)
}
