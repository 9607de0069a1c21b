// Package handlers provides HTTP handlers for the rosterd server.
//
// Each handler is in its own file and implements http.Handler.
// Handlers use interfaces to access server dependencies, avoiding
// circular imports.
package handlers

import (
	"time"

	"github.com/mergington/rosterd/audit"
	"github.com/mergington/rosterd/config"
	"github.com/mergington/rosterd/registry"
)

// ActivityRegistry exposes the roster operations the handlers need.
type ActivityRegistry interface {
	List() map[string]registry.Activity
	Signup(name, email string) error
	Unregister(name, email string) error
}

// Recorder receives the outcome of roster requests for the audit log
// and metrics.
type Recorder interface {
	RosterChanged(action audit.Action, activity, email string)
	RequestRejected(reason string)
}

// ConfigProvider provides access to the current configuration.
type ConfigProvider interface {
	Config() *config.Config
}

// Reloader can reload its configuration.
type Reloader interface {
	Reload() error
}

// EventsProvider provides access to recorded roster change events.
type EventsProvider interface {
	Events() []audit.Event
}

// StatusProvider aggregates the server state needed for the status endpoint.
type StatusProvider interface {
	Stats() (activities, participants int)
	StartedAt() time.Time
	Hostname() string
	NextPush() *time.Time
}
