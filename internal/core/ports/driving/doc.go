// Package driving provides interfaces for application entry points
// (primary/inbound ports). The CLI and TUI depend on these; the core
// services implement them.
package driving
