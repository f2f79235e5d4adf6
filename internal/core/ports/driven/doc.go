// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): embedding and generation services, artifact
// stores and run bookkeeping. The core services depend only on these
// interfaces; adapters implement them.
package driven
