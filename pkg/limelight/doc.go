// Package limelight provides typed accessors over the numeric table published
// by a Limelight vision camera. The Limelight type maps every documented entry
// (tx, ty, ta, ledMode, pipeline, ...) onto a method, and Advanced adds the raw
// per-contour and crosshair entries. Connectivity is delegated to a Table; see
// pkg/table for the adapters that back it with an in-memory store, an HTTP
// bridge, Redis, or a NATS JetStream key/value bucket.
package limelight
