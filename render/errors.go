package render

import "errors"

// Package errors for the render layer.
var (
	// ErrContextLost is returned after a graphics-device loss. It is
	// recoverable: the host rebuilds the device and calls Recover, then
	// regenerates geometry.
	ErrContextLost = errors.New("render: graphics device context lost")

	// ErrDisposed is returned when a handle is used after disposal.
	ErrDisposed = errors.New("render: handle already disposed")

	// ErrNilEntity is returned when BuildOrUpdate receives nothing to
	// build.
	ErrNilEntity = errors.New("render: nil entity")

	// ErrEmptyGeometry is returned when an entity produces no
	// renderable vertices.
	ErrEmptyGeometry = errors.New("render: entity has no geometry")
)
