package ribbon

import "errors"

// Curve errors.
var (
	// ErrOutOfRange is returned by SetPoints when fewer than two points are
	// supplied.
	ErrOutOfRange = errors.New("ribbon: curve point count out of range")

	// ErrTooManyPoints is returned by SetPoints when the curve cannot be
	// addressed with 16-bit indices.
	ErrTooManyPoints = errors.New("ribbon: too many curve points")

	// ErrDestroyed is returned when a destroyed curve is used.
	ErrDestroyed = errors.New("ribbon: curve destroyed")
)

// Construction errors.
var (
	ErrNilDevice   = errors.New("ribbon: host device is nil")
	ErrNilViewport = errors.New("ribbon: host viewport is nil")
	ErrNilSurface  = errors.New("ribbon: host surface is nil")
	ErrNoPass      = errors.New("ribbon: material has no render pass")
)
