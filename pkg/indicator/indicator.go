package indicator

import "context"

// Indicator is a device that shows the current phase as a color.
type Indicator interface {
	// Name returns the backend identifier.
	Name() string

	// Configure prepares the device and shows the initial color. It is
	// called once at startup.
	Configure(ctx context.Context, initial Color) error

	// SetColor changes the shown color.
	SetColor(ctx context.Context, c Color) error

	// Close releases the device.
	Close() error
}
