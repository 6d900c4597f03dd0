package usbbutton

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/gousb"
	"github.com/ogulcanaydogan/tomatina/pkg/indicator"
)

// ErrDeviceNotFound is returned when no button is attached.
var ErrDeviceNotFound = errors.New("usb button not found")

// Transport issues control transfers to the device.
type Transport interface {
	Control(rType, request uint8, val, idx uint16, data []byte) (int, error)
	Close() error
}

// Button drives the LED of a USB button.
type Button struct {
	transport Transport
}

// New wraps an open transport.
func New(t Transport) *Button {
	return &Button{transport: t}
}

// Open finds the button on the USB bus.
func Open() (*Button, error) {
	usbCtx := gousb.NewContext()
	dev, err := usbCtx.OpenDeviceWithVIDPID(gousb.ID(VendorID), gousb.ID(ProductID))
	if err != nil {
		usbCtx.Close()
		return nil, fmt.Errorf("open usb button: %w", err)
	}
	if dev == nil {
		usbCtx.Close()
		return nil, fmt.Errorf("%w (vid=%04x pid=%04x)", ErrDeviceNotFound, VendorID, ProductID)
	}
	dev.ControlTimeout = Timeout
	return New(&deviceTransport{usbCtx: usbCtx, dev: dev}), nil
}

func (b *Button) Name() string { return "usb" }

// Configure writes the configuration frame with initial as the released
// color and white as the pressed color.
func (b *Button) Configure(ctx context.Context, initial indicator.Color) error {
	frame := ConfigFrame(initial, indicator.White)
	for offset := 0; offset < len(frame); offset += chunkSize {
		if err := b.send(ctx, frame[offset:offset+chunkSize]); err != nil {
			return fmt.Errorf("configure chunk at %d: %w", offset, err)
		}
	}
	return nil
}

func (b *Button) SetColor(ctx context.Context, c indicator.Color) error {
	packet := ColorPacket(c)
	if err := b.send(ctx, packet[:]); err != nil {
		return fmt.Errorf("set color %s: %w", c, err)
	}
	return nil
}

func (b *Button) Close() error {
	return b.transport.Close()
}

func (b *Button) send(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := b.transport.Control(requestType, request, value, iface, data)
	if err != nil {
		return fmt.Errorf("control transfer: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("short control transfer: %d of %d bytes", n, len(data))
	}
	return nil
}

type deviceTransport struct {
	usbCtx *gousb.Context
	dev    *gousb.Device
}

func (t *deviceTransport) Control(rType, request uint8, val, idx uint16, data []byte) (int, error) {
	return t.dev.Control(rType, request, val, idx, data)
}

func (t *deviceTransport) Close() error {
	err := t.dev.Close()
	if ctxErr := t.usbCtx.Close(); err == nil {
		err = ctxErr
	}
	return err
}
