package usbbutton

import (
	"time"

	"github.com/ogulcanaydogan/tomatina/pkg/indicator"
)

// USB identifiers and control-transfer parameters of the button.
const (
	VendorID  = 0xD209
	ProductID = 0x1200

	requestType = 0x21
	request     = 9
	value       = 0x0200
	iface       = 0

	// Timeout bounds every control transfer.
	Timeout = 2 * time.Second

	frameSize = 64
	chunkSize = 4
)

// Action selects which key sequences the button emits.
type Action uint8

const (
	ActionAlternate Action = 0
	ActionExtended  Action = 1
	ActionBoth      Action = 2
)

// HID usage codes used in the key sequences.
const (
	keyT        = 0x17
	keyU        = 0x18
	keyCtrlLeft = 0x70
	keyAltLeft  = 0x72
	keyCmdLeft  = 0x73
)

// Frame offsets.
const (
	offsetAction    = 2
	offsetReleased  = 4
	offsetPressed   = 7
	offsetPrimary   = 10
	offsetSecondary = 34
)

// ConfigFrame builds the configuration frame: both key sequences enabled,
// Ctrl+Alt+Cmd+T as the primary sequence and Ctrl+Alt+Cmd+U as the
// secondary, with the given released and pressed LED colors.
func ConfigFrame(released, pressed indicator.Color) [frameSize]byte {
	var buf [frameSize]byte

	buf[0] = 0x50
	buf[1] = 0xdd
	buf[offsetAction] = byte(ActionBoth)

	putColor(buf[offsetReleased:], released)
	putColor(buf[offsetPressed:], pressed)

	copy(buf[offsetPrimary:], []byte{keyCtrlLeft, keyAltLeft, keyCmdLeft, keyT})
	copy(buf[offsetSecondary:], []byte{keyCtrlLeft, keyAltLeft, keyCmdLeft, keyU})

	return buf
}

// ColorPacket builds the packet that changes the LED color immediately.
func ColorPacket(c indicator.Color) [chunkSize]byte {
	return [chunkSize]byte{1, c.R, c.G, c.B}
}

func putColor(dst []byte, c indicator.Color) {
	dst[0], dst[1], dst[2] = c.R, c.G, c.B
}
