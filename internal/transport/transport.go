// Package transport implements the wire-level transports that carry
// Modbus TCP traffic between a Client and a device: a real TCP transport
// with transaction-id demultiplexing, and an in-memory emulated transport
// for tests that never touch a socket.
package transport

import (
	"github.com/GoAethereal/cancel"

	"github.com/bennjii/labjack/internal/modbus"
)

// Transport is the seam between the Client and whatever carries Modbus TCP
// frames: a live socket (TCP) or an in-memory double (Emulated). Every
// method composes its own request via the modbus package and returns
// already-validated, already-decoded results.
type Transport interface {
	// ReadRegister performs a Read(reg) round trip.
	ReadRegister(ctx cancel.Context, reg modbus.Register) (modbus.DataValue, error)
	// WriteRegister performs a Write(reg, value) round trip.
	WriteRegister(ctx cancel.Context, reg modbus.Register, value modbus.DataValue) error
	// Feedback performs a single Feedback([]frame) round trip, returning one
	// decoded DataValue per read frame in req.Frames, in order.
	Feedback(ctx cancel.Context, req modbus.FeedbackReq) ([]modbus.DataValue, error)
	// Close releases any underlying resources (sockets, goroutines).
	Close() error
}
