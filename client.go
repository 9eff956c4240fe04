package labjack

import (
	"github.com/GoAethereal/cancel"

	"github.com/bennjii/labjack/internal/modbus"
	"github.com/bennjii/labjack/internal/transport"
)

// Client talks typed registers over a Transport (a live TCP connection or
// the in-process Emulated double) to one LabJackDevice.
type Client struct {
	Device LabJackDevice

	transport transport.Transport
}

// newClient builds a Client around an already-established Transport. Used
// by the facade in labjack.go; tests reach it directly via ConnectWith.
func newClient(device LabJackDevice, t transport.Transport) *Client {
	return &Client{Device: device, transport: t}
}

// Close releases the underlying transport.
func (c *Client) Close() error {
	return c.transport.Close()
}

// ReadRegister performs a raw Read(reg) round trip. reg must implement
// modbus.Readable; the registers package's generated catalog entries do,
// except for write-only registers like DAC0/DAC1, which the compiler
// rejects here.
func (c *Client) ReadRegister(ctx cancel.Context, reg modbus.Readable) (modbus.DataValue, error) {
	return c.transport.ReadRegister(ctx, reg.Register())
}

// WriteRegister performs a raw Write(reg, value) round trip. value.Type()
// must equal reg.Register().DataType; the Compositor rejects a mismatch.
func (c *Client) WriteRegister(ctx cancel.Context, reg modbus.Writable, value modbus.DataValue) error {
	return c.transport.WriteRegister(ctx, reg.Register(), value)
}

// Feedback performs a single Feedback round trip composing the given
// read/write frames, returning one decoded value per read frame in order.
func (c *Client) Feedback(ctx cancel.Context, req modbus.FeedbackReq) ([]modbus.DataValue, error) {
	return c.transport.Feedback(ctx, req)
}

// Read performs a typed analog read: it reads reg's raw voltage and passes
// it through conv to the caller's digital unit. Use IdentityAdc for a raw
// voltage read with no conversion.
func Read[T any](ctx cancel.Context, c *Client, reg modbus.Readable, conv Adc[T]) (T, error) {
	var zero T
	value, err := c.ReadRegister(ctx, reg)
	if err != nil {
		return zero, err
	}
	return conv.ToDigital(value.AsF64()), nil
}

// Write performs a typed analog write: it converts digital through conv
// into a voltage and writes it to reg as an F32. Use IdentityDac for a raw
// voltage write with no conversion.
func Write[T any](ctx cancel.Context, c *Client, reg modbus.Writable, digital T, conv Dac[T]) error {
	voltage := conv.ToVoltage(digital)
	return c.WriteRegister(ctx, reg, modbus.ValueF32(float32(voltage)))
}
