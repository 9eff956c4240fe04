package transport

import (
	"sync"

	"github.com/GoAethereal/cancel"

	"github.com/bennjii/labjack/internal/modbus"
)

// Emulated is an in-memory Transport double: registers read back whatever
// was last written, or their type's deterministic floating default if never
// written. It never touches a socket, so tests exercising Client logic run
// without a live device.
type Emulated struct {
	mu    sync.Mutex
	store map[uint16]modbus.DataValue
}

var _ Transport = (*Emulated)(nil)

// NewEmulated returns an Emulated transport with an empty register store.
func NewEmulated() *Emulated {
	return &Emulated{store: make(map[uint16]modbus.DataValue)}
}

// ReadRegister implements Transport.
func (e *Emulated) ReadRegister(_ cancel.Context, reg modbus.Register) (modbus.DataValue, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if v, ok := e.store[reg.Address]; ok {
		return v, nil
	}
	return modbus.Floating(reg.DataType), nil
}

// WriteRegister implements Transport. value.Type() must equal
// reg.DataType (spec §4.9); a mismatch is the one way this transport fails.
func (e *Emulated) WriteRegister(_ cancel.Context, reg modbus.Register, value modbus.DataValue) error {
	if value.Type() != reg.DataType {
		return modbus.ErrInvalidData(modbus.ReasonEncodingError)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store[reg.Address] = value
	return nil
}

// Feedback implements Transport, applying each write frame and collecting
// one value per read frame, in the order given, atomically with respect to
// other callers.
func (e *Emulated) Feedback(_ cancel.Context, req modbus.FeedbackReq) ([]modbus.DataValue, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	values := make([]modbus.DataValue, 0, len(req.Frames))
	for _, f := range req.Frames {
		reg := f.Register
		if v := f.Value; v != nil {
			if v.Type() != reg.DataType {
				return nil, modbus.ErrInvalidData(modbus.ReasonEncodingError)
			}
			e.store[reg.Address] = *v
			continue
		}
		if v, ok := e.store[reg.Address]; ok {
			values = append(values, v)
		} else {
			values = append(values, modbus.Floating(reg.DataType))
		}
	}
	return values, nil
}

// Close implements Transport; the emulated transport holds no resources.
func (e *Emulated) Close() error { return nil }
