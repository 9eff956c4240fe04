package modbus

// Function codes used by this module, ported from the teacher's modbus.go
// constants and extended with the LabJack-specific Feedback function.
const (
	FuncReadHoldingRegisters byte = 0x03
	FuncWriteMultiple        byte = 0x10
	FuncFeedback             byte = 0x4C
)

const (
	feedbackSubRead  byte = 0x00
	feedbackSubWrite byte = 0x01
)

// ReadReq describes a Read(reg) request: read SizeWords(reg.DataType)
// consecutive holding registers starting at reg.Address.
type ReadReq struct {
	Register Register
}

// WriteReq describes a Write(reg, value) request. The caller must ensure
// Value.Type() == Register.DataType; Compositor enforces it.
type WriteReq struct {
	Register Register
	Value    DataValue
}

// FeedbackFrame is one sub-frame of a Feedback request: either a read or a
// write of consecutive registers starting at a register's address.
type FeedbackFrame struct {
	Register Register
	// Value is set only for write frames; its presence (non-nil) selects the
	// sub-frame kind.
	Value *DataValue
}

// ReadFrame builds a read sub-frame for the given register.
func ReadFrame(reg Register) FeedbackFrame {
	return FeedbackFrame{Register: reg}
}

// WriteFrame builds a write sub-frame for the given register and value.
func WriteFrame(reg Register, value DataValue) FeedbackFrame {
	return FeedbackFrame{Register: reg, Value: &value}
}

func (f FeedbackFrame) isWrite() bool { return f.Value != nil }

func (f FeedbackFrame) subCode() byte {
	if f.isWrite() {
		return feedbackSubWrite
	}
	return feedbackSubRead
}

// FeedbackReq describes a Feedback([]frame) request: a heterogeneous list
// of read/write sub-frames composed into one round trip (function 0x4C).
type FeedbackReq struct {
	Frames []FeedbackFrame
}
