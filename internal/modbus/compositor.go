package modbus

import "encoding/binary"

// Wire-level constants from spec §4.5/§6.
const (
	ProtocolIDTCP         uint16 = 0x0000
	HeaderSize                  = 7
	MaxPacketSizeWords          = 260
	MaxEthernetDataLength       = 1040
	baseUnitID            byte  = 1
)

// Header is the 7-byte MBAP header prefixing every Modbus TCP PDU.
type Header struct {
	TransactionID uint16
	ProtocolID    uint16
	Length        uint16
	UnitID        byte
}

// Pack serializes the header big-endian.
func (h Header) Pack() []byte {
	buf := make([]byte, HeaderSize)
	binary.BigEndian.PutUint16(buf[0:], h.TransactionID)
	binary.BigEndian.PutUint16(buf[2:], h.ProtocolID)
	binary.BigEndian.PutUint16(buf[4:], h.Length)
	buf[6] = h.UnitID
	return buf
}

// UnpackHeader parses the first 7 bytes of buf as an MBAP header.
func UnpackHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, ErrInvalidResponse()
	}
	return Header{
		TransactionID: binary.BigEndian.Uint16(buf[0:]),
		ProtocolID:    binary.BigEndian.Uint16(buf[2:]),
		Length:        binary.BigEndian.Uint16(buf[4:]),
		UnitID:        buf[6],
	}, nil
}

// Compositor emits Modbus TCP request byte-sequences from a monotonically
// incremented transaction id (spec §4.4). Not safe for concurrent use by
// itself; the TCP transport serializes access to it behind its writer mutex.
type Compositor struct {
	transactionID uint16
	unitID        byte
}

// NewCompositor returns a Compositor with the fixed LabJack unit id (1) and
// a transaction id counter starting at 0.
func NewCompositor() *Compositor {
	return &Compositor{unitID: baseUnitID}
}

// NewCompositorWithID returns a Compositor whose transaction id counter
// starts at the given value (the first composed request carries id+1).
// Exposed for deterministic tests against fixed wire captures.
func NewCompositorWithID(start uint16) *Compositor {
	return &Compositor{unitID: baseUnitID, transactionID: start}
}

func (c *Compositor) nextTID() uint16 {
	c.transactionID = c.transactionID + 1
	return c.transactionID
}

// ComposeRead encodes a Read(reg) request. Returns the wire frame, the
// header used (for response validation) and the expected reply payload size
// in bytes.
func (c *Compositor) ComposeRead(req ReadReq) ([]byte, Header, int, error) {
	sizeWords := req.Register.DataType.SizeWords()
	if sizeWords < 1 {
		return nil, Header{}, 0, ErrInvalidData(ReasonRecvBufferEmpty)
	}
	if sizeWords > MaxPacketSizeWords {
		return nil, Header{}, 0, ErrInvalidData(ReasonUnexpectedReplySize)
	}

	header := Header{
		TransactionID: c.nextTID(),
		ProtocolID:    ProtocolIDTCP,
		Length:        6,
		UnitID:        c.unitID,
	}

	buf := header.Pack()
	buf = append(buf, FuncReadHoldingRegisters)
	buf = appendUint16(buf, req.Register.Address)
	buf = appendUint16(buf, sizeWords)

	return buf, header, 2 * int(sizeWords), nil
}

// ComposeWrite encodes a Write(reg, value) request. Returns the wire frame
// and the header used; the expected reply size is always 4 bytes (echoed
// address + register count).
func (c *Compositor) ComposeWrite(req WriteReq) ([]byte, Header, error) {
	if req.Value.Type() != req.Register.DataType {
		return nil, Header{}, ErrInvalidData(ReasonEncodingError)
	}
	sizeWords := req.Register.DataType.SizeWords()
	if sizeWords < 1 {
		return nil, Header{}, ErrInvalidData(ReasonSendBufferEmpty)
	}
	if sizeWords > MaxPacketSizeWords {
		return nil, Header{}, ErrInvalidData(ReasonSendBufferTooBig)
	}

	values := req.Value.Bytes()
	length := uint16(7 + 2*int(sizeWords))

	header := Header{
		TransactionID: c.nextTID(),
		ProtocolID:    ProtocolIDTCP,
		Length:        length,
		UnitID:        c.unitID,
	}

	buf := header.Pack()
	buf = append(buf, FuncWriteMultiple)
	buf = appendUint16(buf, req.Register.Address)
	buf = appendUint16(buf, sizeWords)
	buf = append(buf, byte(len(values)))
	buf = append(buf, values...)

	return buf, header, nil
}

// ComposeFeedback encodes a Feedback([]frame) request (spec §4.4). Returns
// the wire frame, the header used and the expected reply payload size.
func (c *Compositor) ComposeFeedback(req FeedbackReq) ([]byte, Header, int, error) {
	if len(req.Frames) == 0 {
		return nil, Header{}, 0, ErrInvalidData(ReasonSendBufferEmpty)
	}

	length := 2
	// The Feedback reply carries no byte-count field (unlike a plain Read
	// reply): just the function code, then each read frame's payload back
	// to back. expectedReplyBytes therefore starts at 1 (the function
	// code byte), not the Read reply's 2-byte (function + byte count)
	// overhead.
	expectedReplyBytes := 1
	for _, f := range req.Frames {
		if f.isWrite() {
			length += 4 + f.Value.Type().sizeBytes()
		} else {
			length += 4
			expectedReplyBytes += 2 * int(f.Register.DataType.SizeWords())
		}
	}

	header := Header{
		TransactionID: c.nextTID(),
		ProtocolID:    ProtocolIDTCP,
		Length:        uint16(length),
		UnitID:        c.unitID,
	}

	buf := header.Pack()
	buf = append(buf, FuncFeedback)

	for _, f := range req.Frames {
		buf = append(buf, f.subCode())
		buf = appendUint16(buf, f.Register.Address)
		if f.isWrite() {
			values := f.Value.Bytes()
			buf = append(buf, byte(f.Value.Type().SizeWords()))
			buf = append(buf, values...)
		} else {
			buf = append(buf, byte(f.Register.DataType.SizeWords()))
		}
	}

	return buf, header, expectedReplyBytes, nil
}

func appendUint16(buf []byte, v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return append(buf, b...)
}
