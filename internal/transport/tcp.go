package transport

import (
	"encoding/binary"
	"io"
	"net"
	"time"

	"github.com/GoAethereal/cancel"
	"go.uber.org/zap"

	"github.com/bennjii/labjack/internal/modbus"
)

// DefaultPort is the TCP port LabJack devices accept Modbus TCP connections
// on.
const DefaultPort uint16 = 502

// mutex behaves like sync.Mutex except a lock attempt can be abandoned via
// the given context. Ported from the teacher's helper.go, retargeted at
// cancel.Context instead of stdlib context.Context.
type mutex chan struct{}

func newMutex() mutex {
	m := make(mutex, 1)
	m <- struct{}{}
	return m
}

func (m mutex) lock(ctx cancel.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-m:
		return nil
	}
}

func (m mutex) unlock() {
	m <- struct{}{}
}

// DialOptions configures a TCP dial beyond the bare address.
type DialOptions struct {
	// DialTimeout bounds the initial connect; zero defers entirely to ctx.
	DialTimeout time.Duration
	// Logger receives a debug line per frame the background reader rejects
	// (too large, which also stops the reader, or an MBAP header it can't
	// parse). Nil selects zap.NewNop.
	Logger *zap.Logger
}

// TCP is the live Transport: one TCP connection to a device, a background
// reader goroutine that demultiplexes replies by transaction id via topic,
// and a writer mutex serializing compose+send so the transaction id counter
// and the wire stay consistent under concurrent callers.
//
// The writer mutex's critical section ends the instant the frame is
// written; callers then block on their own per-TID waiter, not on each
// other, so multiple requests pipeline on one connection (spec §4.7/§5)
// instead of serializing end-to-end like a naive single lock would.
type TCP struct {
	conn       net.Conn
	compositor *modbus.Compositor
	topic      *topic
	writeMu    mutex
	logger     *zap.Logger
}

var _ Transport = (*TCP)(nil)

// Dial connects to addr (host:port) and starts the background reader.
func Dial(ctx cancel.Context, addr string) (*TCP, error) {
	return DialWithOptions(ctx, addr, DialOptions{})
}

// DialWithOptions is Dial with a DialTimeout and a Logger for dropped frames.
func DialWithOptions(ctx cancel.Context, addr string, opts DialOptions) (*TCP, error) {
	dialCtx, cancelDial := cancel.Promote(ctx)
	defer cancelDial()

	dialer := &net.Dialer{Timeout: opts.DialTimeout}
	conn, err := dialer.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return nil, modbus.ErrIO(err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &TCP{
		conn:       conn,
		compositor: modbus.NewCompositor(),
		topic:      newTopic(),
		writeMu:    newMutex(),
		logger:     logger,
	}
	go t.readLoop()
	return t, nil
}

// readLoop continuously pulls one MBAP frame at a time off the connection
// and publishes it by transaction id. It exits (and wakes every pending
// waiter) the moment the connection errors or is closed. A frame too short
// to hold an MBAP header is logged and dropped and the loop goes on; a frame
// declaring a length above MaxEthernetDataLength is logged and ends the
// loop the same way a connection failure does.
func (t *TCP) readLoop() {
	prefix := make([]byte, 6)
	for {
		if _, err := io.ReadFull(t.conn, prefix); err != nil {
			t.topic.closeAll()
			return
		}
		length := binary.BigEndian.Uint16(prefix[4:6])
		if int(length) > modbus.MaxEthernetDataLength {
			t.logger.Debug("dropping oversized frame", zap.Uint16("length", length))
			// The stream can't be resynchronized without knowing how many
			// bytes the far end actually intended to send; treat it like a
			// connection failure since the framing contract is broken.
			t.topic.closeAll()
			return
		}
		rest := make([]byte, length)
		if _, err := io.ReadFull(t.conn, rest); err != nil {
			t.topic.closeAll()
			return
		}

		frame := make([]byte, 0, 6+len(rest))
		frame = append(frame, prefix...)
		frame = append(frame, rest...)

		header, err := modbus.UnpackHeader(frame)
		if err != nil {
			t.logger.Debug("dropping unparseable frame", zap.Int("bytes", len(frame)))
			continue
		}
		t.topic.publish(header, frame)
	}
}

// send composes the frame under writeMu (so the compositor's transaction id
// counter never races across concurrent callers), subscribes the resulting
// TID and writes the frame, then releases writeMu before blocking the
// caller on its own waiter. Two concurrent calls to send serialize only for
// the duration of compose+write_all; their waits for a reply overlap
// freely, which is what makes the transport pipeline instead of
// serializing end-to-end (spec §4.7/§5).
func (t *TCP) send(ctx cancel.Context, compose func() ([]byte, modbus.Header, error)) (reqFrame []byte, header modbus.Header, respFrame []byte, err error) {
	if err := t.writeMu.lock(ctx); err != nil {
		return nil, modbus.Header{}, nil, modbus.ErrQueue(modbus.QueueCancelled)
	}
	frame, hdr, cerr := compose()
	if cerr != nil {
		t.writeMu.unlock()
		return nil, modbus.Header{}, nil, cerr
	}
	waiter, ok := t.topic.subscribe(hdr.TransactionID)
	if !ok {
		t.writeMu.unlock()
		return nil, modbus.Header{}, nil, modbus.ErrQueue(modbus.QueueTooManyInFlight)
	}
	_, werr := t.conn.Write(frame)
	t.writeMu.unlock()
	if werr != nil {
		t.topic.take(hdr.TransactionID)
		return nil, modbus.Header{}, nil, modbus.ErrIO(werr)
	}

	select {
	case <-ctx.Done():
		t.topic.take(hdr.TransactionID)
		return nil, modbus.Header{}, nil, modbus.ErrQueue(modbus.QueueCancelled)
	case <-waiter:
	}

	r, ok := t.topic.take(hdr.TransactionID)
	if !ok {
		return nil, modbus.Header{}, nil, modbus.ErrQueue(modbus.QueueEmptyWhenRead)
	}
	return frame, hdr, r.frame, nil
}

// ReadRegister implements Transport.
func (t *TCP) ReadRegister(ctx cancel.Context, reg modbus.Register) (modbus.DataValue, error) {
	var expectedReplyBytes int
	frame, header, respFrame, err := t.send(ctx, func() ([]byte, modbus.Header, error) {
		f, h, n, err := t.compositor.ComposeRead(modbus.ReadReq{Register: reg})
		expectedReplyBytes = n
		return f, h, err
	})
	if err != nil {
		return modbus.DataValue{}, err
	}

	respHeader, err := modbus.UnpackHeader(respFrame)
	if err != nil {
		return modbus.DataValue{}, err
	}
	if err := modbus.ValidateHeader(header, respHeader); err != nil {
		return modbus.DataValue{}, err
	}
	if err := modbus.ValidateFunctionCode(frame, respFrame); err != nil {
		return modbus.DataValue{}, err
	}
	return modbus.DecodeReadReply(respFrame, reg.DataType, expectedReplyBytes)
}

// WriteRegister implements Transport.
func (t *TCP) WriteRegister(ctx cancel.Context, reg modbus.Register, value modbus.DataValue) error {
	frame, header, respFrame, err := t.send(ctx, func() ([]byte, modbus.Header, error) {
		return t.compositor.ComposeWrite(modbus.WriteReq{Register: reg, Value: value})
	})
	if err != nil {
		return err
	}

	respHeader, err := modbus.UnpackHeader(respFrame)
	if err != nil {
		return err
	}
	if err := modbus.ValidateHeader(header, respHeader); err != nil {
		return err
	}
	return modbus.ValidateFunctionCode(frame, respFrame)
}

// Feedback implements Transport.
func (t *TCP) Feedback(ctx cancel.Context, req modbus.FeedbackReq) ([]modbus.DataValue, error) {
	var expectedReplyBytes int
	frame, header, respFrame, err := t.send(ctx, func() ([]byte, modbus.Header, error) {
		f, h, n, err := t.compositor.ComposeFeedback(req)
		expectedReplyBytes = n
		return f, h, err
	})
	if err != nil {
		return nil, err
	}

	respHeader, err := modbus.UnpackHeader(respFrame)
	if err != nil {
		return nil, err
	}
	if err := modbus.ValidateHeader(header, respHeader); err != nil {
		return nil, err
	}
	if err := modbus.ValidateFunctionCode(frame, respFrame); err != nil {
		return nil, err
	}
	return modbus.DecodeFeedbackReply(respFrame, req.Frames, expectedReplyBytes)
}

// Close shuts down the connection, which unblocks readLoop and wakes any
// still-pending waiters with a queue error.
func (t *TCP) Close() error {
	return t.conn.Close()
}
