// Package discovery implements LabJack's UDP broadcast device discovery:
// one Feedback request is broadcast to the Modbus Feedback UDP port, and
// every device on the segment that holds an open socket on that port
// answers with its own PRODUCT_ID and SERIAL_NUMBER.
package discovery

import (
	"math"
	"net"
	"syscall"
	"time"

	"github.com/GoAethereal/cancel"
	"go.uber.org/zap"
	"golang.org/x/net/ipv4"

	"github.com/bennjii/labjack/internal/modbus"
)

// BroadcastAddress and Port are bit-exact per the LabJack Modbus Feedback
// protocol: devices answer discovery broadcasts on UDP 52362, distinct from
// the TCP Modbus communication port 502.
const (
	BroadcastAddress = "255.255.255.255"
	Port             = 52362

	// DefaultTimeout bounds how long the iterator waits for responders after
	// the broadcast is sent.
	DefaultTimeout = 10 * time.Second
)

var (
	productIDRegister    = modbus.Register{Address: 60000, DataType: modbus.F32}
	serialNumberRegister = modbus.Register{Address: 60028, DataType: modbus.I32}
)

// Responder is one reply to a discovery broadcast: the sender's address plus
// its decoded PRODUCT_ID and SERIAL_NUMBER register values. Package labjack
// maps ProductID onto its public DeviceType enum.
type Responder struct {
	IPAddress    net.IP
	Port         uint16
	ProductID    modbus.DataValue
	SerialNumber int32
}

// Options configures a Discover call.
type Options struct {
	// Timeout bounds the discovery window. Zero selects DefaultTimeout.
	Timeout time.Duration
	Logger  *zap.Logger
}

// Iterator yields one Responder per datagram received before the discovery
// window closes. A malformed or unrelated datagram is skipped rather than
// failing the whole scan (spec'd isolation between responders).
type Iterator struct {
	conn     *net.UDPConn
	header   modbus.Header
	frames   []modbus.FeedbackFrame
	expected int
	logger   *zap.Logger
}

// Discover broadcasts a single Feedback(PRODUCT_ID, SERIAL_NUMBER) request
// to BroadcastAddress:Port and returns an Iterator over the replies.
// Callers must call Iterator.Close when done.
func Discover(ctx cancel.Context, opts Options) (*Iterator, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: 0})
	if err != nil {
		return nil, modbus.ErrIO(err)
	}
	if err := enableBroadcast(conn); err != nil {
		conn.Close()
		return nil, modbus.ErrIO(err)
	}
	// Keep the discovery broadcast off routed subnets; it only needs to
	// reach the local segment.
	if pc := ipv4.NewPacketConn(conn); pc != nil {
		_ = pc.SetTTL(1)
	}

	frames := []modbus.FeedbackFrame{
		modbus.ReadFrame(productIDRegister),
		modbus.ReadFrame(serialNumberRegister),
	}
	req := modbus.FeedbackReq{Frames: frames}

	buf, header, expected, err := modbus.NewCompositor().ComposeFeedback(req)
	if err != nil {
		conn.Close()
		return nil, err
	}

	dst := &net.UDPAddr{IP: net.IPv4bcast, Port: Port}
	if _, err := conn.WriteToUDP(buf, dst); err != nil {
		conn.Close()
		return nil, modbus.ErrIO(err)
	}

	deadline := time.Now().Add(timeout)
	if err := conn.SetReadDeadline(deadline); err != nil {
		conn.Close()
		return nil, modbus.ErrIO(err)
	}

	logger.Debug("discovery broadcast sent", zap.String("addr", dst.String()), zap.Uint16("tid", header.TransactionID))

	// A caller-side cancellation closes the socket, which unblocks
	// ReadFromUDP in Next with an I/O error instead of silently waiting out
	// the full timeout.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	return &Iterator{conn: conn, header: header, frames: frames, expected: expected, logger: logger}, nil
}

// Next blocks for the next valid responder, skipping malformed or unrelated
// datagrams. It returns (Responder{}, false, nil) once the discovery window
// elapses with no further replies.
func (it *Iterator) Next() (Responder, bool, error) {
	buf := make([]byte, modbus.HeaderSize+it.expected+2)
	for {
		n, addr, err := it.conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				return Responder{}, false, nil
			}
			return Responder{}, false, modbus.ErrIO(err)
		}
		frame := append([]byte(nil), buf[:n]...)

		respHeader, err := modbus.UnpackHeader(frame)
		if err != nil {
			it.logger.Debug("discovery: dropping short datagram", zap.String("from", addr.String()))
			continue
		}
		if err := modbus.ValidateHeader(it.header, respHeader); err != nil {
			it.logger.Debug("discovery: dropping header mismatch", zap.String("from", addr.String()))
			continue
		}

		values, err := modbus.DecodeFeedbackReply(frame, it.frames, it.expected)
		if err != nil || len(values) != 2 {
			it.logger.Debug("discovery: dropping undecodable reply", zap.String("from", addr.String()), zap.Error(err))
			continue
		}

		return Responder{
			IPAddress:    addr.IP,
			Port:         uint16(addr.Port),
			ProductID:    values[0],
			SerialNumber: values[1].AsI32(),
		}, true, nil
	}
}

// Close releases the discovery socket.
func (it *Iterator) Close() error {
	return it.conn.Close()
}

// ProductIDBits returns the raw IEEE-754 bit pattern of the PRODUCT_ID
// reading: LabJack's firmware returns the model number as a float (4.0, 7.0,
// 8.0), so callers bucket on exact bits rather than a tolerance-based float
// compare.
func (r Responder) ProductIDBits() uint32 {
	return math.Float32bits(r.ProductID.AsF32())
}

// enableBroadcast sets SO_BROADCAST on conn's socket. SO_BROADCAST is a
// SOL_SOCKET option with no portable exposure in golang.org/x/net/ipv4 (that
// package covers IPPROTO_IP options like TTL and multicast group
// membership), so it is set directly via syscall on the raw fd.
func enableBroadcast(conn *net.UDPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	var sockErr error
	err = raw.Control(func(fd uintptr) {
		sockErr = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_BROADCAST, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}
