package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bennjii/labjack/internal/modbus"
)

// newTestIterator builds an Iterator around a loopback UDP socket, bypassing
// Discover's broadcast send so the test can feed it a crafted reply
// directly instead of needing real broadcast permissions.
func newTestIterator(t *testing.T, timeout time.Duration) *Iterator {
	t.Helper()
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(timeout)))

	frames := []modbus.FeedbackFrame{
		modbus.ReadFrame(productIDRegister),
		modbus.ReadFrame(serialNumberRegister),
	}
	_, header, expected, err := modbus.NewCompositor().ComposeFeedback(modbus.FeedbackReq{Frames: frames})
	require.NoError(t, err)

	return &Iterator{conn: conn, header: header, frames: frames, expected: expected, logger: zap.NewNop()}
}

// buildFeedbackReply lays out a Feedback reply matching what
// modbus.DecodeFeedbackReply expects: header, function code, then the read
// frames' payload bytes back to back (no byte-count byte), padded with
// zeros out to the total length ComposeFeedback computed.
func buildFeedbackReply(header modbus.Header, totalLen int, payload ...[]byte) []byte {
	buf := header.Pack()
	buf = append(buf, modbus.FuncFeedback)
	for _, p := range payload {
		buf = append(buf, p...)
	}
	for len(buf) < totalLen {
		buf = append(buf, 0x00)
	}
	return buf
}

func sendTo(t *testing.T, it *Iterator, frame []byte) {
	t.Helper()
	sender, err := net.DialUDP("udp4", nil, it.conn.LocalAddr().(*net.UDPAddr))
	require.NoError(t, err)
	defer sender.Close()
	_, err = sender.Write(frame)
	require.NoError(t, err)
}

func TestDiscovery_NextDecodesResponder(t *testing.T) {
	it := newTestIterator(t, 2*time.Second)
	defer it.Close()

	productID := modbus.ValueF32(7.0)
	serial := modbus.ValueI32(470012345)
	reply := buildFeedbackReply(it.header, modbus.HeaderSize+it.expected, productID.Bytes(), serial.Bytes())
	sendTo(t, it, reply)

	r, ok, err := it.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int32(470012345), r.SerialNumber)
	assert.Equal(t, uint32(0x40E00000), r.ProductIDBits())
}

func TestDiscovery_NextTimesOutWithNoReplies(t *testing.T) {
	it := newTestIterator(t, 200*time.Millisecond)
	defer it.Close()

	_, ok, err := it.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDiscovery_NextSkipsMismatchedTransactionID(t *testing.T) {
	it := newTestIterator(t, 2*time.Second)
	defer it.Close()

	// A reply carrying a transaction id the iterator never sent must be
	// skipped, not mistaken for this discovery round's responder.
	mismatched := it.header
	mismatched.TransactionID++
	garbage := buildFeedbackReply(mismatched, modbus.HeaderSize+it.expected, modbus.ValueF32(4.0).Bytes(), modbus.ValueI32(1).Bytes())
	sendTo(t, it, garbage)

	require.NoError(t, it.conn.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	_, ok, err := it.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}
