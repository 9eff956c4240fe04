package modbus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bennjii/labjack/internal/modbus"
)

// Scenario 1: Read U16 (FIO0 @ 0x07D0), tid=2.
func TestComposeRead_U16FIO0(t *testing.T) {
	c := modbus.NewCompositorWithID(1)
	reg := modbus.Register{Address: 0x07D0, DataType: modbus.U16}

	buf, header, expected, err := c.ComposeRead(modbus.ReadReq{Register: reg})
	require.NoError(t, err)
	assert.Equal(t, uint16(2), header.TransactionID)
	assert.Equal(t, 2, expected)
	assert.Equal(t, []byte{0x00, 0x02, 0x00, 0x00, 0x00, 0x06, 0x01, 0x03, 0x07, 0xD0, 0x00, 0x01}, buf)

	reply := []byte{0x00, 0x02, 0x00, 0x00, 0x00, 0x05, 0x01, 0x03, 0x02, 0x00, 0x2A}
	respHeader, err := modbus.UnpackHeader(reply)
	require.NoError(t, err)
	require.NoError(t, modbus.ValidateHeader(header, respHeader))
	require.NoError(t, modbus.ValidateFunctionCode(buf, reply))

	value, err := modbus.DecodeReadReply(reply, modbus.U16, expected)
	require.NoError(t, err)
	assert.Equal(t, uint16(42), value.AsU16())
}

// Scenario 2: Read U32 (TEST_UINT32 @ 0xD750).
func TestComposeRead_U32TestRegister(t *testing.T) {
	c := modbus.NewCompositorWithID(1)
	reg := modbus.Register{Address: 0xD750, DataType: modbus.U32}

	buf, header, expected, err := c.ComposeRead(modbus.ReadReq{Register: reg})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x02, 0x00, 0x00, 0x00, 0x06, 0x01, 0x03, 0xD7, 0x50, 0x00, 0x02}, buf)

	reply := []byte{0x00, 0x02, 0x00, 0x00, 0x00, 0x07, 0x01, 0x03, 0x04, 0xC0, 0xBC, 0xCC, 0xCD}
	respHeader, err := modbus.UnpackHeader(reply)
	require.NoError(t, err)
	require.NoError(t, modbus.ValidateHeader(header, respHeader))
	require.NoError(t, modbus.ValidateFunctionCode(buf, reply))

	value, err := modbus.DecodeReadReply(reply, modbus.U32, expected)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xC0BCCCCD), value.AsU32())
}

// Scenario 3: Write F32 (DAC0 @ 0x03E8, 3.3).
func TestComposeWrite_F32DAC0(t *testing.T) {
	c := modbus.NewCompositorWithID(1)
	reg := modbus.Register{Address: 0x03E8, DataType: modbus.F32}

	buf, header, err := c.ComposeWrite(modbus.WriteReq{Register: reg, Value: modbus.ValueF32(3.3)})
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x00, 0x02, 0x00, 0x00, 0x00, 0x0B, 0x01, 0x10, 0x03, 0xE8, 0x00, 0x02, 0x04, 0x40, 0x53, 0x33, 0x33,
	}, buf)

	// The device echoes addr+count under the write function code.
	reply := []byte{0x00, 0x02, 0x00, 0x00, 0x00, 0x06, 0x01, 0x10, 0x03, 0xE8, 0x00, 0x02}
	respHeader, err := modbus.UnpackHeader(reply)
	require.NoError(t, err)
	require.NoError(t, modbus.ValidateHeader(header, respHeader))
	require.NoError(t, modbus.ValidateFunctionCode(buf, reply))
}

// Scenario 4: Feedback of two reads (AIN55@0x6E, AIN56@0x70).
func TestComposeFeedback_TwoReads(t *testing.T) {
	c := modbus.NewCompositor()
	ain55 := modbus.Register{Address: 0x6E, DataType: modbus.F32}
	ain56 := modbus.Register{Address: 0x70, DataType: modbus.F32}

	buf, header, expected, err := c.ComposeFeedback(modbus.FeedbackReq{
		Frames: []modbus.FeedbackFrame{modbus.ReadFrame(ain55), modbus.ReadFrame(ain56)},
	})
	require.NoError(t, err)
	assert.Equal(t, uint16(0x000A), header.Length)
	// buf[6:] is unit_id + function code + frames (the spec's "body").
	assert.Equal(t, []byte{0x01, 0x4C, 0x00, 0x00, 0x6E, 0x02, 0x00, 0x00, 0x70, 0x02}, buf[6:])
	// expected_reply_bytes = 1 + Σ 2·size_words(read_frames): the Feedback
	// reply carries only the function code byte ahead of the payload, no
	// byte-count byte. Both AIN55 and AIN56 are F32 (size_words=2), so each
	// read frame contributes 4 bytes.
	assert.Equal(t, 1+2*2+2*2, expected)
}

// Scenario 5: Exception path (illegal data address).
func TestValidateFunctionCode_Exception(t *testing.T) {
	req := []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x06, 0x01, 0x03, 0x00, 0x00, 0x00, 0x01}
	reply := []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x03, 0x01, 0x83, 0x02}

	err := modbus.ValidateFunctionCode(req, reply)
	require.Error(t, err)

	var merr *modbus.Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, modbus.KindException, merr.Kind)
	assert.Equal(t, modbus.ExIllegalDataAddress, merr.Exception)
}

func TestValidateHeader_RejectsMismatch(t *testing.T) {
	req := modbus.Header{TransactionID: 5, ProtocolID: 0x0000}

	require.Error(t, modbus.ValidateHeader(req, modbus.Header{TransactionID: 6, ProtocolID: 0x0000}))
	require.Error(t, modbus.ValidateHeader(req, modbus.Header{TransactionID: 5, ProtocolID: 0x0001}))
	require.NoError(t, modbus.ValidateHeader(req, modbus.Header{TransactionID: 5, ProtocolID: 0x0000}))
}

func TestComposeRead_AcceptsEveryDataType(t *testing.T) {
	c := modbus.NewCompositor()
	reg := modbus.Register{Address: 0, DataType: modbus.U16}
	// Force an oversized word count isn't directly expressible via Register
	// (DataType bounds it), so this instead exercises the lower bound: a
	// zero-sized type would violate the size law, which SizeWords cannot
	// produce for the defined DataType set. This test documents that
	// invariant holds for every DataType constant instead.
	for _, dt := range []modbus.DataType{modbus.U16, modbus.U32, modbus.I32, modbus.F32, modbus.U64, modbus.Byte} {
		reg.DataType = dt
		_, _, _, err := c.ComposeRead(modbus.ReadReq{Register: reg})
		assert.NoError(t, err)
	}
}

func TestErrorIs(t *testing.T) {
	err := modbus.ErrDeviceNotFound()
	assert.ErrorIs(t, err, modbus.ErrDeviceNotFoundSentinel)
	assert.False(t, assert.ObjectsAreEqual(modbus.ErrInvalidResponseSentinel, err))
}
